package sbe

import "encoding/binary"

// Primitive little-endian accessors. Each call takes the buffer and an
// absolute offset and returns the offset just past the value it touched.
// Nothing here grows a buffer; a span past len(b) is ErrOutOfBounds.

func checkSpan(b []byte, off, width int) error {
	if off < 0 || width < 0 || off > len(b)-width {
		return outOfBounds(off, width, len(b))
	}
	return nil
}

// PutUint16 writes v as 2 bytes at off.
func PutUint16(b []byte, off int, v uint16) (int, error) {
	if err := checkSpan(b, off, 2); err != nil {
		return off, err
	}
	binary.LittleEndian.PutUint16(b[off:], v)
	return off + 2, nil
}

// Uint16 reads 2 bytes at off.
func Uint16(b []byte, off int) (uint16, int, error) {
	if err := checkSpan(b, off, 2); err != nil {
		return 0, off, err
	}
	return binary.LittleEndian.Uint16(b[off:]), off + 2, nil
}

// PutInt32 writes v as 4 bytes at off.
func PutInt32(b []byte, off int, v int32) (int, error) {
	if err := checkSpan(b, off, 4); err != nil {
		return off, err
	}
	binary.LittleEndian.PutUint32(b[off:], uint32(v))
	return off + 4, nil
}

// Int32 reads a signed 4-byte value at off.
func Int32(b []byte, off int) (int32, int, error) {
	if err := checkSpan(b, off, 4); err != nil {
		return 0, off, err
	}
	return int32(binary.LittleEndian.Uint32(b[off:])), off + 4, nil
}

// PutInt64 writes v as 8 bytes at off.
func PutInt64(b []byte, off int, v int64) (int, error) {
	if err := checkSpan(b, off, 8); err != nil {
		return off, err
	}
	binary.LittleEndian.PutUint64(b[off:], uint64(v))
	return off + 8, nil
}

// Int64 reads a signed 8-byte value at off.
func Int64(b []byte, off int) (int64, int, error) {
	if err := checkSpan(b, off, 8); err != nil {
		return 0, off, err
	}
	return int64(binary.LittleEndian.Uint64(b[off:])), off + 8, nil
}

// PutByte writes a single byte at off.
func PutByte(b []byte, off int, v byte) (int, error) {
	if err := checkSpan(b, off, 1); err != nil {
		return off, err
	}
	b[off] = v
	return off + 1, nil
}

// Byte reads the byte at off.
func Byte(b []byte, off int) (byte, int, error) {
	if err := checkSpan(b, off, 1); err != nil {
		return 0, off, err
	}
	return b[off], off + 1, nil
}

// PutBytes copies src into b at off.
func PutBytes(b []byte, off int, src []byte) (int, error) {
	if err := checkSpan(b, off, len(src)); err != nil {
		return off, err
	}
	copy(b[off:], src)
	return off + len(src), nil
}

// Bytes returns a copy of n bytes starting at off. The copy never aliases b.
func Bytes(b []byte, off, n int) ([]byte, int, error) {
	if err := checkSpan(b, off, n); err != nil {
		return nil, off, err
	}
	out := make([]byte, n)
	copy(out, b[off:off+n])
	return out, off + n, nil
}
