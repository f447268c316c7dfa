package sbe

import (
	"bytes"
	"fmt"
	"math"
)

func checkASCII(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return fmt.Errorf("%w: byte 0x%02x at %d", ErrInvalidText, s[i], i)
		}
	}
	return nil
}

func checkSymbol(s string) error {
	if err := checkASCII(s); err != nil {
		return err
	}
	if len(s) > SymbolLength {
		return fmt.Errorf("%w: symbol %q is %d bytes, max %d", ErrOversizedField, s, len(s), SymbolLength)
	}
	return nil
}

func checkVarString(s string) error {
	if err := checkASCII(s); err != nil {
		return err
	}
	if len(s) > math.MaxInt32 {
		return fmt.Errorf("%w: %d bytes", ErrOversizedField, len(s))
	}
	return nil
}

// putSymbol writes s zero-padded into the fixed 8-byte field.
func putSymbol(b []byte, off int, s string) (int, error) {
	if err := checkSymbol(s); err != nil {
		return off, err
	}
	if err := checkSpan(b, off, SymbolLength); err != nil {
		return off, err
	}
	n := copy(b[off:off+SymbolLength], s)
	clear(b[off+n : off+SymbolLength])
	return off + SymbolLength, nil
}

// getSymbol reads the fixed field and stops at the first zero byte. Bytes
// after that zero are dropped, not rejected.
func getSymbol(b []byte, off int) (string, int, error) {
	if err := checkSpan(b, off, SymbolLength); err != nil {
		return "", off, err
	}
	raw := b[off : off+SymbolLength]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw), off + SymbolLength, nil
}

// putVarString writes a 4-byte signed length prefix followed by the raw bytes.
func putVarString(b []byte, off int, s string) (int, error) {
	if err := checkVarString(s); err != nil {
		return off, err
	}
	if err := checkSpan(b, off, VarLengthPrefix+len(s)); err != nil {
		return off, err
	}
	off, _ = PutInt32(b, off, int32(len(s)))
	off += copy(b[off:], s)
	return off, nil
}

func getVarString(b []byte, off int) (string, int, error) {
	n, next, err := Int32(b, off)
	if err != nil {
		return "", off, err
	}
	if n < 0 {
		return "", off, fmt.Errorf("%w: negative length %d at offset %d", ErrOutOfBounds, n, off)
	}
	if err := checkSpan(b, next, int(n)); err != nil {
		return "", off, err
	}
	return string(b[next : next+int(n)]), next + int(n), nil
}
