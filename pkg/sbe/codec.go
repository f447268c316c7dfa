package sbe

// fieldWriter and fieldReader hold a buffer and the absolute offset of a
// message body. They keep the first error and turn later calls into no-ops,
// so a body codec reads as a flat list of fields. Both live only for the
// duration of one encode or decode call.

type fieldWriter struct {
	b    []byte
	base int
	msg  string
	err  error
}

func (w *fieldWriter) fail(field string, err error) {
	if w.err == nil && err != nil {
		w.err = fieldErr(w.msg, field, err)
	}
}

func (w *fieldWriter) int64(field string, off int, v int64) {
	if w.err != nil {
		return
	}
	_, err := PutInt64(w.b, w.base+off, v)
	w.fail(field, err)
}

func (w *fieldWriter) byte(field string, off int, v byte) {
	if w.err != nil {
		return
	}
	_, err := PutByte(w.b, w.base+off, v)
	w.fail(field, err)
}

func (w *fieldWriter) symbol(field string, off int, v string) {
	if w.err != nil {
		return
	}
	_, err := putSymbol(w.b, w.base+off, v)
	w.fail(field, err)
}

// varString writes the tail and returns the absolute offset after it.
func (w *fieldWriter) varString(field string, off int, v string) int {
	if w.err != nil {
		return w.base + off
	}
	next, err := putVarString(w.b, w.base+off, v)
	w.fail(field, err)
	return next
}

type fieldReader struct {
	b    []byte
	base int
	msg  string
	err  error
}

func (r *fieldReader) fail(field string, err error) {
	if r.err == nil && err != nil {
		r.err = fieldErr(r.msg, field, err)
	}
}

func (r *fieldReader) int64(field string, off int) int64 {
	if r.err != nil {
		return 0
	}
	v, _, err := Int64(r.b, r.base+off)
	r.fail(field, err)
	return v
}

func (r *fieldReader) symbol(field string, off int) string {
	if r.err != nil {
		return ""
	}
	v, _, err := getSymbol(r.b, r.base+off)
	r.fail(field, err)
	return v
}

func (r *fieldReader) side(field string, off int) Side {
	if r.err != nil {
		return 0
	}
	raw, _, err := Byte(r.b, r.base+off)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	s, err := ParseSide(raw)
	r.fail(field, err)
	return s
}

func (r *fieldReader) flag(field string, off int) ActiveFlag {
	if r.err != nil {
		return 0
	}
	raw, _, err := Byte(r.b, r.base+off)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	f, err := ParseActiveFlag(raw)
	r.fail(field, err)
	return f
}

// varString reads the tail and returns the absolute offset after it.
func (r *fieldReader) varString(field string, off int) (string, int) {
	if r.err != nil {
		return "", r.base + off
	}
	v, next, err := getVarString(r.b, r.base+off)
	r.fail(field, err)
	return v, next
}
