package sbe

import "fmt"

// MessageHeader precedes every message body.
type MessageHeader struct {
	BlockLength uint16
	TemplateID  uint16
	SchemaID    uint16
	Version     uint16
}

// EncodeHeader writes the 8-byte header at off.
func EncodeHeader(b []byte, off int, h MessageHeader) (int, error) {
	if err := checkSpan(b, off, HeaderLength); err != nil {
		return off, fieldErr("header", "", err)
	}
	off, _ = PutUint16(b, off, h.BlockLength)
	off, _ = PutUint16(b, off, h.TemplateID)
	off, _ = PutUint16(b, off, h.SchemaID)
	off, _ = PutUint16(b, off, h.Version)
	return off, nil
}

// DecodeHeader reads the 8-byte header at off. The whole span is checked
// before anything is read, so a short buffer never yields a partial header.
func DecodeHeader(b []byte, off int) (MessageHeader, int, error) {
	if err := checkSpan(b, off, HeaderLength); err != nil {
		return MessageHeader{}, off, fieldErr("header", "", err)
	}
	var h MessageHeader
	h.BlockLength, off, _ = Uint16(b, off)
	h.TemplateID, off, _ = Uint16(b, off)
	h.SchemaID, off, _ = Uint16(b, off)
	h.Version, off, _ = Uint16(b, off)
	return h, off, nil
}

// check rejects headers this codec cannot decode: a foreign schema or
// version, or a block shorter than the fixed block of the template.
func (h MessageHeader) check(minBlock uint16) error {
	if h.SchemaID != SchemaID || h.Version != SchemaVersion {
		return fieldErr("header", "", fmt.Errorf("%w: schema %d version %d", ErrUnknownSchema, h.SchemaID, h.Version))
	}
	if h.BlockLength < minBlock {
		return fieldErr("header", "blockLength",
			fmt.Errorf("%w: block length %d for template %d, want at least %d", ErrUnknownSchema, h.BlockLength, h.TemplateID, minBlock))
	}
	return nil
}

func headerFor(m Message) MessageHeader {
	return MessageHeader{
		BlockLength: m.BlockLength(),
		TemplateID:  m.TemplateID(),
		SchemaID:    SchemaID,
		Version:     SchemaVersion,
	}
}
