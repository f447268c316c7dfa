package storage

import (
	"github.com/pkg/errors"

	"github.com/uhyunpark/sbewire/pkg/sbe"
)

// ErrFrameNotFound is returned by Get for an unknown key.
var ErrFrameNotFound = errors.New("frame not found")

// Record is one archived frame.
type Record struct {
	Key    string   `json:"key"`
	Digest string   `json:"digest"`
	Meta   sbe.Meta `json:"meta"`
	Frame  []byte   `json:"-"`
}

// Query selects archived frames. Zero values match everything; Limit <= 0
// means no limit. Symbol matches the decoded symbol exactly, with or
// without Type.
type Query struct {
	Type   string
	Symbol string
	Limit  int
}

// keyPrefix narrows the key range to scan. Symbols may contain ':', so the
// prefix alone can over-match and every record still goes through matches.
func (q Query) keyPrefix() []byte {
	if q.Type == "" {
		return framePrefix("", "")
	}
	return framePrefix(q.Type, q.Symbol)
}

func (q Query) matches(rec Record) bool {
	return (q.Type == "" || rec.Meta.Type == q.Type) &&
		(q.Symbol == "" || rec.Meta.Symbol == q.Symbol)
}

func (q Query) full(n int) bool {
	return q.Limit > 0 && n >= q.Limit
}

// Archive stores validated frames in key order.
type Archive interface {
	// Put decodes the frame at the front of b and stores exactly the bytes
	// the decoder consumed. Trailing bytes are not stored.
	Put(b []byte) (Record, error)
	Get(key string) (Record, error)
	Scan(q Query) ([]Record, error)
	Close() error
}

// prepare validates b as a frame and builds its record.
func prepare(b []byte) (Record, error) {
	m, n, err := sbe.DecodeNext(b)
	if err != nil {
		return Record{}, errors.Wrap(err, "archive frame")
	}
	frame := append([]byte(nil), b[:n]...)
	meta := m.Meta()
	digest := Digest(frame)
	return Record{
		Key:    string(frameKey(meta.Type, meta.Symbol, meta.Timestamp, digest)),
		Digest: digest,
		Meta:   meta,
		Frame:  frame,
	}, nil
}

// recordOf rebuilds a record from a stored frame.
func recordOf(key string, frame []byte) (Record, error) {
	m, _, err := sbe.DecodeNext(frame)
	if err != nil {
		return Record{}, errors.Wrapf(err, "stored frame %s", key)
	}
	return Record{
		Key:    key,
		Digest: Digest(frame),
		Meta:   m.Meta(),
		Frame:  frame,
	}, nil
}
