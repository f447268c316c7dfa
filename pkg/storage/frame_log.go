package storage

import (
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/uhyunpark/sbewire/pkg/sbe"
)

// FrameLog appends raw frames back to back. Frames are self-delimiting, so
// the file needs no separators.
type FrameLog interface {
	Append(frame []byte) error
	Close() error
}

type NopLog struct{}

func NewNopLog() *NopLog                 { return &NopLog{} }
func (l *NopLog) Append(_ []byte) error { return nil }
func (l *NopLog) Close() error          { return nil }

type FileLog struct {
	mu sync.Mutex
	f  *os.File
}

func NewFileLog(path string) (*FileLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open frame log %s", path)
	}
	return &FileLog{f: f}, nil
}

func (l *FileLog) Append(frame []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.Write(frame); err != nil {
		return errors.Wrap(err, "append frame")
	}
	return nil
}

func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// Replay walks every frame in a log file in write order. It stops at the
// first frame that does not decode and reports the byte offset.
func Replay(path string, fn func(off int, m sbe.Message, frame []byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read frame log %s", path)
	}
	for off := 0; off < len(data); {
		m, n, err := sbe.DecodeNext(data[off:])
		if err != nil {
			return errors.Wrapf(err, "frame at offset %d", off)
		}
		if err := fn(off, m, data[off:off+n]); err != nil {
			return err
		}
		off += n
	}
	return nil
}

var _ FrameLog = (*NopLog)(nil)
var _ FrameLog = (*FileLog)(nil)
