package storage

import (
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// InMemoryArchive keeps frames in a map; used by tests and when no data
// directory is configured.
type InMemoryArchive struct {
	mu     sync.Mutex
	frames map[string][]byte
}

func NewInMemoryArchive() *InMemoryArchive {
	return &InMemoryArchive{frames: make(map[string][]byte)}
}

func (s *InMemoryArchive) Put(b []byte) (Record, error) {
	rec, err := prepare(b)
	if err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[rec.Key] = rec.Frame
	return rec, nil
}

func (s *InMemoryArchive) Get(key string) (Record, error) {
	s.mu.Lock()
	frame, ok := s.frames[key]
	s.mu.Unlock()
	if !ok {
		return Record{}, errors.Wrap(ErrFrameNotFound, key)
	}
	return recordOf(key, frame)
}

func (s *InMemoryArchive) Scan(q Query) ([]Record, error) {
	prefix := string(q.keyPrefix())

	s.mu.Lock()
	keys := make([]string, 0, len(s.frames))
	for k := range s.frames {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	s.mu.Unlock()

	slices.Sort(keys)
	var out []Record
	for _, k := range keys {
		if q.full(len(out)) {
			break
		}
		rec, err := s.Get(k)
		if err != nil {
			return nil, err
		}
		if q.matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *InMemoryArchive) Close() error { return nil }

var _ Archive = (*InMemoryArchive)(nil)
