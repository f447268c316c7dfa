package storage

import (
	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
)

type PebbleArchive struct {
	db *pebble.DB
}

func NewPebbleArchive(path string) (*PebbleArchive, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", path)
	}
	return &PebbleArchive{db: db}, nil
}

func (s *PebbleArchive) Close() error { return s.db.Close() }

// Put persists a frame under its type, symbol, timestamp and digest.
func (s *PebbleArchive) Put(b []byte) (Record, error) {
	rec, err := prepare(b)
	if err != nil {
		return Record{}, err
	}
	if err := s.db.Set([]byte(rec.Key), rec.Frame, pebble.Sync); err != nil {
		return Record{}, errors.Wrap(err, "failed to save frame")
	}
	return rec, nil
}

// Get loads one frame by key
func (s *PebbleArchive) Get(key string) (Record, error) {
	val, closer, err := s.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return Record{}, errors.Wrap(ErrFrameNotFound, key)
	}
	if err != nil {
		return Record{}, errors.Wrap(err, "failed to get frame")
	}
	defer closer.Close()

	// val is only valid until closer.Close
	return recordOf(key, append([]byte(nil), val...))
}

// Scan walks frames in key order: by type, then symbol, then time.
func (s *PebbleArchive) Scan(q Query) ([]Record, error) {
	prefix := q.keyPrefix()
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open iterator")
	}
	defer iter.Close()

	var out []Record
	for iter.First(); iter.Valid() && !q.full(len(out)); iter.Next() {
		rec, err := recordOf(string(iter.Key()), append([]byte(nil), iter.Value()...))
		if err != nil {
			return nil, err
		}
		if q.matches(rec) {
			out = append(out, rec)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "scan frames")
	}
	return out, nil
}

var _ Archive = (*PebbleArchive)(nil)
