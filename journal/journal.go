// Package journal keeps an append-only log of applied input events in a
// bbolt database so a session can be replayed after a restart.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	mandel "github.com/marben/mandel_explorer"
)

const bucketEvents = "events"

var ErrClosed = errors.New("journal: closed")

type Store struct {
	db *bolt.DB
}

// Open opens or creates the journal at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt.Open %q: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEvents))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize events bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

// Append stores ev after all previously stored events.
func (s *Store) Append(ev mandel.Event) error {
	if s.db == nil {
		return ErrClosed
	}
	v, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEvents))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), v)
	})
}

// Events returns every stored event in the order it was appended.
func (s *Store) Events() ([]mandel.Event, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	var events []mandel.Event
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketEvents)).ForEach(func(k, v []byte) error {
			var ev mandel.Event
			if err := json.Unmarshal(v, &ev); err != nil {
				return fmt.Errorf("event %d: %w", binary.BigEndian.Uint64(k), err)
			}
			events = append(events, ev)
			return nil
		})
	})
	return events, err
}

// Clear drops all stored events.
func (s *Store) Clear() error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketEvents)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketEvents))
		return err
	})
}

// Session starts a run on the journal. When resume is set it returns the
// stored events for replay and keeps appending after them. Otherwise the
// run starts from the default state, so earlier events are dropped.
func (s *Store) Session(resume bool) ([]mandel.Event, error) {
	if resume {
		return s.Events()
	}
	return nil, s.Clear()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
