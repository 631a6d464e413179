package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	"mirror-notes/internal/models"
)

var notesBucket = []byte("notes")

// BoltStore keeps each note under its big-endian position in a single bucket.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(ctx context.Context) ([]models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes := make([]models.Note, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(notesBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var note models.Note
			if err := json.Unmarshal(v, &note); err != nil {
				return fmt.Errorf("note %d: %w", binary.BigEndian.Uint64(k), err)
			}
			notes = append(notes, note)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	return notes, nil
}

func (s *BoltStore) Save(ctx context.Context, notes []models.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(notesBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		bucket, err := tx.CreateBucket(notesBucket)
		if err != nil {
			return err
		}

		for i, note := range notes {
			data, err := json.Marshal(note)
			if err != nil {
				return fmt.Errorf("failed to encode note %d: %w", i, err)
			}
			// bbolt keeps a reference to the key until commit
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(i))
			if err := bucket.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
