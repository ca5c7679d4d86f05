package cache

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var catalogBucket = []byte("catalog")

// Store is a persistent key to JSON-value mapping backed by bbolt. Corrupt
// or missing values are reported as misses, never as errors, so a damaged
// cache file degrades to an empty cache instead of breaking reads.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(catalogBucket)
		return createErr
	})
	if err != nil {
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put serializes v as JSON and stores it under key.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(catalogBucket).Put([]byte(key), data)
	})
}

// Get reads the value stored under key into out. It returns false when the
// key is absent or the stored bytes do not decode; both count as a cache
// miss. The error return is reserved for database-level failures.
func (s *Store) Get(key string, out any) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(catalogBucket).Get([]byte(key))
		if data == nil {
			return nil
		}
		if unmarshalErr := json.Unmarshal(data, out); unmarshalErr != nil {
			// Corrupt entry: treat as a miss.
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(catalogBucket).Delete([]byte(key))
	})
}
