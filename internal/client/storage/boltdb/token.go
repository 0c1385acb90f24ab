package boltdb

import (
	"context"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/procure/internal/client/storage"
)

// Compile-time check that Storage implements ClientStorage
var _ storage.ClientStorage = (*Storage)(nil)

// Set stores a value under the given key
func (s *Storage) Set(ctx context.Context, key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save value: %w", err)
		}

		return nil
	})

	return translateClosed(err)
}

// Get retrieves a stored value
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrTokenNotFound
		}

		value = string(data)
		return nil
	})

	if err != nil {
		return "", translateClosed(err)
	}

	return value, nil
}

// Delete removes a stored value; deleting an absent key is not an error
func (s *Storage) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete value: %w", err)
		}

		return nil
	})

	return translateClosed(err)
}

// translateClosed maps the bbolt closed-database error onto the storage
// sentinel so callers don't depend on the driver
func translateClosed(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return storage.ErrStorageClosed
	}
	return err
}
