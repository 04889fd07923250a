package store

import (
	"context"
	"errors"
	"fmt"

	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/logger"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore: локальное хранилище устройства во встроенной badger-базе.
// Ключ: <deviceID>/<key>.
type BadgerStore struct {
	db  *badger.DB
	log *logger.Logger
}

// OpenBadger открывает базу в dir; inMemory держит ее без файлов (тесты)
func OpenBadger(dir string, inMemory bool, log *logger.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	log.Info(logger.Entry{
		Action:     "badger_opened",
		Message:    "local store ready",
		Additional: map[string]any{"dir": dir, "in_memory": inMemory},
	})
	return &BadgerStore{db: db, log: log}, nil
}

func badgerKey(deviceID, key string) []byte {
	return []byte(deviceID + "/" + key)
}

func (s *BadgerStore) Get(ctx context.Context, deviceID, key string) (string, error) {
	_ = ctx
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(deviceID, key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("badger get %s: %w", key, err)
	}
	return value, nil
}

func (s *BadgerStore) Set(ctx context.Context, deviceID, key, value string) error {
	_ = ctx
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(deviceID, key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(ctx context.Context, deviceID, key string) error {
	_ = ctx
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(deviceID, key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.log.Error(logger.Entry{Action: "badger_close_failed", Message: err.Error(), Error: logger.Err(err)})
		return err
	}
	return nil
}
