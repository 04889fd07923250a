package store

import (
	"context"
	"errors"
	"fmt"

	"letsgo/internal/passenger/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore: локальное хранилище устройств в таблице device_state
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Get(ctx context.Context, deviceID, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx, `
		SELECT value FROM device_state
		WHERE device_id = $1 AND key = $2
	`, deviceID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select device_state: %w", err)
	}
	return value, nil
}

func (s *PgStore) Set(ctx context.Context, deviceID, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO device_state (device_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (device_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, deviceID, key, value)
	if err != nil {
		return fmt.Errorf("upsert device_state: %w", err)
	}
	return nil
}

func (s *PgStore) Delete(ctx context.Context, deviceID, key string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM device_state WHERE device_id = $1 AND key = $2
	`, deviceID, key)
	if err != nil {
		return fmt.Errorf("delete device_state: %w", err)
	}
	return nil
}
