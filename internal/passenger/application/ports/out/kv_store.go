package out

import "context"

// KeyValueStore: локальное хранилище устройства (аналог localStorage).
// Ключи изолированы по deviceID. Get возвращает domain.ErrNotFound, если ключа нет.
type KeyValueStore interface {
	Get(ctx context.Context, deviceID, key string) (string, error)
	Set(ctx context.Context, deviceID, key, value string) error
	Delete(ctx context.Context, deviceID, key string) error
}
