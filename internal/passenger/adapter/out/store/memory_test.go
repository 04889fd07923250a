package store

import (
	"testing"

	"letsgo/internal/passenger/adapter/out/store/contracttest"
	"letsgo/internal/passenger/application/ports/out"
)

func TestContract_MemoryStore(t *testing.T) {
	contracttest.RunKeyValueStore(t, func(t *testing.T) (out.KeyValueStore, func()) {
		t.Helper()
		return NewMemoryStore(), nil
	})
}
