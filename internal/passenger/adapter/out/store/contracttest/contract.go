package contracttest

import (
	"context"
	"errors"
	"testing"

	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/domain"

	"github.com/google/uuid"
)

type CleanupFunc = func()

type StoreFactory func(t *testing.T) (out.KeyValueStore, CleanupFunc)

// RunKeyValueStore: общий контракт для всех реализаций локального хранилища
func RunKeyValueStore(t *testing.T, newStore StoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	device := "dev-" + uuid.NewString()
	other := "dev-" + uuid.NewString()

	if _, err := store.Get(ctx, device, "userData"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get missing: expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, device, "userData", `{"phone":"1"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, device, "userData")
	if err != nil || got != `{"phone":"1"}` {
		t.Fatalf("Get after Set: %q, %v", got, err)
	}

	// Overwrite semantics.
	if err := store.Set(ctx, device, "userData", `{"phone":"2"}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if got, _ := store.Get(ctx, device, "userData"); got != `{"phone":"2"}` {
		t.Fatalf("expected overwritten value, got %q", got)
	}

	// Keys are isolated per device.
	if _, err := store.Get(ctx, other, "userData"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("other device must not see value, got %v", err)
	}
	if err := store.Set(ctx, device, "hasVisited", "true"); err != nil {
		t.Fatalf("Set hasVisited: %v", err)
	}

	if err := store.Delete(ctx, device, "userData"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, device, "userData"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get after Delete: expected ErrNotFound, got %v", err)
	}
	if got, err := store.Get(ctx, device, "hasVisited"); err != nil || got != "true" {
		t.Fatalf("Delete must keep other keys: %q, %v", got, err)
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, other, "userData"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}
