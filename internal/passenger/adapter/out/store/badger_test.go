package store

import (
	"context"
	"testing"

	"letsgo/internal/passenger/adapter/out/store/contracttest"
	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/shared/logger"
)

func TestContract_BadgerStore(t *testing.T) {
	contracttest.RunKeyValueStore(t, func(t *testing.T) (out.KeyValueStore, func()) {
		t.Helper()
		s, err := OpenBadger("", true, logger.NewNop())
		if err != nil {
			t.Fatalf("OpenBadger: %v", err)
		}
		return s, func() { _ = s.Close() }
	})
}

func TestBadgerStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadger(dir, false, logger.NewNop())
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	if err := s.Set(ctx, "dev-1", "hasVisited", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenBadger(dir, false, logger.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if got, err := s.Get(ctx, "dev-1", "hasVisited"); err != nil || got != "true" {
		t.Fatalf("value lost after reopen: %q, %v", got, err)
	}
}
