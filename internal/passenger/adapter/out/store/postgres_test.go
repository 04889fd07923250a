package store

import (
	"context"
	"os"
	"testing"

	"letsgo/internal/passenger/adapter/out/store/contracttest"
	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/shared/db"
	"letsgo/internal/shared/logger"
)

func TestContract_PgStore(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	log := logger.NewNop()
	pool, err := db.NewPoolFromDSN(ctx, dsn, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close(pool, log) })

	if err := db.Migrate(ctx, pool, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	contracttest.RunKeyValueStore(t, func(t *testing.T) (out.KeyValueStore, func()) {
		t.Helper()
		return NewPgStore(pool), nil
	})
}
