package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewUUID(t *testing.T) {
	t.Parallel()

	a, b := NewUUID(), NewUUID()
	if a == b {
		t.Fatalf("expected distinct ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("not a uuid: %v", err)
	}
}

func TestNewBookingNumber(t *testing.T) {
	t.Parallel()

	got := NewBookingNumber(time.UnixMilli(1_700_000_123_456))
	if got != "LG123456" {
		t.Fatalf("got %q", got)
	}
	if got := NewBookingNumber(time.UnixMilli(5)); got != "LG000005" {
		t.Fatalf("zero padding: %q", got)
	}
}
