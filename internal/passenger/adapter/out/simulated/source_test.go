package simulated

import (
	"context"
	"slices"
	"strings"
	"testing"

	"letsgo/internal/model"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/i18n"
)

func TestFormatETA(t *testing.T) {
	t.Parallel()

	msg := i18n.MustNew("en")
	cases := map[int]string{
		1:   "1 min",
		5:   "5 mins",
		59:  "59 mins",
		60:  "1h 0m",
		135: "2h 15m",
	}
	for in, want := range cases {
		if got := FormatETA(msg, in); got != want {
			t.Fatalf("FormatETA(%d)=%q want %q", in, got, want)
		}
	}
}

func TestSource_Locate(t *testing.T) {
	t.Parallel()

	s := New(1, i18n.MustNew("en"))
	for i := 0; i < 20; i++ {
		loc, err := s.Locate(context.Background())
		if err != nil {
			t.Fatalf("Locate: %v", err)
		}
		if !slices.Contains(Locations, loc) {
			t.Fatalf("unexpected location %q", loc)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Locate(ctx); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestSource_VehicleOptions(t *testing.T) {
	t.Parallel()

	s := New(7, i18n.MustNew("en"))
	opts, err := s.VehicleOptions(context.Background(), "City Hospital")
	if err != nil {
		t.Fatalf("VehicleOptions: %v", err)
	}
	if len(opts) != 5 || opts[0].Type != model.VehicleBike || opts[4].Type != model.VehicleXL {
		t.Fatalf("unexpected options %+v", opts)
	}
	for _, o := range opts {
		if o.Name == "" || o.Price == "" || !strings.Contains(o.ETA, "min") {
			t.Fatalf("incomplete option %+v", o)
		}
	}
}

func TestSource_Deterministic(t *testing.T) {
	t.Parallel()

	a, b := New(42, i18n.MustNew("en")), New(42, i18n.MustNew("en"))
	if a.TripCount(context.Background()) != b.TripCount(context.Background()) {
		t.Fatalf("same seed must give same trip count")
	}
	n := a.TripCount(context.Background())
	if n < 10 || n > 109 {
		t.Fatalf("trip count %d out of range", n)
	}
}

func TestSource_AssignDriver(t *testing.T) {
	t.Parallel()

	s := New(3, i18n.MustNew("en"))
	d, err := s.AssignDriver(context.Background(), domain.BookingSelection{VehicleType: model.VehicleEconomy, Name: "Economy"})
	if err != nil {
		t.Fatalf("AssignDriver: %v", err)
	}
	if d.Name == "" || d.Vehicle != "Maruti Swift" || d.Rating < 4.5 || d.Rating > 5 {
		t.Fatalf("unexpected driver %+v", d)
	}
}

func TestSource_FormatFare(t *testing.T) {
	t.Parallel()

	s := New(1, i18n.MustNew("en"))
	if got := s.FormatFare(120); !strings.Contains(got, "120") {
		t.Fatalf("FormatFare(120)=%q", got)
	}
}
