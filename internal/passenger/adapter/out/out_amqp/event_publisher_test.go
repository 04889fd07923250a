package out_amqp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/logger"
)

type fakeBroker struct {
	exchange, key string
	body          []byte
	err           error
}

func (b *fakeBroker) Publish(_ context.Context, exchange, routingKey string, body []byte) error {
	b.exchange, b.key, b.body = exchange, routingKey, body
	return b.err
}

func TestAppEventPublisher_Publish(t *testing.T) {
	t.Parallel()

	broker := &fakeBroker{}
	p := NewAppEventPublisher(broker, "letsgo_topic", logger.NewNop())
	ev := domain.AppEvent{
		ID:         "e1",
		Type:       "booking.confirmed",
		DeviceID:   "dev-1",
		TripID:     "trip-1",
		Data:       map[string]any{"number": "LG123456"},
		OccurredAt: time.Unix(100, 0).UTC(),
	}
	if err := p.Publish(context.Background(), "booking.confirmed", ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if broker.exchange != "letsgo_topic" || broker.key != "booking.confirmed" {
		t.Fatalf("routed to %s/%s", broker.exchange, broker.key)
	}

	var got domain.AppEvent
	if err := json.Unmarshal(broker.body, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.TripID != "trip-1" || got.Data["number"] != "LG123456" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestAppEventPublisher_WrapsBrokerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("channel closed")
	p := NewAppEventPublisher(&fakeBroker{err: boom}, "x", logger.NewNop())
	if err := p.Publish(context.Background(), "k", domain.AppEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestLogPublisher_WritesEvent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewLogPublisher(logger.NewWithWriter("test", &buf, logger.LevelDebug))
	if err := p.Publish(context.Background(), "trip.started", domain.AppEvent{DeviceID: "dev-9"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !strings.Contains(buf.String(), "trip.started") || !strings.Contains(buf.String(), "dev-9") {
		t.Fatalf("log line missing event: %s", buf.String())
	}
}
