package mq

import (
	"context"
	"fmt"

	"letsgo/internal/shared/logger"
)

// Binding: очередь и шаблон routing key, которым она привязана к exchange
type Binding struct {
	Queue   string
	Pattern string
}

// DefaultBindings: очереди для событий приложения пассажира
var DefaultBindings = []Binding{
	{Queue: "letsgo.session", Pattern: "session.#"},
	{Queue: "letsgo.booking", Pattern: "booking.#"},
	{Queue: "letsgo.trip", Pattern: "trip.#"},
}

// SetupTopology создает topic exchange и durable очереди с bindings
func SetupTopology(ctx context.Context, mq *RabbitMQ, exchange string, bindings []Binding, log *logger.Logger) error {
	_ = ctx
	ch := mq.Channel()
	if ch == nil {
		return ErrChannelUnavailable
	}

	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // args
	); err != nil {
		return fmt.Errorf("declare %s: %w", exchange, err)
	}

	for _, b := range bindings {
		if _, err := ch.QueueDeclare(b.Queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", b.Queue, err)
		}
		if err := ch.QueueBind(b.Queue, b.Pattern, exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", b.Queue, err)
		}
	}

	log.Info(logger.Entry{
		Action:  "topology_setup_complete",
		Message: exchange,
		Additional: map[string]any{
			"queues": len(bindings),
		},
	})
	return nil
}
