package out_amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/logger"
)

// Broker: то, что нужно от соединения с RabbitMQ (*mq.RabbitMQ)
type Broker interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte) error
}

// AppEventPublisher публикует события приложения в topic exchange
type AppEventPublisher struct {
	mq       Broker
	exchange string
	log      *logger.Logger
}

var _ out.EventPublisher = (*AppEventPublisher)(nil)

func NewAppEventPublisher(mq Broker, exchange string, log *logger.Logger) *AppEventPublisher {
	return &AppEventPublisher{mq: mq, exchange: exchange, log: log}
}

func (p *AppEventPublisher) Publish(ctx context.Context, routingKey string, event domain.AppEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.mq.Publish(ctx, p.exchange, routingKey, payload); err != nil {
		return fmt.Errorf("publish to rabbitmq: %w", err)
	}

	p.log.Debug(logger.Entry{
		Action:   "app_event_published",
		Message:  event.Type,
		DeviceID: event.DeviceID,
		TripID:   event.TripID,
		Additional: map[string]any{
			"exchange":    p.exchange,
			"routing_key": routingKey,
		},
	})
	return nil
}

// LogPublisher: когда RabbitMQ выключен: события только пишутся в лог
type LogPublisher struct {
	log *logger.Logger
}

var _ out.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, routingKey string, event domain.AppEvent) error {
	p.log.Info(logger.Entry{
		Action:     "app_event",
		Message:    routingKey,
		DeviceID:   event.DeviceID,
		TripID:     event.TripID,
		Additional: maps.Clone(event.Data),
	})
	return nil
}
