package out

import (
	"context"

	"letsgo/internal/passenger/domain"
)

// EventPublisher: интерфейс для публикации событий приложения.
// Ошибка публикации никогда не отменяет переход между экранами.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event domain.AppEvent) error
}
