package out

import (
	"context"

	"letsgo/internal/passenger/domain"
)

// Presenter доставляет экран и уведомления на устройство.
// Вызывается под блокировкой навигатора: реализация не должна блокироваться надолго
// и не должна вызывать навигатор обратно.
type Presenter interface {
	// Render отправляет снимок текущего экрана
	Render(ctx context.Context, deviceID string, snap domain.Snapshot) error

	// Notify показывает уведомление (заменяет предыдущее)
	Notify(ctx context.Context, deviceID string, n domain.Notification) error

	// Dismiss скрывает уведомление по истечении времени показа
	Dismiss(ctx context.Context, deviceID, notificationID string) error
}
