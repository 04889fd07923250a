package in

import (
	"context"

	"letsgo/internal/passenger/domain"
)

// NavigatorUseCase: все действия пользователя на одном устройстве.
// Каждый метод возвращает снимок экрана после действия. Ошибки валидации
// дополнительно показываются уведомлением.
type NavigatorUseCase interface {
	Boot(ctx context.Context) (domain.Snapshot, error)

	NextSlide(ctx context.Context) (domain.Snapshot, error)
	SkipOnboarding(ctx context.Context) (domain.Snapshot, error)

	ToggleAuthMode(ctx context.Context) (domain.Snapshot, error)
	SubmitAuth(ctx context.Context, form domain.AuthForm) (domain.Snapshot, error)
	Logout(ctx context.Context) (domain.Snapshot, error)

	ShowScreen(ctx context.Context, name string) (domain.Snapshot, error)
	Nav(ctx context.Context, item string) (domain.Snapshot, error)
	Back(ctx context.Context) (domain.Snapshot, error)

	SetDestination(ctx context.Context, text string) (domain.Snapshot, error)
	QuickAction(ctx context.Context, label string) (domain.Snapshot, error)
	FindRides(ctx context.Context) (domain.Snapshot, error)
	SelectVehicle(ctx context.Context, vehicleType string) (domain.Snapshot, error)
	ConfirmBooking(ctx context.Context) (domain.Snapshot, error)

	Signal(ctx context.Context, sig domain.Signal) (domain.Snapshot, error)
	RefreshLocation(ctx context.Context) (domain.Snapshot, error)

	Snapshot() domain.Snapshot
}

// DevicesUseCase: реестр навигаторов по устройствам
type DevicesUseCase interface {
	// Open возвращает навигатор устройства; новый навигатор сразу загружается (Boot)
	Open(ctx context.Context, deviceID string) (NavigatorUseCase, error)

	// Close останавливает таймеры устройства и забывает его
	Close(deviceID string)
}
