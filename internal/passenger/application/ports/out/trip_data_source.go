package out

import (
	"context"

	"letsgo/internal/passenger/domain"
)

// TripDataSource: откуда берутся данные поездки. Сейчас все симулируется,
// позже сюда встанет реальный backend.
type TripDataSource interface {
	// Locate возвращает название текущего места
	Locate(ctx context.Context) (string, error)

	// VehicleOptions: варианты автомобилей до пункта назначения
	VehicleOptions(ctx context.Context, destination string) ([]domain.VehicleOption, error)

	// TripCount: сколько поездок у нового пользователя
	TripCount(ctx context.Context) int

	// AssignDriver назначает водителя на подтвержденный заказ
	AssignDriver(ctx context.Context, sel domain.BookingSelection) (domain.Driver, error)
}
