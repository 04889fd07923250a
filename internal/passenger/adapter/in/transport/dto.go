package transport

import (
	"letsgo/internal/passenger/domain"

	"github.com/oapi-codegen/nullable"
)

// SnapshotResponse: снимок экрана для HTTP. Сессия, выбор, заказ и
// уведомление всегда присутствуют в JSON: значение или явный null.
type SnapshotResponse struct {
	DeviceID     string                                     `json:"device_id"`
	Screen       domain.Screen                              `json:"screen"`
	Screens      []domain.ScreenState                       `json:"screens"`
	Online       bool                                       `json:"online"`
	User         nullable.Nullable[domain.User]             `json:"user"`
	Selection    nullable.Nullable[domain.BookingSelection] `json:"selection"`
	Trip         nullable.Nullable[domain.Trip]             `json:"trip"`
	Notification nullable.Nullable[domain.Notification]     `json:"notification"`

	Onboarding domain.OnboardingView `json:"onboarding"`
	Auth       domain.AuthView       `json:"auth"`
	Home       domain.HomeView       `json:"home"`
	Vehicle    domain.VehicleView    `json:"vehicle"`
	Booking    domain.BookingView    `json:"booking"`
	Profile    domain.ProfileView    `json:"profile"`
}

func snapshotFromDomain(s domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		DeviceID:     s.DeviceID,
		Screen:       s.Screen,
		Screens:      s.Screens,
		Online:       s.Online,
		User:         nullableOf(s.User),
		Selection:    nullableOf(s.Selection),
		Trip:         nullableOf(s.Trip),
		Notification: nullableOf(s.Notification),
		Onboarding:   s.Onboarding,
		Auth:         s.Auth,
		Home:         s.Home,
		Vehicle:      s.Vehicle,
		Booking:      s.Booking,
		Profile:      s.Profile,
	}
}

func nullableOf[T any](p *T) nullable.Nullable[T] {
	if p == nil {
		return nullable.NewNullNullable[T]()
	}
	return nullable.NewNullableWithValue(*p)
}

// DeviceResponse: ответ на регистрацию устройства
type DeviceResponse struct {
	DeviceID string           `json:"device_id"`
	Token    string           `json:"token"`
	State    SnapshotResponse `json:"state"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type DestinationRequest struct {
	Destination string `json:"destination"`
}

type VehicleRequest struct {
	Type string `json:"type"`
}

// ErrorResponse: конверт ошибки; state есть, если экран доступен
type ErrorResponse struct {
	Error struct {
		Code      string                    `json:"code"`
		Message   string                    `json:"message"`
		RequestID nullable.Nullable[string] `json:"request_id,omitempty"`
	} `json:"error"`
	State *SnapshotResponse `json:"state,omitempty"`
}
