package domain

import "time"

// AppEvent: событие приложения, которое уходит в RabbitMQ
type AppEvent struct {
	ID         string         `json:"id"`
	Type       string         `json:"event_type"`
	DeviceID   string         `json:"device_id"`
	TripID     string         `json:"trip_id,omitempty"`
	Data       map[string]any `json:"event_data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
