package domain

import "time"

// VehicleOption: вариант на экране выбора автомобиля
type VehicleOption struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Price string `json:"price"`
	ETA   string `json:"eta"`
}

// BookingSelection: выбранный, но еще не подтвержденный автомобиль
type BookingSelection struct {
	VehicleType string `json:"type"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	ETA         string `json:"eta"`
}

// SelectionFrom копирует отображаемые поля варианта
func SelectionFrom(o VehicleOption) BookingSelection {
	return BookingSelection{
		VehicleType: o.Type,
		Name:        o.Name,
		Price:       o.Price,
		ETA:         o.ETA,
	}
}

// Driver: назначенный (выдуманный) водитель
type Driver struct {
	Name    string  `json:"name"`
	Vehicle string  `json:"vehicle"`
	Plate   string  `json:"plate"`
	Rating  float64 `json:"rating"`
}

// ProgressStep: одна строка таймлайна на экране заказа
type ProgressStep struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Trip: подтвержденный заказ
type Trip struct {
	ID          string           `json:"id"`
	Number      string           `json:"number"`
	Selection   BookingSelection `json:"selection"`
	Driver      Driver           `json:"driver"`
	Pickup      string           `json:"pickup"`
	Destination string           `json:"destination"`
	Status      string           `json:"status"`
	Steps       []ProgressStep   `json:"steps"`
	ConfirmedAt time.Time        `json:"confirmed_at"`
}

// ActiveSteps: сколько шагов уже отмечено
func (t *Trip) ActiveSteps() int {
	n := 0
	for _, s := range t.Steps {
		if s.Active {
			n++
		}
	}
	return n
}

// Finished: все шаги отмечены
func (t *Trip) Finished() bool {
	return t.ActiveSteps() == len(t.Steps)
}
