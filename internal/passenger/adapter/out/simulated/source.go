package simulated

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"letsgo/internal/model"
	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/domain"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locations: места, которые "определяет" геолокация
var Locations = []string{
	"Downtown Plaza",
	"Central Park Area",
	"Business District",
	"Residential Zone",
	"Shopping Mall",
}

type vehicleSpec struct {
	Type   string
	Name   string
	Base   int // базовый тариф, INR
	MinETA int // минут до подачи
	Model  string
}

var catalog = []vehicleSpec{
	{model.VehicleBike, "Bike", 40, 2, "Honda Activa"},
	{model.VehicleAuto, "Auto", 70, 3, "Bajaj RE"},
	{model.VehicleEconomy, "Economy", 120, 4, "Maruti Swift"},
	{model.VehiclePremium, "Premium", 220, 6, "Toyota Camry"},
	{model.VehicleXL, "XL", 280, 8, "Toyota Innova"},
}

var drivers = []string{"Rajesh Kumar", "Amit Sharma", "Suresh Patel", "Vikram Singh", "Arjun Reddy"}

// Source выдумывает данные поездки (место, цены, ETA, водитель)
type Source struct {
	mu      sync.Mutex
	rng     *rand.Rand
	msg     out.Messages
	printer *message.Printer
}

var _ out.TripDataSource = (*Source)(nil)

// New: источник с фиксированным seed (детерминирован в тестах)
func New(seed uint64, msg out.Messages) *Source {
	return &Source{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		msg:     msg,
		printer: message.NewPrinter(language.MustParse("en-IN")),
	}
}

func (s *Source) Locate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("locate: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Locations[s.rng.IntN(len(Locations))], nil
}

func (s *Source) VehicleOptions(ctx context.Context, destination string) ([]domain.VehicleOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("vehicle options: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Длинный адрес, дальняя поездка
	factor := 1 + float64(len(strings.TrimSpace(destination))%10)/10

	options := make([]domain.VehicleOption, 0, len(catalog))
	for _, v := range catalog {
		fare := math.Round(float64(v.Base)*factor + float64(s.rng.IntN(v.Base/2+1)))
		eta := v.MinETA + s.rng.IntN(8)
		options = append(options, domain.VehicleOption{
			Type:  v.Type,
			Name:  v.Name,
			Price: s.FormatFare(fare),
			ETA:   FormatETA(s.msg, eta),
		})
	}
	return options, nil
}

func (s *Source) TripCount(ctx context.Context) int {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return 10 + s.rng.IntN(100)
}

func (s *Source) AssignDriver(ctx context.Context, sel domain.BookingSelection) (domain.Driver, error) {
	if err := ctx.Err(); err != nil {
		return domain.Driver{}, fmt.Errorf("assign driver: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	vehicle := sel.Name
	for _, v := range catalog {
		if v.Type == sel.VehicleType {
			vehicle = v.Model
		}
	}
	return domain.Driver{
		Name:    drivers[s.rng.IntN(len(drivers))],
		Vehicle: vehicle,
		Plate:   fmt.Sprintf("KA %02d %c%c %04d", 1+s.rng.IntN(50), 'A'+rune(s.rng.IntN(26)), 'A'+rune(s.rng.IntN(26)), s.rng.IntN(10000)),
		Rating:  math.Round((4.5+s.rng.Float64()*0.5)*10) / 10,
	}, nil
}

// FormatFare: сумма в рупиях в формате en-IN
func (s *Source) FormatFare(amount float64) string {
	return s.printer.Sprint(currency.Symbol(currency.INR.Amount(amount)))
}

// FormatETA: меньше часа "N mins", иначе "Hh Mm"
func FormatETA(msg out.Messages, minutes int) string {
	if minutes < 60 {
		return msg.Plural("eta_minutes", minutes, nil)
	}
	return msg.Text("eta_hours", map[string]any{
		"Hours":   minutes / 60,
		"Minutes": minutes % 60,
	})
}
