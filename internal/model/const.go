package model

// ==== Local storage keys ====
const (
	KeyHasVisited = "hasVisited"
	KeyUserData   = "userData"
)

// ==== Vehicle Type ====
const (
	VehicleBike    = "BIKE"
	VehicleAuto    = "AUTO"
	VehicleEconomy = "ECONOMY"
	VehiclePremium = "PREMIUM"
	VehicleXL      = "XL"
)

// ==== Trip Status (по шагам прогресса) ====
const (
	TripStatusConfirmed      = "CONFIRMED"
	TripStatusDriverAssigned = "DRIVER_ASSIGNED"
	TripStatusDriverArriving = "DRIVER_ARRIVING"
	TripStatusStarted        = "STARTED"
)

// ==== Event routing keys (letsgo_topic) ====
const (
	EventSessionSignedIn  = "session.signed_in"
	EventSessionSignedOut = "session.signed_out"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingProgress  = "booking.progress"
	EventTripStarted      = "trip.started"
)

// ==== Quick actions ====
var QuickDestinations = map[string]string{
	"Home":     "Home Address",
	"Work":     "Office Complex",
	"Airport":  "International Airport",
	"Hospital": "City Hospital",
}

// QuickActionLabels: порядок кнопок на главном экране
var QuickActionLabels = []string{"Home", "Work", "Airport", "Hospital"}
