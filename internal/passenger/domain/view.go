package domain

// Snapshot: все, что нужно фронтенду, чтобы отрисовать текущий экран
type Snapshot struct {
	DeviceID     string            `json:"device_id"`
	Screen       Screen            `json:"screen"`
	Screens      []ScreenState     `json:"screens"`
	User         *User             `json:"user,omitempty"`
	Selection    *BookingSelection `json:"selection,omitempty"`
	Trip         *Trip             `json:"trip,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
	Online       bool              `json:"online"`

	Onboarding OnboardingView `json:"onboarding"`
	Auth       AuthView       `json:"auth"`
	Home       HomeView       `json:"home"`
	Vehicle    VehicleView    `json:"vehicle"`
	Booking    BookingView    `json:"booking"`
	Profile    ProfileView    `json:"profile"`
}

type ScreenState struct {
	Screen Screen `json:"screen"`
	Active bool   `json:"active"`
}

type OnboardingView struct {
	Slide     int    `json:"slide"`
	Total     int    `json:"total"`
	NextLabel string `json:"next_label"`
}

type AuthView struct {
	Mode         AuthMode `json:"mode"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Submit       string   `json:"submit"`
	ToggleText   string   `json:"toggle_text"`
	ToggleButton string   `json:"toggle_button"`
	ShowName     bool     `json:"show_name"`
	ShowEmail    bool     `json:"show_email"`
}

type HomeView struct {
	CurrentLocation string   `json:"current_location"`
	Pickup          string   `json:"pickup"`
	Destination     string   `json:"destination"`
	QuickActions    []string `json:"quick_actions"`
}

type VehicleView struct {
	Options     []VehicleOption `json:"options"`
	Selected    string          `json:"selected,omitempty"`
	BookLabel   string          `json:"book_label"`
	BookEnabled bool            `json:"book_enabled"`
}

// BookingView: поля экрана заказа, копируются при активации экрана
type BookingView struct {
	Number      string         `json:"number,omitempty"`
	Vehicle     string         `json:"vehicle,omitempty"`
	Fare        string         `json:"fare,omitempty"`
	Arrival     string         `json:"arrival,omitempty"`
	Pickup      string         `json:"pickup,omitempty"`
	Destination string         `json:"destination,omitempty"`
	Driver      *Driver        `json:"driver,omitempty"`
	Steps       []ProgressStep `json:"steps,omitempty"`
}

// ProfileView: поля профиля, копируются при активации экрана
type ProfileView struct {
	Name   string  `json:"name,omitempty"`
	Phone  string  `json:"phone,omitempty"`
	Email  string  `json:"email,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Trips  int     `json:"trips,omitempty"`
}
