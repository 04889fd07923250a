package domain

// AppState: все состояние одного устройства. Им владеет навигатор,
// снаружи доступен только снимок (Snapshot).
type AppState struct {
	active map[Screen]bool

	User      *User
	Selection *BookingSelection
	Trip      *Trip

	Slide    int
	AuthMode AuthMode

	CurrentLocation string
	Pickup          string
	Destination     string

	Online bool
}

func NewAppState() *AppState {
	s := &AppState{
		active:   make(map[Screen]bool, len(Screens)),
		AuthMode: AuthSignIn,
		Online:   true,
	}
	s.Activate(ScreenLoading)
	return s
}

// Activate снимает активность со всех экранов и включает ровно один
func (s *AppState) Activate(screen Screen) {
	for _, sc := range Screens {
		s.active[sc] = false
	}
	s.active[screen] = true
}

// Current: активный экран
func (s *AppState) Current() Screen {
	for _, sc := range Screens {
		if s.active[sc] {
			return sc
		}
	}
	return ScreenLoading
}

// ActiveScreens: все экраны, помеченные активными (в норме ровно один)
func (s *AppState) ActiveScreens() []Screen {
	var out []Screen
	for _, sc := range Screens {
		if s.active[sc] {
			out = append(out, sc)
		}
	}
	return out
}

// IsActive проверяет конкретный экран
func (s *AppState) IsActive(screen Screen) bool {
	return s.active[screen]
}
