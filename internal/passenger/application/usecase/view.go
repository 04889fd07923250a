package usecase

import (
	"letsgo/internal/model"
	"letsgo/internal/passenger/domain"
)

// snapshot собирает копию состояния для фронтенда (под n.mu)
func (n *Navigator) snapshot() domain.Snapshot {
	st := n.state
	snap := domain.Snapshot{
		DeviceID: n.deviceID,
		Screen:   st.Current(),
		Online:   st.Online,
	}
	for _, sc := range domain.Screens {
		snap.Screens = append(snap.Screens, domain.ScreenState{Screen: sc, Active: st.IsActive(sc)})
	}

	if st.User != nil {
		u := *st.User
		snap.User = &u
	}
	if st.Selection != nil {
		sel := *st.Selection
		snap.Selection = &sel
	}
	if st.Trip != nil {
		snap.Trip = copyTrip(st.Trip)
	}
	if n.notification != nil {
		note := *n.notification
		snap.Notification = &note
	}

	snap.Onboarding = n.onboardingView()
	snap.Auth = n.authView()
	snap.Home = domain.HomeView{
		CurrentLocation: st.CurrentLocation,
		Pickup:          st.Pickup,
		Destination:     st.Destination,
		QuickActions:    append([]string(nil), model.QuickActionLabels...),
	}
	snap.Vehicle = n.vehicleView()

	snap.Booking = n.booking
	if st.Trip != nil {
		snap.Booking.Steps = append([]domain.ProgressStep(nil), st.Trip.Steps...)
	}
	if n.booking.Driver != nil {
		d := *n.booking.Driver
		snap.Booking.Driver = &d
	}
	snap.Profile = n.profile
	return snap
}

func (n *Navigator) onboardingView() domain.OnboardingView {
	v := domain.OnboardingView{
		Slide:     n.state.Slide,
		Total:     n.t.OnboardingSlides,
		NextLabel: n.deps.Messages.Text("onboarding_next", nil),
	}
	if n.state.Slide >= n.t.OnboardingSlides-1 {
		v.NextLabel = n.deps.Messages.Text("onboarding_get_started", nil)
	}
	return v
}

// authView: подписи формы входа зависят только от режима
func (n *Navigator) authView() domain.AuthView {
	msg := n.deps.Messages
	if n.state.AuthMode == domain.AuthSignUp {
		return domain.AuthView{
			Mode:         domain.AuthSignUp,
			Title:        msg.Text("auth_signup_title", nil),
			Subtitle:     msg.Text("auth_signup_subtitle", nil),
			Submit:       msg.Text("auth_signup_submit", nil),
			ToggleText:   msg.Text("auth_signup_toggle_text", nil),
			ToggleButton: msg.Text("auth_signin_submit", nil),
			ShowName:     true,
			ShowEmail:    true,
		}
	}
	return domain.AuthView{
		Mode:         domain.AuthSignIn,
		Title:        msg.Text("auth_signin_title", nil),
		Subtitle:     msg.Text("auth_signin_subtitle", nil),
		Submit:       msg.Text("auth_signin_submit", nil),
		ToggleText:   msg.Text("auth_signin_toggle_text", nil),
		ToggleButton: msg.Text("auth_signup_submit", nil),
	}
}

func (n *Navigator) vehicleView() domain.VehicleView {
	v := domain.VehicleView{
		Options:   append([]domain.VehicleOption(nil), n.options...),
		BookLabel: n.deps.Messages.Text("book_button_idle", nil),
	}
	if sel := n.state.Selection; sel != nil {
		v.Selected = sel.VehicleType
		v.BookLabel = n.deps.Messages.Text("book_button", map[string]any{"Name": sel.Name})
		v.BookEnabled = true
	}
	return v
}

// bookingView копирует поля заказа в момент открытия экрана
func bookingView(t *domain.Trip) domain.BookingView {
	if t == nil {
		return domain.BookingView{}
	}
	d := t.Driver
	return domain.BookingView{
		Number:      t.Number,
		Vehicle:     t.Selection.Name,
		Fare:        t.Selection.Price,
		Arrival:     t.Selection.ETA,
		Pickup:      t.Pickup,
		Destination: t.Destination,
		Driver:      &d,
	}
}

// profileView копирует данные пользователя в момент открытия профиля
func profileView(u *domain.User) domain.ProfileView {
	if u == nil {
		return domain.ProfileView{}
	}
	return domain.ProfileView{
		Name:   u.Name,
		Phone:  u.Phone,
		Email:  u.Email,
		Rating: u.Rating,
		Trips:  u.Trips,
	}
}

func copyTrip(t *domain.Trip) *domain.Trip {
	c := *t
	c.Steps = append([]domain.ProgressStep(nil), t.Steps...)
	return &c
}
