package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"letsgo/internal/model"
	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/config"
	"letsgo/internal/shared/logger"
	"letsgo/internal/shared/utils"
)

// Timings: задержки экранного потока
type Timings struct {
	LoadingDelay      time.Duration
	AuthDelay         time.Duration
	BookingDelay      time.Duration
	ProgressInterval  time.Duration
	NotificationTTL   time.Duration
	ProgressSteps     int
	ProgressStartStep int
	OnboardingSlides  int
}

func TimingsFromConfig(c config.AppConfig) Timings {
	return Timings{
		LoadingDelay:      c.LoadingDelay.Duration,
		AuthDelay:         c.AuthDelay.Duration,
		BookingDelay:      c.BookingDelay.Duration,
		ProgressInterval:  c.ProgressInterval.Duration,
		NotificationTTL:   c.NotificationTTL.Duration,
		ProgressSteps:     c.ProgressSteps,
		ProgressStartStep: c.ProgressStartStep,
		OnboardingSlides:  c.OnboardingSlides,
	}
}

// Deps: исходящие порты навигатора
type Deps struct {
	Store     out.KeyValueStore
	Presenter out.Presenter
	Scheduler out.Scheduler
	Data      out.TripDataSource
	Publisher out.EventPublisher
	Messages  out.Messages
	Log       *logger.Logger
}

// Navigator: экранный автомат одного устройства.
// Все действия и колбэки таймеров выполняются под одной блокировкой.
type Navigator struct {
	deviceID string
	base     context.Context
	deps     Deps
	t        Timings
	log      *logger.ContextLogger

	mu           sync.Mutex
	state        *domain.AppState
	options      []domain.VehicleOption
	booking      domain.BookingView
	profile      domain.ProfileView
	notification *domain.Notification
	toast        *guard
	screenTasks  []*guard
	progress     *ProgressSimulator
}

// guard: задача таймера. Отмененная задача свой колбэк не выполняет.
type guard struct {
	task      out.Task
	cancelled bool
}

func (g *guard) cancel() {
	if g.cancelled {
		return
	}
	g.cancelled = true
	if g.task != nil {
		g.task.Stop()
	}
}

// NewNavigator создает навигатор на экране загрузки. ctx живет столько же, сколько устройство.
func NewNavigator(ctx context.Context, deviceID string, deps Deps, t Timings) *Navigator {
	return &Navigator{
		deviceID: deviceID,
		base:     ctx,
		deps:     deps,
		t:        t,
		log:      deps.Log.WithDevice("", deviceID),
		state:    domain.NewAppState(),
	}
}

func (n *Navigator) DeviceID() string { return n.deviceID }

// ============ Actions ============

// Boot стартует приложение: экран загрузки, через LoadingDelay маршрутизация
// по сохраненной сессии.
func (n *Navigator) Boot(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "boot", func(ctx context.Context) error {
		n.cancelScreenTasks()
		n.state = domain.NewAppState()
		n.options = nil
		n.booking = domain.BookingView{}
		n.profile = domain.ProfileView{}

		n.refreshLocation(ctx)
		n.later(n.t.LoadingDelay, "route", n.route)
		return nil
	})
}

func (n *Navigator) NextSlide(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "next_slide", func(ctx context.Context) error {
		if err := n.require(domain.ScreenOnboarding); err != nil {
			return err
		}
		if n.state.Slide < n.t.OnboardingSlides-1 {
			n.state.Slide++
			return nil
		}
		return n.finishOnboarding(ctx)
	})
}

func (n *Navigator) SkipOnboarding(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "skip_onboarding", func(ctx context.Context) error {
		if err := n.require(domain.ScreenOnboarding); err != nil {
			return err
		}
		return n.finishOnboarding(ctx)
	})
}

func (n *Navigator) ToggleAuthMode(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "toggle_auth", func(ctx context.Context) error {
		if err := n.require(domain.ScreenAuth); err != nil {
			return err
		}
		n.state.AuthMode = n.state.AuthMode.Toggle()
		return nil
	})
}

// SubmitAuth создает сессию из формы. Если проверка не прошла: уведомление и ошибка,
// экран не меняется.
func (n *Navigator) SubmitAuth(ctx context.Context, form domain.AuthForm) (domain.Snapshot, error) {
	return n.do(ctx, "submit_auth", func(ctx context.Context) error {
		if err := n.require(domain.ScreenAuth); err != nil {
			return err
		}

		mode := n.state.AuthMode
		form = form.Normalize()
		if err := form.Validate(mode); err != nil {
			n.notifyValidation(ctx, err)
			return err
		}

		user := domain.User{
			Phone:  form.Phone,
			Name:   form.Name,
			Email:  form.Email,
			Rating: domain.DefaultRating,
			Trips:  n.deps.Data.TripCount(ctx),
		}
		if user.Name == "" {
			user.Name = n.deps.Messages.Text("auth_default_name", nil)
		}

		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := n.deps.Store.Set(ctx, n.deviceID, model.KeyUserData, string(raw)); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
		n.state.User = &user

		if mode == domain.AuthSignUp {
			n.notify(ctx, domain.SeveritySuccess, "auth_signed_up", nil)
		} else {
			n.notify(ctx, domain.SeveritySuccess, "auth_signed_in", nil)
		}
		n.publish(ctx, model.EventSessionSignedIn, "", map[string]any{
			"mode":  string(mode),
			"phone": user.Phone,
		})

		n.log.Info(logger.Entry{
			Action:     "session_created",
			Message:    "signed in",
			Additional: map[string]any{"mode": string(mode)},
		})

		n.later(n.t.AuthDelay, "auth_to_home", func(ctx context.Context) {
			if err := n.showScreen(ctx, domain.ScreenHome); err != nil {
				n.log.Warn(logger.Entry{Action: "auth_to_home_failed", Message: err.Error(), Error: logger.Err(err)})
			}
		})
		return nil
	})
}

// Logout стирает сессию в памяти и в хранилище и возвращает на экран входа
func (n *Navigator) Logout(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "logout", func(ctx context.Context) error {
		if err := n.deps.Store.Delete(ctx, n.deviceID, model.KeyUserData); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}

		n.cancelScreenTasks()
		n.state.User = nil
		n.state.Selection = nil
		n.state.Trip = nil
		if err := n.showScreen(ctx, domain.ScreenAuth); err != nil {
			return err
		}

		n.notify(ctx, domain.SeveritySuccess, "auth_signed_out", nil)
		n.publish(ctx, model.EventSessionSignedOut, "", nil)
		return nil
	})
}

// ShowScreen: переход на экран по имени. Неизвестное имя не меняет состояние,
// пользователь видит уведомление об ошибке.
func (n *Navigator) ShowScreen(ctx context.Context, name string) (domain.Snapshot, error) {
	return n.do(ctx, "show_screen", func(ctx context.Context) error {
		screen, err := domain.ParseScreen(name)
		if err == nil {
			err = n.showScreen(ctx, screen)
		}
		if err != nil {
			n.notifyValidation(ctx, err)
		}
		return err
	})
}

// Nav: нижняя панель навигации
func (n *Navigator) Nav(ctx context.Context, item string) (domain.Snapshot, error) {
	return n.do(ctx, "nav", func(ctx context.Context) error {
		return n.showScreen(ctx, domain.NavTarget(item))
	})
}

// Back: переход на фиксированный родительский экран
func (n *Navigator) Back(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "back", func(ctx context.Context) error {
		cur := n.state.Current()
		parent, ok := cur.Parent()
		if !ok {
			return fmt.Errorf("%w: no back target from %s", domain.ErrInvalidState, cur)
		}
		return n.showScreen(ctx, parent)
	})
}

func (n *Navigator) SetDestination(ctx context.Context, text string) (domain.Snapshot, error) {
	return n.do(ctx, "set_destination", func(ctx context.Context) error {
		if err := n.require(domain.ScreenHome); err != nil {
			return err
		}
		n.state.Destination = strings.TrimSpace(text)
		return nil
	})
}

// QuickAction подставляет адрес быстрого действия в поле назначения.
// Метка без готового адреса становится назначением как есть.
func (n *Navigator) QuickAction(ctx context.Context, label string) (domain.Snapshot, error) {
	return n.do(ctx, "quick_action", func(ctx context.Context) error {
		if err := n.require(domain.ScreenHome); err != nil {
			return err
		}
		label = strings.TrimSpace(label)
		if label == "" {
			n.notifyValidation(ctx, domain.ErrDestinationRequired)
			return domain.ErrDestinationRequired
		}
		dest, ok := model.QuickDestinations[label]
		if !ok {
			dest = label
		}
		n.state.Destination = dest
		n.notify(ctx, domain.SeveritySuccess, "destination_set", map[string]any{"Label": label})
		return nil
	})
}

func (n *Navigator) FindRides(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "find_rides", func(ctx context.Context) error {
		if err := n.require(domain.ScreenHome); err != nil {
			return err
		}
		if n.state.Destination == "" {
			n.notifyValidation(ctx, domain.ErrDestinationRequired)
			return domain.ErrDestinationRequired
		}
		return n.showScreen(ctx, domain.ScreenVehicle)
	})
}

func (n *Navigator) SelectVehicle(ctx context.Context, vehicleType string) (domain.Snapshot, error) {
	return n.do(ctx, "select_vehicle", func(ctx context.Context) error {
		if err := n.require(domain.ScreenVehicle); err != nil {
			return err
		}
		for _, o := range n.options {
			if strings.EqualFold(o.Type, strings.TrimSpace(vehicleType)) {
				sel := domain.SelectionFrom(o)
				n.state.Selection = &sel
				return nil
			}
		}
		n.notifyValidation(ctx, domain.ErrUnknownVehicle)
		return fmt.Errorf("%w: %q", domain.ErrUnknownVehicle, vehicleType)
	})
}

// ConfirmBooking превращает выбор в поездку. Экран заказа открывается через BookingDelay.
func (n *Navigator) ConfirmBooking(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "confirm_booking", func(ctx context.Context) error {
		if err := n.require(domain.ScreenVehicle); err != nil {
			return err
		}
		if n.state.Trip != nil {
			return fmt.Errorf("%w: booking already in progress", domain.ErrInvalidState)
		}
		sel := n.state.Selection
		if sel == nil {
			n.notifyValidation(ctx, domain.ErrNoSelection)
			return domain.ErrNoSelection
		}

		driver, err := n.deps.Data.AssignDriver(ctx, *sel)
		if err != nil {
			return fmt.Errorf("assign driver: %w", err)
		}

		now := n.deps.Scheduler.Now()
		trip := &domain.Trip{
			ID:          utils.NewUUID(),
			Number:      utils.NewBookingNumber(now),
			Selection:   *sel,
			Driver:      driver,
			Pickup:      n.state.Pickup,
			Destination: n.state.Destination,
			Steps:       n.buildSteps(),
			ConfirmedAt: now,
		}
		trip.Status = tripStatus(trip.ActiveSteps(), len(trip.Steps))
		n.state.Trip = trip
		n.state.Selection = nil

		n.notify(ctx, domain.SeverityInfo, "booking_in_progress", nil)
		n.publish(ctx, model.EventBookingConfirmed, trip.ID, map[string]any{
			"number":       trip.Number,
			"vehicle_type": sel.VehicleType,
			"fare":         sel.Price,
			"pickup":       trip.Pickup,
			"destination":  trip.Destination,
		})

		n.log.Info(logger.Entry{
			Action:  "booking_confirmed",
			Message: trip.Number,
			TripID:  trip.ID,
			Additional: map[string]any{
				"vehicle_type": sel.VehicleType,
				"driver":       driver.Name,
			},
		})

		n.later(n.t.BookingDelay, "show_booking", func(ctx context.Context) {
			if err := n.showScreen(ctx, domain.ScreenBooking); err != nil {
				n.log.Warn(logger.Entry{Action: "show_booking_failed", Message: err.Error(), Error: logger.Err(err)})
			}
		})
		return nil
	})
}

// Signal обрабатывает события окружения (сеть, видимость, предложение установки)
func (n *Navigator) Signal(ctx context.Context, sig domain.Signal) (domain.Snapshot, error) {
	return n.do(ctx, "signal", func(ctx context.Context) error {
		switch sig {
		case domain.SignalOnline:
			n.state.Online = true
			n.notify(ctx, domain.SeveritySuccess, "env_online", nil)
		case domain.SignalOffline:
			n.state.Online = false
			n.notify(ctx, domain.SeverityWarning, "env_offline", nil)
		case domain.SignalInstallPrompt:
			n.notify(ctx, domain.SeverityInfo, "env_install_prompt", nil)
		case domain.SignalVisible:
			if n.state.User != nil {
				n.refreshLocation(ctx)
			}
		case domain.SignalHidden:
		default:
			return fmt.Errorf("%w: unknown signal %q", domain.ErrValidation, sig)
		}
		return nil
	})
}

func (n *Navigator) RefreshLocation(ctx context.Context) (domain.Snapshot, error) {
	return n.do(ctx, "refresh_location", func(ctx context.Context) error {
		n.refreshLocation(ctx)
		return nil
	})
}

// Snapshot: текущее состояние без побочных эффектов
func (n *Navigator) Snapshot() domain.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshot()
}

// Close останавливает все таймеры устройства
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelScreenTasks()
	if n.toast != nil {
		n.toast.cancel()
		n.toast = nil
	}
}

// ============ Internals (под n.mu) ============

func (n *Navigator) do(ctx context.Context, action string, fn func(ctx context.Context) error) (domain.Snapshot, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	err := fn(ctx)
	if err != nil {
		e := logger.Entry{
			Action:     action + "_failed",
			Message:    err.Error(),
			Error:      logger.Err(err),
			Additional: map[string]any{"screen": string(n.state.Current())},
		}
		if isUserError(err) {
			n.log.Warn(e)
		} else {
			n.log.Error(e)
		}
	}
	return n.render(ctx), err
}

func isUserError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrUnknownScreen)
}

func (n *Navigator) require(s domain.Screen) error {
	if cur := n.state.Current(); cur != s {
		return fmt.Errorf("%w: on %s, need %s", domain.ErrInvalidState, cur, s)
	}
	return nil
}

// showScreen: единственное место, где меняется активный экран
func (n *Navigator) showScreen(ctx context.Context, s domain.Screen) error {
	if s.InMainApp() && n.state.User == nil {
		return fmt.Errorf("%w: sign in to open %s", domain.ErrInvalidState, s)
	}
	if s == domain.ScreenBooking && n.state.Trip == nil {
		return domain.ErrNoTrip
	}

	prev := n.state.Current()
	if prev == s {
		n.state.Activate(s)
		return nil
	}

	var options []domain.VehicleOption
	if s == domain.ScreenVehicle {
		var err error
		options, err = n.deps.Data.VehicleOptions(ctx, n.state.Destination)
		if err != nil {
			return fmt.Errorf("load vehicle options: %w", err)
		}
	}

	// Уход с экрана отменяет его таймеры и незавершенный выбор
	n.cancelScreenTasks()
	n.state.Selection = nil
	if s != domain.ScreenBooking {
		n.state.Trip = nil
	}

	switch s {
	case domain.ScreenVehicle:
		n.options = options
	case domain.ScreenBooking:
		n.booking = bookingView(n.state.Trip)
	case domain.ScreenProfile:
		n.profile = profileView(n.state.User)
	}

	n.state.Activate(s)
	if s == domain.ScreenBooking {
		n.startProgress()
	}

	n.log.Info(logger.Entry{
		Action:     "screen_shown",
		Message:    string(s),
		Additional: map[string]any{"from": string(prev)},
	})
	return nil
}

func (n *Navigator) finishOnboarding(ctx context.Context) error {
	if err := n.deps.Store.Set(ctx, n.deviceID, model.KeyHasVisited, "true"); err != nil {
		return fmt.Errorf("persist %s: %w", model.KeyHasVisited, err)
	}
	return n.showScreen(ctx, domain.ScreenAuth)
}

// route решает, куда ведет экран загрузки (сессия, первый визит или вход)
func (n *Navigator) route(ctx context.Context) {
	user, err := n.loadUser(ctx)
	if err != nil {
		n.log.Warn(logger.Entry{Action: "session_restore_failed", Message: err.Error(), Error: logger.Err(err)})
	}
	if user != nil {
		n.state.User = user
		if err := n.showScreen(ctx, domain.ScreenHome); err != nil {
			n.log.Error(logger.Entry{Action: "route_failed", Message: err.Error(), Error: logger.Err(err)})
		}
		return
	}

	target := domain.ScreenAuth
	visited, err := n.deps.Store.Get(ctx, n.deviceID, model.KeyHasVisited)
	switch {
	case errors.Is(err, domain.ErrNotFound) || (err == nil && visited == ""):
		target = domain.ScreenOnboarding
	case err != nil:
		n.log.Warn(logger.Entry{Action: "visited_flag_read_failed", Message: err.Error(), Error: logger.Err(err)})
		target = domain.ScreenOnboarding
	}
	if err := n.showScreen(ctx, target); err != nil {
		n.log.Error(logger.Entry{Action: "route_failed", Message: err.Error(), Error: logger.Err(err)})
	}
}

func (n *Navigator) loadUser(ctx context.Context) (*domain.User, error) {
	raw, err := n.deps.Store.Get(ctx, n.deviceID, model.KeyUserData)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &u, nil
}

func (n *Navigator) refreshLocation(ctx context.Context) {
	loc, err := n.deps.Data.Locate(ctx)
	if err != nil {
		n.log.Warn(logger.Entry{Action: "location_unavailable", Message: err.Error(), Error: logger.Err(err)})
		n.state.CurrentLocation = n.deps.Messages.Text("location_unavailable", nil)
		return
	}
	n.state.CurrentLocation = loc
	n.state.Pickup = loc
}

// later планирует колбэк, принадлежащий текущему экрану
func (n *Navigator) later(d time.Duration, action string, f func(ctx context.Context)) {
	g := &guard{}
	g.task = n.deps.Scheduler.AfterFunc(d, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if g.cancelled || n.base.Err() != nil {
			return
		}
		g.cancelled = true
		n.forget(g)

		n.log.Debug(logger.Entry{Action: "timer_fired", Message: action})
		f(n.base)
		n.render(n.base)
	})
	n.screenTasks = append(n.screenTasks, g)
}

func (n *Navigator) forget(g *guard) {
	for i, x := range n.screenTasks {
		if x == g {
			n.screenTasks = append(n.screenTasks[:i], n.screenTasks[i+1:]...)
			return
		}
	}
}

func (n *Navigator) cancelScreenTasks() {
	for _, g := range n.screenTasks {
		g.cancel()
	}
	n.screenTasks = nil
	if n.progress != nil {
		n.progress.Stop()
		n.progress = nil
	}
}

func (n *Navigator) startProgress() {
	if n.progress != nil || n.state.Trip == nil {
		return
	}
	trip := n.state.Trip

	var sim *ProgressSimulator
	sim = NewProgressSimulator(n.deps.Scheduler, n.t.ProgressInterval, trip.ActiveSteps(), len(trip.Steps),
		func(active int, final bool) {
			n.mu.Lock()
			defer n.mu.Unlock()
			if n.progress != sim || n.state.Trip == nil || n.base.Err() != nil {
				return
			}
			n.advanceTrip(n.base, active, final)
			n.render(n.base)
		})
	n.progress = sim
	sim.Start()
}

func (n *Navigator) advanceTrip(ctx context.Context, active int, final bool) {
	trip := n.state.Trip
	for i := range trip.Steps {
		trip.Steps[i].Active = i < active
	}
	trip.Status = tripStatus(active, len(trip.Steps))

	n.publish(ctx, model.EventBookingProgress, trip.ID, map[string]any{
		"step":   active,
		"total":  len(trip.Steps),
		"status": trip.Status,
	})

	switch {
	case final:
		n.notify(ctx, domain.SeveritySuccess, "trip_started", nil)
		n.publish(ctx, model.EventTripStarted, trip.ID, map[string]any{"number": trip.Number})
		n.log.Info(logger.Entry{Action: "trip_started", Message: trip.Number, TripID: trip.ID})
	case active == 3:
		n.notify(ctx, domain.SeverityInfo, "driver_arriving", nil)
	}
}

func (n *Navigator) buildSteps() []domain.ProgressStep {
	total := n.t.ProgressSteps
	steps := make([]domain.ProgressStep, total)
	for i := range steps {
		var label string
		switch {
		case i == total-1:
			label = n.deps.Messages.Text("step_trip_started", nil)
		case i == 0:
			label = n.deps.Messages.Text("step_confirmed", nil)
		case i == 1:
			label = n.deps.Messages.Text("step_driver_assigned", nil)
		case i == 2:
			label = n.deps.Messages.Text("step_driver_arriving", nil)
		default:
			label = n.deps.Messages.Text("step_generic", map[string]any{"N": i + 1})
		}
		steps[i] = domain.ProgressStep{Label: label, Active: i < n.t.ProgressStartStep}
	}
	return steps
}

func tripStatus(active, total int) string {
	switch {
	case active >= total:
		return model.TripStatusStarted
	case active >= 3:
		return model.TripStatusDriverArriving
	case active >= 2:
		return model.TripStatusDriverAssigned
	default:
		return model.TripStatusConfirmed
	}
}

// notify показывает уведомление и планирует его скрытие. Новое уведомление
// отменяет скрытие предыдущего.
func (n *Navigator) notify(ctx context.Context, sev domain.Severity, msgID string, data map[string]any) {
	now := n.deps.Scheduler.Now()
	note := domain.Notification{
		ID:        utils.NewUUID(),
		Message:   n.deps.Messages.Text(msgID, data),
		Severity:  sev,
		ShownAt:   now,
		ExpiresAt: now.Add(n.t.NotificationTTL),
	}

	if n.toast != nil {
		n.toast.cancel()
	}
	n.notification = &note
	if err := n.deps.Presenter.Notify(ctx, n.deviceID, note); err != nil {
		n.log.Warn(logger.Entry{Action: "notify_failed", Message: err.Error(), Error: logger.Err(err)})
	}

	g := &guard{}
	g.task = n.deps.Scheduler.AfterFunc(n.t.NotificationTTL, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if g.cancelled || n.base.Err() != nil {
			return
		}
		g.cancelled = true
		n.toast = nil
		n.notification = nil
		if err := n.deps.Presenter.Dismiss(n.base, n.deviceID, note.ID); err != nil {
			n.log.Warn(logger.Entry{Action: "dismiss_failed", Message: err.Error(), Error: logger.Err(err)})
		}
	})
	n.toast = g
}

var validationMessages = map[error]string{
	domain.ErrPhoneRequired:       "err_phone_required",
	domain.ErrFieldsRequired:      "err_fields_required",
	domain.ErrDestinationRequired: "err_destination_required",
	domain.ErrNoSelection:         "err_vehicle_required",
	domain.ErrUnknownVehicle:      "err_unknown_vehicle",
	domain.ErrNoTrip:              "err_no_trip",
	domain.ErrUnknownScreen:       "err_unknown_screen",
}

func (n *Navigator) notifyValidation(ctx context.Context, err error) {
	for target, id := range validationMessages {
		if errors.Is(err, target) {
			n.notify(ctx, domain.SeverityError, id, nil)
			return
		}
	}
}

func (n *Navigator) publish(ctx context.Context, key, tripID string, data map[string]any) {
	ev := domain.AppEvent{
		ID:         utils.NewUUID(),
		Type:       key,
		DeviceID:   n.deviceID,
		TripID:     tripID,
		Data:       data,
		OccurredAt: n.deps.Scheduler.Now(),
	}
	if err := n.deps.Publisher.Publish(ctx, key, ev); err != nil {
		// Событие теряется, экранный поток продолжается
		n.log.Error(logger.Entry{
			Action:  "publish_event_failed",
			Message: err.Error(),
			TripID:  tripID,
			Error:   logger.Err(err),
			Additional: map[string]any{
				"routing_key": key,
			},
		})
	}
}

func (n *Navigator) render(ctx context.Context) domain.Snapshot {
	snap := n.snapshot()
	if err := n.deps.Presenter.Render(ctx, n.deviceID, snap); err != nil {
		n.log.Warn(logger.Entry{Action: "render_failed", Message: err.Error(), Error: logger.Err(err)})
	}
	return snap
}
