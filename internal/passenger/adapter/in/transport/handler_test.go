package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"letsgo/internal/passenger/adapter/out/fanout"
	"letsgo/internal/passenger/adapter/out/out_amqp"
	"letsgo/internal/passenger/adapter/out/scheduler"
	"letsgo/internal/passenger/adapter/out/simulated"
	"letsgo/internal/passenger/adapter/out/store"
	"letsgo/internal/passenger/application/usecase"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/auth"
	"letsgo/internal/shared/config"
	"letsgo/internal/shared/i18n"
	"letsgo/internal/shared/logger"
)

type testServer struct {
	srv   *httptest.Server
	clock *scheduler.Manual
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.NewNop()
	msg := i18n.MustNew("en")
	clock := scheduler.NewManual(time.Unix(1_700_000_000, 0))
	deps := usecase.Deps{
		Store:     store.NewMemoryStore(),
		Presenter: fanout.New(),
		Scheduler: clock,
		Data:      simulated.New(1, msg),
		Publisher: out_amqp.NewLogPublisher(log),
		Messages:  msg,
		Log:       log,
	}
	cfg := config.Default()
	devices := usecase.NewDevices(context.Background(), deps, usecase.TimingsFromConfig(cfg.App))
	jwt := auth.NewJWTService(config.JWTConfig{Secret: "test-secret", ExpiryMinutes: 60})

	srv := httptest.NewServer(NewRouter(NewHTTPHandler(devices, jwt, log), jwt, nil, log))
	t.Cleanup(func() {
		srv.Close()
		devices.Shutdown()
	})
	return &testServer{srv: srv, clock: clock}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

type snapshotJSON struct {
	Screen       domain.Screen            `json:"screen"`
	User         *domain.User             `json:"user"`
	Selection    *domain.BookingSelection `json:"selection"`
	Trip         *domain.Trip             `json:"trip"`
	Notification *domain.Notification     `json:"notification"`
	Home         domain.HomeView          `json:"home"`
}

type errorJSON struct {
	Error struct {
		Code      string  `json:"code"`
		Message   string  `json:"message"`
		RequestID *string `json:"request_id"`
	} `json:"error"`
	State *snapshotJSON `json:"state"`
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func (s *testServer) register(t *testing.T) string {
	t.Helper()
	status, raw := s.do(t, http.MethodPost, "/devices", "", nil)
	if status != http.StatusCreated {
		t.Fatalf("POST /devices: %d %s", status, raw)
	}
	dev := decode[struct {
		DeviceID string       `json:"device_id"`
		Token    string       `json:"token"`
		State    snapshotJSON `json:"state"`
	}](t, raw)
	if dev.DeviceID == "" || dev.Token == "" || dev.State.Screen != domain.ScreenLoading {
		t.Fatalf("unexpected device response %s", raw)
	}
	if !strings.Contains(string(raw), `"user":null`) || !strings.Contains(string(raw), `"trip":null`) {
		t.Fatalf("absent session and trip must be explicit null: %s", raw)
	}
	return dev.Token
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	status, raw := s.do(t, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK || !strings.Contains(string(raw), "ok") {
		t.Fatalf("health: %d %s", status, raw)
	}
}

func TestAppRequiresToken(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	for _, token := range []string{"", "garbage"} {
		status, raw := s.do(t, http.MethodGet, "/app/state", token, nil)
		if status != http.StatusUnauthorized {
			t.Fatalf("token %q: status %d", token, status)
		}
		e := decode[errorJSON](t, raw)
		if e.Error.Code != "unauthorized" || e.Error.RequestID == nil {
			t.Fatalf("error envelope %s", raw)
		}
	}
}

func TestFlow_SignInAndBook(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	token := s.register(t)

	s.clock.Advance(2 * time.Second)
	status, raw := s.do(t, http.MethodGet, "/app/state", token, nil)
	if status != http.StatusOK || decode[snapshotJSON](t, raw).Screen != domain.ScreenOnboarding {
		t.Fatalf("state after boot: %d %s", status, raw)
	}

	status, raw = s.do(t, http.MethodPost, "/app/onboarding/skip", token, nil)
	if status != http.StatusOK || decode[snapshotJSON](t, raw).Screen != domain.ScreenAuth {
		t.Fatalf("skip: %d %s", status, raw)
	}

	// validation failure: 422 with the error toast in state
	status, raw = s.do(t, http.MethodPost, "/app/auth/submit", token, domain.AuthForm{})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("empty form: %d %s", status, raw)
	}
	e := decode[errorJSON](t, raw)
	if e.Error.Code != "validation_failed" || e.State == nil || e.State.Notification == nil ||
		e.State.Notification.Message != "Please enter your phone number" {
		t.Fatalf("validation envelope %s", raw)
	}

	status, raw = s.do(t, http.MethodPost, "/app/auth/submit", token, domain.AuthForm{Phone: "+91 98765 43210"})
	if status != http.StatusOK || decode[snapshotJSON](t, raw).User == nil {
		t.Fatalf("sign in: %d %s", status, raw)
	}
	s.clock.Advance(1500 * time.Millisecond)

	status, raw = s.do(t, http.MethodPost, "/app/screens/settings", token, nil)
	if status != http.StatusNotFound || decode[errorJSON](t, raw).Error.Code != "unknown_screen" {
		t.Fatalf("unknown screen: %d %s", status, raw)
	}
	status, _ = s.do(t, http.MethodPost, "/app/back", token, nil)
	if status != http.StatusConflict {
		t.Fatalf("back from home: %d", status)
	}

	status, raw = s.do(t, http.MethodPost, "/app/quick/Work", token, nil)
	if status != http.StatusOK || decode[snapshotJSON](t, raw).Home.Destination != "Office Complex" {
		t.Fatalf("quick action: %d %s", status, raw)
	}
	status, raw = s.do(t, http.MethodPost, "/app/rides/find", token, nil)
	if status != http.StatusOK || decode[snapshotJSON](t, raw).Screen != domain.ScreenVehicle {
		t.Fatalf("find rides: %d %s", status, raw)
	}
	status, raw = s.do(t, http.MethodPost, "/app/vehicle", token, VehicleRequest{Type: "AUTO"})
	if status != http.StatusOK || decode[snapshotJSON](t, raw).Selection == nil {
		t.Fatalf("select vehicle: %d %s", status, raw)
	}
	status, raw = s.do(t, http.MethodPost, "/app/booking/confirm", token, nil)
	if status != http.StatusOK || decode[snapshotJSON](t, raw).Trip == nil {
		t.Fatalf("confirm: %d %s", status, raw)
	}

	s.clock.Advance(2 * time.Second)
	_, raw = s.do(t, http.MethodGet, "/app/state", token, nil)
	if snap := decode[snapshotJSON](t, raw); snap.Screen != domain.ScreenBooking {
		t.Fatalf("expected booking, got %s", snap.Screen)
	}
}

func TestBadBodyAndSignals(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	token := s.register(t)
	s.clock.Advance(2 * time.Second)

	status, raw := s.do(t, http.MethodPost, "/app/destination", token, map[string]any{"where": "x"})
	if status != http.StatusBadRequest || decode[errorJSON](t, raw).Error.Code != "bad_request" {
		t.Fatalf("unknown field: %d %s", status, raw)
	}

	status, raw = s.do(t, http.MethodPost, "/app/signals/offline", token, nil)
	if status != http.StatusOK {
		t.Fatalf("offline: %d %s", status, raw)
	}
	if n := decode[snapshotJSON](t, raw).Notification; n == nil || n.Severity != domain.SeverityWarning {
		t.Fatalf("offline toast: %s", raw)
	}
	status, _ = s.do(t, http.MethodPost, "/app/signals/reboot", token, nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("unknown signal: %d", status)
	}

	status, raw = s.do(t, http.MethodPost, "/app/token/refresh", token, nil)
	if status != http.StatusOK || decode[TokenResponse](t, raw).Token == "" {
		t.Fatalf("refresh: %d %s", status, raw)
	}
}
