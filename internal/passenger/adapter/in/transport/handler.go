package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"letsgo/internal/passenger/application/ports/in"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/auth"
	"letsgo/internal/shared/logger"
	"letsgo/internal/shared/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"
)

const maxBodySize = 1 << 16 // 64KB

// TokenIssuer: выпуск токенов устройств (*auth.JWTService)
type TokenIssuer interface {
	GenerateToken(deviceID, channel string) (string, error)
	RefreshToken(token string) (string, error)
}

// HTTPHandler: HTTP API навигатора
type HTTPHandler struct {
	devices in.DevicesUseCase
	tokens  TokenIssuer
	log     *logger.Logger
}

func NewHTTPHandler(devices in.DevicesUseCase, tokens TokenIssuer, log *logger.Logger) *HTTPHandler {
	return &HTTPHandler{devices: devices, tokens: tokens, log: log}
}

type navAction func(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error)

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRegisterDevice (POST /devices) создает устройство и отдает токен с первым снимком
func (h *HTTPHandler) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := utils.NewUUID()
	token, err := h.tokens.GenerateToken(deviceID, auth.ChannelWeb)
	if err != nil {
		h.handleUseCaseError(w, r, err, nil)
		return
	}

	nav, err := h.devices.Open(r.Context(), deviceID)
	if err != nil {
		h.handleUseCaseError(w, r, err, nil)
		return
	}

	h.log.Info(logger.Entry{
		Action:    "device_registered",
		Message:   "web device registered",
		RequestID: middleware.GetReqID(r.Context()),
		DeviceID:  deviceID,
	})

	h.respondJSON(w, http.StatusCreated, DeviceResponse{
		DeviceID: deviceID,
		Token:    token,
		State:    snapshotFromDomain(nav.Snapshot()),
	})
}

// handleRefreshToken: POST /app/token/refresh
func (h *HTTPHandler) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	old, _ := r.Context().Value(ContextKeyToken).(string)
	token, err := h.tokens.RefreshToken(old)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
		return
	}
	h.respondJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// action оборачивает действие навигатора: устройство из токена, снимок в ответе
func (h *HTTPHandler) action(fn navAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID, ok := DeviceIDFrom(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		nav, err := h.devices.Open(r.Context(), deviceID)
		if err != nil {
			h.handleUseCaseError(w, r, err, nil)
			return
		}

		snap, err := fn(r, nav)
		if err != nil {
			h.handleUseCaseError(w, r, err, &snap)
			return
		}
		h.respondJSON(w, http.StatusOK, snapshotFromDomain(snap))
	}
}

func (h *HTTPHandler) state(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.Snapshot(), nil
}

func (h *HTTPHandler) boot(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.Boot(r.Context())
}

func (h *HTTPHandler) nextSlide(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.NextSlide(r.Context())
}

func (h *HTTPHandler) skipOnboarding(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.SkipOnboarding(r.Context())
}

func (h *HTTPHandler) toggleAuth(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.ToggleAuthMode(r.Context())
}

func (h *HTTPHandler) submitAuth(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	var form domain.AuthForm
	if err := decodeBody(r, &form); err != nil {
		return nav.Snapshot(), err
	}
	return nav.SubmitAuth(r.Context(), form)
}

func (h *HTTPHandler) logout(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.Logout(r.Context())
}

func (h *HTTPHandler) showScreen(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.ShowScreen(r.Context(), chi.URLParam(r, "screen"))
}

func (h *HTTPHandler) nav(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.Nav(r.Context(), chi.URLParam(r, "item"))
}

func (h *HTTPHandler) back(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.Back(r.Context())
}

func (h *HTTPHandler) setDestination(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	var req DestinationRequest
	if err := decodeBody(r, &req); err != nil {
		return nav.Snapshot(), err
	}
	return nav.SetDestination(r.Context(), req.Destination)
}

func (h *HTTPHandler) quickAction(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.QuickAction(r.Context(), chi.URLParam(r, "label"))
}

func (h *HTTPHandler) findRides(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.FindRides(r.Context())
}

func (h *HTTPHandler) selectVehicle(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	var req VehicleRequest
	if err := decodeBody(r, &req); err != nil {
		return nav.Snapshot(), err
	}
	return nav.SelectVehicle(r.Context(), req.Type)
}

func (h *HTTPHandler) confirmBooking(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.ConfirmBooking(r.Context())
}

func (h *HTTPHandler) signal(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	sig, err := domain.ParseSignal(chi.URLParam(r, "signal"))
	if err != nil {
		return nav.Snapshot(), err
	}
	return nav.Signal(r.Context(), sig)
}

func (h *HTTPHandler) refreshLocation(r *http.Request, nav in.NavigatorUseCase) (domain.Snapshot, error) {
	return nav.RefreshLocation(r.Context())
}

// errBadBody: тело запроса не разобрано
var errBadBody = errors.New("invalid request body")

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.Join(errBadBody, errors.New("empty request body"))
		}
		return errors.Join(errBadBody, err)
	}
	return nil
}

// handleUseCaseError переводит ошибки домена в HTTP-статусы
func (h *HTTPHandler) handleUseCaseError(w http.ResponseWriter, r *http.Request, err error, snap *domain.Snapshot) {
	var state *SnapshotResponse
	if snap != nil && snap.DeviceID != "" {
		s := snapshotFromDomain(*snap)
		state = &s
	}

	switch {
	case errors.Is(err, errBadBody):
		writeErrorWithState(w, r, http.StatusBadRequest, "bad_request", err.Error(), state)
	case errors.Is(err, domain.ErrUnknownScreen):
		writeErrorWithState(w, r, http.StatusNotFound, "unknown_screen", err.Error(), state)
	case errors.Is(err, domain.ErrDeviceNotFound):
		writeErrorWithState(w, r, http.StatusNotFound, "device_not_found", err.Error(), state)
	case errors.Is(err, domain.ErrInvalidState):
		writeErrorWithState(w, r, http.StatusConflict, "invalid_state", err.Error(), state)
	case errors.Is(err, domain.ErrValidation):
		writeErrorWithState(w, r, http.StatusUnprocessableEntity, "validation_failed", err.Error(), state)
	default:
		h.log.Error(logger.Entry{
			Action:    "usecase_error",
			Message:   err.Error(),
			RequestID: middleware.GetReqID(r.Context()),
			Error:     logger.Err(err),
		})
		writeErrorWithState(w, r, http.StatusInternalServerError, "internal", "internal server error", state)
	}
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error(logger.Entry{
			Action:  "encode_response_failed",
			Message: err.Error(),
			Error:   logger.Err(err),
		})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeErrorWithState(w, r, status, code, message, nil)
}

func writeErrorWithState(w http.ResponseWriter, r *http.Request, status int, code, message string, state *SnapshotResponse) {
	var er ErrorResponse
	er.Error.Code = code
	er.Error.Message = message
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		er.Error.RequestID = nullable.NewNullableWithValue(rid)
	}
	er.State = state

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(er)
}
