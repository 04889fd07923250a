package in_ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"letsgo/internal/passenger/adapter/out/out_ws"
	"letsgo/internal/passenger/application/ports/in"
	"letsgo/internal/passenger/application/usecase"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/auth"
	"letsgo/internal/shared/logger"
	"letsgo/internal/shared/ws"
)

// Типы входящих сообщений
const (
	MsgAction = "action"
	MsgSignal = "signal"
	MsgPing   = "ping"

	MsgPong  = "pong"
	MsgError = "error"
)

// ErrorMessage: ответ на действие, которое навигатор отклонил
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// DeviceWSHandler принимает действия от веб-клиента по WebSocket
type DeviceWSHandler struct {
	hub     *ws.Hub
	devices in.DevicesUseCase
	base    context.Context
	log     *logger.Logger
}

// DeviceAuth: проверка токена для hub: принимаются только веб-устройства
func DeviceAuth(jwtSvc *auth.JWTService) ws.AuthFunc {
	return func(token string) (string, string, error) {
		deviceID, channel, err := jwtSvc.ExtractDevice(token)
		if err != nil {
			return "", "", err
		}
		if channel != auth.ChannelWeb {
			return "", "", fmt.Errorf("invalid channel: %s (expected %s)", channel, auth.ChannelWeb)
		}
		return deviceID, channel, nil
	}
}

// NewDeviceWSHandler подписывается на сообщения hub. Hub создается раньше,
// потому что через него же работает презентер навигаторов.
func NewDeviceWSHandler(ctx context.Context, hub *ws.Hub, devices in.DevicesUseCase, log *logger.Logger) *DeviceWSHandler {
	h := &DeviceWSHandler{
		hub:     hub,
		devices: devices,
		base:    ctx,
		log:     log,
	}
	hub.SetMessageHandler(h.handleMessage)
	hub.SetConnectHandler(h.handleConnect)
	return h
}

// Hub для bootstrap (Run)
func (h *DeviceWSHandler) Hub() *ws.Hub {
	return h.hub
}

func (h *DeviceWSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}

// handleConnect отправляет новому соединению текущий экран
func (h *DeviceWSHandler) handleConnect(client *ws.Client) {
	nav, err := h.devices.Open(h.base, client.DeviceID)
	if err != nil {
		h.log.Error(logger.Entry{
			Action:   "ws_open_device_failed",
			Message:  err.Error(),
			DeviceID: client.DeviceID,
			Error:    logger.Err(err),
		})
		return
	}
	if err := h.hub.SendTypedMessage(client.DeviceID, out_ws.MsgSnapshot, nav.Snapshot()); err != nil {
		h.log.Warn(logger.Entry{
			Action:   "ws_initial_snapshot_failed",
			Message:  err.Error(),
			DeviceID: client.DeviceID,
			Error:    logger.Err(err),
		})
	}
}

func (h *DeviceWSHandler) handleMessage(client *ws.Client, msgType string, data json.RawMessage) error {
	h.log.Debug(logger.Entry{
		Action:   "device_ws_message",
		Message:  msgType,
		DeviceID: client.DeviceID,
		Additional: map[string]any{
			"client_id": client.ID,
		},
	})

	var action in.Action
	switch msgType {
	case MsgPing:
		return h.hub.SendTypedMessage(client.DeviceID, MsgPong, map[string]string{"status": "ok"})

	case MsgAction:
		if err := json.Unmarshal(data, &action); err != nil {
			return h.reject(client, "", fmt.Errorf("%w: malformed action: %v", domain.ErrValidation, err))
		}

	case MsgSignal:
		var sig string
		if err := json.Unmarshal(data, &sig); err != nil {
			return h.reject(client, in.ActionSignal, fmt.Errorf("%w: malformed signal: %v", domain.ErrValidation, err))
		}
		action = in.Action{Name: in.ActionSignal, Value: sig}

	default:
		h.log.Warn(logger.Entry{
			Action:   "device_ws_unknown_message_type",
			Message:  msgType,
			DeviceID: client.DeviceID,
		})
		return nil
	}

	nav, err := h.devices.Open(h.base, client.DeviceID)
	if err != nil {
		return err
	}
	// снимок уходит через презентер, здесь только ошибки
	if _, err := usecase.Dispatch(h.base, nav, action); err != nil {
		return h.reject(client, action.Name, err)
	}
	return nil
}

// reject сообщает клиенту об ошибке. Ошибки пользователя не поднимаются в hub.
func (h *DeviceWSHandler) reject(client *ws.Client, action string, err error) error {
	code := ErrorCode(err)
	msg := ErrorMessage{Code: code, Message: err.Error(), Action: action}
	if sendErr := h.hub.SendTypedMessage(client.DeviceID, MsgError, msg); sendErr != nil {
		return errors.Join(err, sendErr)
	}
	if code == "internal" {
		return err
	}
	return nil
}

// ErrorCode: машинный код ошибки, как в HTTP API
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownScreen):
		return "unknown_screen"
	case errors.Is(err, domain.ErrDeviceNotFound):
		return "device_not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrValidation):
		return "validation_failed"
	default:
		return "internal"
	}
}
