package out_ws

import (
	"context"

	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/logger"
)

// Типы сообщений, которые получает фронтенд
const (
	MsgSnapshot            = "snapshot"
	MsgNotification        = "notification"
	MsgNotificationDismiss = "notification_dismissed"
)

// DeviceSender: то, что нужно от WebSocket hub
type DeviceSender interface {
	SendTypedMessage(deviceID, msgType string, data any) error
}

// WsPresenter отправляет экраны и уведомления через WebSocket
type WsPresenter struct {
	hub DeviceSender
	log *logger.Logger
}

var _ out.Presenter = (*WsPresenter)(nil)

func NewWsPresenter(hub DeviceSender, log *logger.Logger) *WsPresenter {
	return &WsPresenter{hub: hub, log: log}
}

func (p *WsPresenter) Render(ctx context.Context, deviceID string, snap domain.Snapshot) error {
	if err := p.hub.SendTypedMessage(deviceID, MsgSnapshot, snap); err != nil {
		p.log.Error(logger.Entry{
			Action:   "render_snapshot_failed",
			Message:  err.Error(),
			DeviceID: deviceID,
			Error:    logger.Err(err),
		})
		return err
	}

	p.log.Debug(logger.Entry{
		Action:   "snapshot_sent",
		Message:  string(snap.Screen),
		DeviceID: deviceID,
	})
	return nil
}

func (p *WsPresenter) Notify(ctx context.Context, deviceID string, n domain.Notification) error {
	if err := p.hub.SendTypedMessage(deviceID, MsgNotification, n); err != nil {
		p.log.Error(logger.Entry{
			Action:   "notify_device_failed",
			Message:  err.Error(),
			DeviceID: deviceID,
			Error:    logger.Err(err),
			Additional: map[string]any{
				"severity": string(n.Severity),
			},
		})
		return err
	}
	return nil
}

func (p *WsPresenter) Dismiss(ctx context.Context, deviceID, notificationID string) error {
	return p.hub.SendTypedMessage(deviceID, MsgNotificationDismiss, map[string]string{"id": notificationID})
}
