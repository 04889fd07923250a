package fanout

import (
	"context"
	"errors"

	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/domain"
)

// Presenter рассылает экран во все подключенные фронтенды (WebSocket, Telegram)
type Presenter struct {
	targets []out.Presenter
}

var _ out.Presenter = (*Presenter)(nil)

func New(targets ...out.Presenter) *Presenter {
	return &Presenter{targets: targets}
}

func (p *Presenter) Render(ctx context.Context, deviceID string, snap domain.Snapshot) error {
	var errs []error
	for _, t := range p.targets {
		errs = append(errs, t.Render(ctx, deviceID, snap))
	}
	return errors.Join(errs...)
}

func (p *Presenter) Notify(ctx context.Context, deviceID string, n domain.Notification) error {
	var errs []error
	for _, t := range p.targets {
		errs = append(errs, t.Notify(ctx, deviceID, n))
	}
	return errors.Join(errs...)
}

func (p *Presenter) Dismiss(ctx context.Context, deviceID, notificationID string) error {
	var errs []error
	for _, t := range p.targets {
		errs = append(errs, t.Dismiss(ctx, deviceID, notificationID))
	}
	return errors.Join(errs...)
}
