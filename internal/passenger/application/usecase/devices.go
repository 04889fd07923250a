package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"letsgo/internal/passenger/application/ports/in"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/logger"
)

// Devices: навигаторы всех подключенных устройств
type Devices struct {
	base context.Context
	deps Deps
	t    Timings
	log  *logger.Logger

	mu   sync.Mutex
	navs map[string]*device
}

// device: навигатор и признак завершенной загрузки. Boot идет без Devices.mu,
// остальные вызовы для того же устройства ждут ready.
type device struct {
	nav   *Navigator
	ready chan struct{}
	err   error
}

func (e *device) wait(ctx context.Context) (*Navigator, error) {
	select {
	case <-e.ready:
		return e.nav, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var (
	_ in.DevicesUseCase   = (*Devices)(nil)
	_ in.NavigatorUseCase = (*Navigator)(nil)
)

func NewDevices(ctx context.Context, deps Deps, t Timings) *Devices {
	return &Devices{
		base: ctx,
		deps: deps,
		t:    t,
		log:  deps.Log,
		navs: make(map[string]*device),
	}
}

// Open возвращает навигатор устройства. Новое устройство загружается сразу,
// так что после рестарта сервиса сессия восстанавливается из хранилища.
func (d *Devices) Open(ctx context.Context, deviceID string) (in.NavigatorUseCase, error) {
	nav, err := d.open(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return nav, nil
}

func (d *Devices) open(ctx context.Context, deviceID string) (*Navigator, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, fmt.Errorf("%w: empty device id", domain.ErrValidation)
	}

	d.mu.Lock()
	if e, ok := d.navs[deviceID]; ok {
		d.mu.Unlock()
		return e.wait(ctx)
	}
	e := &device{nav: NewNavigator(d.base, deviceID, d.deps, d.t), ready: make(chan struct{})}
	d.navs[deviceID] = e
	d.mu.Unlock()

	// Boot рендерит через презентеры, поэтому вне Devices.mu
	_, err := e.nav.Boot(ctx)
	if err != nil {
		e.err = err
		d.mu.Lock()
		if d.navs[deviceID] == e {
			delete(d.navs, deviceID)
		}
		d.mu.Unlock()
		e.nav.Close()
	}
	close(e.ready)
	if err != nil {
		return nil, err
	}

	d.log.Info(logger.Entry{
		Action:   "device_opened",
		Message:  "navigator started",
		DeviceID: deviceID,
	})
	return e.nav, nil
}

// Lookup: навигатор без создания
func (d *Devices) Lookup(deviceID string) (in.NavigatorUseCase, error) {
	d.mu.Lock()
	e, ok := d.navs[deviceID]
	d.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeviceNotFound, deviceID)
	}
	<-e.ready
	if e.err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDeviceNotFound, deviceID)
	}
	return e.nav, nil
}

func (d *Devices) Close(deviceID string) {
	d.mu.Lock()
	e, ok := d.navs[deviceID]
	delete(d.navs, deviceID)
	d.mu.Unlock()

	if ok {
		<-e.ready
		e.nav.Close()
		d.log.Info(logger.Entry{Action: "device_closed", Message: "navigator stopped", DeviceID: deviceID})
	}
}

// Count: число живых навигаторов
func (d *Devices) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.navs)
}

// Shutdown останавливает таймеры всех устройств
func (d *Devices) Shutdown() {
	d.mu.Lock()
	navs := d.navs
	d.navs = make(map[string]*device)
	d.mu.Unlock()

	for _, e := range navs {
		<-e.ready
		e.nav.Close()
	}
}
