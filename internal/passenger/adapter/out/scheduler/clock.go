package scheduler

import (
	"sync"
	"time"

	"letsgo/internal/passenger/application/ports/out"
)

// Clock: планировщик на реальных таймерах
type Clock struct{}

func NewClock() *Clock { return &Clock{} }

func (Clock) Now() time.Time { return time.Now().UTC() }

func (Clock) AfterFunc(d time.Duration, f func()) out.Task {
	return timerTask{t: time.AfterFunc(d, f)}
}

func (Clock) Every(interval time.Duration, f func()) out.Task {
	t := &tickerTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				f()
			}
		}
	}()
	return t
}

type timerTask struct{ t *time.Timer }

func (t timerTask) Stop() bool { return t.t.Stop() }

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
