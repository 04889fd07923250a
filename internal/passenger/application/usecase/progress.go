package usecase

import (
	"sync"
	"time"

	"letsgo/internal/passenger/application/ports/out"

	"go.uber.org/atomic"
)

// ProgressSimulator раз в интервал отмечает следующий шаг таймлайна заказа.
// Начинает с start активных шагов, останавливается сам на total.
type ProgressSimulator struct {
	sched    out.Scheduler
	interval time.Duration
	total    int32

	active  *atomic.Int32
	running *atomic.Bool

	// mu защищает task: первый тик может прийти раньше, чем Every вернется
	mu   sync.Mutex
	task out.Task

	// onStep вызывается после каждого шага; final означает последний шаг
	onStep func(active int, final bool)
}

func NewProgressSimulator(sched out.Scheduler, interval time.Duration, start, total int, onStep func(active int, final bool)) *ProgressSimulator {
	if start > total {
		start = total
	}
	return &ProgressSimulator{
		sched:    sched,
		interval: interval,
		total:    int32(total),
		active:   atomic.NewInt32(int32(start)),
		running:  atomic.NewBool(false),
		onStep:   onStep,
	}
}

// Start запускает тикер. Если все шаги уже активны, ничего не делает.
func (p *ProgressSimulator) Start() {
	if p.active.Load() >= p.total {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	p.task = p.sched.Every(p.interval, p.tick)
}

// Stop останавливает тикер. Повторный вызов безопасен.
func (p *ProgressSimulator) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	if p.task != nil {
		p.task.Stop()
		p.task = nil
	}
}

func (p *ProgressSimulator) Active() int   { return int(p.active.Load()) }
func (p *ProgressSimulator) Running() bool { return p.running.Load() }

func (p *ProgressSimulator) tick() {
	if !p.running.Load() {
		return
	}
	n := p.active.Inc()
	final := n >= p.total
	if final {
		p.Stop()
	}
	if n > p.total {
		return
	}
	if p.onStep != nil {
		p.onStep(int(n), final)
	}
}
