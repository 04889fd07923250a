package scheduler

import (
	"sort"
	"sync"
	"time"

	"letsgo/internal/passenger/application/ports/out"
)

// Manual: планировщик с ручным временем для тестов и демо.
// Колбэки выполняются в горутине, вызвавшей Advance, без удержания блокировки.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m        *Manual
	seq      int
	due      time.Time
	interval time.Duration
	f        func()
	stopped  bool
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) out.Task {
	return m.add(d, 0, f)
}

func (m *Manual) Every(interval time.Duration, f func()) out.Task {
	return m.add(interval, interval, f)
}

func (m *Manual) add(d, interval time.Duration, f func()) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, seq: m.seq, due: m.now.Add(d), interval: interval, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance сдвигает время и по порядку выполняет все задачи, срок которых наступил
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		t := m.nextDue(target)
		if t == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = t.due
		if t.interval > 0 {
			t.due = t.due.Add(t.interval)
		} else {
			t.stopped = true
			m.remove(t)
		}
		f := t.f
		m.mu.Unlock()

		f()
	}
}

// Pending: сколько задач еще ждут выполнения
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) nextDue(target time.Time) *manualTask {
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due.Equal(m.tasks[j].due) {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due.Before(m.tasks[j].due)
	})
	if len(m.tasks) == 0 || m.tasks[0].due.After(target) {
		return nil
	}
	return m.tasks[0]
}

func (m *Manual) remove(t *manualTask) {
	for i, x := range m.tasks {
		if x == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.m.remove(t)
	return true
}
