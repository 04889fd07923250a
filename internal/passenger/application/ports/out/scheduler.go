package out

import "time"

// Task: запланированная задача. Stop возвращает false, если задача уже остановлена.
type Task interface {
	Stop() bool
}

// Scheduler: таймеры навигатора. Колбэки выполняются в чужой горутине.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Task
	Every(interval time.Duration, f func()) Task
}
