package domain

import (
	"fmt"
	"time"
)

// Severity: тип уведомления
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

var icons = map[Severity]string{
	SeveritySuccess: "✅",
	SeverityError:   "❌",
	SeverityInfo:    "ℹ️",
	SeverityWarning: "⚠️",
}

func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if _, ok := icons[sev]; !ok {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

// Icon: значок для уведомления (info по умолчанию)
func (s Severity) Icon() string {
	if icon, ok := icons[s]; ok {
		return icon
	}
	return icons[SeverityInfo]
}

// Notification: toast, одновременно виден только один
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	ShownAt   time.Time `json:"shown_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
