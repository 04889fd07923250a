package domain

import (
	"fmt"
	"strings"
)

// Signal: событие окружения устройства (сеть, видимость, установка)
type Signal string

const (
	SignalOnline        Signal = "online"
	SignalOffline       Signal = "offline"
	SignalVisible       Signal = "visible"
	SignalHidden        Signal = "hidden"
	SignalInstallPrompt Signal = "install_prompt"
)

func ParseSignal(s string) (Signal, error) {
	sig := Signal(strings.ToLower(strings.TrimSpace(s)))
	switch sig {
	case SignalOnline, SignalOffline, SignalVisible, SignalHidden, SignalInstallPrompt:
		return sig, nil
	}
	return "", fmt.Errorf("%w: unknown signal %q", ErrValidation, s)
}
