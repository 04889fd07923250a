package domain

import (
	"fmt"
	"strings"
)

// Screen: один из взаимоисключающих экранов приложения
type Screen string

const (
	ScreenLoading    Screen = "loading"
	ScreenOnboarding Screen = "onboarding"
	ScreenAuth       Screen = "auth"
	ScreenHome       Screen = "home"
	ScreenVehicle    Screen = "vehicle"
	ScreenBooking    Screen = "booking"
	ScreenProfile    Screen = "profile"
)

// Screens: все экраны в порядке отображения
var Screens = []Screen{
	ScreenLoading,
	ScreenOnboarding,
	ScreenAuth,
	ScreenHome,
	ScreenVehicle,
	ScreenBooking,
	ScreenProfile,
}

// parents: куда ведет кнопка "назад" (фиксировано, не стек)
var parents = map[Screen]Screen{
	ScreenVehicle: ScreenHome,
	ScreenBooking: ScreenVehicle,
	ScreenProfile: ScreenHome,
}

// ParseScreen разбирает имя экрана для навигации.
// loading: внутреннее состояние, перейти на него нельзя.
func ParseScreen(name string) (Screen, error) {
	s := Screen(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case ScreenOnboarding, ScreenAuth, ScreenHome, ScreenVehicle, ScreenBooking, ScreenProfile:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
}

// Parent возвращает экран для кнопки "назад"
func (s Screen) Parent() (Screen, bool) {
	p, ok := parents[s]
	return p, ok
}

// InMainApp: экраны основного приложения (доступны только с сессией)
func (s Screen) InMainApp() bool {
	switch s {
	case ScreenHome, ScreenVehicle, ScreenBooking, ScreenProfile:
		return true
	}
	return false
}

// NavTarget для нижней навигации: profile ведет в профиль, всё остальное домой
func NavTarget(item string) Screen {
	if Screen(strings.ToLower(strings.TrimSpace(item))) == ScreenProfile {
		return ScreenProfile
	}
	return ScreenHome
}
