package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: пользовательский ввод не прошел проверку (показывается уведомлением)
	ErrValidation = errors.New("validation failed")

	// ErrUnknownScreen возвращается при навигации на несуществующий экран
	ErrUnknownScreen = errors.New("unknown screen")

	// ErrNotFound возвращается хранилищем, если ключа нет
	ErrNotFound = errors.New("not found")

	// ErrDeviceNotFound: устройство не загружено
	ErrDeviceNotFound = errors.New("device not found")

	// ErrInvalidState: действие недоступно на текущем экране
	ErrInvalidState = errors.New("action not available on current screen")
)

var (
	ErrPhoneRequired       = fmt.Errorf("%w: phone number is required", ErrValidation)
	ErrFieldsRequired      = fmt.Errorf("%w: name and email are required", ErrValidation)
	ErrDestinationRequired = fmt.Errorf("%w: destination is required", ErrValidation)
	ErrNoSelection         = fmt.Errorf("%w: no vehicle selected", ErrValidation)
	ErrUnknownVehicle      = fmt.Errorf("%w: unknown vehicle", ErrValidation)
	ErrNoTrip              = fmt.Errorf("%w: no confirmed trip", ErrValidation)
)
