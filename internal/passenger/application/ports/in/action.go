package in

import "letsgo/internal/passenger/domain"

// Action: действие в виде сообщения (WebSocket, Telegram)
type Action struct {
	Name  string           `json:"name"`
	Value string           `json:"value,omitempty"`
	Form  *domain.AuthForm `json:"form,omitempty"`
}

// Имена действий
const (
	ActionBoot          = "boot"
	ActionNextSlide     = "next_slide"
	ActionSkip          = "skip_onboarding"
	ActionToggleAuth    = "toggle_auth"
	ActionSubmitAuth    = "submit_auth"
	ActionLogout        = "logout"
	ActionShow          = "show"
	ActionNav           = "nav"
	ActionBack          = "back"
	ActionDestination   = "destination"
	ActionQuick         = "quick"
	ActionFindRides     = "find_rides"
	ActionSelectVehicle = "select_vehicle"
	ActionConfirm       = "confirm"
	ActionSignal        = "signal"
	ActionLocate        = "locate"
	ActionState         = "state"
)
