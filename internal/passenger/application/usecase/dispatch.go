package usecase

import (
	"context"
	"fmt"

	"letsgo/internal/passenger/application/ports/in"
	"letsgo/internal/passenger/domain"
)

// Dispatch выполняет действие, пришедшее сообщением (WebSocket, Telegram)
func Dispatch(ctx context.Context, nav in.NavigatorUseCase, a in.Action) (domain.Snapshot, error) {
	switch a.Name {
	case in.ActionBoot:
		return nav.Boot(ctx)
	case in.ActionNextSlide:
		return nav.NextSlide(ctx)
	case in.ActionSkip:
		return nav.SkipOnboarding(ctx)
	case in.ActionToggleAuth:
		return nav.ToggleAuthMode(ctx)
	case in.ActionSubmitAuth:
		var form domain.AuthForm
		if a.Form != nil {
			form = *a.Form
		}
		return nav.SubmitAuth(ctx, form)
	case in.ActionLogout:
		return nav.Logout(ctx)
	case in.ActionShow:
		return nav.ShowScreen(ctx, a.Value)
	case in.ActionNav:
		return nav.Nav(ctx, a.Value)
	case in.ActionBack:
		return nav.Back(ctx)
	case in.ActionDestination:
		return nav.SetDestination(ctx, a.Value)
	case in.ActionQuick:
		return nav.QuickAction(ctx, a.Value)
	case in.ActionFindRides:
		return nav.FindRides(ctx)
	case in.ActionSelectVehicle:
		return nav.SelectVehicle(ctx, a.Value)
	case in.ActionConfirm:
		return nav.ConfirmBooking(ctx)
	case in.ActionSignal:
		sig, err := domain.ParseSignal(a.Value)
		if err != nil {
			return nav.Snapshot(), err
		}
		return nav.Signal(ctx, sig)
	case in.ActionLocate:
		return nav.RefreshLocation(ctx)
	case in.ActionState:
		return nav.Snapshot(), nil
	default:
		return nav.Snapshot(), fmt.Errorf("%w: unknown action %q", domain.ErrValidation, a.Name)
	}
}
