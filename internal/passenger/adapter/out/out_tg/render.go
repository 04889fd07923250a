package out_tg

import (
	"fmt"
	"strings"

	"letsgo/internal/passenger/application/ports/in"
	"letsgo/internal/passenger/domain"

	"github.com/go-telegram/bot/models"
)

// RenderText: текст сообщения для экрана
func RenderText(s domain.Snapshot) string {
	var b strings.Builder
	switch s.Screen {
	case domain.ScreenLoading:
		b.WriteString("🚕 LetsGo\n…")
	case domain.ScreenOnboarding:
		fmt.Fprintf(&b, "🚕 LetsGo\n%d / %d", s.Onboarding.Slide+1, s.Onboarding.Total)
	case domain.ScreenAuth:
		fmt.Fprintf(&b, "%s\n%s\n\n", s.Auth.Title, s.Auth.Subtitle)
		if s.Auth.Mode == domain.AuthSignUp {
			b.WriteString("/signup <phone> <name> <email>")
		} else {
			b.WriteString("/signin <phone>")
		}
	case domain.ScreenHome:
		fmt.Fprintf(&b, "📍 %s\n🏁 %s", s.Home.CurrentLocation, s.Home.Destination)
	case domain.ScreenVehicle:
		fmt.Fprintf(&b, "%s → %s", s.Home.Pickup, s.Home.Destination)
		for _, o := range s.Vehicle.Options {
			mark := "▫️"
			if o.Type == s.Vehicle.Selected {
				mark = "🔘"
			}
			fmt.Fprintf(&b, "\n%s %s · %s · %s", mark, o.Name, o.Price, o.ETA)
		}
	case domain.ScreenBooking:
		v := s.Booking
		fmt.Fprintf(&b, "#%s\n%s · %s · %s\n%s → %s", v.Number, v.Vehicle, v.Fare, v.Arrival, v.Pickup, v.Destination)
		if v.Driver != nil {
			fmt.Fprintf(&b, "\n👤 %s ⭐ %.1f\n🚗 %s %s", v.Driver.Name, v.Driver.Rating, v.Driver.Vehicle, v.Driver.Plate)
		}
		for _, st := range v.Steps {
			mark := "⬜"
			if st.Active {
				mark = "✅"
			}
			fmt.Fprintf(&b, "\n%s %s", mark, st.Label)
		}
	case domain.ScreenProfile:
		p := s.Profile
		fmt.Fprintf(&b, "👤 %s\n📞 %s\n✉️ %s\n⭐ %.1f · %d", p.Name, p.Phone, p.Email, p.Rating, p.Trips)
	}
	if !s.Online {
		b.WriteString("\n📴")
	}
	return b.String()
}

// Keyboard: кнопки действий для экрана (nil, если действий нет)
func Keyboard(s domain.Snapshot) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	row := func(buttons ...models.InlineKeyboardButton) {
		rows = append(rows, buttons)
	}

	switch s.Screen {
	case domain.ScreenOnboarding:
		row(button(s.Onboarding.NextLabel, in.ActionNextSlide, ""), button("Skip", in.ActionSkip, ""))
	case domain.ScreenAuth:
		row(button(s.Auth.ToggleText+" "+s.Auth.ToggleButton, in.ActionToggleAuth, ""))
	case domain.ScreenHome:
		var quick []models.InlineKeyboardButton
		for _, label := range s.Home.QuickActions {
			quick = append(quick, button(label, in.ActionQuick, label))
		}
		if len(quick) > 0 {
			row(quick...)
		}
		row(button("🔍", in.ActionFindRides, ""), button("👤", in.ActionNav, string(domain.ScreenProfile)))
	case domain.ScreenVehicle:
		for _, o := range s.Vehicle.Options {
			row(button(o.Name+" · "+o.Price, in.ActionSelectVehicle, o.Type))
		}
		if s.Vehicle.BookEnabled {
			row(button(s.Vehicle.BookLabel, in.ActionConfirm, ""))
		}
		row(button("⬅️", in.ActionBack, ""))
	case domain.ScreenBooking:
		row(button("⬅️", in.ActionBack, ""), button("🏠", in.ActionNav, string(domain.ScreenHome)))
	case domain.ScreenProfile:
		row(button("🏠", in.ActionNav, string(domain.ScreenHome)), button("🚪", in.ActionLogout, ""))
	}

	if len(rows) == 0 {
		return nil
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func button(text, action, value string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: CallbackData(action, value)}
}
