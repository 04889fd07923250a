package out_tg

import (
	"context"
	"strings"
	"testing"

	"letsgo/internal/passenger/application/ports/in"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/logger"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type fakeSender struct {
	sent []*bot.SendMessageParams
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.sent = append(f.sent, params)
	return &models.Message{}, nil
}

func TestDeviceID_RoundTrip(t *testing.T) {
	t.Parallel()

	id, ok := ChatID(DeviceID(-100123))
	if !ok || id != -100123 {
		t.Fatalf("ChatID=%d,%v", id, ok)
	}
	if _, ok := ChatID("web-device"); ok {
		t.Fatalf("non-telegram device must be rejected")
	}
}

func TestParseCallback(t *testing.T) {
	t.Parallel()

	action, value, ok := ParseCallback(CallbackData(in.ActionSelectVehicle, "XL"))
	if !ok || action != in.ActionSelectVehicle || value != "XL" {
		t.Fatalf("got %q %q %v", action, value, ok)
	}
	if _, _, ok := ParseCallback("other|x"); ok {
		t.Fatalf("foreign callback accepted")
	}
}

func TestTgPresenter_RenderSkipsUnchangedScreens(t *testing.T) {
	t.Parallel()

	s := &fakeSender{}
	p := NewTgPresenter(s, logger.NewNop())
	ctx := context.Background()
	snap := domain.Snapshot{
		Screen: domain.ScreenHome,
		Online: true,
		Home:   domain.HomeView{CurrentLocation: "Downtown Plaza", QuickActions: []string{"Home", "Work"}},
	}

	dev := DeviceID(42)
	for i := 0; i < 3; i++ {
		if err := p.Render(ctx, dev, snap); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}
	if len(s.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(s.sent))
	}
	if !strings.Contains(s.sent[0].Text, "Downtown Plaza") {
		t.Fatalf("text=%q", s.sent[0].Text)
	}

	p.Forget(42)
	_ = p.Render(ctx, dev, snap)
	if len(s.sent) != 2 {
		t.Fatalf("Forget must force the next render")
	}

	if err := p.Render(ctx, "web-1", snap); err != nil || len(s.sent) != 2 {
		t.Fatalf("web devices must be ignored")
	}
}

func TestTgPresenter_NotifyUsesIcon(t *testing.T) {
	t.Parallel()

	s := &fakeSender{}
	p := NewTgPresenter(s, logger.NewNop())
	err := p.Notify(context.Background(), DeviceID(7), domain.Notification{Message: "Welcome back!", Severity: domain.SeveritySuccess})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(s.sent) != 1 || s.sent[0].Text != "✅ Welcome back!" {
		t.Fatalf("sent=%+v", s.sent)
	}
}

func TestKeyboard_VehicleScreen(t *testing.T) {
	t.Parallel()

	snap := domain.Snapshot{
		Screen: domain.ScreenVehicle,
		Vehicle: domain.VehicleView{
			Options:     []domain.VehicleOption{{Type: "BIKE", Name: "Bike"}, {Type: "XL", Name: "XL"}},
			BookLabel:   "Book XL",
			BookEnabled: true,
		},
	}
	kb := Keyboard(snap)
	if kb == nil || len(kb.InlineKeyboard) != 4 {
		t.Fatalf("expected 2 options + book + back rows, got %+v", kb)
	}
	if kb.InlineKeyboard[2][0].CallbackData != CallbackData(in.ActionConfirm, "") {
		t.Fatalf("book row=%+v", kb.InlineKeyboard[2])
	}
	if Keyboard(domain.Snapshot{Screen: domain.ScreenLoading}) != nil {
		t.Fatalf("loading screen has no actions")
	}
}
