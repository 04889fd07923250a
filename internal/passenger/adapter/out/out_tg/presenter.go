package out_tg

import (
	"context"
	"fmt"
	"sync"

	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/logger"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Sender: часть *bot.Bot, которая нужна презентеру
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TgPresenter показывает экраны в Telegram-чате. Устройства других каналов пропускает.
type TgPresenter struct {
	sender Sender
	log    *logger.Logger

	mu   sync.Mutex
	last map[int64]string // последний отправленный текст по чату
}

var _ out.Presenter = (*TgPresenter)(nil)

func NewTgPresenter(sender Sender, log *logger.Logger) *TgPresenter {
	return &TgPresenter{
		sender: sender,
		log:    log,
		last:   make(map[int64]string),
	}
}

// Render шлет сообщение, только если экран выглядит иначе, чем в прошлый раз
func (p *TgPresenter) Render(ctx context.Context, deviceID string, snap domain.Snapshot) error {
	chatID, ok := ChatID(deviceID)
	if !ok {
		return nil
	}

	text := RenderText(snap)
	kb := Keyboard(snap)
	key := fmt.Sprintf("%s|%+v", text, kb)

	p.mu.Lock()
	if p.last[chatID] == key {
		p.mu.Unlock()
		return nil
	}
	p.last[chatID] = key
	p.mu.Unlock()

	params := &bot.SendMessageParams{ChatID: chatID, Text: text}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := p.sender.SendMessage(ctx, params); err != nil {
		p.forget(chatID)
		p.log.Error(logger.Entry{
			Action:   "tg_render_failed",
			Message:  err.Error(),
			DeviceID: deviceID,
			Error:    logger.Err(err),
		})
		return fmt.Errorf("send screen: %w", err)
	}
	return nil
}

func (p *TgPresenter) Notify(ctx context.Context, deviceID string, n domain.Notification) error {
	chatID, ok := ChatID(deviceID)
	if !ok {
		return nil
	}
	_, err := p.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   n.Severity.Icon() + " " + n.Message,
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Dismiss: в Telegram сообщения не прячутся
func (p *TgPresenter) Dismiss(ctx context.Context, deviceID, notificationID string) error {
	return nil
}

// Forget сбрасывает кэш, чтобы следующий Render точно дошел (/start, /state)
func (p *TgPresenter) Forget(chatID int64) {
	p.forget(chatID)
}

func (p *TgPresenter) forget(chatID int64) {
	p.mu.Lock()
	delete(p.last, chatID)
	p.mu.Unlock()
}
