package in_tg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"letsgo/internal/model"
	"letsgo/internal/passenger/adapter/out/out_tg"
	"letsgo/internal/passenger/application/ports/in"
	"letsgo/internal/passenger/application/ports/out"
	"letsgo/internal/passenger/application/usecase"
	"letsgo/internal/passenger/domain"
	"letsgo/internal/shared/logger"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/go-telegram/ui/keyboard/inline"
)

// Forgetter: сброс кэша последнего экрана в чате
type Forgetter interface {
	Forget(chatID int64)
}

// BotHandler переводит команды и кнопки Telegram в действия навигатора
type BotHandler struct {
	devices in.DevicesUseCase
	screens Forgetter
	msg     out.Messages
	log     *logger.Logger
}

func NewBotHandler(devices in.DevicesUseCase, screens Forgetter, msg out.Messages, log *logger.Logger) *BotHandler {
	return &BotHandler{devices: devices, screens: screens, msg: msg, log: log}
}

// Register подключает команды и кнопки. Обычный текст идет в HandleText
// (bot.WithDefaultHandler).
func (h *BotHandler) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "start", bot.MatchTypeCommand, h.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "help", bot.MatchTypeCommand, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "state", bot.MatchTypeCommand, h.handleState)
	b.RegisterHandler(bot.HandlerTypeMessageText, "signin", bot.MatchTypeCommand, h.handleSignIn)
	b.RegisterHandler(bot.HandlerTypeMessageText, "signup", bot.MatchTypeCommand, h.handleSignUp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "logout", bot.MatchTypeCommand, h.handleLogout)
	b.RegisterHandler(bot.HandlerTypeMessageText, "quick", bot.MatchTypeCommand, h.handleQuick)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, out_tg.CallbackPrefix, bot.MatchTypePrefix, h.handleCallback)
}

// handleStart: запуск приложения заново: загрузка и маршрутизация
func (h *BotHandler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	h.screens.Forget(chatID)
	h.send(ctx, b, chatID, h.msg.Text("tg_help", nil))

	nav, err := h.devices.Open(ctx, out_tg.DeviceID(chatID))
	if err != nil {
		h.fail(ctx, b, chatID, "start", err)
		return
	}
	if nav.Snapshot().Screen == domain.ScreenLoading {
		return
	}
	if _, err := nav.Boot(ctx); err != nil {
		h.fail(ctx, b, chatID, "start", err)
	}
}

func (h *BotHandler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.send(ctx, b, update.Message.Chat.ID, h.msg.Text("tg_help", nil))
}

// handleState присылает текущий экран еще раз
func (h *BotHandler) handleState(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	nav, err := h.devices.Open(ctx, out_tg.DeviceID(chatID))
	if err != nil {
		h.fail(ctx, b, chatID, "state", err)
		return
	}
	h.screens.Forget(chatID)

	snap := nav.Snapshot()
	params := &bot.SendMessageParams{ChatID: chatID, Text: out_tg.RenderText(snap)}
	if kb := out_tg.Keyboard(snap); kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		h.log.Error(logger.Entry{Action: "tg_send_state_failed", Message: err.Error(), DeviceID: out_tg.DeviceID(chatID), Error: logger.Err(err)})
	}
}

func (h *BotHandler) handleSignIn(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	_, args := ParseCommand(update.Message.Text)
	form := SignInForm(args)
	if _, err := h.Submit(ctx, chatID, domain.AuthSignIn, form); err != nil {
		h.fail(ctx, b, chatID, in.ActionSubmitAuth, err)
	}
}

func (h *BotHandler) handleSignUp(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	_, args := ParseCommand(update.Message.Text)
	form := SignUpForm(args)
	if _, err := h.Submit(ctx, chatID, domain.AuthSignUp, form); err != nil {
		h.fail(ctx, b, chatID, in.ActionSubmitAuth, err)
	}
}

func (h *BotHandler) handleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	if _, err := h.Run(ctx, chatID, in.Action{Name: in.ActionLogout}); err != nil {
		h.fail(ctx, b, chatID, in.ActionLogout, err)
	}
}

// handleQuick показывает быстрые направления клавиатурой go-telegram/ui
func (h *BotHandler) handleQuick(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	nav, err := h.devices.Open(ctx, out_tg.DeviceID(chatID))
	if err != nil {
		h.fail(ctx, b, chatID, in.ActionQuick, err)
		return
	}
	if nav.Snapshot().Screen != domain.ScreenHome {
		h.send(ctx, b, chatID, h.msg.Text("tg_unavailable", nil))
		return
	}

	kb := inline.New(b)
	for _, label := range model.QuickActionLabels {
		kb.Row().Button(label, []byte(label), h.onQuickSelect)
	}
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.msg.Text("tg_quick_title", nil),
		ReplyMarkup: kb,
	}); err != nil {
		h.log.Error(logger.Entry{Action: "tg_send_quick_failed", Message: err.Error(), DeviceID: out_tg.DeviceID(chatID), Error: logger.Err(err)})
	}
}

func (h *BotHandler) onQuickSelect(ctx context.Context, b *bot.Bot, mes models.MaybeInaccessibleMessage, data []byte) {
	chatID, ok := messageChat(mes)
	if !ok {
		return
	}
	if _, err := h.Run(ctx, chatID, in.Action{Name: in.ActionQuick, Value: string(data)}); err != nil {
		h.fail(ctx, b, chatID, in.ActionQuick, err)
	}
}

// handleCallback: кнопки экранов (lg|action|value)
func (h *BotHandler) handleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID})

	chatID, ok := messageChat(cq.Message)
	if !ok {
		chatID = cq.From.ID
	}
	name, value, ok := out_tg.ParseCallback(cq.Data)
	if !ok {
		h.log.Warn(logger.Entry{Action: "tg_bad_callback", Message: cq.Data, DeviceID: out_tg.DeviceID(chatID)})
		return
	}
	if _, err := h.Run(ctx, chatID, in.Action{Name: name, Value: value}); err != nil {
		h.fail(ctx, b, chatID, name, err)
	}
}

// HandleText: обычный текст: на главном экране это пункт назначения
func (h *BotHandler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	snap, err := h.Text(ctx, chatID, update.Message.Text)
	if err != nil {
		h.fail(ctx, b, chatID, in.ActionDestination, err)
		return
	}
	if snap.Screen != domain.ScreenHome {
		h.send(ctx, b, chatID, h.msg.Text("tg_help", nil))
	}
}

// Run выполняет действия по очереди и останавливается на первой ошибке
func (h *BotHandler) Run(ctx context.Context, chatID int64, actions ...in.Action) (domain.Snapshot, error) {
	nav, err := h.devices.Open(ctx, out_tg.DeviceID(chatID))
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap := nav.Snapshot()
	for _, a := range actions {
		if snap, err = usecase.Dispatch(ctx, nav, a); err != nil {
			return snap, err
		}
	}
	return snap, nil
}

// Submit отправляет форму, при необходимости переключив режим входа
func (h *BotHandler) Submit(ctx context.Context, chatID int64, mode domain.AuthMode, form domain.AuthForm) (domain.Snapshot, error) {
	nav, err := h.devices.Open(ctx, out_tg.DeviceID(chatID))
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap := nav.Snapshot()
	if snap.Screen != domain.ScreenAuth {
		return snap, fmt.Errorf("%w: sign in from %s", domain.ErrInvalidState, snap.Screen)
	}
	if snap.Auth.Mode != mode {
		if snap, err = nav.ToggleAuthMode(ctx); err != nil {
			return snap, err
		}
	}
	return nav.SubmitAuth(ctx, form)
}

// Text: свободный текст чата. Вне главного экрана ничего не делает.
func (h *BotHandler) Text(ctx context.Context, chatID int64, text string) (domain.Snapshot, error) {
	nav, err := h.devices.Open(ctx, out_tg.DeviceID(chatID))
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap := nav.Snapshot()
	if snap.Screen != domain.ScreenHome || strings.HasPrefix(text, "/") {
		return snap, nil
	}
	return nav.SetDestination(ctx, text)
}

// fail отвечает на ошибку. Ошибки ввода уже показаны уведомлением навигатора.
func (h *BotHandler) fail(ctx context.Context, b *bot.Bot, chatID int64, action string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrUnknownScreen):
		h.send(ctx, b, chatID, h.msg.Text("tg_unavailable", nil))
	default:
		h.log.Error(logger.Entry{
			Action:     "tg_action_failed",
			Message:    err.Error(),
			DeviceID:   out_tg.DeviceID(chatID),
			Error:      logger.Err(err),
			Additional: map[string]any{"action": action},
		})
		h.send(ctx, b, chatID, h.msg.Text("tg_failed", nil))
	}
}

func (h *BotHandler) send(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		h.log.Warn(logger.Entry{Action: "tg_send_failed", Message: err.Error(), DeviceID: out_tg.DeviceID(chatID), Error: logger.Err(err)})
	}
}

func messageChat(mes models.MaybeInaccessibleMessage) (int64, bool) {
	switch {
	case mes.Message != nil:
		return mes.Message.Chat.ID, true
	case mes.InaccessibleMessage != nil:
		return mes.InaccessibleMessage.Chat.ID, true
	default:
		return 0, false
	}
}

// ParseCommand разбирает "/cmd@bot a b c"
func ParseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", fields
	}
	cmd, _, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")
	return strings.ToLower(cmd), fields[1:]
}

// SignInForm: /signin <phone>; телефон может быть с пробелами
func SignInForm(args []string) domain.AuthForm {
	return domain.AuthForm{Phone: strings.Join(args, " ")}
}

// SignUpForm: /signup <phone> <name...> <email>
func SignUpForm(args []string) domain.AuthForm {
	var form domain.AuthForm
	switch len(args) {
	case 0:
	case 1:
		form.Phone = args[0]
	case 2:
		form.Phone = args[0]
		form.Name = args[1]
	default:
		form.Phone = args[0]
		form.Name = strings.Join(args[1:len(args)-1], " ")
		form.Email = args[len(args)-1]
	}
	if form.Email == "" && strings.Contains(form.Name, "@") {
		form.Email, form.Name = form.Name, ""
	}
	return form
}
