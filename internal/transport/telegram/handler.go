package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/VanderY/proctoring-bot/internal/app"
	"github.com/VanderY/proctoring-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot drives the survey flow over Telegram long polling. Updates are
// handled sequentially in one loop, so a single user's interactions are
// processed strictly in arrival order.
type Bot struct {
	api     *tgbotapi.BotAPI
	service *app.SurveyService
}

func NewBot(token string, service *app.SurveyService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, service: service}, nil
}

// Start consumes updates until ctx is canceled.
func (b *Bot) Start(ctx context.Context) {
	log.Printf("authorized on account: %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "ready":
		user := identityOf(message.From)
		if err := b.service.Ready(ctx, user); err != nil {
			if errors.Is(err, domain.ErrNotStudent) {
				b.send(message.Chat.ID, "Тестирование доступно только студентам")
				return
			}
			b.reportFailure(message.Chat.ID, err)
			return
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, "Нажмите кнопку ниже, чтобы получить тест")
		msg.ReplyMarkup = readyKeyboard()
		b.sendMessage(msg)
	case "test":
		name := message.CommandArguments()
		if name == "" {
			b.send(message.Chat.ID, "Укажите название теста: /test <название>")
			return
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Тест «%s»", name))
		msg.ReplyMarkup = startKeyboard(name)
		b.sendMessage(msg)
	default:
		b.send(message.Chat.ID, "Неизвестная команда")
	}
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Callbacks on messages older than 48h arrive without the message.
	if callback.Message == nil {
		log.Printf("callback %s carries no message, dropping", callback.ID)
		return
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("answer callback: %v", err)
	}

	chatID := callback.Message.Chat.ID
	action, err := app.ParseAction(callback.Data)
	if err != nil {
		log.Printf("callback from %d: %v", chatID, err)
		return
	}

	if action.Kind == app.ActionReady {
		b.edit(chatID, callback.Message.MessageID, "Ожидайте сообщения о начале теста", nil)
		return
	}

	step, err := b.service.Advance(ctx, identityOf(callback.From), action)
	if err != nil {
		log.Printf("advance for %d: %v", chatID, err)
		b.reportFailure(chatID, err)
		return
	}

	switch step.Kind {
	case app.StepAskQuestion:
		keyboard := answersKeyboard(step.TestName, step.Question)
		b.edit(chatID, callback.Message.MessageID, step.Question.Prompt(), &keyboard)
	case app.StepFinished:
		b.edit(chatID, callback.Message.MessageID, fmt.Sprintf("Вы прошли тест на %s", step.Summary), nil)
	}
}

func (b *Bot) reportFailure(chatID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrTestNotFound):
		b.send(chatID, "Тест не найден. Обратитесь к преподавателю")
	case errors.Is(err, domain.ErrBackingStoreUnavailable):
		b.send(chatID, "Не удалось сохранить результат. Обратитесь к преподавателю")
	case errors.Is(err, domain.ErrSessionNotFound):
		b.send(chatID, "Сессия не найдена. Отправьте /ready, чтобы начать тест")
	default:
		b.send(chatID, "Произошла ошибка. Попробуйте позже")
	}
}

func (b *Bot) send(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send message: %v", err)
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = keyboard
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("edit message: %v", err)
	}
}

func identityOf(user *tgbotapi.User) app.Identity {
	if user == nil {
		return app.Identity{}
	}
	id := app.Identity{ID: strconv.FormatInt(user.ID, 10), Name: user.UserName}
	if id.Name == "" {
		id.Name = user.FirstName
	}
	return id
}
