package telegram

import (
	"fmt"

	"github.com/VanderY/proctoring-bot/internal/app"
	"github.com/VanderY/proctoring-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func readyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Готов получить тест", app.ActionReady),
		),
	)
}

func startKeyboard(testName string) tgbotapi.InlineKeyboardMarkup {
	payload := fmt.Sprintf("%s;%s;0", app.ActionStart, testName)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Начать тест", payload),
		),
	)
}

// answersKeyboard renders one button per answer choice. The payload
// carries the question's 1-based index so the next callback can score
// it and ask for the following question.
func answersKeyboard(testName string, question domain.Question) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, choice := range question.Choices() {
		payload := fmt.Sprintf("%s;%s;%d;%s", app.ActionQuestion, testName, question.Index, choice)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice, payload),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
