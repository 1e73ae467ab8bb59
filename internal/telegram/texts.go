package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sl4wa/outages-bot/internal/domain"
)

// User-facing texts. The bot serves Lviv, so they stay in Ukrainian.
const (
	textAskStreet       = "Будь ласка, введіть назву вулиці:"
	textChooseStreet    = "Будь ласка, оберіть вулицю:"
	textStreetNotFound  = "Вулицю не знайдено. Спробуйте ще раз."
	textAskBuildingFmt  = "Ви обрали вулицю: %s\nБудь ласка, введіть номер будинку:"
	textBadBuilding     = "Невірний формат номера будинку. Приклад: 13 або 13-А"
	textSubscribedFmt   = "Ви підписалися на сповіщення про відключення електроенергії для вулиці %s, будинок %s."
	textUnsubscribed    = "Ви успішно відписалися від сповіщень про відключення електроенергії."
	textNoSubscription  = "Ви не маєте активної підписки."
	textCurrentSubFmt   = "Ваша поточна підписка:\nВулиця: %s\nБудинок: %s"
	textUpdatePromptFmt = textCurrentSubFmt + "\n\nБудь ласка, введіть нову назву вулиці для оновлення підписки:"
	textSessionExpired  = "Сесія застаріла. Будь ласка, почніть знову з /start"
	textSaveError       = "Сталася помилка. Спробуйте пізніше."
	textUseStart        = "Щоб налаштувати підписку, надішліть /start"
)

// maxStreetOptions caps the reply keyboard; more rows than this stops being
// usable on a phone.
const maxStreetOptions = 10

// streetOptionsKeyboard builds a one-column reply keyboard of street names.
// Tapping a button sends the name back as a regular message.
func streetOptionsKeyboard(options []domain.Street) tgbotapi.ReplyKeyboardMarkup {
	if len(options) > maxStreetOptions {
		options = options[:maxStreetOptions]
	}
	rows := make([][]tgbotapi.KeyboardButton, 0, len(options))
	for _, s := range options {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(s.Name)))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.OneTimeKeyboard = true
	return kb
}
