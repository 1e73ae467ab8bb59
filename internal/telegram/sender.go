package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sl4wa/outages-bot/internal/notifier"
)

// Telegram allows roughly 30 messages per second across all chats; staying
// below that keeps bulk notification runs from tripping 429s.
const (
	sendRate  = rate.Limit(25)
	sendBurst = 5
)

// Sender delivers outage notifications through the Telegram Bot API.
// It implements notifier.Sender.
type Sender struct {
	bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewSender creates a rate-limited Sender.
func NewSender(bot *tgbotapi.BotAPI, log *zap.Logger) *Sender {
	return &Sender{
		bot:     bot,
		limiter: rate.NewLimiter(sendRate, sendBurst),
		log:     log,
	}
}

// Send formats and delivers one notification. A canceled ctx aborts the
// rate-limiter wait, so shutdown is not stalled behind a bulk send. Failures
// come back as *notifier.SendError carrying the Telegram status code and
// message, which the run loop uses to spot blocked recipients.
func (s *Sender) Send(ctx context.Context, n notifier.Notification) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.ChatID, FormatNotification(n))
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := s.bot.Send(msg); err != nil {
		return classifySendError(n.ChatID, err)
	}
	return nil
}

// classifySendError wraps a Bot API failure into a *notifier.SendError,
// pulling out the HTTP status code when the library exposes one.
func classifySendError(chatID int64, err error) *notifier.SendError {
	code := 0
	message := err.Error()

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		code = apiErr.Code
		message = apiErr.Message
	}

	return &notifier.SendError{ChatID: chatID, Code: code, Message: message}
}

// UserInfo is a subscriber's Telegram profile, used by the admin CLI.
type UserInfo struct {
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}

// GetUserInfo fetches the chat profile for a subscriber.
func (s *Sender) GetUserInfo(chatID int64) (UserInfo, error) {
	chat, err := s.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return UserInfo{}, err
	}
	return UserInfo{
		ChatID:    chat.ID,
		Username:  chat.UserName,
		FirstName: chat.FirstName,
		LastName:  chat.LastName,
	}, nil
}
