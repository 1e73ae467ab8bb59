package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/domain"
)

func (r *Router) sendText(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// handleStart begins (or restarts) the subscription flow. An existing
// subscription is shown first so the user knows what they are replacing.
func (r *Router) handleStart(ctx context.Context, chatID int64) {
	user, err := r.repo.Find(ctx, chatID)
	if err != nil {
		r.log.Error("find user failed", zap.Int64("chat_id", chatID), zap.Error(err))
		user = nil
	}

	if user != nil {
		r.sendText(chatID, fmt.Sprintf(textUpdatePromptFmt, user.Address.StreetName, user.Address.Building))
	} else {
		r.sendText(chatID, textAskStreet)
	}
	r.setState(chatID, convState{step: stepStreet})
}

// handleStop removes the subscription.
func (r *Router) handleStop(ctx context.Context, chatID int64) {
	r.clearState(chatID)

	removed, err := r.repo.Remove(ctx, chatID)
	if err != nil {
		r.log.Error("remove failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, textSaveError)
		return
	}
	if removed {
		r.sendText(chatID, textUnsubscribed)
	} else {
		r.sendText(chatID, textNoSubscription)
	}
}

// handleSubscription shows the current subscription without touching it.
func (r *Router) handleSubscription(ctx context.Context, chatID int64) {
	user, err := r.repo.Find(ctx, chatID)
	if err != nil {
		r.log.Error("find user failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, textSaveError)
		return
	}
	if user == nil {
		r.sendText(chatID, textNoSubscription)
		return
	}
	r.sendText(chatID, fmt.Sprintf(textCurrentSubFmt, user.Address.StreetName, user.Address.Building))
}

// handleFreeForm advances the conversation with plain text input.
func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	state, ok := r.getState(chatID)
	if !ok {
		r.sendText(chatID, textUseStart)
		return
	}
	if r.expired(state) {
		r.clearState(chatID)
		r.sendText(chatID, textSessionExpired)
		return
	}

	switch state.step {
	case stepStreet:
		r.handleStreetInput(chatID, state, text)
	case stepBuilding:
		r.handleBuildingInput(ctx, chatID, state, text)
	default:
		r.clearState(chatID)
		r.sendText(chatID, textUseStart)
	}
}

func (r *Router) handleStreetInput(chatID int64, state convState, text string) {
	res := r.dir.Search(text)

	switch {
	case res.Found:
		state.step = stepBuilding
		state.streetID = res.Street.ID
		state.streetName = res.Street.Name
		r.setState(chatID, state)
		r.sendText(chatID, fmt.Sprintf(textAskBuildingFmt, res.Street.Name))
	case len(res.Options) > 0:
		r.setState(chatID, state) // refresh activity, stay on street step
		r.sendWithMarkup(chatID, textChooseStreet, streetOptionsKeyboard(res.Options))
	default:
		r.setState(chatID, state)
		r.sendText(chatID, textStreetNotFound)
	}
}

func (r *Router) handleBuildingInput(ctx context.Context, chatID int64, state convState, text string) {
	addr, err := domain.NewUserAddress(state.streetID, state.streetName, text)
	if err != nil {
		if errors.Is(err, domain.ErrBuildingFormat) {
			// Stay on this step; bad building syntax is a retry, not a failure.
			r.setState(chatID, state)
			r.sendText(chatID, textBadBuilding)
			return
		}
		r.log.Error("subscription validation failed",
			zap.Int64("chat_id", chatID), zap.Error(err))
		r.clearState(chatID)
		r.sendText(chatID, textSaveError)
		return
	}

	// A fresh subscription starts with a clean notification history.
	if err := r.repo.Save(ctx, domain.User{ChatID: chatID, Address: addr}); err != nil {
		r.log.Error("save subscription failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendText(chatID, textSaveError)
		return
	}

	r.clearState(chatID)
	r.sendText(chatID, fmt.Sprintf(textSubscribedFmt, addr.StreetName, addr.Building))
}
