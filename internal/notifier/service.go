// Package notifier implements the notification run: fetch the outage
// schedule once, walk the subscriber list, and deliver at most one message
// per user per run.
package notifier

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/domain"
	"github.com/sl4wa/outages-bot/internal/store"
)

// Service orchestrates one notification pass over all subscribers.
type Service struct {
	source Source
	sender Sender
	repo   store.Repo
	log    *zap.Logger
}

// NewService creates a notification Service.
func NewService(source Source, sender Sender, repo store.Repo, log *zap.Logger) *Service {
	return &Service{source: source, sender: sender, repo: repo, log: log}
}

// Run performs a single pass and returns the number of outages fetched.
// A failed fetch degrades to a zero-outage pass instead of aborting; per-user
// delivery failures never stop the loop.
func (s *Service) Run(ctx context.Context) (int, error) {
	records, err := s.source.FetchOutages(ctx)
	if err != nil {
		s.log.Warn("outage fetch failed, running with empty list", zap.Error(err))
		records = nil
	}
	outages := BuildOutages(records, s.log)

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	// Run-scoped guard: each chat gets at most one message per pass, even if
	// the subscriber list ever yields the same chat twice.
	notified := make(map[int64]struct{}, len(users))

	for _, user := range users {
		if _, done := notified[user.ChatID]; done {
			continue
		}

		outage, due := domain.FindForNotification(user, outages)
		if !due {
			continue
		}

		err := s.sender.Send(ctx, Notification{
			ChatID:     user.ChatID,
			City:       outage.Address.City,
			StreetName: outage.Address.StreetName,
			Buildings:  outage.Address.Buildings,
			Start:      outage.Period.Start,
			End:        outage.Period.End,
			Comment:    outage.Description.Value,
		})
		if err != nil {
			s.handleSendFailure(ctx, user, err)
			continue
		}
		notified[user.ChatID] = struct{}{}

		if err := s.repo.Save(ctx, user.WithNotifiedOutage(outage)); err != nil {
			s.log.Error("failed to save notified user",
				zap.Int64("chat_id", user.ChatID), zap.Error(err))
		}
	}

	return len(outages), nil
}

// handleSendFailure classifies a delivery error. Blocked recipients lose their
// subscription; anything else is left untouched so the same outage is retried
// on the next run.
func (s *Service) handleSendFailure(ctx context.Context, user domain.User, err error) {
	var sendErr *SendError
	if errors.As(err, &sendErr) && sendErr.Blocked() {
		removed, rmErr := s.repo.Remove(ctx, user.ChatID)
		if rmErr != nil {
			s.log.Error("failed to remove blocked user",
				zap.Int64("chat_id", user.ChatID), zap.Error(rmErr))
			return
		}
		s.log.Info("removed blocked subscriber",
			zap.Int64("chat_id", user.ChatID), zap.Bool("removed", removed))
		return
	}
	s.log.Warn("notification delivery failed",
		zap.Int64("chat_id", user.ChatID), zap.Error(err))
}
