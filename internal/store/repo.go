package store

import (
	"context"

	"github.com/sl4wa/outages-bot/internal/domain"
)

// Repo defines storage operations for user subscriptions.
type Repo interface {
	// FindAll returns every current subscriber.
	FindAll(ctx context.Context) ([]domain.User, error)
	// Find returns the subscriber for the chat id, or (nil, nil) if absent.
	Find(ctx context.Context, chatID int64) (*domain.User, error)
	// Save inserts or fully overwrites the subscriber's record.
	Save(ctx context.Context, u domain.User) error
	// Remove drops the subscription and reports whether one existed.
	Remove(ctx context.Context, chatID int64) (bool, error)
	Close() error
}
