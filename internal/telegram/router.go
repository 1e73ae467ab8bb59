package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/store"
	"github.com/sl4wa/outages-bot/internal/streets"
)

// Conversation steps of the subscription flow.
const (
	stepStreet   = "await_street"
	stepBuilding = "await_building"
)

// convState is one chat's position in the subscription flow. States live in
// memory only; an expired or lost state just means the user starts over.
type convState struct {
	step         string
	streetID     int
	streetName   string
	lastActivity time.Time
}

// Router wires Telegram updates to handlers and owns the conversation state.
type Router struct {
	bot   *tgbotapi.BotAPI
	log   *zap.Logger
	repo  store.Repo
	dir   *streets.Directory
	ttl   time.Duration
	clock func() time.Time

	mu            sync.RWMutex
	conversations map[int64]convState
}

// NewRouter creates a Router. ttl bounds how long an unfinished subscription
// conversation stays resumable.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, dir *streets.Directory, ttl time.Duration) *Router {
	return &Router{
		bot:           bot,
		log:           log,
		repo:          repo,
		dir:           dir,
		ttl:           ttl,
		clock:         time.Now,
		conversations: make(map[int64]convState),
	}
}

// HandleUpdate routes a single update.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	chatID := upd.Message.Chat.ID
	text := strings.TrimSpace(upd.Message.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		r.handleStart(ctx, chatID)
	case strings.HasPrefix(text, "/stop"):
		r.handleStop(ctx, chatID)
	case strings.HasPrefix(text, "/subscription"):
		r.handleSubscription(ctx, chatID)
	default:
		r.handleFreeForm(ctx, chatID, text)
	}
}

// RunCleanup drops expired conversations until ctx is canceled.
func (r *Router) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.cleanupExpired()
		}
	}
}

func (r *Router) cleanupExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock()
	for chatID, state := range r.conversations {
		if now.Sub(state.lastActivity) > r.ttl {
			delete(r.conversations, chatID)
		}
	}
}

// setState stores the chat's conversation state by value; handlers and the
// cleanup goroutine never share a mutable pointer.
func (r *Router) setState(chatID int64, s convState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.lastActivity = r.clock()
	r.conversations[chatID] = s
}

func (r *Router) getState(chatID int64) (convState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.conversations[chatID]
	return s, ok
}

func (r *Router) clearState(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, chatID)
}

func (r *Router) expired(s convState) bool {
	return r.clock().Sub(s.lastActivity) > r.ttl
}
