package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/config"
	"github.com/sl4wa/outages-bot/internal/notifier"
	"github.com/sl4wa/outages-bot/internal/provider/loe"
	"github.com/sl4wa/outages-bot/internal/scheduler"
	"github.com/sl4wa/outages-bot/internal/store"
	"github.com/sl4wa/outages-bot/internal/streets"
	"github.com/sl4wa/outages-bot/internal/telegram"
)

// conversation cleanup runs much more often than sessions expire,
// so stale state never lingers long.
const cleanupInterval = time.Minute

// App wires the bot together: storage, street directory, Telegram transport,
// the outage poller and the health endpoint.
type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	ready   atomic.Bool
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	a := &App{cfg: cfg, log: log, bot: bot}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !a.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	a.httpSrv = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting outages-bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.Duration("poll_interval", a.cfg.PollInterval),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	defer func() { _ = a.repo.Close() }()
	a.log.Info("sqlite ready")

	dir, err := a.loadStreets()
	if err != nil {
		a.log.Error("street directory load failed", zap.Error(err))
		return err
	}
	a.log.Info("street directory loaded", zap.Int("streets", len(dir.All())))

	router := telegram.NewRouter(a.bot, a.log, a.repo, dir, a.cfg.ConversationTTL)
	sender := telegram.NewSender(a.bot, a.log)
	source := loe.NewClient(a.cfg.OutageAPIURL, time.Now, a.log)
	service := notifier.NewService(source, sender, a.repo, a.log)
	poller := scheduler.New(service, a.log, a.cfg.PollInterval)

	go router.RunCleanup(ctx, cleanupInterval)
	go poller.Run(ctx)
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)
	a.ready.Store(true)

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			return nil

		case upd := <-updCh:
			router.HandleUpdate(ctx, upd)
		}
	}
}

func (a *App) loadStreets() (*streets.Directory, error) {
	if a.cfg.StreetsPath != "" {
		return streets.LoadFile(a.cfg.StreetsPath)
	}
	return streets.Load()
}
