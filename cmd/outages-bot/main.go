package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sl4wa/outages-bot/internal/admin"
	"github.com/sl4wa/outages-bot/internal/app"
	"github.com/sl4wa/outages-bot/internal/config"
	"github.com/sl4wa/outages-bot/internal/logger"
	"github.com/sl4wa/outages-bot/internal/notifier"
	"github.com/sl4wa/outages-bot/internal/provider/loe"
	"github.com/sl4wa/outages-bot/internal/scheduler"
	"github.com/sl4wa/outages-bot/internal/store"
	"github.com/sl4wa/outages-bot/internal/telegram"
)

func main() {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	rootCmd := &cobra.Command{
		Use:   "outages-bot",
		Short: "Telegram bot for power outage notifications in Lviv, Ukraine",
	}

	rootCmd.AddCommand(botCmd(cfg, log))
	rootCmd.AddCommand(notifierCmd(cfg, log))
	rootCmd.AddCommand(outagesCmd(cfg, log))
	rootCmd.AddCommand(usersCmd(cfg, log))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func botCmd(cfg config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot with the outage poller (long-running)",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(cfg, log)
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}
			return application.Run(context.Background())
		},
	}
}

func notifierCmd(cfg config.Config, log *zap.Logger) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "notifier",
		Short: "Fetch outages and send notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
			if err != nil {
				return fmt.Errorf("telegram init: %w", err)
			}

			repo, err := store.OpenSQLite(ctx, cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open sqlite: %w", err)
			}
			defer func() { _ = repo.Close() }()

			source := loe.NewClient(cfg.OutageAPIURL, time.Now, log)
			sender := telegram.NewSender(bot, log)
			service := notifier.NewService(source, sender, repo, log)

			if interval <= 0 {
				count, err := service.Run(ctx)
				if err != nil {
					return err
				}
				log.Info("notification run finished", zap.Int("outages", count))
				return nil
			}

			scheduler.New(service, log, interval).Run(ctx)
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0,
		"Run repeatedly with this interval between runs (e.g. 60s). If zero, run once and exit.")

	return cmd
}

func outagesCmd(cfg config.Config, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "outages",
		Short: "Print a table of current outages",
		RunE: func(cmd *cobra.Command, args []string) error {
			source := loe.NewClient(cfg.OutageAPIURL, time.Now, log)
			outages, err := admin.ListOutages(context.Background(), source, log)
			if err != nil {
				return fmt.Errorf("fetch outages: %w", err)
			}
			return admin.RenderOutages(os.Stdout, outages)
		},
	}
}

func usersCmd(cfg config.Config, log *zap.Logger) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List all subscribed users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, err := store.OpenSQLite(ctx, cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open sqlite: %w", err)
			}
			defer func() { _ = repo.Close() }()

			users, err := admin.ListUsers(ctx, repo)
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}

			if asYAML {
				return admin.ExportUsersYAML(os.Stdout, users)
			}

			bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
			if err != nil {
				return fmt.Errorf("telegram init: %w", err)
			}
			return admin.RenderUsers(os.Stdout, users, telegram.NewSender(bot, log), log)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Dump subscriptions as YAML instead of a table")

	return cmd
}
