package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"

	"github.com/reshetovitsme/edit-audit-bot/internal/di"
	bindingService "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/service"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/config"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/logging"
	httpServer "github.com/reshetovitsme/edit-audit-bot/internal/transport/http"
	"github.com/reshetovitsme/edit-audit-bot/internal/transport/telegram"
)

const shutdownTimeout = 15 * time.Second

// allowedUpdates are the update types the bot subscribes to.
var allowedUpdates = []string{"message", "edited_message", "callback_query", "my_chat_member"}

func main() {
	logging.Setup("info")

	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	b, err := do.Invoke[*bot.Bot](injector)
	if err != nil {
		slog.Error("Failed to start telegram bot", "error", err)
		os.Exit(1)
	}
	server, err := do.Invoke[*httpServer.Server](injector)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}
	lanes := do.MustInvoke[*telegram.Lanes](injector)
	client := do.MustInvoke[*telegram.Client](injector)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := client.SetCommands(ctx); err != nil {
		slog.Warn("Failed to set bot commands", "error", err)
	}

	bindings := do.MustInvoke[*bindingService.Service](injector)
	if active, err := bindings.Active(ctx); err != nil {
		slog.Warn("Failed to list channel bindings", "error", err)
	} else {
		slog.Info("Monitoring chats", "bindings", len(active), "update_mode", cfg.UpdateMode)
	}

	lanes.Start()

	// Start HTTP server
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	switch cfg.UpdateMode {
	case config.UpdateModeWebhook:
		if _, err := b.SetWebhook(ctx, &bot.SetWebhookParams{
			URL:            cfg.WebhookURL,
			SecretToken:    cfg.WebhookSecret,
			AllowedUpdates: allowedUpdates,
		}); err != nil {
			slog.Error("Failed to register webhook", "error", err)
			cancel()
		}
	case config.UpdateModePolling:
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
			slog.Warn("Failed to remove webhook before polling", "error", err)
		}
		go b.Start(ctx)
	}

	slog.Info("Application started", "addr", cfg.Addr(), "update_mode", cfg.UpdateMode, "env", cfg.AppEnv)

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	if cfg.UpdateMode == config.UpdateModeWebhook {
		if _, err := b.DeleteWebhook(shutdownCtx, &bot.DeleteWebhookParams{}); err != nil {
			slog.Warn("Failed to delete webhook", "error", err)
		}
	}
	if err := di.Shutdown(shutdownCtx, injector); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}
}
