package di

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"gorm.io/gorm"

	auditRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/repository"
	auditService "github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/service"
	bindingRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/repository"
	bindingService "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/service"
	chatRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/repository"
	chatService "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/service"
	messageRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/message/repository"
	messageService "github.com/reshetovitsme/edit-audit-bot/internal/modules/message/service"
	moderatorRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/repository"
	moderatorService "github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/service"
	monitorService "github.com/reshetovitsme/edit-audit-bot/internal/modules/monitor/service"
	setupRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/repository"
	setupService "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/service"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/config"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/database"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/metrics"
	httpServer "github.com/reshetovitsme/edit-audit-bot/internal/transport/http"
	"github.com/reshetovitsme/edit-audit-bot/internal/transport/telegram"
)

const (
	sessionCapacity = 10_000
	laneBuffer      = 64
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	do.Provide(injector, func(i do.Injector) (*metrics.Metrics, error) {
		return metrics.New(), nil
	})

	// Register Database
	do.Provide(injector, func(i do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		db, err := database.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, oops.With("context", "failed to connect to database").Wrap(err)
		}
		if err := database.Migrate(db); err != nil {
			return nil, oops.With("context", "failed to migrate database").Wrap(err)
		}
		return db, nil
	})

	// Register Repositories
	do.Provide(injector, func(i do.Injector) (bindingRepo.Repository, error) {
		return bindingRepo.NewPostgres(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (chatRepo.Repository, error) {
		return chatRepo.NewPostgres(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (moderatorRepo.Repository, error) {
		return moderatorRepo.NewPostgres(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (auditRepo.Repository, error) {
		return auditRepo.NewPostgres(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (messageRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return messageRepo.NewLRU(cfg.MessageCacheSize, cfg.MessageCacheTTL, nil), nil
	})
	do.Provide(injector, func(i do.Injector) (setupRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return setupRepo.NewLRU(sessionCapacity, cfg.SessionTTL), nil
	})

	// Register Bot. Updates received by long polling are queued on the
	// lanes, resolved lazily because the lanes depend on the bot client.
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(func(ctx context.Context, _ *bot.Bot, update *models.Update) {
				lanes := do.MustInvoke[*telegram.Lanes](i)
				if err := lanes.Submit(ctx, telegram.NewEvent(update)); err != nil {
					slog.Warn("Failed to queue update", "update_id", update.ID, "error", err)
				}
			}),
			bot.WithErrorsHandler(func(err error) {
				slog.Error("Telegram bot error", "error", err)
			}),
		}
		if cfg.TelegramAPIURL != "" {
			opts = append(opts, bot.WithServerURL(cfg.TelegramAPIURL))
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}
		return b, nil
	})

	do.Provide(injector, func(i do.Injector) (*telegram.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return telegram.NewClient(do.MustInvoke[*bot.Bot](i), cfg.RequestTimeout, do.MustInvoke[*metrics.Metrics](i)), nil
	})

	// Register Services
	do.Provide(injector, func(i do.Injector) (*bindingService.Service, error) {
		return bindingService.New(do.MustInvoke[bindingRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*chatService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return chatService.New(do.MustInvoke[chatRepo.Repository](i), do.MustInvoke[*telegram.Client](i), cfg.AdminRefreshInterval), nil
	})
	do.Provide(injector, func(i do.Injector) (*moderatorService.Service, error) {
		return moderatorService.New(do.MustInvoke[moderatorRepo.Repository](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (*messageService.Service, error) {
		m := do.MustInvoke[*metrics.Metrics](i)
		svc := messageService.New(do.MustInvoke[messageRepo.Repository](i))
		m.TrackCacheEntries(svc.Size)
		return svc, nil
	})
	do.Provide(injector, func(i do.Injector) (*auditService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return auditService.New(do.MustInvoke[auditRepo.Repository](i), do.MustInvoke[*chatService.Service](i), cfg.FeedLimit), nil
	})
	do.Provide(injector, func(i do.Injector) (*monitorService.Service, error) {
		return monitorService.New(
			do.MustInvoke[*bindingService.Service](i),
			do.MustInvoke[*chatService.Service](i),
			do.MustInvoke[*moderatorService.Service](i),
			do.MustInvoke[*messageService.Service](i),
			do.MustInvoke[*auditService.Service](i),
			do.MustInvoke[*telegram.Client](i),
			do.MustInvoke[*metrics.Metrics](i),
		), nil
	})
	do.Provide(injector, func(i do.Injector) (*setupService.Service, error) {
		return setupService.New(
			do.MustInvoke[setupRepo.Repository](i),
			do.MustInvoke[*bindingService.Service](i),
			do.MustInvoke[*chatService.Service](i),
			do.MustInvoke[*moderatorService.Service](i),
			do.MustInvoke[*telegram.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*metrics.Metrics](i),
		), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegram.Handler, error) {
		return telegram.New(
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*telegram.Client](i),
			do.MustInvoke[*monitorService.Service](i),
			do.MustInvoke[*chatService.Service](i),
			do.MustInvoke[*bindingService.Service](i),
			do.MustInvoke[*moderatorService.Service](i),
			do.MustInvoke[*setupService.Service](i),
			do.MustInvoke[*metrics.Metrics](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*telegram.Lanes, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegram.Handler](i)
		return telegram.NewLanes(cfg.Lanes, laneBuffer, handler.HandleUpdate), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		return httpServer.New(
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*telegram.Lanes](i),
			do.MustInvoke[*auditService.Service](i),
			do.MustInvoke[*metrics.Metrics](i),
		), nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(ctx context.Context, injector do.Injector) error {
	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("HTTP server shutdown failed", "error", err)
		}
	}

	// Drain lanes after the server so no webhook update is queued late
	if lanes, err := do.Invoke[*telegram.Lanes](injector); err == nil && lanes != nil {
		if err := lanes.Stop(ctx); err != nil {
			slog.Error("Update lanes did not drain", "error", err)
		}
	}

	if db, err := do.Invoke[*gorm.DB](injector); err == nil && db != nil {
		if err := database.Close(db); err != nil {
			return oops.With("context", "failed to close database").Wrap(err)
		}
	}
	return nil
}
