package errors

import "errors"

var (
	ErrMissingBotToken    = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is required")
	ErrMissingWebhookURL  = errors.New("WEBHOOK_URL is required in webhook mode")
	ErrUnauthorized       = errors.New("unauthorized user")
	ErrBindingNotFound    = errors.New("channel binding not found")
	ErrChatNotFound       = errors.New("chat not found")
	ErrAdminSetUnknown    = errors.New("administrator set unavailable")
	ErrNotChannelOrigin   = errors.New("message is not forwarded from a channel")
	ErrNotUserOrigin      = errors.New("message is not forwarded from a user")
	ErrNoSelectedChat     = errors.New("no chat selected for configuration")
	ErrBotNotChannelAdmin = errors.New("bot is not an administrator of the channel")
	ErrInvalidEditGrace   = errors.New("edit grace must be between 0 and 20 minutes")
	ErrPermission         = errors.New("platform rejected the call: insufficient rights")
	ErrTransient          = errors.New("platform call failed: transient network error")
)
