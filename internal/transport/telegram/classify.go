package telegram

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/go-telegram/bot"

	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
)

var permissionHints = []string{
	"not enough rights",
	"chat_admin_required",
	"have no rights",
	"can't be deleted",
	"message can't be edited",
	"bot was kicked",
	"bot is not a member",
	"need administrator rights",
}

var transientHints = []string{
	"too many requests",
	"internal server error",
	"bad gateway",
	"gateway timeout",
	"service unavailable",
	"connection reset",
}

// Classify maps a bot API error onto ErrPermission or ErrTransient. The
// original error stays in the chain. Other errors are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrPermission) || errors.Is(err, apperrors.ErrTransient) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, bot.ErrorForbidden), errors.Is(err, bot.ErrorUnauthorized), containsAny(msg, permissionHints):
		return errors.Join(apperrors.ErrPermission, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, bot.ErrorTooManyRequests), containsAny(msg, transientHints):
		return errors.Join(apperrors.ErrTransient, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Join(apperrors.ErrTransient, err)
	}
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrPermission):
		return "permission"
	case errors.Is(err, apperrors.ErrTransient):
		return "transient"
	default:
		return "error"
	}
}

func containsAny(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}
