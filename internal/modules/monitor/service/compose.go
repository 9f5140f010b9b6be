package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	auditDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/monitor/domain"
)

// maxSectionRunes keeps a composed copy below the 4096 character message
// limit with both texts at full size.
const maxSectionRunes = 1800

const timeLayout = "2006-01-02 15:04:05 MST"

// Compose renders the plain text audit copy of an edit.
func Compose(ev domain.EditEvent, original string, originalKnown, deleteEnabled bool) string {
	var b strings.Builder

	b.WriteString("✏️ Edited message\n")
	fmt.Fprintf(&b, "Chat: %s (%d)\n", fallback(ev.ChatTitle, "unknown chat"), ev.ChatID)
	fmt.Fprintf(&b, "Author: %s\n", authorLine(ev))
	fmt.Fprintf(&b, "Message ID: %d\n", ev.MessageID)
	if !ev.SentAt.IsZero() {
		fmt.Fprintf(&b, "Sent: %s\n", ev.SentAt.UTC().Format(timeLayout))
	}
	if !ev.EditedAt.IsZero() {
		fmt.Fprintf(&b, "Edited: %s\n", ev.EditedAt.UTC().Format(timeLayout))
	}
	if ev.Media != "" {
		fmt.Fprintf(&b, "Media: %s\n", ev.Media)
	}

	before := original
	if !originalKnown {
		before = auditDomain.OriginalUnavailable
	}
	fmt.Fprintf(&b, "\nBefore:\n%s\n", truncate(fallback(before, "(no text)"), maxSectionRunes))
	fmt.Fprintf(&b, "\nAfter:\n%s\n", truncate(fallback(ev.EditedText, "(no text)"), maxSectionRunes))

	if deleteEnabled {
		b.WriteString("\nAction: message will be removed from the chat")
	} else {
		b.WriteString("\nAction: message kept in the chat (deletion disabled)")
	}

	return b.String()
}

func authorLine(ev domain.EditEvent) string {
	name := fallback(ev.EditorName, "unknown")
	if ev.EditorLogin != "" {
		return fmt.Sprintf("%s (@%s, id %d)", name, ev.EditorLogin, ev.EditorID)
	}
	return fmt.Sprintf("%s (id %d)", name, ev.EditorID)
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "…"
}

func graceElapsed(ev domain.EditEvent, grace time.Duration) bool {
	if grace <= 0 || ev.SentAt.IsZero() || ev.EditedAt.IsZero() {
		return true
	}
	return ev.EditedAt.Sub(ev.SentAt) > grace
}
