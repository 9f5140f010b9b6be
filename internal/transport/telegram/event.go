package telegram

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"

	forwardDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/forward/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/forward/parser"
	messageDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/message/domain"
	monitorDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/monitor/domain"
)

// Event is one inbound update. Forward holds the forward fields of the
// update's message as they appeared on the wire; it is nil for updates
// that were not received as raw JSON.
type Event struct {
	Update  *models.Update
	Forward *forwardDomain.Payload

	origin *forwardDomain.Result
}

// rawUpdate picks the private message out of a webhook body so forward
// fields unknown to the typed model are not lost.
type rawUpdate struct {
	Message json.RawMessage `json:"message"`
}

// NewEvent wraps an update received by long polling.
func NewEvent(update *models.Update) Event {
	return Event{Update: update}
}

// DecodeEvent decodes a webhook body into the typed update and, when it
// carries a message, the raw forward payload of that message.
func DecodeEvent(body []byte) (Event, error) {
	var update models.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return Event{}, oops.In("telegram").Wrapf(err, "decoding update")
	}

	ev := Event{Update: &update}

	var raw rawUpdate
	if err := json.Unmarshal(body, &raw); err == nil && len(raw.Message) > 0 && string(raw.Message) != "null" {
		if payload, err := parser.FromJSON(raw.Message); err == nil {
			ev.Forward = &payload
		}
	}
	return ev, nil
}

// Origin parses the forward origin of the event's message once.
func (e *Event) Origin() forwardDomain.Result {
	if e.origin != nil {
		return *e.origin
	}

	var payload forwardDomain.Payload
	switch {
	case e.Forward != nil:
		payload = *e.Forward
	case e.Update != nil && e.Update.Message != nil:
		payload = parser.FromMessage(e.Update.Message)
	}
	res := parser.Parse(payload)
	e.origin = &res
	return res
}

// Kind names the update type for logs and metrics.
func (e *Event) Kind() string {
	u := e.Update
	switch {
	case u == nil:
		return "empty"
	case u.EditedMessage != nil:
		return "edited_message"
	case u.MyChatMember != nil:
		return "my_chat_member"
	case u.CallbackQuery != nil:
		return "callback_query"
	case u.Message != nil:
		return "message"
	default:
		return "other"
	}
}

// ChatKey is the chat whose events must be handled in arrival order.
// Callback queries are keyed by the user pressing the button.
func (e *Event) ChatKey() int64 {
	u := e.Update
	switch {
	case u == nil:
		return 0
	case u.EditedMessage != nil:
		return u.EditedMessage.Chat.ID
	case u.Message != nil:
		return u.Message.Chat.ID
	case u.MyChatMember != nil:
		return u.MyChatMember.Chat.ID
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From.ID
	default:
		return 0
	}
}

func editEvent(msg *models.Message) monitorDomain.EditEvent {
	ev := monitorDomain.EditEvent{
		ChatID:     msg.Chat.ID,
		ChatTitle:  msg.Chat.Title,
		ChatType:   string(msg.Chat.Type),
		MessageID:  int64(msg.ID),
		EditedText: messageText(msg),
		Media:      mediaOf(msg),
		SentAt:     unix(int64(msg.Date)),
		EditedAt:   unix(int64(msg.EditDate)),
	}
	if msg.From != nil {
		ev.EditorID = msg.From.ID
		ev.EditorName = displayName(msg.From)
		ev.EditorLogin = msg.From.Username
		ev.EditorIsBot = msg.From.IsBot
	}
	return ev
}

func snapshotOf(msg *models.Message) messageDomain.Snapshot {
	snap := messageDomain.Snapshot{
		ChatID:    msg.Chat.ID,
		MessageID: int64(msg.ID),
		Text:      messageText(msg),
		Media:     mediaOf(msg),
		SentAt:    unix(int64(msg.Date)),
	}
	if msg.From != nil {
		snap.AuthorID = msg.From.ID
	}
	return snap
}

// messageText treats a caption as the text of a media message.
func messageText(msg *models.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

func mediaOf(msg *models.Message) messageDomain.MediaType {
	switch {
	case len(msg.Photo) > 0:
		return messageDomain.MediaTypePhoto
	case msg.Animation != nil:
		return messageDomain.MediaTypeAnimation
	case msg.Video != nil:
		return messageDomain.MediaTypeVideo
	case msg.Document != nil:
		return messageDomain.MediaTypeDocument
	case msg.Audio != nil:
		return messageDomain.MediaTypeAudio
	case msg.Voice != nil:
		return messageDomain.MediaTypeVoice
	default:
		return ""
	}
}

func displayName(u *models.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "Unknown"
}

func unix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
