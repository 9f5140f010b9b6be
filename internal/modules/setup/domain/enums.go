//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Awaiting is the input a configuration dialog expects next
// ENUM(nothing,channel,moderator,edit_grace)
type Awaiting string

// ForwardRoute is the handler chosen for a forwarded private message
// ENUM(none,channel_setup,moderator)
type ForwardRoute string
