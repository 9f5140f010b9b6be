//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Kind is the canonical classification of a forwarded message's source
// ENUM(none,channel,user,unknown)
type Kind string

// Format records which wire representation produced the origin
// ENUM(none,legacy,origin)
type Format string
