//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// MediaType represents the type of media a message carries
// ENUM(photo,video,document,audio,voice,animation)
type MediaType string
