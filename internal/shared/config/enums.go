//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package config

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// UpdateMode selects how updates reach the bot
// ENUM(webhook,polling)
type UpdateMode string
