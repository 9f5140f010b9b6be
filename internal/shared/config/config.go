package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	TelegramBotToken     string        `koanf:"telegram_bot_token"`
	TelegramAPIURL       string        `koanf:"telegram_api_url"`
	UpdateMode           UpdateMode    `koanf:"update_mode"`
	WebhookURL           string        `koanf:"webhook_url"`
	WebhookSecret        string        `koanf:"webhook_secret"`
	HTTPHost             string        `koanf:"http_host"`
	HTTPPort             string        `koanf:"http_port"`
	DatabaseURL          string        `koanf:"database_url"`
	OwnerIDs             []int64       `koanf:"-"`
	MessageCacheSize     int           `koanf:"message_cache_size"`
	MessageCacheTTL      time.Duration `koanf:"message_cache_ttl"`
	AdminRefreshInterval time.Duration `koanf:"admin_refresh_interval"`
	SessionTTL           time.Duration `koanf:"session_ttl"`
	RequestTimeout       time.Duration `koanf:"request_timeout"`
	Lanes                int           `koanf:"lanes"`
	FeedToken            string        `koanf:"feed_token"`
	FeedLimit            int           `koanf:"feed_limit"`
	LogLevel             string        `koanf:"log_level"`
	AppEnv               AppEnv        `koanf:"app_env"`
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTPHost, c.HTTPPort)
}

// IsOwner reports whether the user is listed in owner_ids.
func (c *Config) IsOwner(userID int64) bool {
	return lo.Contains(c.OwnerIDs, userID)
}

func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads config.{yaml,yml,json,toml} and .env from dir, then the
// process environment, which wins over both.
func LoadFrom(dir string) (*Config, error) {
	k := koanf.New(".")

	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	configFile, found := lo.Find(configFiles, func(name string) bool {
		_, err := os.Stat(filepath.Join(dir, name))
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		path := filepath.Join(dir, configFile)
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, oops.With("config_file", path).Wrap(err)
		}
	}

	// .env does not override variables already present in the environment
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.With("context", "loading .env").Wrap(err)
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	defaults := map[string]any{
		"telegram_api_url":       "https://api.telegram.org",
		"update_mode":            string(UpdateModeWebhook),
		"http_host":              "0.0.0.0",
		"http_port":              "8000",
		"message_cache_size":     10000,
		"message_cache_ttl":      "24h",
		"admin_refresh_interval": "10m",
		"session_ttl":            "30m",
		"request_timeout":        "10s",
		"lanes":                  8,
		"feed_limit":             50,
		"log_level":              "info",
		"app_env":                string(AppEnvProduction),
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	if owners := k.Get("owner_ids"); owners != nil {
		switch v := owners.(type) {
		case string:
			cfg.OwnerIDs = ParseOwnerIDs(v)
		case []interface{}:
			cfg.OwnerIDs = lo.FilterMap(v, func(item interface{}, _ int) (int64, bool) {
				switch val := item.(type) {
				case int64:
					return val, true
				case int:
					return int64(val), true
				case float64:
					return int64(val), true
				case string:
					ids := ParseOwnerIDs(val)
					return lo.FirstOr(ids, 0), len(ids) == 1
				default:
					return 0, false
				}
			})
		}
	}

	if env, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = env
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	mode, err := ParseUpdateMode(k.String("update_mode"))
	if err != nil {
		return nil, oops.With("update_mode", k.String("update_mode")).Wrap(err)
	}
	cfg.UpdateMode = mode

	if cfg.Lanes < 1 {
		cfg.Lanes = 1
	}
	if cfg.MessageCacheSize < 1 {
		cfg.MessageCacheSize = 1
	}

	if cfg.TelegramBotToken == "" {
		return nil, apperrors.ErrMissingBotToken
	}
	if cfg.DatabaseURL == "" {
		return nil, apperrors.ErrMissingDatabaseURL
	}
	if cfg.UpdateMode == UpdateModeWebhook && cfg.WebhookURL == "" {
		return nil, apperrors.ErrMissingWebhookURL
	}

	return &cfg, nil
}

// ParseOwnerIDs parses comma-separated user IDs string into []int64
func ParseOwnerIDs(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}
