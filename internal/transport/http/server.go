package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/feeds"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	sloghttp "github.com/samber/slog-http"

	"github.com/reshetovitsme/edit-audit-bot/internal/shared/config"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/metrics"
	"github.com/reshetovitsme/edit-audit-bot/internal/transport/telegram"
)

const (
	secretHeader   = "X-Telegram-Bot-Api-Secret-Token"
	maxUpdateBytes = 1 << 20
)

// Submitter queues an update for handling.
type Submitter interface {
	Submit(ctx context.Context, ev telegram.Event) error
}

// FeedSource builds the audit feed of a chat.
type FeedSource interface {
	GenerateFeed(ctx context.Context, chatID int64, baseURL string) (*feeds.Feed, error)
}

// Server receives webhook updates and serves health, metrics and audit
// feeds
type Server struct {
	cfg     *config.Config
	updates Submitter
	feeds   FeedSource
	metrics *metrics.Metrics
	logger  *slog.Logger
	server  *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, updates Submitter, feedSource FeedSource, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:     cfg,
		updates: updates,
		feeds:   feedSource,
		metrics: m,
		logger:  slog.Default(),
	}
	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.cfg.UpdateMode == config.UpdateModeWebhook {
		mux.HandleFunc("POST /webhook", s.handleWebhook)
	}
	mux.HandleFunc("GET /feeds/{chatID}", s.handleFeed)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{Registry: s.metrics.Registry}))

	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)
	return handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.server.Addr, "update_mode", s.cfg.UpdateMode)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for the active ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.WebhookSecret != "" &&
		subtle.ConstantTimeCompare([]byte(r.Header.Get(secretHeader)), []byte(s.cfg.WebhookSecret)) != 1 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpdateBytes))
	if err != nil {
		http.Error(w, "Failed to read update", http.StatusBadRequest)
		return
	}

	ev, err := telegram.DecodeEvent(body)
	if err != nil {
		s.logger.Warn("Rejected malformed update", "error", err)
		http.Error(w, "Malformed update", http.StatusBadRequest)
		return
	}

	if err := s.updates.Submit(r.Context(), ev); err != nil {
		s.logger.Error("Failed to queue update", "update_id", ev.Update.ID, "error", err)
		http.Error(w, "Update not accepted", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.cfg.FeedToken == "" {
		http.NotFound(w, r)
		return
	}
	if subtle.ConstantTimeCompare([]byte(r.URL.Query().Get("token")), []byte(s.cfg.FeedToken)) != 1 {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	chatID, err := strconv.ParseInt(r.PathValue("chatID"), 10, 64)
	if err != nil {
		http.Error(w, "Chat ID must be a number", http.StatusBadRequest)
		return
	}

	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)
	feed, err := s.feeds.GenerateFeed(r.Context(), chatID, baseURL)
	if err != nil {
		if errors.Is(err, apperrors.ErrChatNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("Error generating feed", "chat_id", chatID, "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		s.logger.Error("Error converting feed to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
