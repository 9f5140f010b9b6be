package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors of the bot
type Metrics struct {
	Registry *prometheus.Registry

	UpdatesReceived *prometheus.CounterVec
	RouteErrors     *prometheus.CounterVec

	EditsProcessed   *prometheus.CounterVec
	PlaceholderUsed  prometheus.Counter
	DeleteFailures   prometheus.Counter
	EditHandleTiming prometheus.Histogram

	PlatformCalls *prometheus.CounterVec

	BindingsRegistered prometheus.Counter
	SetupRejected      *prometheus.CounterVec
}

// New registers every collector on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		UpdatesReceived: f.NewCounterVec(prometheus.CounterOpts{
			Name: "editaudit_updates_received_total",
			Help: "Updates received from the platform by kind",
		}, []string{"kind"}),
		RouteErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "editaudit_route_errors_total",
			Help: "Handler failures by route",
		}, []string{"route"}),

		EditsProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "editaudit_edits_processed_total",
			Help: "Edit events by outcome",
		}, []string{"outcome"}),
		PlaceholderUsed: f.NewCounter(prometheus.CounterOpts{
			Name: "editaudit_placeholder_used_total",
			Help: "Audit copies published without a known original",
		}),
		DeleteFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "editaudit_delete_failures_total",
			Help: "Edited messages that could not be removed after publishing",
		}),
		EditHandleTiming: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "editaudit_edit_handle_seconds",
			Help:    "Time spent handling a single edit event",
			Buckets: prometheus.DefBuckets,
		}),

		PlatformCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "editaudit_platform_calls_total",
			Help: "Bot API calls by method and result",
		}, []string{"method", "result"}),

		BindingsRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "editaudit_bindings_registered_total",
			Help: "Channel bindings written by the setup flow",
		}),
		SetupRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "editaudit_setup_rejected_total",
			Help: "Channel setup attempts rejected by reason",
		}, []string{"reason"}),
	}
}

// TrackCacheEntries exposes the size of the message cache. size is read on
// every scrape, so entries dropped by expiry are reflected too.
func (m *Metrics) TrackCacheEntries(size func() int) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "editaudit_message_cache_entries",
		Help: "Messages currently held in the content cache",
	}, func() float64 { return float64(size()) }))
}
