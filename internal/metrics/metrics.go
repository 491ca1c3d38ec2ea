package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Price feed metrics
	FeedResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantengine_feed_resolutions_total",
			Help: "Total number of price feed resolutions by outcome",
		},
		[]string{"symbol", "source"},
	)

	FeedReadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grantengine_feed_read_duration_seconds",
		Help:    "Single feed round read duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// Dispatch metrics
	DispatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantengine_dispatch_requests_total",
			Help: "Total number of dispatch simulations by outcome",
		},
		[]string{"status"},
	)

	DispatchRecipientsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grantengine_dispatch_recipients_dropped_total",
		Help: "Recipients dropped from dispatch requests during sanitization",
	})

	RouterProbeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantengine_router_probe_failures_total",
			Help: "Failed router typeAndVersion probes by chain selector",
		},
		[]string{"selector"},
	)

	// Plan metrics
	PlanRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantengine_plan_requests_total",
			Help: "Total number of plan computations",
		},
		[]string{"status"},
	)

	// Wallet metrics
	WalletLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grantengine_wallet_lookups_total",
		Help: "Total number of wallet balance lookups",
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grantengine_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grantengine_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
