package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyglobe_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheLookups counts cache lookups by tier and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyglobe_cache_lookups_total",
		Help: "Cache lookups by tier (redis, local) and result (hit, miss)",
	}, []string{"tier", "result"})

	// PostcardsCreated counts successfully created postcards.
	PostcardsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studyglobe_postcards_created_total",
		Help: "Total number of postcards created",
	})

	// PostcardLikes counts accepted likes.
	PostcardLikes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studyglobe_postcard_likes_total",
		Help: "Total number of postcard likes recorded",
	})

	// UploadBytes records stored blob sizes by folder.
	UploadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studyglobe_upload_bytes",
		Help:    "Size of stored uploads in bytes",
		Buckets: prometheus.ExponentialBuckets(16<<10, 2, 10),
	}, []string{"folder"})

	// GatewayRequests counts API client calls by operation and outcome.
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyglobe_gateway_requests_total",
		Help: "API client requests by operation and outcome",
	}, []string{"operation", "outcome"})

	// GatewayBreakerState reports the circuit breaker state (0 closed, 1 half-open, 2 open).
	GatewayBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "studyglobe_gateway_breaker_state",
		Help: "Circuit breaker state of the API client",
	}, []string{"name"})
)
