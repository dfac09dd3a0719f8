package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	FeedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of external feed operations",
		},
		[]string{"provider", "operation", "status"},
	)
	FeedRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_request_duration_seconds",
			Help:    "External feed operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_hits_total",
			Help: "Total number of feed cache hits",
		},
		[]string{"operation"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_misses_total",
			Help: "Total number of feed cache misses",
		},
		[]string{"operation"},
	)
	CacheOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_cache_operation_duration_seconds",
			Help:    "Cache backend operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	CacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_errors_total",
			Help: "Total number of cache backend errors",
		},
		[]string{"operation"},
	)
)

func Init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(FeedRequestsTotal)
	prometheus.MustRegister(FeedRequestDuration)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(CacheOperationDuration)
	prometheus.MustRegister(CacheErrorsTotal)
}
