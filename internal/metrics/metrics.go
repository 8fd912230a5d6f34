package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 按源统计抓取行为，/metrics 暴露
var (
	FetchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newspulse_fetch_requests_total",
		Help: "Feed fetch requests, by feed name.",
	}, []string{"feed"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newspulse_cache_hits_total",
		Help: "Fetch requests served from the in-memory cache.",
	}, []string{"feed"})

	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newspulse_upstream_errors_total",
		Help: "Upstream fetch failures (network error or non-2xx status).",
	}, []string{"feed"})

	StaleFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newspulse_stale_fallbacks_total",
		Help: "Requests served from a stale cache entry after an upstream failure.",
	}, []string{"feed"})
)
