package recipes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK         = "ok"
	outcomeIncomplete = "incomplete"
	outcomeError      = "error"
)

var (
	cacheHitsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "samvad_recipes_cache_hits_total",
		Help: "Total number of recipe reads served from the cache",
	})

	cacheMissesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "samvad_recipes_cache_misses_total",
		Help: "Total number of recipe reads that went to the network",
	}, []string{"reason"}) // reason: empty, force_refresh

	fetchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "samvad_recipes_fetch_total",
		Help: "Total number of catalog fetches by outcome",
	}, []string{"outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "samvad_recipes_fetch_duration_seconds",
		Help:    "Duration of catalog fetch and mapping",
		Buckets: prometheus.DefBuckets,
	})

	cachedRecordsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "samvad_recipes_cached_records",
		Help: "Number of recipes currently held in the cache",
	})
)
