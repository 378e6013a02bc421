package transport

import "github.com/prometheus/client_golang/prometheus"

var (
	fetchCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stationboard_fetch_count",
		Help: "Number of stationboard fetch cycles by outcome",
	}, []string{"outcome"})
	fetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "stationboard_fetch_duration_seconds",
		Help:    "Wall time of stationboard fetch cycles",
		Buckets: prometheus.DefBuckets,
	})
	locationsCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "locations_search_count",
		Help: "Number of station searches by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(fetchCount, fetchDuration, locationsCount)
}
