package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Solve holds the collectors for the solve endpoint.
type Solve struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
	words    prometheus.Histogram
	paths    prometheus.Histogram
}

// NewSolve creates the solve collectors and registers them with reg.
func NewSolve(reg prometheus.Registerer) *Solve {
	m := &Solve{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boggle_solve_requests_total",
				Help: "Solve requests by HTTP status code.",
			},
			[]string{"code"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boggle_solve_duration_seconds",
			Help:    "Time spent searching a board.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		words: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boggle_words_found",
			Help:    "Distinct words found per board.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		paths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boggle_paths_explored",
			Help:    "Path prefixes looked up per board.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.words, m.paths)
	return m
}

// ObserveRequest counts one finished request.
func (m *Solve) ObserveRequest(code int) {
	m.requests.WithLabelValues(strconv.Itoa(code)).Inc()
}

// ObserveSearch records one completed search.
func (m *Solve) ObserveSearch(elapsed time.Duration, words, paths int) {
	m.duration.Observe(elapsed.Seconds())
	m.words.Observe(float64(words))
	m.paths.Observe(float64(paths))
}
