// Package metrics exposes Prometheus metrics for the matching engine.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solarmatch"

// Recorder is nil-safe: a nil Recorder silently drops observations so
// callers never have to guard metric calls.
type Recorder struct {
	matchRequests     *prometheus.CounterVec
	candidatesScored  prometheus.Counter
	matchDuration     prometheus.Histogram
	trainingRuns      *prometheus.CounterVec
	trainingDuration  prometheus.Histogram
	candidatePoolSize prometheus.Gauge
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		matchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_requests_total",
			Help:      "Match requests by outcome.",
		}, []string{"outcome"}),
		candidatesScored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_scored_total",
			Help:      "Candidates scored across all match requests.",
		}),
		matchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "End-to-end duration of one match request.",
			Buckets:   prometheus.DefBuckets,
		}),
		trainingRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_runs_total",
			Help:      "Model training runs by outcome.",
		}, []string{"outcome"}),
		trainingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Duration of one model training run.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		}),
		candidatePoolSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidate_pool_size",
			Help:      "Size of the candidate pool at the last training run.",
		}),
	}
}

func (r *Recorder) ObserveMatch(outcome string, scored int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.matchRequests.WithLabelValues(outcome).Inc()
	r.candidatesScored.Add(float64(scored))
	r.matchDuration.Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveTraining(outcome string, samples int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.trainingRuns.WithLabelValues(outcome).Inc()
	if samples > 0 {
		r.candidatePoolSize.Set(float64(samples))
	}
	r.trainingDuration.Observe(elapsed.Seconds())
}

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
