// Package metrics instruments the solve pipeline with Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SolveSink records model-build and solve events in Prometheus metrics.
type SolveSink struct {
	components *prometheus.GaugeVec
	solves     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewSolveSink registers solve metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are
// already registered, the existing ones are reused.
func NewSolveSink(reg prometheus.Registerer) (*SolveSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	components := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "model_components",
		Help: "Number of variables and constraints in the built model",
	}, []string{"kind"})
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "model_solves_total",
		Help: "Total number of solve attempts",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "model_solve_duration_seconds",
		Help:    "Wall time spent in the simplex solver",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	for _, c := range []prometheus.Collector{components, solves, duration} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch existing := are.ExistingCollector.(type) {
			case *prometheus.GaugeVec:
				components = existing
			case *prometheus.CounterVec:
				solves = existing
			case *prometheus.HistogramVec:
				duration = existing
			}
		}
	}

	return &SolveSink{components: components, solves: solves, duration: duration}, nil
}

// RecordModelSize sets the component gauges after the build phase.
func (s *SolveSink) RecordModelSize(vars, constraints int) {
	s.components.WithLabelValues("variables").Set(float64(vars))
	s.components.WithLabelValues("constraints").Set(float64(constraints))
}

// RecordSolve counts a solve attempt and observes its duration.
func (s *SolveSink) RecordSolve(outcome string, seconds float64) {
	s.solves.WithLabelValues(outcome).Inc()
	s.duration.WithLabelValues(outcome).Observe(seconds)
}
