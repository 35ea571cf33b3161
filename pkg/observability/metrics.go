package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records simulation outcomes as Prometheus collectors.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Steps    prometheus.Counter
	Length   prometheus.Histogram
	Duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dfakit_runs_total",
				Help: "Total number of simulations by verdict and halting status",
			},
			[]string{"verdict", "status"},
		),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dfakit_steps_total",
			Help: "Total number of symbols consumed by the simulator",
		}),
		Length: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dfakit_input_length",
			Help:    "Length in symbols of simulated inputs",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dfakit_run_duration_seconds",
			Help:    "Duration of simulations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 7),
		}),
	}

	for _, c := range []prometheus.Collector{m.Runs, m.Steps, m.Length, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			if e.Result == nil {
				return
			}
			m.Runs.WithLabelValues(string(e.Result.Verdict), string(e.Result.Status)).Inc()
			m.Length.Observe(float64(len([]rune(e.Input))))
			m.Duration.Observe(e.Duration.Seconds())
		},
	}
}
