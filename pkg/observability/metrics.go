package observability

import (
	"context"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the engine hooks.
type Metrics struct {
	Rebuilds    *prometheus.CounterVec
	Rotations   prometheus.Counter
	Chunks      prometheus.Gauge
	StoreErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Rebuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marquee_rebuilds_total",
				Help: "Total number of chunk rebuilds, by form action",
			},
			[]string{"action"},
		),
		Rotations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "marquee_rotations_total",
				Help: "Total number of times the display advanced to the next chunk",
			},
		),
		Chunks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "marquee_chunks",
				Help: "Number of chunks in the current sequence",
			},
		),
		StoreErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marquee_store_errors_total",
				Help: "Total number of failed settings/text store operations",
			},
			[]string{"store", "op"},
		),
	}
	reg.MustRegister(m.Rebuilds, m.Rotations, m.Chunks, m.StoreErrors)
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRebuild: func(ctx context.Context, e *domain.RebuildEvent) {
			m.Rebuilds.WithLabelValues(string(e.Action)).Inc()
			m.Chunks.Set(float64(e.Chunks))
		},
		OnRotate: func(ctx context.Context, e *domain.RotateEvent) {
			m.Rotations.Inc()
		},
		OnStoreError: func(ctx context.Context, e *domain.StoreErrorEvent) {
			m.StoreErrors.WithLabelValues(e.Store, e.Op).Inc()
		},
	}
}

// Chain combines several hook sets; each callback runs in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRebuild: func(ctx context.Context, e *domain.RebuildEvent) {
			for _, h := range hooks {
				if h.OnRebuild != nil {
					h.OnRebuild(ctx, e)
				}
			}
		},
		OnRotate: func(ctx context.Context, e *domain.RotateEvent) {
			for _, h := range hooks {
				if h.OnRotate != nil {
					h.OnRotate(ctx, e)
				}
			}
		},
		OnStoreError: func(ctx context.Context, e *domain.StoreErrorEvent) {
			for _, h := range hooks {
				if h.OnStoreError != nil {
					h.OnStoreError(ctx, e)
				}
			}
		},
	}
}
