// Package metrics exposes the activity of the collision registry to prometheus.
package metrics

import (
	"time"

	"github.com/akmonengine/collision"
	"github.com/prometheus/client_golang/prometheus"
)

// Labels are bounded: dimension is "2d" or "3d", event is "enter", "stay" or "exit"
const (
	dimensionLabel = "dimension"
	eventLabel     = "event"
)

// Metrics implements collision.Metrics
type Metrics struct {
	colliders      *prometheus.GaugeVec
	pairsTested    *prometheus.CounterVec
	pairsHit       *prometheus.CounterVec
	events         *prometheus.CounterVec
	updateDuration *prometheus.HistogramVec
}

var _ collision.Metrics = (*Metrics)(nil)

// New creates the collectors and registers them to reg
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		colliders: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "colliders",
			Help:      "Current number of registered colliders",
		}, []string{dimensionLabel}),
		pairsTested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_tested_total",
			Help:      "Pairs handed to the narrow phase by Update",
		}, []string{dimensionLabel}),
		pairsHit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_hit_total",
			Help:      "Overlapping pairs found by Update",
		}, []string{dimensionLabel}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Collision events dispatched, per pair",
		}, []string{dimensionLabel, eventLabel}),
		updateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_duration_seconds",
			Help:      "Time spent in Update",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05},
		}, []string{dimensionLabel}),
	}

	collectors := []prometheus.Collector{m.colliders, m.pairsTested, m.pairsHit, m.events, m.updateDuration}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// SetColliders updates the collider gauge
func (m *Metrics) SetColliders(dimension collision.Dimension, count int) {
	m.colliders.WithLabelValues(string(dimension)).Set(float64(count))
}

// IncEvent counts one event of a pair
func (m *Metrics) IncEvent(dimension collision.Dimension, event collision.Event) {
	m.events.WithLabelValues(string(dimension), event.String()).Inc()
}

// ObserveUpdate records a finished Update
func (m *Metrics) ObserveUpdate(dimension collision.Dimension, tested, hits int, elapsed time.Duration) {
	label := string(dimension)
	m.pairsTested.WithLabelValues(label).Add(float64(tested))
	m.pairsHit.WithLabelValues(label).Add(float64(hits))
	m.updateDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}
