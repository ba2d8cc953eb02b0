package collision

import (
	"time"

	"go.uber.org/zap"
)

// Dimension labels the 2D and 3D collections in logs and metrics
type Dimension string

const (
	Dimension2D Dimension = "2d"
	Dimension3D Dimension = "3d"
)

// Metrics receives the activity of the collections.
// The metrics package provides a prometheus implementation.
type Metrics interface {
	SetColliders(dimension Dimension, count int)
	IncEvent(dimension Dimension, event Event)
	ObserveUpdate(dimension Dimension, tested, hits int, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) SetColliders(Dimension, int)                      {}
func (nopMetrics) IncEvent(Dimension, Event)                        {}
func (nopMetrics) ObserveUpdate(Dimension, int, int, time.Duration) {}

type options struct {
	logger   *zap.Logger
	metrics  Metrics
	capacity int
}

type Option func(*options)

// WithLogger sets the logger of the collections, nothing is logged by default
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(metrics Metrics) Option {
	return func(o *options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

// WithCapacity preallocates room for n colliders
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = max(0, n)
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:  zap.NewNop(),
		metrics: nopMetrics{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
