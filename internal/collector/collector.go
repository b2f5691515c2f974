// Package collector defines the Collector interface and provides
// implementations for the metrics carried by a SystemMetric.
package collector

import (
	"context"

	"github.com/Guliveer/vitalis-live/internal/models"
)

// Reading is the result of one collection. It writes its values into the
// fields of the sample it owns.
type Reading interface {
	Apply(m *models.SystemMetric)
}

// Collector is the interface that all metric collectors must implement.
// Each collector gathers a specific type of system metric.
type Collector interface {
	// Name returns the unique identifier for this collector.
	Name() string

	// Collect gathers the metric data and returns it.
	// The context allows for cancellation and timeout control.
	Collect(ctx context.Context) (Reading, error)

	// IsAvailable checks if this collector can run on the current platform.
	// Collectors that return false will not be registered.
	IsAvailable() bool
}
