package ports

import (
	"context"
	"time"
)

// MetricsExporter exports run metrics to an external observability system.
type MetricsExporter interface {
	// ExportRunMetrics exports metrics for a finished run.
	ExportRunMetrics(ctx context.Context, m *RunMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// RunMetrics summarises one finished run.
type RunMetrics struct {
	RunID        string
	Kind         string
	Target       string
	Status       string
	DataExported bool

	ArtifactCount int64
	ArtifactBytes int64

	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns the wall time of the run.
func (m *RunMetrics) Duration() time.Duration { return m.EndedAt.Sub(m.StartedAt) }
