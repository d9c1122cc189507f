package otel

import (
	"context"

	"github.com/deepceutix/datagen/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) ExportRunMetrics(ctx context.Context, m *ports.RunMetrics) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}

// Open returns an OTLP exporter when cfg is active and a no-op exporter otherwise.
func Open(ctx context.Context, cfg Config) (ports.MetricsExporter, error) {
	if !cfg.Active() {
		return NewNoOpExporter(), nil
	}
	return NewExporter(ctx, cfg)
}
