package otel

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/deepceutix/datagen/internal/ports"
)

const (
	serviceName    = "datagen"
	serviceVersion = "1.0.0"
)

// Exporter exports run metrics to an OTEL Collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	runsTotal     metric.Int64Counter
	durationHist  metric.Float64Histogram
	artifactBytes metric.Int64Histogram
	dataExported  metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Active() {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	runsTotal, err := meter.Int64Counter(
		"datagen_runs_total",
		metric.WithDescription("Total number of scenario and generate runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"datagen_run_duration_seconds",
		metric.WithDescription("Run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	artifactBytes, err := meter.Int64Histogram(
		"datagen_run_artifact_bytes",
		metric.WithDescription("Bytes of artifacts written per run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating artifact bytes histogram: %w", err)
	}

	dataExported, err := meter.Int64Counter(
		"datagen_data_exports_total",
		metric.WithDescription("Runs that wrote a data.json sidecar"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating data export counter: %w", err)
	}

	return &Exporter{
		provider:      provider,
		runsTotal:     runsTotal,
		durationHist:  durationHist,
		artifactBytes: artifactBytes,
		dataExported:  dataExported,
	}, nil
}

// ExportRunMetrics records metrics for a finished run.
func (e *Exporter) ExportRunMetrics(ctx context.Context, m *ports.RunMetrics) error {
	opt := metric.WithAttributes(
		attribute.String("kind", m.Kind),
		attribute.String("target", m.Target),
		attribute.String("status", m.Status),
		attribute.String("data_exported", strconv.FormatBool(m.DataExported)),
	)

	e.runsTotal.Add(ctx, 1, opt)
	e.durationHist.Record(ctx, m.Duration().Seconds(), opt)
	e.artifactBytes.Record(ctx, m.ArtifactBytes, opt)
	if m.DataExported {
		e.dataExported.Add(ctx, 1, opt)
	}

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
