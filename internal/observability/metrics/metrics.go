package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	invoicesCreated  metric.Int64Counter
	invoicesRendered metric.Int64Counter
	conflicts        metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "faktura"
	}
	meter := provider.Meter(name)

	invoicesCreated, err := meter.Int64Counter("faktura_invoices_created_total")
	if err != nil {
		return nil, err
	}
	invoicesRendered, err := meter.Int64Counter("faktura_invoices_rendered_total")
	if err != nil {
		return nil, err
	}
	conflicts, err := meter.Int64Counter("faktura_unique_conflicts_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		invoicesCreated:  invoicesCreated,
		invoicesRendered: invoicesRendered,
		conflicts:        conflicts,
	}, nil
}

// RecordInvoiceCreated increments created-invoice counts.
func (m *Metrics) RecordInvoiceCreated(ctx context.Context, lineCount int) {
	if m == nil {
		return
	}
	m.invoicesCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("line_count", lineCount),
	))
}

// RecordInvoiceRendered increments rendered-PDF counts.
func (m *Metrics) RecordInvoiceRendered(ctx context.Context) {
	if m == nil {
		return
	}
	m.invoicesRendered.Add(ctx, 1)
}

// RecordUniqueConflict increments translated uniqueness-conflict counts.
func (m *Metrics) RecordUniqueConflict(ctx context.Context, entity, field string) {
	if m == nil {
		return
	}
	m.conflicts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", strings.TrimSpace(entity)),
		attribute.String("field", strings.TrimSpace(field)),
	))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}
