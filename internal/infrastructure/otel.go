package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"skillpulse/pkg/contracts"
)

const (
	ServiceName = "skillpulse"
	MeterName   = "skillpulse"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	TraceExporter  string // "stdout", "file", "none"
	TraceFile      string // used by the file exporter
	TraceWriter    io.Writer
	SampleRatio    float64
	EnableMetrics  bool
}

// OTelProviders holds the OpenTelemetry providers for one run.
// Providers are local to the run and never installed globally.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prom.Registry
	Logger         *slog.Logger

	traceFile *os.File
}

// DefaultOTelConfig returns a configuration with metrics on and tracing off
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: contracts.Version,
		TraceExporter:  "none",
		SampleRatio:    1.0,
		EnableMetrics:  true,
	}
}

// InitializeOTel creates the tracer and meter providers
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()

	res := createResource(cfg)

	providers := &OTelProviders{
		Logger: logger,
		Tracer: noop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
	}

	if err := initializeTracing(ctx, cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	logger.DebugContext(ctx, "OpenTelemetry initialization complete",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("service.instance.id", GenerateRunID()),
	)
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var writer io.Writer

	switch cfg.TraceExporter {
	case "", "none":
		return nil
	case "stdout":
		writer = os.Stdout
		if cfg.TraceWriter != nil {
			writer = cfg.TraceWriter
		}
	case "file":
		if cfg.TraceFile == "" {
			return fmt.Errorf("file trace exporter requires a trace file")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
			return fmt.Errorf("failed to create trace directory: %w", err)
		}
		file, err := os.Create(cfg.TraceFile)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		providers.traceFile = file
		writer = file
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(writer),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// Syncer so every span is on disk when the run ends
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))

	providers.Logger.DebugContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics sets up OpenTelemetry metrics backed by a private Prometheus registry
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := prom.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

	providers.Logger.DebugContext(ctx, "Metrics initialized", slog.String("exporter", "prometheus"))

	return nil
}

// WriteMetrics writes the current metric values in Prometheus text format
func (p *OTelProviders) WriteMetrics(path string) error {
	if p.Registry == nil {
		return fmt.Errorf("metrics are disabled")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	return prom.WriteToTextfile(path, p.Registry)
}

// Shutdown flushes and shuts down the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if p.traceFile != nil {
		if err := p.traceFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
		p.traceFile = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	p.Logger.DebugContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// AddSpanEvent adds an event to the current span with structured attributes
func AddSpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(toAttributes(attributes)...))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || err == nil {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(toAttributes(attributes)...)
}

func toAttributes(attributes map[string]interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	return attrs
}
