// Package tracing wires OpenTelemetry spans around editor commands.
package tracing

import (
	"cmp"
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/spanedit/internal/config"
)

// DefaultServiceName identifies spanedit in exported traces.
const DefaultServiceName = "spanedit"

// Config selects how editor spans are sampled and exported. Exporter is
// one of "none", "file", "stdout" or "otlp"; a SampleRate of 0 samples
// everything.
type Config struct {
	Enabled      bool
	Exporter     string
	FilePath     string
	OTLPEndpoint string
	SampleRate   float64
	ServiceName  string
}

// FromConfig converts the tracing section of the application config.
// An empty file path falls back to config.DefaultTracesFilePath.
func FromConfig(cfg config.TracingConfig) Config {
	path := cfg.FilePath
	if path == "" {
		path = config.DefaultTracesFilePath()
	}
	return Config{
		Enabled:      cfg.Enabled,
		Exporter:     cfg.Exporter,
		FilePath:     path,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.SampleRate,
		ServiceName:  DefaultServiceName,
	}
}

// Provider manages the OpenTelemetry tracer provider.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// NewProvider builds the provider described by cfg. A disabled config
// yields a no-op tracer and no global registration.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	}

	build, ok := exporters[cfg.Exporter]
	if !ok {
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
	exporter, err := build(cfg)
	if err != nil {
		return nil, err
	}

	name := cmp.Or(cfg.ServiceName, DefaultServiceName)
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 1.0
	}
	opts := []sdktrace.TracerProviderOption{
		// schemaless so the resource merges with any SDK default
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
	return &Provider{provider: provider, tracer: provider.Tracer(name), enabled: true}, nil
}

// exporters maps exporter names to constructors. "none" keeps spans
// in-process, which still correlates log lines with span ids.
var exporters = map[string]func(Config) (sdktrace.SpanExporter, error){
	"":     noExporter,
	"none": noExporter,
	"file": func(cfg Config) (sdktrace.SpanExporter, error) {
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file_path required for file exporter")
		}
		exp, err := NewFileExporter(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("create file exporter: %w", err)
		}
		return exp, nil
	},
	"stdout": func(Config) (sdktrace.SpanExporter, error) {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return exp, nil
	},
	"otlp": func(cfg Config) (sdktrace.SpanExporter, error) {
		exp, err := otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(cmp.Or(cfg.OTLPEndpoint, "localhost:4317")),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		return exp, nil
	},
}

func noExporter(Config) (sdktrace.SpanExporter, error) { return nil, nil }

// Tracer returns the configured tracer. It is a no-op tracer when tracing
// is disabled.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans. It is a no-op when disabled.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
