// Package observability builds the logger, tracer and Prometheus registry that
// every module receives at construction time.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds observability settings derived from the application config.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	LogLevel    string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Provider exposes the logging side.
type Provider struct {
	Logger *slog.Logger
}

// Registry exposes tracing and metrics.
type Registry struct {
	Tracer     trace.Tracer
	Prometheus *prometheus.Registry
}

// Observability bundles what a module needs to log, trace and measure.
type Observability struct {
	Provider Provider
	Registry Registry
}

// Init wires slog, the global OpenTelemetry tracer and a fresh Prometheus
// registry with the Go and process collectors registered.
func Init(cfg Config) Observability {
	logger := NewLogger(cfg)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	name := cfg.ServiceName
	if name == "" {
		name = "three-under"
	}

	return Observability{
		Provider: Provider{Logger: logger},
		Registry: Registry{
			Tracer:     otel.Tracer(name),
			Prometheus: reg,
		},
	}
}

// NewNoop returns an Observability that discards logs and traces and uses an
// empty registry. Intended for tests and the local CLI.
func NewNoop() Observability {
	return Observability{
		Provider: Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: Registry{
			Tracer:     noop.NewTracerProvider().Tracer("noop"),
			Prometheus: prometheus.NewRegistry(),
		},
	}
}

// NewLogger builds the process logger. Development environments get the text
// handler, everything else JSON.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Environment, "development") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler)
	if cfg.ServiceName != "" {
		logger = logger.With(slog.String("service", cfg.ServiceName))
	}
	if cfg.Version != "" {
		logger = logger.With(slog.String("version", cfg.Version))
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
