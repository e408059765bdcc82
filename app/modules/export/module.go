package export

import (
	"context"

	exportservice "github.com/Black-And-White-Club/three-under/app/modules/export/application"
	exporthandlers "github.com/Black-And-White-Club/three-under/app/modules/export/infrastructure/handlers"
	"github.com/Black-And-White-Club/three-under/internal/observability"
	"github.com/Black-And-White-Club/three-under/internal/observability/metrics"
	"github.com/go-chi/chi/v5"
)

// Module represents the export module.
type Module struct {
	ExportService exportservice.Service
	observability observability.Observability
}

// NewExportModule wires the export service over rounds and registers its routes.
func NewExportModule(ctx context.Context, obs observability.Observability, rounds exportservice.RoundReader, httpRouter chi.Router) (*Module, error) {
	logger := obs.Provider.Logger

	var opMetrics metrics.OperationMetrics = metrics.NewNoop()
	if obs.Registry.Prometheus != nil {
		opMetrics = metrics.NewOperationMetrics(obs.Registry.Prometheus, "export")
	}

	service := exportservice.NewExportService(rounds, logger, opMetrics, obs.Registry.Tracer)
	if httpRouter != nil {
		exporthandlers.NewExportHandlers(service, logger).Routes(httpRouter)
	}

	logger.InfoContext(ctx, "Export module initialized")
	return &Module{ExportService: service, observability: obs}, nil
}

// Close is a no-op.
func (m *Module) Close() error {
	m.observability.Provider.Logger.Info("Export module stopped")
	return nil
}
