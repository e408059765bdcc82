package course

import (
	"context"
	"fmt"

	courseservice "github.com/Black-And-White-Club/three-under/app/modules/course/application"
	coursecatalog "github.com/Black-And-White-Club/three-under/app/modules/course/infrastructure/catalog"
	coursehandlers "github.com/Black-And-White-Club/three-under/app/modules/course/infrastructure/handlers"
	"github.com/Black-And-White-Club/three-under/internal/observability"
	"github.com/Black-And-White-Club/three-under/internal/observability/metrics"
	"github.com/go-chi/chi/v5"
)

// Module represents the course module.
type Module struct {
	Catalog       *coursecatalog.Catalog
	CourseService courseservice.Service
	observability observability.Observability
}

// NewCourseModule loads the catalog (the embedded one when catalogPath is
// empty) and registers the HTTP routes when httpRouter is non-nil.
func NewCourseModule(
	ctx context.Context,
	obs observability.Observability,
	catalogPath string,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	var (
		catalog *coursecatalog.Catalog
		err     error
	)
	if catalogPath != "" {
		catalog, err = coursecatalog.LoadFile(catalogPath)
	} else {
		catalog, err = coursecatalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load course catalog: %w", err)
	}
	logger.InfoContext(ctx, "Course catalog loaded", "courses", catalog.Len(), "path", catalogPath)

	var opMetrics metrics.OperationMetrics = metrics.NewNoop()
	if obs.Registry.Prometheus != nil {
		opMetrics = metrics.NewOperationMetrics(obs.Registry.Prometheus, "course")
	}

	service := courseservice.NewCourseService(catalog, logger, opMetrics, tracer)

	if httpRouter != nil {
		coursehandlers.NewCourseHandlers(service, logger, tracer).Routes(httpRouter)
	}

	return &Module{
		Catalog:       catalog,
		CourseService: service,
		observability: obs,
	}, nil
}

// Close is a no-op; the catalog holds no resources.
func (m *Module) Close() error {
	m.observability.Provider.Logger.Info("Course module stopped")
	return nil
}
