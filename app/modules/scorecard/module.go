package scorecard

import (
	"context"

	scorecardservice "github.com/Black-And-White-Club/three-under/app/modules/scorecard/application"
	scorecardhandlers "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/handlers"
	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/three-under/internal/observability"
	scorecardmetrics "github.com/Black-And-White-Club/three-under/internal/observability/metrics/scorecard"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
)

// Module represents the scorecard module.
type Module struct {
	Repository       scorecarddb.Repository
	ScorecardService scorecardservice.Service
	observability    observability.Observability
}

// NewScorecardModule wires the save store, the scorecard service and its HTTP
// routes. publisher and httpRouter may be nil.
func NewScorecardModule(
	ctx context.Context,
	obs observability.Observability,
	store scorecarddb.Store,
	courses scorecardservice.CourseLookup,
	publisher message.Publisher,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	var scMetrics scorecardmetrics.ScorecardMetrics = scorecardmetrics.NewNoop()
	if obs.Registry.Prometheus != nil {
		scMetrics = scorecardmetrics.New(obs.Registry.Prometheus)
	}

	repo := scorecarddb.NewRoundRepository(store)
	service := scorecardservice.NewScorecardService(repo, courses, publisher, logger, scMetrics, tracer)

	if httpRouter != nil {
		scorecardhandlers.NewScorecardHandlers(service, logger, tracer).Routes(httpRouter)
	}

	logger.InfoContext(ctx, "Scorecard module initialized")

	return &Module{
		Repository:       repo,
		ScorecardService: service,
		observability:    obs,
	}, nil
}

// Close releases nothing itself; the store is owned by the caller.
func (m *Module) Close() error {
	m.observability.Provider.Logger.Info("Scorecard module stopped")
	return nil
}
