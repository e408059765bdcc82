package live

import (
	"context"
	"net/http"

	liveservice "github.com/Black-And-White-Club/three-under/app/modules/live/application"
	livehandlers "github.com/Black-And-White-Club/three-under/app/modules/live/infrastructure/handlers"
	liverouter "github.com/Black-And-White-Club/three-under/app/modules/live/infrastructure/router"
	"github.com/Black-And-White-Club/three-under/internal/observability"
	livemetrics "github.com/Black-And-White-Club/three-under/internal/observability/metrics/live"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
)

// Module represents the live updates module.
type Module struct {
	Hub           *liveservice.Hub
	LiveRouter    *liverouter.LiveRouter
	observability observability.Observability
}

// NewLiveModule registers the scorecard event handlers on eventRouter and the
// WebSocket route on httpRouter. The caller runs eventRouter.
func NewLiveModule(
	ctx context.Context,
	obs observability.Observability,
	subscriber message.Subscriber,
	eventRouter *message.Router,
	httpRouter chi.Router,
	checkOrigin func(*http.Request) bool,
) (*Module, error) {
	logger := obs.Provider.Logger

	var lm livemetrics.LiveMetrics = livemetrics.NewNoop()
	if obs.Registry.Prometheus != nil {
		lm = livemetrics.New(obs.Registry.Prometheus)
	}

	hub := liveservice.NewHub(logger, lm, liveservice.DefaultClientBuffer)

	lr := liverouter.NewLiveRouter(logger, eventRouter, subscriber, hub)
	lr.Configure()

	if httpRouter != nil {
		livehandlers.NewLiveHandlers(hub, logger, checkOrigin).Routes(httpRouter)
	}

	logger.InfoContext(ctx, "Live module initialized")

	return &Module{
		Hub:           hub,
		LiveRouter:    lr,
		observability: obs,
	}, nil
}

// Close disconnects every WebSocket client.
func (m *Module) Close() error {
	m.Hub.Close()
	m.observability.Provider.Logger.Info("Live module stopped")
	return nil
}
