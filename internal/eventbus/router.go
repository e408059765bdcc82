package eventbus

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter builds a Watermill router with correlation id propagation, panic
// recovery and retries. Router metrics are registered when registry is non-nil.
func NewRouter(logger *slog.Logger, registry *prometheus.Registry) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}

	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "three_under", "events")
		builder.AddPrometheusRouterMetrics(router)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	return router, nil
}
