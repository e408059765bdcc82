package auth

import (
	"context"
	"net/http"

	authhandlers "github.com/Black-And-White-Club/three-under/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/three-under/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/three-under/internal/observability"
	"golang.org/x/time/rate"
)

// Config holds the HTTP protection settings.
type Config struct {
	// JWTSecret enables bearer authentication when non-empty.
	JWTSecret string
	JWTIssuer string
	// RequestsPerSecond and Burst configure the per-IP limiter. A zero rate
	// disables limiting.
	RequestsPerSecond float64
	Burst             int
	AllowedOrigins    []string
}

// Module represents the auth module.
type Module struct {
	Provider      authjwt.Provider
	config        Config
	limiter       *authhandlers.IPRateLimiter
	observability observability.Observability
}

// NewAuthModule creates a new auth module.
func NewAuthModule(ctx context.Context, obs observability.Observability, cfg Config) *Module {
	logger := obs.Provider.Logger

	m := &Module{config: cfg, observability: obs}
	if cfg.JWTSecret != "" {
		m.Provider = authjwt.NewProvider(cfg.JWTSecret, cfg.JWTIssuer)
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		m.limiter = authhandlers.NewIPRateLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	logger.InfoContext(ctx, "Auth module initialized",
		"bearer_auth", m.Provider != nil,
		"rate_limit", cfg.RequestsPerSecond,
		"cors_origins", len(cfg.AllowedOrigins),
	)
	return m
}

// Middlewares returns the API middleware chain in application order.
func (m *Module) Middlewares() []func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{authhandlers.CORSMiddleware(m.config.AllowedOrigins)}
	if m.limiter != nil {
		chain = append(chain, authhandlers.RateLimitMiddleware(m.limiter))
	}
	if m.Provider != nil {
		chain = append(chain, authhandlers.BearerAuthMiddleware(m.Provider, m.observability.Provider.Logger))
	}
	return chain
}

// CheckOrigin accepts WebSocket upgrades from the configured origins, or from
// anywhere when none are configured.
func (m *Module) CheckOrigin(r *http.Request) bool {
	if len(m.config.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range m.config.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}
