package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/three-under/internal/observability"
	"github.com/stretchr/testify/assert"
)

func TestNewAuthModule_Middlewares(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantChain int
		wantAuth  bool
	}{
		{name: "open", cfg: Config{}, wantChain: 1},
		{name: "rate limited", cfg: Config{RequestsPerSecond: 5}, wantChain: 2},
		{name: "full", cfg: Config{RequestsPerSecond: 5, Burst: 10, JWTSecret: "s"}, wantChain: 3, wantAuth: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthModule(context.Background(), observability.NewNoop(), tt.cfg)
			assert.Len(t, m.Middlewares(), tt.wantChain)
			assert.Equal(t, tt.wantAuth, m.Provider != nil)
		})
	}
}

func TestModule_CheckOrigin(t *testing.T) {
	m := NewAuthModule(context.Background(), observability.NewNoop(), Config{AllowedOrigins: []string{"https://scores.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/api/rounds/k/live", nil)
	assert.True(t, m.CheckOrigin(req))

	req.Header.Set("Origin", "https://scores.example.com")
	assert.True(t, m.CheckOrigin(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, m.CheckOrigin(req))
}
