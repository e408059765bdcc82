package authhandlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/three-under/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/three-under/app/modules/auth/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(NewIPRateLimiter(rate.Limit(1), 2))(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	other.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware([]string{"https://scores.example.com"})(okHandler)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
	}{
		{name: "allowed origin", method: http.MethodGet, origin: "https://scores.example.com", wantOrigin: "https://scores.example.com"},
		{name: "unknown origin", method: http.MethodGet, origin: "https://evil.example.com"},
		{name: "preflight", method: http.MethodOptions, origin: "https://scores.example.com", wantOrigin: "https://scores.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/rounds/x", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestBearerAuthMiddleware(t *testing.T) {
	provider := authjwt.NewProvider("test-secret-at-least-32-chars-long!!", "three-under")
	viewer, err := provider.GenerateToken("tv", authdomain.RoleViewer, time.Hour)
	require.NoError(t, err)
	scorer, err := provider.GenerateToken("marker", authdomain.RoleScorer, time.Hour)
	require.NoError(t, err)
	expired, err := provider.GenerateToken("old", authdomain.RoleScorer, -time.Hour)
	require.NoError(t, err)

	var seen *authdomain.Claims
	handler := BearerAuthMiddleware(provider, slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = authdomain.ClaimsFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	tests := []struct {
		name       string
		method     string
		target     string
		header     string
		wantStatus int
	}{
		{name: "missing", method: http.MethodGet, target: "/api/courses", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", method: http.MethodGet, target: "/api/courses", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "expired", method: http.MethodGet, target: "/api/courses", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "viewer reads", method: http.MethodGet, target: "/api/courses", header: "Bearer " + viewer, wantStatus: http.StatusOK},
		{name: "viewer cannot write", method: http.MethodPut, target: "/api/rounds/k/players/0", header: "Bearer " + viewer, wantStatus: http.StatusForbidden},
		{name: "scorer writes", method: http.MethodPut, target: "/api/rounds/k/players/0", header: "Bearer " + scorer, wantStatus: http.StatusOK},
		{name: "query token for websocket", method: http.MethodGet, target: "/api/rounds/k/live?access_token=" + viewer, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seen)
			}
		})
	}
}
