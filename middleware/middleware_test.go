package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seo-optimizer/toolkit/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, 3)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("a"), "request %d", i)
	}
	require.False(t, rl.Allow("a"))
	require.True(t, rl.Allow("b"), "buckets are per client")

	now = now.Add(500 * time.Millisecond)
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	rl.Allow("a")
	now = now.Add(time.Hour)
	rl.Allow("b")

	require.NotContains(t, rl.buckets, "a")
	require.Contains(t, rl.buckets, "b")
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(1, 1).RateLimit())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)
	w := serve(r, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"An unexpected error occurred"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.NewNop()))
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := serve(r, http.MethodGet, "/id", nil)
	id := w.Header().Get(RequestIDHeader)
	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)
	require.Equal(t, id, w.Body.String())

	supplied := ulid.Make().String()
	w = serve(r, http.MethodGet, "/id", http.Header{RequestIDHeader: {supplied}})
	require.Equal(t, supplied, w.Body.String())
	require.Equal(t, supplied, w.Header().Get(RequestIDHeader))

	w = serve(r, http.MethodGet, "/id", http.Header{"x-request-id": {supplied}})
	require.Equal(t, supplied, w.Body.String(), "header names are case-insensitive")

	w = serve(r, http.MethodGet, "/id", http.Header{RequestIDHeader: {"not-a-ulid"}})
	require.NotEqual(t, "not-a-ulid", w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.POST("/api/tools/schema", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/api/tools/schema", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTrafficCountsToolRoutesOnly(t *testing.T) {
	traffic := logging.NewTraffic(true)
	r := gin.New()
	r.Use(Traffic(traffic))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/tools/schema", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	serve(r, http.MethodGet, "/api/health", nil)
	serve(r, http.MethodPost, "/api/tools/schema", nil)

	snap := traffic.Snapshot()
	require.Equal(t, 1, snap.TotalRequests)
	require.InDelta(t, 100.0, snap.ErrorRate, 0.001)
	require.Equal(t, 1, snap.UniqueVisitors24h)
	require.Equal(t, []logging.RouteCount{{Route: "/api/tools/schema", Requests: 1}}, snap.PopularRoutes)
}
