package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRateLimitConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 100,
		PublicRequests:  200,
		AuthRequests:    10,
		OrderRequests:   30,
		AdminRequests:   50,
		HealthRequests:  1000,
		WhitelistedIPs:  []string{"10.0.0.1"},
	}
}

func TestGetRateLimitType(t *testing.T) {
	testCases := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/ping", RateLimitTypeHealth},
		{"/status", RateLimitTypeHealth},
		{"/api/v1/auth/login", RateLimitTypeAuth},
		{"/api/v1/auth/register", RateLimitTypeAuth},
		{"/api/v1/orders", RateLimitTypeOrders},
		{"/api/v1/orders/:id", RateLimitTypeOrders},
		{"/api/v1/airplanes/:id/image", RateLimitTypeAdmin},
		{"/api/v1/airports", RateLimitTypePublic},
		{"/api/v1/airlines/:id", RateLimitTypePublic},
		{"/api/v1/airplane-types", RateLimitTypePublic},
		{"/api/v1/flights/:id", RateLimitTypePublic},
		{"/api/v1/crew", RateLimitTypePublic},
		{"/api/v1/routes", RateLimitTypePublic},
		{"/swagger/index.html", RateLimitTypeDefault},
		{"", RateLimitTypeDefault},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, getRateLimitType(tc.path))
		})
	}
}

func TestGetLimit(t *testing.T) {
	limiter := NewRateLimiter(nil, testRateLimitConfig())

	assert.Equal(t, 200, limiter.getLimit(RateLimitTypePublic))
	assert.Equal(t, 10, limiter.getLimit(RateLimitTypeAuth))
	assert.Equal(t, 30, limiter.getLimit(RateLimitTypeOrders))
	assert.Equal(t, 50, limiter.getLimit(RateLimitTypeAdmin))
	assert.Equal(t, 1000, limiter.getLimit(RateLimitTypeHealth))
	assert.Equal(t, 100, limiter.getLimit(RateLimitTypeDefault))
	assert.Equal(t, 100, limiter.getLimit(RateLimitType("unknown")))
}

func TestIsAllowed_DisabledLimiterAlwaysAllows(t *testing.T) {
	cfg := testRateLimitConfig()
	cfg.Enabled = false
	limiter := NewRateLimiter(nil, cfg)

	result, err := limiter.IsAllowed(context.Background(), "203.0.113.7", RateLimitTypeAuth)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 10, result.Remaining)
}

func TestIsAllowed_WhitelistedIPSkipsRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, testRateLimitConfig())

	result, err := limiter.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeOrders)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 30, result.Limit)
	assert.Equal(t, 30, result.Remaining)
}

func TestIsWhitelisted(t *testing.T) {
	limiter := NewRateLimiter(nil, testRateLimitConfig())

	assert.True(t, limiter.isWhitelisted("10.0.0.1"))
	assert.False(t, limiter.isWhitelisted("10.0.0.2"))
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "first address in X-Forwarded-For wins",
			remoteAddr: "192.0.2.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 198.51.100.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "invalid X-Forwarded-For falls back to X-Real-IP",
			remoteAddr: "192.0.2.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": "198.51.100.2"},
			want:       "198.51.100.2",
		},
		{
			name:       "remote address without headers",
			remoteAddr: "192.0.2.1:1234",
			want:       "192.0.2.1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Request.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}

			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}
