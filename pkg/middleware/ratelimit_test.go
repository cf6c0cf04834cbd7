package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/wyfcoding/foodordering/pkg/config"
	"github.com/wyfcoding/foodordering/pkg/ratelimit"
)

// stubLimiter implements ratelimit.RateLimiter for testing
type stubLimiter struct {
	result *ratelimit.Result
	err    error
	gotKey string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ ratelimit.Limit) (*ratelimit.Result, error) {
	s.gotKey = key
	return s.result, s.err
}

func limitedRouter(limiter ratelimit.RateLimiter, enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := config.RateLimitConfig{Enabled: enabled, Requests: 100, WindowMinutes: 15}
	r.POST("/login", RateLimitMiddleware(limiter, cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func post(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{result: &ratelimit.Result{Allowed: true, Remaining: 99, ResetAfter: time.Minute}}
	r := limitedRouter(limiter, true)

	w := post(r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "99", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, limiter.gotKey, "ratelimit:")
}

func TestRateLimit_ExceededReturns429(t *testing.T) {
	limiter := &stubLimiter{result: &ratelimit.Result{Allowed: false, Remaining: 0, RetryAfter: time.Minute}}
	r := limitedRouter(limiter, true)

	w := post(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error": "Too many requests, please try again later"}`, w.Body.String())
}

// 限流器故障时放行，可用性优先于限流
func TestRateLimit_FailsOpen(t *testing.T) {
	r := limitedRouter(&stubLimiter{err: errors.New("redis down")}, true)

	w := post(r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	limiter := &stubLimiter{}
	r := limitedRouter(limiter, false)

	w := post(r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, limiter.gotKey)
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	r := limitedRouter(nil, true)

	w := post(r)
	assert.Equal(t, http.StatusOK, w.Code)
}
