package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/foodikal/ny-backend/internal/auth"
	"github.com/foodikal/ny-backend/internal/cache"
)

type fakeLimiter struct {
	blocked  bool
	denied   map[string]bool
	failures int
	resets   int
}

func (f *fakeLimiter) Allow(ctx context.Context, scope, key string) bool {
	if scope == cache.ScopeAuthFail {
		f.failures++
	}
	return !f.denied[scope]
}
func (f *fakeLimiter) Blocked(ctx context.Context, scope, key string) bool { return f.blocked }
func (f *fakeLimiter) Reset(ctx context.Context, scope, key string)        { f.resets++ }

func adminRouter(passwordHash string, limiter cache.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminAuth(passwordHash, limiter), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuthAcceptsValidCredential(t *testing.T) {
	limiter := &fakeLimiter{}
	hash := auth.HashPassword("s3cret", "", 1000)
	r := adminRouter(hash, limiter)

	w := doGet(r, "Bearer s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if limiter.failures != 0 {
		t.Errorf("successful auth recorded %d failures", limiter.failures)
	}
	if limiter.resets != 1 {
		t.Errorf("successful auth should clear the failure counter, resets = %d", limiter.resets)
	}
}

func TestAdminAuthRejectsAndRecordsFailure(t *testing.T) {
	limiter := &fakeLimiter{}
	hash := auth.HashPassword("s3cret", "", 1000)
	r := adminRouter(hash, limiter)

	for _, header := range []string{"", "Bearer wrong", "Basic s3cret"} {
		if w := doGet(r, header); w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
	if limiter.failures != 3 {
		t.Errorf("recorded failures = %d, want 3", limiter.failures)
	}
}

func TestAdminAuthRefusesBlockedCaller(t *testing.T) {
	limiter := &fakeLimiter{blocked: true}
	hash := auth.HashPassword("s3cret", "", 1000)
	r := adminRouter(hash, limiter)

	// Even the right password is refused while the caller is locked out.
	if w := doGet(r, "Bearer s3cret"); w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}

func TestAdminAuthUnconfigured(t *testing.T) {
	r := adminRouter("", &fakeLimiter{})
	if w := doGet(r, "Bearer anything"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := &fakeLimiter{denied: map[string]bool{cache.ScopeCreateOrder: true}}

	r := gin.New()
	r.GET("/open", RateLimit(limiter, cache.ScopePublicAPI), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/limited", RateLimit(limiter, cache.ScopeCreateOrder), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("open scope status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/limited", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("limited scope status = %d, want 429", w.Code)
	}
}
