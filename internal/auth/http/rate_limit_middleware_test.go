package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/accessvault/internal/auth/domain"
)

func withAccount(accountID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &authDomain.Claims{AccountID: accountID}
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func newLimitedRouter(t *testing.T, middleware func(context.Context) gin.HandlerFunc, pre ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(pre...)
	router.Use(middleware(ctx))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func get(router http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	perAccount := func(ctx context.Context) gin.HandlerFunc {
		return RateLimitMiddleware(ctx, 1.0, 2, createTestLogger())
	}

	t.Run("AllowsWithinBurst", func(t *testing.T) {
		router := newLimitedRouter(t, perAccount, withAccount("acct_1"))
		for i := 0; i < 2; i++ {
			assert.Equal(t, http.StatusOK, get(router, "").Code)
		}
	})

	t.Run("BlocksOverBurst", func(t *testing.T) {
		router := newLimitedRouter(t, perAccount, withAccount("acct_1"))
		get(router, "")
		get(router, "")

		w := get(router, "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
	})

	t.Run("AccountsAreIndependent", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		gin.SetMode(gin.TestMode)
		limiter := RateLimitMiddleware(ctx, 1.0, 1, createTestLogger())

		router := gin.New()
		router.GET("/a", withAccount("acct_a"), limiter, func(c *gin.Context) { c.Status(http.StatusOK) })
		router.GET("/b", withAccount("acct_b"), limiter, func(c *gin.Context) { c.Status(http.StatusOK) })

		for _, path := range []string{"/a", "/b"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("RequiresClaims", func(t *testing.T) {
		router := newLimitedRouter(t, perAccount)
		assert.Equal(t, http.StatusUnauthorized, get(router, "").Code)
	})
}

func TestIPRateLimitMiddleware(t *testing.T) {
	perIP := func(ctx context.Context) gin.HandlerFunc {
		return IPRateLimitMiddleware(ctx, 1.0, 1, createTestLogger())
	}
	router := newLimitedRouter(t, perIP)

	assert.Equal(t, http.StatusOK, get(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, get(router, "10.0.0.2:1234").Code)
}

func TestLimiterStore_EvictIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newLimiterStore(ctx, 1, 1)

	store.getLimiter("old")
	store.evictIdle(time.Now().Add(time.Minute))

	_, ok := store.limiters.Load("old")
	assert.False(t, ok)

	store.getLimiter("fresh")
	store.evictIdle(time.Now().Add(-time.Minute))
	_, ok = store.limiters.Load("fresh")
	assert.True(t, ok)
}
