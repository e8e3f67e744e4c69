package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accessDomain "github.com/allisson/accessvault/internal/access/domain"
	accessHTTP "github.com/allisson/accessvault/internal/access/http"
	accessService "github.com/allisson/accessvault/internal/access/service"
	accessMocks "github.com/allisson/accessvault/internal/access/usecase/mocks"
	authDomain "github.com/allisson/accessvault/internal/auth/domain"
	authService "github.com/allisson/accessvault/internal/auth/service"
	"github.com/allisson/accessvault/internal/config"
	"github.com/allisson/accessvault/internal/metrics"
)

var testJWTSecret = []byte("0123456789abcdef0123456789abcdef")

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestServer creates a test server with a discarding logger.
func createTestServer() *Server {
	return NewServer(nil, "localhost", 8080, discardLogger())
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("NotReady_NilDB", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not_ready", response["status"])

		components, ok := response["components"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "error", components["database"])
	})

	t.Run("Ready_PingSucceeds", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbMock.ExpectPing()
		server := NewServer(db, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","components":{"database":"ok"}}`, w.Body.String())
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("NotReady_PingFails", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		dbMock.ExpectPing().WillReturnError(assert.AnError)
		server := NewServer(db, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready","components":{"database":"error"}}`, w.Body.String())
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/v1/event-access/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/event-access/evt_ac_123?secret=leak", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "/v1/event-access/:id", entry["route"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
	assert.NotContains(t, buf.String(), "leak")
	assert.NotContains(t, buf.String(), "evt_ac_123")
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// createMinimalRouter creates a minimal router with only health and ready endpoints.
func createMinimalRouter(server *Server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(server.logger))

	router.GET("/health", server.healthHandler)
	router.GET("/ready", server.readinessHandler)

	return router
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server := createTestServer()
	router := createMinimalRouter(server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer()
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, discardLogger())
	server.router = createMinimalRouter(server)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

type routerFixture struct {
	router  http.Handler
	useCase *accessMocks.MockAccessCredentialUseCase
	cancel  context.CancelFunc
}

func newRouterFixture(t *testing.T, cfg *config.Config, provider *metrics.Provider) *routerFixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	useCase := &accessMocks.MockAccessCredentialUseCase{}
	logger := discardLogger()
	handler := accessHTTP.NewAccessCredentialHandler(useCase, accessService.NewIDService(), logger)
	verifier := authService.NewTokenVerifier(testJWTSecret, "", 0)

	server := NewServer(nil, "localhost", 8080, logger)
	require.NoError(t, server.SetupRouter(ctx, cfg, handler, verifier, provider))

	return &routerFixture{router: server.GetHandler(), useCase: useCase, cancel: cancel}
}

func testRouterConfig() *config.Config {
	return &config.Config{
		RateLimitEnabled:          true,
		RateLimitRequestsPerSec:   100,
		RateLimitBurst:            100,
		IPRateLimitRequestsPerSec: 100,
		IPRateLimitBurst:          100,
		MetricsNamespace:          "test_app",
	}
}

func signedToken(t *testing.T, accountID string) string {
	t.Helper()
	token, err := authService.NewTokenSigner(testJWTSecret, "").Sign(authDomain.TokenRequest{
		AccountID:   accountID,
		Environment: accessDomain.EnvironmentTest,
		TTL:         time.Hour,
	}, time.Now())
	require.NoError(t, err)
	return token
}

func TestSetupRouter(t *testing.T) {
	t.Run("ProtectedRouteRequiresBearerToken", func(t *testing.T) {
		f := newRouterFixture(t, testRouterConfig(), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/event-access", nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		f.useCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ProtectedRouteScopesToTokenAccount", func(t *testing.T) {
		f := newRouterFixture(t, testRouterConfig(), nil)
		f.useCase.On("List", mock.Anything, "acct_1", 0, 50).
			Return([]*accessDomain.AccessCredential{}, nil).
			Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/event-access", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "acct_1"))
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		f.useCase.AssertExpectations(t)
	})

	t.Run("VerifyIsPublic", func(t *testing.T) {
		f := newRouterFixture(t, testRouterConfig(), nil)
		f.useCase.On("VerifySecret", mock.Anything, "evt_ac_1", "sk_test_x").
			Return(nil, accessDomain.ErrInvalidSecret).
			Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodPost,
			"/v1/event-access/verify",
			strings.NewReader(`{"id":"evt_ac_1","secret":"sk_test_x"}`),
		)
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		f.useCase.AssertExpectations(t)
	})

	t.Run("GenerateIDIsPublic", func(t *testing.T) {
		f := newRouterFixture(t, testRouterConfig(), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/generate-id/evt_ac", nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"evt_ac_`)
	})

	t.Run("PublicRoutesAreRateLimitedPerIP", func(t *testing.T) {
		cfg := testRouterConfig()
		cfg.IPRateLimitRequestsPerSec = 0.001
		cfg.IPRateLimitBurst = 1
		f := newRouterFixture(t, cfg, nil)

		codes := make([]int, 0, 2)
		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/generate-id/evt_ac", nil)
			f.router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("MetricsAreNotServedOnMainRouter", func(t *testing.T) {
		provider, err := metrics.NewProvider("test_app")
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		}()
		f := newRouterFixture(t, testRouterConfig(), provider)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
