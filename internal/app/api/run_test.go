package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentsfilesystem "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/filesystem"
	paymentsinline "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/inline"
	usermemory "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/memory"
	userredis "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/redis"
)

func memoryConfig() Config {
	cfg := defaultConfig()
	cfg.Temporal.Disabled = true
	return cfg
}

func TestBuildServesSeededStorefrontInMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, cleanup, err := Build(context.Background(), memoryConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Basmati Rice")
	assert.NotEmpty(t, w.Result().Cookies())

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_http_requests_total")

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order-history/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login/")
}

func TestBuildLoginSessionStorePrefersRedis(t *testing.T) {
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	assert.IsType(t, &userredis.SessionStore{}, buildLoginSessionStore(nil, client))
	assert.IsType(t, &usermemory.SessionStore{}, buildLoginSessionStore(nil, nil))
}

func TestConnectRedisFallsBackWhenUnreachable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := memoryConfig()
	assert.Nil(t, connectRedis(context.Background(), cfg, logger))

	server := miniredis.RunT(t)
	cfg.Redis.Addr = server.Addr()
	client := connectRedis(context.Background(), cfg, logger)
	require.NotNil(t, client)
	_ = client.Close()
}

func TestBuildImageSinkUsesStaticDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := memoryConfig()
	assert.IsType(t, paymentsinline.Sink{}, buildImageSink(cfg, logger))

	cfg.StaticDir = t.TempDir()
	assert.IsType(t, &paymentsfilesystem.Sink{}, buildImageSink(cfg, logger))
}
