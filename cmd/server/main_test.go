package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emedica-be/internal/config"
	"emedica-be/internal/events"
	"emedica-be/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Driver for Testing ---
type mockDriver struct{}
type mockConn struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)   { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (c *mockConn) Close() error                              { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func testConfig() *config.Config {
	return &config.Config{
		AppPort:      "8080",
		AppEnv:       "test",
		JWTSecret:    "secret",
		JWTExpiresIn: time.Hour,
		CORSOrigin:   "http://localhost:3000",
	}
}

func TestNewServer(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)
	defer db.Close()

	router := newServer(testConfig(), db, events.NewNopPublisher(), middleware.NewRateLimiter())
	require.NotNil(t, router)

	t.Run("Health Check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Admin route without token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Payment webhook without callback token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestNewPublisher_NoBroker(t *testing.T) {
	publisher, closeBroker, err := newPublisher(testConfig())
	require.NoError(t, err)
	defer closeBroker()

	assert.NoError(t, publisher.Publish(context.Background(), events.OrderCreated, "key", map[string]string{}))
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	origMigrate := migrateFunc
	origStartServer := startServerFunc
	defer func() {
		initDBFunc = origInitDB
		migrateFunc = origMigrate
		startServerFunc = origStartServer
	}()

	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}
	migrateFunc = func(*sql.DB) error { return nil }

	var gotAddr string
	startServerFunc = func(ctx context.Context, addr string, h http.Handler) error {
		gotAddr = addr
		return nil
	}

	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("RABBITMQ_URL", "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NoError(t, run(ctx))
	assert.Equal(t, ":9090", gotAddr)
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_SECRET", "")

	assert.ErrorIs(t, run(context.Background()), config.ErrMissingDBHost)
}
