package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "solar_potential_backend/internal/http"
	"solar_potential_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubConfig struct{}

func (stubConfig) GetHTTPAddr() string      { return ":0" }
func (stubConfig) GetCORSAllowAll() bool    { return false }
func (stubConfig) GetCORSOrigins() []string { return []string{"http://localhost:4200"} }
func (stubConfig) GetCORSAllowCreds() bool  { return false }
func (stubConfig) GetRateLimitRPS() float64 { return 100 }
func (stubConfig) GetRateLimitBurst() int   { return 100 }

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func newApp(health map[string]apphttp.HealthChecker) *apphttp.App {
	return &apphttp.App{
		Config:  stubConfig{},
		Logger:  logger.Nop(),
		Health:  health,
		Modules: []apphttp.Module{pingModule{}},
	}
}

func TestHealthAndModuleRoutes(t *testing.T) {
	engine := New(newApp(nil))

	for path, want := range map[string]int{
		"/api/health":  http.StatusOK,
		"/api/ready":   http.StatusOK,
		"/api/v1/ping": http.StatusOK,
		"/api/v1/nope": http.StatusNotFound,
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, w.Code)
		}
	}
}

func TestReadinessReportsFailingDependency(t *testing.T) {
	engine := New(newApp(map[string]apphttp.HealthChecker{
		"database": pingFunc(func(context.Context) error { return nil }),
		"redis":    pingFunc(func(context.Context) error { return errors.New("refused") }),
	}))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ready", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Checks["database"] != "ok" || body.Checks["redis"] != "unavailable" {
		t.Fatalf("unexpected checks %+v", body.Checks)
	}
}

func TestRequestIDHeaderIsReturned(t *testing.T) {
	engine := New(newApp(nil))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}
