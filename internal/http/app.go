// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"solar_potential_backend/platform/config"
	"solar_potential_backend/platform/logger"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health lists named dependencies checked by /api/ready. Optional ones that are
	// not configured are simply absent.
	Health map[string]HealthChecker
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
