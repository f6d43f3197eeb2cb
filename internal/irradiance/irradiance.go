// Package irradiance provides the solar irradiance bounded context.
// This file defines the public interface exposed to other domains.
package irradiance

import (
	"context"

	"solar_potential_backend/internal/irradiance/transport"
)

// Provider resolves average daily irradiance for a coordinate.
// Other domains should depend on this interface, not the concrete implementation.
type Provider interface {
	// GetIrradiance never fails; when measured data is unavailable the result
	// carries the banded estimate with Medium quality.
	GetIrradiance(ctx context.Context, latitude, longitude float64) transport.IrradianceData
}
