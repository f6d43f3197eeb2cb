// Package cache stores measured irradiance figures keyed by rounded coordinate and year.
package cache

import (
	"context"
	"fmt"
	"math"
	"time"

	"solar_potential_backend/internal/irradiance/transport"
)

// Cache holds immutable irradiance entries. A miss is reported with ok=false and a
// nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key Key) (data transport.IrradianceData, ok bool, err error)
	Set(ctx context.Context, key Key, data transport.IrradianceData, ttl time.Duration) error
}

// Key identifies one cached series. Coordinates are rounded to two decimals
// (about 1 km), well below the dataset's grid resolution.
type Key struct {
	Lat  int64
	Lon  int64
	Year int
}

// NewKey rounds the coordinate into a Key.
func NewKey(latitude, longitude float64, year int) Key {
	return Key{
		Lat:  int64(math.Round(latitude * 100)),
		Lon:  int64(math.Round(longitude * 100)),
		Year: year,
	}
}

// String renders the key for logging and remote storage.
func (k Key) String() string {
	return fmt.Sprintf("%d:%d:%d", k.Year, k.Lat, k.Lon)
}

// TTLUntilYearEnd caps ttl so an entry never survives into the next calendar year,
// when a newer yearly series becomes the relevant one.
func TTLUntilYearEnd(now time.Time, ttl time.Duration) time.Duration {
	now = now.UTC()
	nextYear := time.Date(now.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
	if remaining := nextYear.Sub(now); remaining < ttl {
		return remaining
	}
	return ttl
}
