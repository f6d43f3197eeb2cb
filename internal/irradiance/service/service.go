// Package service resolves site irradiance from NASA POWER with a local fallback.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solar_potential_backend/internal/irradiance/cache"
	"solar_potential_backend/internal/irradiance/client"
	"solar_potential_backend/internal/irradiance/transport"
	"solar_potential_backend/platform/logger"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	upstreamName      = "nasa_power"
	cacheWriteTimeout = 2 * time.Second
)

// Fetcher retrieves a daily irradiance series summary.
type Fetcher interface {
	DailyMean(ctx context.Context, latitude, longitude float64, start, end time.Time) (client.DailySeries, error)
}

// Options tune the service. Zero values select defaults.
type Options struct {
	Cache             cache.Cache
	CacheTTL          time.Duration
	Timeout           time.Duration
	RequestsPerSecond float64
	Now               func() time.Time
}

// Service resolves irradiance for a coordinate. It never returns an error: any
// upstream failure, including caller cancellation, yields the banded estimate.
type Service struct {
	fetcher  Fetcher
	cache    cache.Cache
	cacheTTL time.Duration
	timeout  time.Duration
	limiter  *rate.Limiter
	group    singleflight.Group
	now      func() time.Time
	log      *logger.Logger
}

// New creates an irradiance service. A nil fetcher disables remote lookups.
func New(fetcher Fetcher, opts Options, log *logger.Logger) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * 24 * time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Service{
		fetcher:  fetcher,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		timeout:  opts.Timeout,
		limiter:  rate.NewLimiter(limit, 1),
		now:      opts.Now,
		log:      log,
	}
}

// RemoteEnabled reports whether NASA POWER lookups are configured.
func (s *Service) RemoteEnabled() bool {
	return s.fetcher != nil
}

// GetIrradiance returns the previous calendar year's mean daily irradiance for the
// coordinate, or the latitude-banded estimate when that cannot be obtained.
func (s *Service) GetIrradiance(ctx context.Context, latitude, longitude float64) transport.IrradianceData {
	if s.fetcher == nil {
		return Estimate(latitude, longitude)
	}

	year := s.now().UTC().Year() - 1
	key := cache.NewKey(latitude, longitude, year)
	log := s.log.WithContext(ctx)

	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("irradiance cache read failed", "key", key.String(), "error", err)
		} else if ok {
			return at(data, latitude, longitude)
		}
	}

	ch := s.group.DoChan(key.String(), func() (interface{}, error) {
		return s.fetch(context.WithoutCancel(ctx), key, latitude, longitude, year)
	})

	select {
	case <-ctx.Done():
		log.UpstreamFallback(upstreamName, ctx.Err(), "latitude", latitude, "longitude", longitude)
		return Estimate(latitude, longitude)
	case res := <-ch:
		if res.Err != nil {
			log.UpstreamFallback(upstreamName, res.Err, "latitude", latitude, "longitude", longitude)
			return Estimate(latitude, longitude)
		}
		return at(res.Val.(transport.IrradianceData), latitude, longitude)
	}
}

// fetch runs once per key across concurrent callers. The caller's cancellation is
// detached so one abandoned request does not fail the others sharing the flight.
func (s *Service) fetch(ctx context.Context, key cache.Key, latitude, longitude float64, year int) (transport.IrradianceData, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return transport.IrradianceData{}, fmt.Errorf("outbound rate limit: %w", err)
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	series, err := s.fetcher.DailyMean(ctx, latitude, longitude, start, end)
	if err != nil {
		return transport.IrradianceData{}, err
	}
	if series.Mean <= 0 {
		return transport.IrradianceData{}, errors.New("non-positive mean irradiance")
	}

	data := transport.IrradianceData{
		AverageIrradiance: series.Mean,
		Source:            transport.SourceNASAPower,
		DataQuality:       transport.QualityHigh,
		Latitude:          latitude,
		Longitude:         longitude,
		Year:              year,
		SampleDays:        series.ValidDays,
		MonthlyIrradiance: series.Monthly,
		SeasonalVariation: series.SeasonalVariation,
	}

	s.store(ctx, key, data)
	return data, nil
}

// store writes a fetched result under its own deadline so a fetch that used
// up most of its timeout still populates the cache.
func (s *Service) store(ctx context.Context, key cache.Key, data transport.IrradianceData) {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	defer cancel()

	ttl := cache.TTLUntilYearEnd(s.now(), s.cacheTTL)
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.log.Warn("irradiance cache write failed", "key", key.String(), "error", err)
	}
}

// at stamps a shared result with the caller's exact coordinate.
func at(data transport.IrradianceData, latitude, longitude float64) transport.IrradianceData {
	data.Latitude = latitude
	data.Longitude = longitude
	return data
}
