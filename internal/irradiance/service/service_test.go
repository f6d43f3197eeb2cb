package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"solar_potential_backend/internal/irradiance/cache"
	"solar_potential_backend/internal/irradiance/client"
	"solar_potential_backend/internal/irradiance/transport"
	"solar_potential_backend/platform/logger"
)

type fakeFetcher struct {
	calls   atomic.Int32
	mean    float64
	err     error
	monthly []float64
	release chan struct{}
	entered chan struct{}
	once    sync.Once
	// outlive makes the call finish only after its context is done.
	outlive bool

	mu         sync.Mutex
	start, end time.Time
}

func (f *fakeFetcher) DailyMean(ctx context.Context, _, _ float64, start, end time.Time) (client.DailySeries, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.start, f.end = start, end
	f.mu.Unlock()

	if f.entered != nil {
		f.once.Do(func() { close(f.entered) })
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return client.DailySeries{}, ctx.Err()
		}
	}
	if f.outlive {
		<-ctx.Done()
	}
	if f.err != nil {
		return client.DailySeries{}, f.err
	}
	return client.DailySeries{Mean: f.mean, ValidDays: 365, Monthly: f.monthly, SeasonalVariation: 0.5}, nil
}

type recordingCache struct {
	*cache.Memory
	ttl    time.Duration
	ctxErr error
}

func (r *recordingCache) Set(ctx context.Context, key cache.Key, data transport.IrradianceData, ttl time.Duration) error {
	r.ttl = ttl
	r.ctxErr = ctx.Err()
	if r.ctxErr != nil {
		return r.ctxErr
	}
	return r.Memory.Set(ctx, key, data, ttl)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var june2024 = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestGetIrradianceFromUpstream(t *testing.T) {
	f := &fakeFetcher{mean: 4.9}
	svc := New(f, Options{Now: fixedClock(june2024)}, logger.Nop())

	got := svc.GetIrradiance(context.Background(), 40, -75)

	if got.AverageIrradiance != 4.9 || got.Source != transport.SourceNASAPower || got.DataQuality != transport.QualityHigh {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.Year != 2023 {
		t.Fatalf("expected previous calendar year, got %d", got.Year)
	}
	if !f.start.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)) || !f.end.Equal(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date range %s..%s", f.start, f.end)
	}
}

func TestGetIrradianceFallsBackOnUpstreamError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	svc := New(f, Options{Now: fixedClock(june2024)}, logger.Nop())

	got := svc.GetIrradiance(context.Background(), 40, -75)

	want := Estimate(40, -75)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected fallback %+v, got %+v", want, got)
	}
	if got.Source != "Estimated" || got.DataQuality != "Medium" {
		t.Fatalf("unexpected provenance %s/%s", got.Source, got.DataQuality)
	}
}

func TestGetIrradianceCarriesMonthlyProfile(t *testing.T) {
	monthly := []float64{2, 3, 4, 5, 6, 6, 6, 5, 4, 3, 2, 2}
	f := &fakeFetcher{mean: 4.0, monthly: monthly}
	svc := New(f, Options{Now: fixedClock(june2024)}, logger.Nop())

	got := svc.GetIrradiance(context.Background(), 40, -75)

	if !reflect.DeepEqual(got.MonthlyIrradiance, monthly) || got.SeasonalVariation != 0.5 {
		t.Fatalf("expected monthly profile to be carried, got %+v", got)
	}
}

func TestGetIrradianceCachesResultFetchedAtDeadline(t *testing.T) {
	f := &fakeFetcher{mean: 4.4, outlive: true}
	rc := &recordingCache{Memory: cache.NewMemory()}
	svc := New(f, Options{Cache: rc, Timeout: 20 * time.Millisecond, Now: fixedClock(june2024)}, logger.Nop())

	got := svc.GetIrradiance(context.Background(), 40, -75)
	if got.AverageIrradiance != 4.4 {
		t.Fatalf("expected upstream result, got %+v", got)
	}
	if rc.ctxErr != nil {
		t.Fatalf("expected cache write with a live context, got %v", rc.ctxErr)
	}
	if rc.Len() != 1 {
		t.Fatalf("expected result to be cached, have %d entries", rc.Len())
	}
}

func TestGetIrradianceWithoutFetcher(t *testing.T) {
	svc := New(nil, Options{}, logger.Nop())
	if svc.RemoteEnabled() {
		t.Fatal("expected remote lookups to be disabled")
	}
	if got := svc.GetIrradiance(context.Background(), 10, 10); got.DataQuality != transport.QualityMedium {
		t.Fatalf("expected banded estimate, got %+v", got)
	}
}

func TestGetIrradianceUsesCache(t *testing.T) {
	f := &fakeFetcher{mean: 5.1}
	svc := New(f, Options{Cache: cache.NewMemory(), Now: fixedClock(june2024)}, logger.Nop())

	first := svc.GetIrradiance(context.Background(), 40.001, -75.001)
	second := svc.GetIrradiance(context.Background(), 40.002, -75.002)

	if f.calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", f.calls.Load())
	}
	if first.AverageIrradiance != second.AverageIrradiance {
		t.Fatalf("expected cached value to be reused")
	}
	if second.Latitude != 40.002 || second.Longitude != -75.002 {
		t.Fatalf("expected caller coordinate on cached result, got %v,%v", second.Latitude, second.Longitude)
	}
}

func TestGetIrradianceDoesNotCacheFallback(t *testing.T) {
	f := &fakeFetcher{err: errors.New("down")}
	c := cache.NewMemory()
	svc := New(f, Options{Cache: c, Now: fixedClock(june2024)}, logger.Nop())

	svc.GetIrradiance(context.Background(), 40, -75)
	if c.Len() != 0 {
		t.Fatalf("expected fallback not to be cached, have %d entries", c.Len())
	}

	f.err = nil
	f.mean = 4.4
	if got := svc.GetIrradiance(context.Background(), 40, -75); got.DataQuality != transport.QualityHigh {
		t.Fatalf("expected recovery once upstream is back, got %+v", got)
	}
	if f.calls.Load() != 2 {
		t.Fatalf("expected two upstream calls, got %d", f.calls.Load())
	}
}

func TestGetIrradianceCacheTTLEndsWithYear(t *testing.T) {
	rc := &recordingCache{Memory: cache.NewMemory()}
	now := time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC)
	svc := New(&fakeFetcher{mean: 3.2}, Options{Cache: rc, CacheTTL: 720 * time.Hour, Now: fixedClock(now)}, logger.Nop())

	svc.GetIrradiance(context.Background(), 52, 5)

	if rc.ttl != 6*time.Hour {
		t.Fatalf("expected ttl to stop at year end, got %s", rc.ttl)
	}
}

func TestGetIrradianceCollapsesConcurrentLookups(t *testing.T) {
	f := &fakeFetcher{mean: 5.0, release: make(chan struct{}), entered: make(chan struct{})}
	svc := New(f, Options{Cache: cache.NewMemory(), Now: fixedClock(june2024)}, logger.Nop())

	var wg sync.WaitGroup
	results := make([]transport.IrradianceData, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.GetIrradiance(context.Background(), 40, -75)
		}(i)
	}

	<-f.entered
	time.Sleep(20 * time.Millisecond)
	close(f.release)
	wg.Wait()

	if f.calls.Load() != 1 {
		t.Fatalf("expected a single upstream call, got %d", f.calls.Load())
	}
	for i, r := range results {
		if r.DataQuality != transport.QualityHigh {
			t.Fatalf("result %d: expected measured data, got %+v", i, r)
		}
	}
}

func TestGetIrradianceCancelledCallerFallsBack(t *testing.T) {
	f := &fakeFetcher{mean: 5.0, release: make(chan struct{})}
	defer close(f.release)
	svc := New(f, Options{Now: fixedClock(june2024)}, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got := svc.GetIrradiance(ctx, 30, 0)
	if !reflect.DeepEqual(got, Estimate(30, 0)) {
		t.Fatalf("expected fallback on cancellation, got %+v", got)
	}
}

func TestGetIrradianceUpstreamTimeoutFallsBack(t *testing.T) {
	f := &fakeFetcher{mean: 5.0, release: make(chan struct{})}
	defer close(f.release)
	svc := New(f, Options{Timeout: 20 * time.Millisecond, Now: fixedClock(june2024)}, logger.Nop())

	got := svc.GetIrradiance(context.Background(), 30, 0)
	if got.DataQuality != transport.QualityMedium {
		t.Fatalf("expected fallback on timeout, got %+v", got)
	}
}

func TestEstimateBands(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     float64
	}{
		{0, 0, 6.0},
		{-24.9, 100, 6.0},
		{25, 0, 5.5},
		{-34.9, 0, 5.5},
		{35, 0, 4.8},
		{44.9, 10, 4.8},
		{45, 0, 4.0},
		{-70, 0, 4.0},
		{36, -110, 5.3},
		{47, -105, 4.5},
		{30, -110, 5.5},
		{40, -75, 4.8},
	}
	for _, tc := range cases {
		got := Estimate(tc.lat, tc.lon)
		if got.AverageIrradiance != tc.want {
			t.Fatalf("(%v,%v): expected %v, got %v", tc.lat, tc.lon, tc.want, got.AverageIrradiance)
		}
		if got.Source != transport.SourceEstimated || got.DataQuality != transport.QualityMedium {
			t.Fatalf("(%v,%v): unexpected provenance %+v", tc.lat, tc.lon, got)
		}
	}
}

func TestEstimateMonotonicInLatitude(t *testing.T) {
	for _, lon := range []float64{0, 150, -60} {
		previous := Estimate(0, lon).AverageIrradiance
		for lat := 0.5; lat <= 90; lat += 0.5 {
			north := Estimate(lat, lon).AverageIrradiance
			south := Estimate(-lat, lon).AverageIrradiance
			if north > previous || south != north {
				t.Fatalf("lon %v lat %v: expected non-increasing symmetric bands, got %v after %v (south %v)", lon, lat, north, previous, south)
			}
			previous = north
		}
	}
}
