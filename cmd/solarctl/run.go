package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"solar_potential_backend/internal/adapters"
	"solar_potential_backend/internal/estimation"
	estimationservice "solar_potential_backend/internal/estimation/service"
	"solar_potential_backend/internal/estimation/transport"
	"solar_potential_backend/internal/irradiance/cache"
	"solar_potential_backend/internal/irradiance/client"
	irradianceservice "solar_potential_backend/internal/irradiance/service"
	"solar_potential_backend/platform/config"
	"solar_potential_backend/platform/logger"
	"solar_potential_backend/platform/validator"

	"gopkg.in/yaml.v3"
)

type estimateOptions struct {
	Offline         bool
	AssumptionsFile string
	NASABaseURL     string
	Timeout         time.Duration
	JSON            bool
	Verbose         bool
}

// loadRequest reads one site description. Unknown keys are rejected.
func loadRequest(path string) (transport.EstimateRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return transport.EstimateRequest{}, fmt.Errorf("reading site file: %w", err)
	}
	return decodeRequest(raw)
}

func decodeRequest(raw []byte) (transport.EstimateRequest, error) {
	var req transport.EstimateRequest
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		return transport.EstimateRequest{}, fmt.Errorf("parsing site file: %w", err)
	}
	return req, nil
}

func newEstimator(opts estimateOptions, log *logger.Logger) (*estimationservice.Service, error) {
	overrides, err := config.LoadAssumptions(opts.AssumptionsFile)
	if err != nil {
		return nil, err
	}

	var fetcher irradianceservice.Fetcher
	if !opts.Offline {
		fetcher = client.New(opts.NASABaseURL, opts.Timeout, log)
	}
	irr := irradianceservice.New(fetcher, irradianceservice.Options{
		Cache:   cache.NewMemory(),
		Timeout: opts.Timeout,
	}, log)

	val := validator.New()
	if err := estimationservice.RegisterValidationRules(val); err != nil {
		return nil, err
	}

	return estimationservice.New(nil, adapters.NewIrradianceAdapter(irr), val, estimation.AssumptionsFrom(overrides), log), nil
}

func runEstimate(ctx context.Context, w io.Writer, path string, opts estimateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.Nop()
	if opts.Verbose {
		log = logger.NewWithWriter("development", os.Stderr)
	}

	req, err := loadRequest(path)
	if err != nil {
		return err
	}

	svc, err := newEstimator(opts, log)
	if err != nil {
		return err
	}

	resp, err := svc.Estimate(ctx, req)
	if err != nil {
		printEstimateError(w, err)
		return fmt.Errorf("estimate failed: %w", err)
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return printReport(w, resp)
}
