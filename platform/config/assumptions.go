package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AssumptionsOverride mirrors the business assumptions file. Nil fields keep the
// built-in value, so an explicit zero (e.g. no rate inflation) is still honoured.
type AssumptionsOverride struct {
	RateInflation           *float64 `yaml:"rate_inflation"`
	GridEmissionKgPerKwh    *float64 `yaml:"grid_emission_kg_per_kwh"`
	TreeAbsorptionKgPerYear *float64 `yaml:"tree_absorption_kg_per_year"`
	CarEmissionsKgPerYear   *float64 `yaml:"car_emissions_kg_per_year"`
	LifetimeYears           *int     `yaml:"lifetime_years"`
	FederalTaxCredit        *float64 `yaml:"federal_tax_credit"`

	Fallback struct {
		KwPerM2      *float64 `yaml:"kw_per_m2"`
		MaxSystemKw  *float64 `yaml:"max_system_kw"`
		KwhPerKw     *float64 `yaml:"kwh_per_kw"`
		HorizonYears *int     `yaml:"horizon_years"`
	} `yaml:"fallback"`
}

// LoadAssumptions reads the override file at path. An empty path yields an empty
// override. Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadAssumptions(path string) (*AssumptionsOverride, error) {
	override := &AssumptionsOverride{}
	if strings.TrimSpace(path) == "" {
		return override, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assumptions file: %w", err)
	}
	return ParseAssumptions(raw)
}

// ParseAssumptions decodes an assumptions document.
func ParseAssumptions(raw []byte) (*AssumptionsOverride, error) {
	override := &AssumptionsOverride{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return override, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(override); err != nil {
		return nil, fmt.Errorf("parse assumptions: %w", err)
	}

	if err := override.validate(); err != nil {
		return nil, err
	}
	return override, nil
}

func (o *AssumptionsOverride) validate() error {
	if o.RateInflation != nil && (*o.RateInflation < 0 || *o.RateInflation > 0.5) {
		return fmt.Errorf("rate_inflation must be within [0, 0.5]")
	}
	if o.FederalTaxCredit != nil && (*o.FederalTaxCredit < 0 || *o.FederalTaxCredit > 1) {
		return fmt.Errorf("federal_tax_credit must be within [0, 1]")
	}
	if o.LifetimeYears != nil && *o.LifetimeYears <= 0 {
		return fmt.Errorf("lifetime_years must be positive")
	}
	if o.Fallback.HorizonYears != nil && *o.Fallback.HorizonYears <= 0 {
		return fmt.Errorf("fallback.horizon_years must be positive")
	}
	for name, v := range map[string]*float64{
		"grid_emission_kg_per_kwh":    o.GridEmissionKgPerKwh,
		"tree_absorption_kg_per_year": o.TreeAbsorptionKgPerYear,
		"car_emissions_kg_per_year":   o.CarEmissionsKgPerYear,
		"fallback.kw_per_m2":          o.Fallback.KwPerM2,
		"fallback.max_system_kw":      o.Fallback.MaxSystemKw,
		"fallback.kwh_per_kw":         o.Fallback.KwhPerKw,
	} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
