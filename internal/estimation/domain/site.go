package domain

import (
	"fmt"
	"strings"
)

// SizePreference selects how much of the roof's theoretical capacity to use.
type SizePreference string

const (
	SizeOptimal SizePreference = "optimal"
	SizeMaximum SizePreference = "maximum"
	SizeBudget  SizePreference = "budget"
)

// Multiplier returns the share of maximum capacity the preference installs.
func (p SizePreference) Multiplier() (float64, error) {
	switch p {
	case SizeOptimal:
		return 0.80, nil
	case SizeMaximum:
		return 0.95, nil
	case SizeBudget:
		return 0.60, nil
	default:
		return 0, fmt.Errorf("unknown system size preference %q", string(p))
	}
}

// ParseSizePreference normalizes case and whitespace.
func ParseSizePreference(raw string) (SizePreference, bool) {
	p := SizePreference(strings.ToLower(strings.TrimSpace(raw)))
	if _, err := p.Multiplier(); err != nil {
		return "", false
	}
	return p, true
}

// SiteConfig carries location and economics for one estimate.
type SiteConfig struct {
	Latitude             float64        `json:"latitude" yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude            float64        `json:"longitude" yaml:"longitude" validate:"gte=-180,lte=180"`
	ElectricityRate      float64        `json:"electricity_rate" yaml:"electricity_rate" validate:"gt=0,lte=1"`
	InstallationCost     float64        `json:"installation_cost" yaml:"installation_cost" validate:"gt=0,lte=10"`
	PanelType            PanelType      `json:"panel_type" yaml:"panel_type" validate:"required,panel_type"`
	SystemSizePreference SizePreference `json:"system_size_preference" yaml:"system_size_preference" validate:"required,size_preference"`
}

// Normalized returns a copy with canonical enum labels.
func (s SiteConfig) Normalized() SiteConfig {
	if t, ok := ParsePanelType(string(s.PanelType)); ok {
		s.PanelType = t
	}
	if p, ok := ParseSizePreference(string(s.SystemSizePreference)); ok {
		s.SystemSizePreference = p
	}
	return s
}
