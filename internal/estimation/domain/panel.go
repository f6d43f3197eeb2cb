package domain

import (
	"fmt"
	"strings"
)

// PanelType keys the static panel technology table.
type PanelType string

const (
	PanelMonocrystalline PanelType = "monocrystalline"
	PanelPolycrystalline PanelType = "polycrystalline"
	PanelThinFilm        PanelType = "thin_film"
	PanelBifacial        PanelType = "bifacial"
)

// PanelSpec describes one panel technology.
type PanelSpec struct {
	Type            PanelType `json:"panel_type"`
	Efficiency      float64   `json:"efficiency"`       // 0-1
	PowerPerM2      float64   `json:"power_per_m2"`     // W/m²
	DegradationRate float64   `json:"degradation_rate"` // fractional annual capacity loss
	CostMultiplier  float64   `json:"cost_multiplier"`  // relative installed cost
}

// PanelPowerKw is the rated power of one square metre of panel, in kW.
func (p PanelSpec) PanelPowerKw() float64 {
	return p.PowerPerM2 / 1000
}

// ErrUnknownPanelType is returned for panel types outside the table.
type ErrUnknownPanelType struct {
	Type PanelType
}

func (e ErrUnknownPanelType) Error() string {
	return fmt.Sprintf("unknown panel type %q", string(e.Type))
}

// LookupPanel returns the spec for t. Every PanelType constant must have a case here;
// anything else is rejected rather than substituted.
func LookupPanel(t PanelType) (PanelSpec, error) {
	switch t {
	case PanelMonocrystalline:
		return PanelSpec{Type: t, Efficiency: 0.22, PowerPerM2: 220, DegradationRate: 0.005, CostMultiplier: 1.0}, nil
	case PanelPolycrystalline:
		return PanelSpec{Type: t, Efficiency: 0.17, PowerPerM2: 170, DegradationRate: 0.006, CostMultiplier: 0.85}, nil
	case PanelThinFilm:
		return PanelSpec{Type: t, Efficiency: 0.12, PowerPerM2: 120, DegradationRate: 0.008, CostMultiplier: 0.70}, nil
	case PanelBifacial:
		// Rear-side gain puts rated output above front-face efficiency.
		return PanelSpec{Type: t, Efficiency: 0.22, PowerPerM2: 240, DegradationRate: 0.004, CostMultiplier: 1.20}, nil
	default:
		return PanelSpec{}, ErrUnknownPanelType{Type: t}
	}
}

// PanelTypes lists the table keys in display order.
func PanelTypes() []PanelType {
	return []PanelType{PanelMonocrystalline, PanelPolycrystalline, PanelThinFilm, PanelBifacial}
}

// PanelCatalog returns every panel spec in display order.
func PanelCatalog() []PanelSpec {
	types := PanelTypes()
	specs := make([]PanelSpec, 0, len(types))
	for _, t := range types {
		spec, err := LookupPanel(t)
		if err != nil {
			continue
		}
		specs = append(specs, spec)
	}
	return specs
}

// ParsePanelType normalizes a user-supplied label ("Thin Film", "thin-film") to a PanelType.
func ParsePanelType(raw string) (PanelType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	t := PanelType(normalized)
	if _, err := LookupPanel(t); err != nil {
		return "", false
	}
	return t, true
}
