package domain

import "strings"

// Orientation is the compass direction a roof plane faces.
type Orientation string

const (
	OrientationSouth     Orientation = "South"
	OrientationSoutheast Orientation = "Southeast"
	OrientationSouthwest Orientation = "Southwest"
	OrientationEast      Orientation = "East"
	OrientationWest      Orientation = "West"
	OrientationNorth     Orientation = "North"
	OrientationFlat      Orientation = "Flat"
	OrientationOther     Orientation = "Other"
)

var knownOrientations = map[string]Orientation{
	"south":     OrientationSouth,
	"southeast": OrientationSoutheast,
	"southwest": OrientationSouthwest,
	"east":      OrientationEast,
	"west":      OrientationWest,
	"north":     OrientationNorth,
	"flat":      OrientationFlat,
	"other":     OrientationOther,
}

// ParseOrientation maps a label to an Orientation, ignoring case and separators
// ("south-east", "SouthEast"). The bool is false for labels outside the enum.
func ParseOrientation(raw string) (Orientation, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	o, ok := knownOrientations[key]
	return o, ok
}

// RoofProfile is produced by the roof-analysis collaborator and is read-only here.
type RoofProfile struct {
	UsableArea    float64     `json:"usable_area" yaml:"usable_area" validate:"gt=0,lte=10000"`
	TotalArea     float64     `json:"total_area" yaml:"total_area" validate:"gtefield=UsableArea"`
	Orientation   Orientation `json:"orientation" yaml:"orientation" validate:"required,orientation"`
	Slope         float64     `json:"slope" yaml:"slope" validate:"gte=0,lte=90"`
	ShadingFactor float64     `json:"shading_factor" yaml:"shading_factor" validate:"gte=0,lt=1"`
	RoofType      string      `json:"roof_type,omitempty" yaml:"roof_type"`
	Confidence    float64     `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
}

// Normalized returns a copy with a canonical orientation label.
func (r RoofProfile) Normalized() RoofProfile {
	if o, ok := ParseOrientation(string(r.Orientation)); ok {
		r.Orientation = o
	}
	return r
}
