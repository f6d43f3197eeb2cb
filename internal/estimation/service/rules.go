package service

import (
	"solar_potential_backend/internal/estimation/domain"
	"solar_potential_backend/platform/validator"
)

// RegisterValidationRules adds the enum tags used by RoofProfile and SiteConfig.
func RegisterValidationRules(val *validator.Validator) error {
	rules := map[string]func(string) bool{
		"orientation": func(s string) bool {
			_, ok := domain.ParseOrientation(s)
			return ok
		},
		"panel_type": func(s string) bool {
			_, ok := domain.ParsePanelType(s)
			return ok
		},
		"size_preference": func(s string) bool {
			_, ok := domain.ParseSizePreference(s)
			return ok
		},
	}
	for tag, parse := range rules {
		if err := val.RegisterEnum(tag, parse); err != nil {
			return err
		}
	}
	return nil
}
