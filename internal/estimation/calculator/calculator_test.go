package calculator

import (
	"errors"
	"math"
	"testing"

	"solar_potential_backend/internal/estimation/domain"
)

func referenceRoof() domain.RoofProfile {
	return domain.RoofProfile{
		UsableArea:    120,
		TotalArea:     150,
		Orientation:   domain.OrientationSouth,
		Slope:         25,
		ShadingFactor: 0.10,
		RoofType:      "gable",
		Confidence:    0.8,
	}
}

func referenceSite() domain.SiteConfig {
	return domain.SiteConfig{
		Latitude:             40.0,
		Longitude:            -75.0,
		ElectricityRate:      0.20,
		InstallationCost:     3.00,
		PanelType:            domain.PanelMonocrystalline,
		SystemSizePreference: domain.SizeOptimal,
	}
}

func mono(t *testing.T) domain.PanelSpec {
	t.Helper()
	spec, err := domain.LookupPanel(domain.PanelMonocrystalline)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func assertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: expected %v (±%v), got %v", name, want, tol, got)
	}
}

func TestRunReferenceRoof(t *testing.T) {
	b, err := Run(referenceRoof(), referenceSite(), 5.0, DefaultAssumptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertClose(t, "max_system_size_kw", b.System.MaxSystemSizeKw, 26.4, 1e-9)
	assertClose(t, "system_size_kw", b.System.SystemSizeKw, 21.12, 1e-9)
	if b.System.PanelCount != 96 {
		t.Fatalf("expected 96 panels, got %d", b.System.PanelCount)
	}

	assertClose(t, "orientation_factor", b.Energy.OrientationFactor, 1.0, 0)
	assertClose(t, "slope_factor", b.Energy.SlopeFactor, 0.93, 1e-12)
	assertClose(t, "shading_factor", b.Energy.ShadingFactor, 0.90, 1e-12)

	wantAnnual := 21.12 * 5.0 * 365 * 1.0 * 0.93 * 0.90
	assertClose(t, "annual_energy_kwh", b.Energy.AnnualEnergyKwh, wantAnnual, 1e-6)
	assertClose(t, "annual_energy_kwh (rounded)", b.Energy.AnnualEnergyKwh, 32261.33, 0.01)
	assertClose(t, "monthly_energy_kwh", b.Energy.MonthlyEnergyKwh, wantAnnual/12, 1e-6)
	assertClose(t, "daily_energy_kwh", b.Energy.DailyEnergyKwh, 88.39, 1e-9)
	assertClose(t, "capacity_factor", b.Energy.CapacityFactor, 5.0/24*0.22*100, 1e-9)

	assertClose(t, "total_cost", b.Financial.TotalCost, 63360, 1e-6)
	assertClose(t, "annual_savings", b.Financial.AnnualSavings, wantAnnual*0.20, 1e-6)
	if b.Financial.PaybackYears == nil {
		t.Fatal("expected payback years to be defined")
	}
	assertClose(t, "payback_years", *b.Financial.PaybackYears, 9.82, 1e-9)
	if b.Financial.LifetimeYears != 25 {
		t.Fatalf("expected 25-year horizon, got %d", b.Financial.LifetimeYears)
	}

	assertClose(t, "co2_offset_kg", b.Environmental.Co2OffsetKg, wantAnnual*0.4, 1e-6)
	if b.Environmental.TreesEquivalent != int(math.Round(wantAnnual*0.4/22)) {
		t.Fatalf("unexpected trees equivalent %d", b.Environmental.TreesEquivalent)
	}
}

func TestSizeSystemMonotonicInArea(t *testing.T) {
	panel := mono(t)
	for _, pref := range []domain.SizePreference{domain.SizeOptimal, domain.SizeMaximum, domain.SizeBudget} {
		multiplier, err := pref.Multiplier()
		if err != nil {
			t.Fatal(err)
		}
		previous := -1.0
		for area := 0.5; area <= 400; area += 0.73 {
			size := SizeSystem(area, panel, multiplier).SystemSizeKw
			if size < previous {
				t.Fatalf("%s: size decreased from %v to %v at area %v", pref, previous, size, area)
			}
			previous = size
		}
	}
}

func TestSizeSystemCapacityBound(t *testing.T) {
	for _, panelType := range domain.PanelTypes() {
		panel, err := domain.LookupPanel(panelType)
		if err != nil {
			t.Fatal(err)
		}
		for _, area := range []float64{0.01, 0.03, 1, 7.5, 42, 120, 999.9} {
			spec := SizeSystem(area, panel, 0.95)
			if spec.SystemSizeKw > spec.MaxSystemSizeKw {
				t.Fatalf("%s/%v: size %v exceeds max %v", panelType, area, spec.SystemSizeKw, spec.MaxSystemSizeKw)
			}
			installed := float64(spec.PanelCount) * panel.PanelPowerKw()
			if installed > spec.SystemSizeKw+1e-9 {
				t.Fatalf("%s/%v: %d panels (%v kW) exceed system size %v", panelType, area, spec.PanelCount, installed, spec.SystemSizeKw)
			}
			if spec.SystemSizeKw-installed >= panel.PanelPowerKw()+1e-9 {
				t.Fatalf("%s/%v: more than one panel of slack (%v kW vs %v kW)", panelType, area, installed, spec.SystemSizeKw)
			}
		}
	}
}

func TestOrientationFactor(t *testing.T) {
	cases := []struct {
		orientation domain.Orientation
		want        float64
	}{
		{domain.OrientationSouth, 1.00},
		{domain.OrientationSoutheast, 0.95},
		{domain.OrientationSouthwest, 0.95},
		{domain.OrientationEast, 0.85},
		{domain.OrientationWest, 0.85},
		{domain.OrientationNorth, 0.70},
		{domain.OrientationFlat, 0.90},
		{domain.OrientationOther, 0.90},
		{domain.Orientation("northeast"), 0.90},
	}
	for _, tc := range cases {
		got := OrientationFactor(tc.orientation)
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.orientation, tc.want, got)
		}
		if got <= 0 || got > 1 {
			t.Fatalf("%s: factor %v outside (0,1]", tc.orientation, got)
		}
	}
}

func TestSlopeFactorBounds(t *testing.T) {
	for slope := 0.0; slope <= 90; slope += 0.5 {
		f := SlopeFactor(slope)
		if f < 0.80 || f > 1 {
			t.Fatalf("slope %v: factor %v outside [0.80, 1]", slope, f)
		}
	}
	if SlopeFactor(32) != 1 {
		t.Fatalf("expected optimum at 32°, got %v", SlopeFactor(32))
	}
	if SlopeFactor(0) != 0.80 || SlopeFactor(90) != 0.80 {
		t.Fatalf("expected floor at extremes, got %v and %v", SlopeFactor(0), SlopeFactor(90))
	}
}

func TestLifetimeIdentity(t *testing.T) {
	b, err := Run(referenceRoof(), referenceSite(), 5.0, DefaultAssumptions())
	if err != nil {
		t.Fatal(err)
	}

	annual := b.Energy.AnnualEnergyKwh
	var gross float64
	for y := 1; y <= 25; y++ {
		gross += annual * math.Pow(1-0.005, float64(y-1)) * 0.20 * math.Pow(1.03, float64(y-1))
	}
	total := b.Financial.TotalCost
	wantROI := math.Round((gross-total)/total*100*100) / 100

	assertClose(t, "lifetime_savings", b.Financial.LifetimeSavings, gross-total, 1e-6)
	assertClose(t, "roi_percent", b.Financial.RoiPercent, wantROI, 0.011)
}

func TestEvaluateFinancialsZeroSavingsHasNoPayback(t *testing.T) {
	panel := mono(t)
	system := SizeSystem(50, panel, 0.8)
	energy := domain.EnergyProduction{AnnualEnergyKwh: 0}

	m := EvaluateFinancials(system, energy, referenceSite(), DefaultAssumptions())

	if m.PaybackYears != nil {
		t.Fatalf("expected nil payback sentinel, got %v", *m.PaybackYears)
	}
	if math.IsNaN(m.RoiPercent) || math.IsInf(m.RoiPercent, 0) {
		t.Fatalf("expected finite ROI, got %v", m.RoiPercent)
	}
	assertClose(t, "lifetime_savings", m.LifetimeSavings, -m.TotalCost, 1e-9)
}

func TestEvaluateFinancialsIncentiveIsInformational(t *testing.T) {
	b, err := Run(referenceRoof(), referenceSite(), 5.0, DefaultAssumptions())
	if err != nil {
		t.Fatal(err)
	}
	assertClose(t, "federal_incentive", b.Financial.FederalIncentive, 63360*0.30, 1e-6)
	assertClose(t, "net_cost", b.Financial.NetCost, 63360*0.70, 1e-6)
	assertClose(t, "monthly_savings", b.Financial.MonthlySavings, b.Financial.AnnualSavings/12, 1e-9)
}

func TestAssumptionsOverrideInflationAndEmissions(t *testing.T) {
	a := DefaultAssumptions()
	a.RateInflation = 0
	a.GridEmissionKgPerKwh = 0.2

	b, err := Run(referenceRoof(), referenceSite(), 5.0, a)
	if err != nil {
		t.Fatal(err)
	}

	annual := b.Energy.AnnualEnergyKwh
	var gross float64
	for y := 1; y <= 25; y++ {
		gross += annual * math.Pow(0.995, float64(y-1)) * 0.20
	}
	assertClose(t, "lifetime_savings", b.Financial.LifetimeSavings, gross-b.Financial.TotalCost, 1e-6)
	assertClose(t, "co2_offset_kg", b.Environmental.Co2OffsetKg, annual*0.2, 1e-9)
}

func TestEnvironmentalImpactOf(t *testing.T) {
	energy := domain.EnergyProduction{AnnualEnergyKwh: 11000}
	impact := EnvironmentalImpactOf(energy, 25, DefaultAssumptions())

	assertClose(t, "co2_offset_kg", impact.Co2OffsetKg, 4400, 1e-9)
	if impact.TreesEquivalent != 200 {
		t.Fatalf("expected 200 trees, got %d", impact.TreesEquivalent)
	}
	assertClose(t, "lifetime_co2_offset_kg", impact.LifetimeCo2OffsetKg, 110000, 1e-6)
	assertClose(t, "cars_equivalent", impact.CarsEquivalent, 0.96, 1e-9)
}

func TestRunRejectsUnknownPanelAndPreference(t *testing.T) {
	site := referenceSite()
	site.PanelType = "perovskite"
	if _, err := Run(referenceRoof(), site, 5.0, DefaultAssumptions()); err == nil {
		t.Fatal("expected unknown panel type to be rejected")
	}

	site = referenceSite()
	site.SystemSizePreference = "everything"
	if _, err := Run(referenceRoof(), site, 5.0, DefaultAssumptions()); err == nil {
		t.Fatal("expected unknown preference to be rejected")
	}
}

func TestRunReportsNonFiniteIrradiance(t *testing.T) {
	_, err := Run(referenceRoof(), referenceSite(), math.NaN(), DefaultAssumptions())
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
}

func TestFallbackEstimate(t *testing.T) {
	b := FallbackEstimate(referenceRoof(), referenceSite(), DefaultAssumptions())

	// min(120*0.15, 20) = 18 kW
	assertClose(t, "system_size_kw", b.System.SystemSizeKw, 18, 1e-9)
	assertClose(t, "annual_energy_kwh", b.Energy.AnnualEnergyKwh, 21600, 1e-9)
	assertClose(t, "total_cost", b.Financial.TotalCost, 54000, 1e-6)
	assertClose(t, "annual_savings", b.Financial.AnnualSavings, 4320, 1e-9)
	if b.Financial.PaybackYears == nil {
		t.Fatal("expected defined payback")
	}
	assertClose(t, "payback_years", *b.Financial.PaybackYears, 12.5, 1e-9)
	assertClose(t, "lifetime_savings", b.Financial.LifetimeSavings, 4320*20-54000, 1e-6)
	assertClose(t, "roi_percent", b.Financial.RoiPercent, 60, 1e-9)
	if b.Financial.LifetimeYears != 20 {
		t.Fatalf("expected flat 20-year horizon, got %d", b.Financial.LifetimeYears)
	}
	assertClose(t, "co2_offset_kg", b.Environmental.Co2OffsetKg, 8640, 1e-9)
	if b.Environmental.TreesEquivalent != 393 {
		t.Fatalf("expected 393 trees, got %d", b.Environmental.TreesEquivalent)
	}
}

func TestFallbackEstimateCapsLargeRoofs(t *testing.T) {
	roof := referenceRoof()
	roof.UsableArea = 1000
	roof.TotalArea = 1200

	b := FallbackEstimate(roof, referenceSite(), DefaultAssumptions())
	assertClose(t, "system_size_kw", b.System.SystemSizeKw, 20, 1e-9)
}

func TestFallbackEstimateNeverExceedsPanelDensity(t *testing.T) {
	site := referenceSite()
	site.PanelType = domain.PanelThinFilm

	b := FallbackEstimate(referenceRoof(), site, DefaultAssumptions())
	if b.System.SystemSizeKw > b.System.MaxSystemSizeKw {
		t.Fatalf("fallback size %v exceeds max %v", b.System.SystemSizeKw, b.System.MaxSystemSizeKw)
	}
}

func TestFallbackEstimateToleratesUnknownPanel(t *testing.T) {
	site := referenceSite()
	site.PanelType = "mystery"

	b := FallbackEstimate(referenceRoof(), site, DefaultAssumptions())
	if b.System.PanelSpec.Type != domain.PanelMonocrystalline {
		t.Fatalf("expected monocrystalline substitute, got %s", b.System.PanelSpec.Type)
	}
}

func TestMonthlyProductionFollowsIrradiance(t *testing.T) {
	monthly := []float64{2, 3, 4, 5, 6, 7, 7, 6, 5, 4, 3, 2}
	annual := 12000.0

	got := MonthlyProduction(annual, monthly)
	if len(got) != 12 {
		t.Fatalf("expected twelve months, got %v", got)
	}

	var sum float64
	for _, v := range got {
		sum += v
	}
	assertClose(t, "sum of months", sum, annual, 0.06)

	// July has 3.5x January's irradiance over the same number of days.
	assertClose(t, "july/january", got[6]/got[0], 3.5, 1e-3)
	// June and July share irradiance; June is one day shorter.
	assertClose(t, "june/july", got[5]/got[6], 30.0/31.0, 1e-3)
}

func TestMonthlyProductionRequiresFullProfile(t *testing.T) {
	cases := map[string][]float64{
		"empty":    nil,
		"short":    {5, 5, 5},
		"zero":     {5, 5, 5, 5, 5, 0, 5, 5, 5, 5, 5, 5},
		"nan":      {5, 5, 5, 5, 5, math.NaN(), 5, 5, 5, 5, 5, 5},
		"infinite": {5, 5, 5, 5, 5, math.Inf(1), 5, 5, 5, 5, 5, 5},
		"negative": {5, 5, 5, 5, 5, -1, 5, 5, 5, 5, 5, 5},
	}
	for name, monthly := range cases {
		if got := MonthlyProduction(1000, monthly); got != nil {
			t.Fatalf("%s: expected no breakdown, got %v", name, got)
		}
	}
}
