package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"solar_potential_backend/internal/estimation/domain"
	"solar_potential_backend/internal/estimation/transport"
)

const siteYAML = `
label: garage
roof:
  usable_area: 120
  total_area: 150
  orientation: south
  slope: 25
  shading_factor: 0.1
  confidence: 0.8
site:
  latitude: 40
  longitude: -75
  electricity_rate: 0.2
  installation_cost: 3
  panel_type: monocrystalline
  system_size_preference: optimal
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodeRequest(t *testing.T) {
	req, err := decodeRequest([]byte(siteYAML))
	if err != nil {
		t.Fatal(err)
	}
	if req.Label != "garage" || req.Roof.UsableArea != 120 || req.Site.PanelType != domain.PanelMonocrystalline {
		t.Fatalf("unexpected request %+v", req)
	}

	if _, err := decodeRequest([]byte("roof:\n  usable_areaa: 10\n")); err == nil {
		t.Fatal("expected unknown keys to be rejected")
	}
}

func TestRunEstimateOffline(t *testing.T) {
	path := writeFile(t, "site.yaml", siteYAML)

	var out bytes.Buffer
	if err := runEstimate(context.Background(), &out, path, estimateOptions{Offline: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := out.String()
	for _, want := range []string{"garage", "Estimated (Medium quality)", "21.12 kW", "$63,360.00"} {
		if !strings.Contains(report, want) {
			t.Fatalf("expected %q in report:\n%s", want, report)
		}
	}
}

func TestRunEstimateWithAssumptions(t *testing.T) {
	site := writeFile(t, "site.yaml", siteYAML)
	assumptions := writeFile(t, "assumptions.yaml", "lifetime_years: 30\n")

	var out bytes.Buffer
	if err := runEstimate(context.Background(), &out, site, estimateOptions{Offline: true, AssumptionsFile: assumptions}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "over 30 years") {
		t.Fatalf("expected overridden horizon in report:\n%s", out.String())
	}
}

func TestRunEstimateReportsValidationErrors(t *testing.T) {
	path := writeFile(t, "site.yaml", strings.Replace(siteYAML, "orientation: south", "orientation: skyward", 1))

	var out bytes.Buffer
	if err := runEstimate(context.Background(), &out, path, estimateOptions{Offline: true}); err == nil {
		t.Fatal("expected an error for an unknown orientation")
	}
	if !strings.Contains(out.String(), "Orientation") {
		t.Fatalf("expected the failing field in output:\n%s", out.String())
	}
}

func TestFormatPayback(t *testing.T) {
	if got := formatPayback(nil); got != "never (no savings)" {
		t.Fatalf("unexpected nil payback %q", got)
	}
	years := 1234.5
	if got := formatPayback(&years); got != "1,234.50 years" {
		t.Fatalf("unexpected payback %q", got)
	}
}

func TestPrintPanels(t *testing.T) {
	var out bytes.Buffer
	if err := printPanels(&out); err != nil {
		t.Fatal(err)
	}
	for _, p := range domain.PanelTypes() {
		if !strings.Contains(out.String(), string(p)) {
			t.Fatalf("expected %s in panel table:\n%s", p, out.String())
		}
	}
}

func TestPrintReportIncludesMonthlyTable(t *testing.T) {
	seasonal := 0.6
	r := transport.EstimateResponse{
		Source:      "NASA POWER API",
		DataQuality: "High",
		Irradiance: &transport.IrradianceSummary{
			AverageIrradiance: 4.5,
			MonthlyIrradiance: []float64{2, 3, 4, 5, 5, 5, 5, 5, 4, 3, 2, 2},
			SeasonalVariation: &seasonal,
		},
	}
	r.Energy.MonthlyBreakdownKwh = []float64{400, 540, 800, 960, 1000, 960, 1000, 1000, 770, 600, 390, 400}

	var out bytes.Buffer
	if err := printReport(&out, r); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Seasonal variation:     60%", "Jan", "Dec", "1,000.00"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in report:\n%s", want, out.String())
		}
	}
}
