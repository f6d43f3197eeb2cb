package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"solar_potential_backend/internal/estimation/domain"
	"solar_potential_backend/internal/estimation/transport"
	"solar_potential_backend/platform/apperr"
	"solar_potential_backend/platform/validator"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func printReport(w io.Writer, r transport.EstimateResponse) error {
	title := "Solar Potential Estimate"
	if r.Label != "" {
		title += ": " + r.Label
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "========================")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Source:                 %s (%s quality)\n", r.Source, r.DataQuality)
	if r.Irradiance != nil {
		printer.Fprintf(w, "  Irradiance:             %.2f kWh/m²/day\n", r.Irradiance.AverageIrradiance)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintln(w, "------")
	printer.Fprintf(w, "  Size:                   %.2f kW (max %.2f kW)\n", r.System.SystemSizeKw, r.System.MaxSystemSizeKw)
	printer.Fprintf(w, "  Panels:                 %d × %s\n", r.System.PanelCount, r.System.PanelSpec.Type)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Energy")
	fmt.Fprintln(w, "------")
	printer.Fprintf(w, "  Annual production:      %.2f kWh\n", r.Energy.AnnualEnergyKwh)
	printer.Fprintf(w, "  Daily production:       %.2f kWh\n", r.Energy.DailyEnergyKwh)
	printer.Fprintf(w, "  Capacity factor:        %.2f%%\n", r.Energy.CapacityFactor)
	if r.Irradiance != nil && r.Irradiance.SeasonalVariation != nil {
		printer.Fprintf(w, "  Seasonal variation:     %.0f%%\n", *r.Irradiance.SeasonalVariation*100)
	}
	fmt.Fprintln(w)
	if err := printMonthly(w, r); err != nil {
		return err
	}

	fmt.Fprintln(w, "Financial")
	fmt.Fprintln(w, "---------")
	printer.Fprintf(w, "  Total cost:             $%.2f\n", r.Financial.TotalCost)
	printer.Fprintf(w, "  Federal incentive:      $%.2f\n", r.Financial.FederalIncentive)
	printer.Fprintf(w, "  Annual savings:         $%.2f\n", r.Financial.AnnualSavings)
	fmt.Fprintf(w, "  Payback:                %s\n", formatPayback(r.Financial.PaybackYears))
	printer.Fprintf(w, "  Lifetime savings:       $%.2f over %d years\n", r.Financial.LifetimeSavings, r.Financial.LifetimeYears)
	printer.Fprintf(w, "  ROI:                    %.2f%%\n", r.Financial.RoiPercent)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environmental")
	fmt.Fprintln(w, "-------------")
	printer.Fprintf(w, "  CO₂ offset:             %.2f kg/year\n", r.Environmental.Co2OffsetKg)
	printer.Fprintf(w, "  Trees equivalent:       %d\n", r.Environmental.TreesEquivalent)
	return nil
}

func printMonthly(w io.Writer, r transport.EstimateResponse) error {
	monthly := r.Energy.MonthlyBreakdownKwh
	if len(monthly) != 12 || r.Irradiance == nil || len(r.Irradiance.MonthlyIrradiance) != 12 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Month", "kWh/m²/day", "Production kWh")
	for i, kwh := range monthly {
		if err := table.Append([]string{
			time.Month(i + 1).String()[:3],
			printer.Sprintf("%.2f", r.Irradiance.MonthlyIrradiance[i]),
			printer.Sprintf("%.2f", kwh),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func formatPayback(years *float64) string {
	if years == nil {
		return "never (no savings)"
	}
	return printer.Sprintf("%.2f years", *years)
}

func printEstimateError(w io.Writer, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return
	}
	details, ok := appErr.Details.([]validator.FieldError)
	if !ok {
		return
	}
	fmt.Fprintf(w, "ERRORS (%d):\n", len(details))
	for _, d := range details {
		if d.Param != "" {
			fmt.Fprintf(w, "  %s: %s=%s\n", d.Field, d.Rule, d.Param)
		} else {
			fmt.Fprintf(w, "  %s: %s\n", d.Field, d.Rule)
		}
	}
}

func printPanels(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Type", "Efficiency", "W/m²", "Degradation", "Cost multiplier")
	for _, p := range domain.PanelCatalog() {
		if err := table.Append([]string{
			string(p.Type),
			printer.Sprintf("%.0f%%", p.Efficiency*100),
			printer.Sprintf("%.0f", p.PowerPerM2),
			printer.Sprintf("%.1f%%/yr", p.DegradationRate*100),
			printer.Sprintf("%.2f", p.CostMultiplier),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
