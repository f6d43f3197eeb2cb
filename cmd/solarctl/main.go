package main

import (
	"os"
	"time"

	"solar_potential_backend/internal/irradiance/client"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "solarctl",
		Short:        "Estimate rooftop solar potential from the command line",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(panelsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func estimateCmd() *cobra.Command {
	var opts estimateOptions

	cmd := &cobra.Command{
		Use:   "estimate [site.yaml]",
		Short: "Run the estimation pipeline for one site description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "skip NASA POWER and use the latitude-banded irradiance estimate")
	cmd.Flags().StringVar(&opts.AssumptionsFile, "assumptions", "", "YAML file overriding business assumptions")
	cmd.Flags().StringVar(&opts.NASABaseURL, "nasa-url", client.DefaultBaseURL, "NASA POWER daily point endpoint")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "NASA POWER request timeout")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the estimate as JSON")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log progress to stderr")
	return cmd
}

func panelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "panels",
		Short: "List the supported panel technologies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printPanels(cmd.OutOrStdout())
		},
	}
}
