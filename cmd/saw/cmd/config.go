package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long:  "Shows the settings after SAW_* environment variables and flags are applied.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	dbStatus := fmt.Sprintf("%s✗ missing%s", colorYellow, colorReset)
	if _, err := os.Stat(cfg.DBPath); err == nil {
		dbStatus = fmt.Sprintf("%s✓ present%s", colorGreen, colorReset)
	}
	catalogFile := cfg.CatalogFile
	if catalogFile == "" {
		catalogFile = colorGray + "(stored catalog)" + colorReset
	}
	metrics := cfg.MetricsAddr
	if metrics == "" {
		metrics = colorGray + "(disabled)" + colorReset
	}
	seed := fmt.Sprint(cfg.Seed)
	if cfg.Seed == 0 {
		seed = "0 (time-seeded)"
	}

	fmt.Fprintf(out, "%s⚡ saw config%s\n", colorBold, colorReset)
	fmt.Fprintf(out, "  Resources:    %s\n", cfg.Resources)
	fmt.Fprintf(out, "  DB:           %s %s\n", cfg.DBPath, dbStatus)
	fmt.Fprintf(out, "  Catalog:      %s\n", cfg.Catalog)
	fmt.Fprintf(out, "  Catalog file: %s\n", catalogFile)
	fmt.Fprintf(out, "  Workers:      %d\n", cfg.Workers)
	fmt.Fprintf(out, "  Seed:         %s\n", seed)
	fmt.Fprintf(out, "  Log level:    %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  Metrics:      %s\n", metrics)
	return nil
}
