package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadStrict bool

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load saw recipes once and report each document",
	Long: "Runs a single reload against the resource root and prints every accepted\n" +
		"recipe and every rejected document. With --strict, exits non-zero when any\n" +
		"document was rejected.",
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadStrict, "strict", false, "Exit non-zero if any document is rejected")
}

func runLoad(cmd *cobra.Command, args []string) error {
	rejected := &rejections{}
	engine, report, err := loadEngine(cmd.Context(), rejected)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatReload(report, engine.Registry().Recipes(), rejected.list))

	if loadStrict && report.Rejected > 0 {
		return errRejected
	}
	return nil
}
