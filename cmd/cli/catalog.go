package main

import (
	"fmt"

	"github.com/nitishagar/bharatdcim/internal/data"

	"github.com/spf13/cobra"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

var catalogOut string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Export or validate tariff catalogs",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the builtin catalog to a YAML or JSON file",
	Long: `Write the builtin catalog to a file as a starting point for a custom one.
The format follows the extension: .json for JSON, anything else YAML.

Example:
  bharatdcim catalog export --out tariffs.yaml
  TARIFF_CATALOG_FILE=tariffs.yaml bharatdcim states`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := data.BuiltinCatalog()
		if err := data.SaveCatalog(cat, catalogOut); err != nil {
			return err
		}
		fmt.Printf("Wrote %d schedules to %s\n", len(cat.Schedules), catalogOut)
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file-or-url>",
	Short: "Check that a catalog loads into a registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Validating %s...\n\n", args[0])
		client := data.NewCatalogClient(catalogToken, logger())
		reg, err := data.OpenRegistry(cmd.Context(), args[0], defaultState, client)
		if err != nil {
			fmt.Printf("  %s Catalog loads\n", crossMark)
			return err
		}
		fmt.Printf("  %s Catalog loads\n", checkMark)
		for _, s := range reg.States() {
			fmt.Printf("  %s %s (%s): %d slots covering 24h, %s billing\n",
				checkMark, s.State, s.StateCode, len(s.TimeSlots), s.BillingUnit)
		}
		fmt.Printf("  %s Default state: %s\n", checkMark, reg.Default().State)
		fmt.Println()
		fmt.Println("Catalog is valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogExportCmd, catalogValidateCmd)
	catalogExportCmd.Flags().StringVar(&catalogOut, "out", "tariffs.yaml", "output path (.yaml or .json)")
}
