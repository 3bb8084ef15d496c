package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/estimator"
	"github.com/nitishagar/bharatdcim/internal/format"
	"github.com/nitishagar/bharatdcim/internal/model"

	"github.com/spf13/cobra"
)

var (
	billFlags  profileFlags
	billJSON   bool
	hourlyOpts profileFlags
	hourlyOut  string
)

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Estimate one month's electricity bill",
	Long: `Estimate one month's electricity bill for a facility.

The facility comes from --scenario, --config or the inline profile flags.
A load_curve in the scenario switches to the hourly path.

Examples:
  bharatdcim bill --scenario hyderabad-hyperscale-200-racks
  bharatdcim bill --state KA --it-load 100000 --pue 1.5 --contracted 300 --pf 0.95 \
      --peak 30 --normal 45 --off-peak 25`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := billFlags.input(cmd, false)
		if err != nil {
			return err
		}
		est, err := runEstimate(cmd, in)
		if err != nil {
			return err
		}
		if billJSON {
			return writeJSON(os.Stdout, est)
		}
		printEstimate(os.Stdout, est)
		return nil
	},
}

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Estimate a bill through an hourly load curve and write the 24-hour ledger as CSV",
	Long: `Estimate a bill through an hourly load curve. The pattern is derived from
the scenario's load_curve, or from a typical colocation day when none is given.

Examples:
  bharatdcim hourly --scenario mumbai-colocation-50-racks --out results/mumbai-hourly.csv
  bharatdcim hourly --state TN --it-load 220000 --contracted 520 --pf 0.94`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := hourlyOpts.input(cmd, true)
		if err != nil {
			return err
		}
		est, err := runEstimate(cmd, in)
		if err != nil {
			return err
		}

		if hourlyOut == "" || hourlyOut == "-" {
			return billing.WriteHourlyCSV(os.Stdout, est.Hourly)
		}
		if err := os.MkdirAll(filepath.Dir(hourlyOut), 0o755); err != nil {
			return err
		}
		if err := billing.WriteHourlyCSVFile(hourlyOut, est.Hourly); err != nil {
			return err
		}
		printEstimate(os.Stdout, est)
		fmt.Printf("\nWrote %d rows to %s\n", len(est.Hourly), hourlyOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(billCmd, hourlyCmd)

	billFlags.bind(billCmd, true)
	billCmd.Flags().BoolVar(&billJSON, "json", false, "print the estimate as JSON")

	hourlyOpts.bind(hourlyCmd, true)
	hourlyCmd.Flags().StringVar(&hourlyOut, "out", "", "CSV output path (default: stdout)")
}

func runEstimate(cmd *cobra.Command, in estimator.Input) (data.Estimate, error) {
	if in.State == "" {
		return data.Estimate{}, errors.New("a state is required: use --state, --config or --scenario")
	}
	reg, err := openRegistry(cmd)
	if err != nil {
		return data.Estimate{}, err
	}
	est := estimator.Estimate(reg, in)
	for _, w := range est.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return est, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEstimate(w io.Writer, est data.Estimate) {
	b := est.Bill
	unit := string(b.BillingUnit)
	p := est.Profile.Pattern

	fmt.Fprintf(w, "State:              %s", est.State)
	if !est.Matched {
		fmt.Fprintf(w, " (requested %q)", est.RequestedState)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Path:               %s, %s averaging\n", est.Path, est.Averaging)
	fmt.Fprintf(w, "Pattern:            peak %s  normal %s  off-peak %s\n",
		format.Percent(p.PeakPercent), format.Percent(p.NormalPercent), format.Percent(p.OffPeakPercent))
	fmt.Fprintf(w, "Raw consumption:    %s\n", format.Units(b.RawConsumption, "kWh"))
	fmt.Fprintf(w, "Billed consumption: %s\n", format.Units(b.BilledConsumption, unit))
	fmt.Fprintf(w, "Category rates:     peak %s  normal %s  off-peak %s\n",
		format.Rate(b.Rates.Peak, unit), format.Rate(b.Rates.Normal, unit), format.Rate(b.Rates.OffPeak, unit))
	fmt.Fprintln(w)

	line := func(label string, v float64) {
		fmt.Fprintf(w, "  %-20s %16s\n", label, format.INR(v))
	}
	line("Energy (peak)", b.EnergyCharges.Peak)
	line("Energy (normal)", b.EnergyCharges.Normal)
	line("Energy (off-peak)", b.EnergyCharges.OffPeak)
	if b.WheelingCharges != 0 {
		line("Wheeling", b.WheelingCharges)
	}
	line(fmt.Sprintf("Demand (%s kVA)", format.Number(b.BilledDemandKVA, 0)), b.DemandCharges)
	line("Fuel adjustment", b.FuelAdjustment)
	line("Electricity duty", b.ElectricityDuty)
	if b.PowerFactorPenalty != 0 {
		line("PF penalty", b.PowerFactorPenalty)
	}
	if b.DGCharges != 0 {
		line("DG", b.DGCharges)
	}
	line("Subtotal", b.Subtotal)
	line(fmt.Sprintf("GST (%s)", format.Percent(billing.TaxRate*100)), b.Tax)
	fmt.Fprintf(w, "  %-20s %16s  (%s)\n", "Total", format.INR(b.Total), format.INRCompact(b.Total))
	fmt.Fprintf(w, "Effective rate:     %s\n", format.Rate(b.EffectiveRate, "kWh"))
}

func patternString(p model.Pattern) string {
	return fmt.Sprintf("%.0f/%.0f/%.0f", p.PeakPercent, p.NormalPercent, p.OffPeakPercent)
}

func newCalculator(mode billing.AveragingMode) *billing.Calculator {
	calc := billing.New()
	if mode.Valid() {
		calc.Averaging = mode
	}
	return calc
}
