package main

import (
	"fmt"
	"os"

	"github.com/nitishagar/bharatdcim/internal/analysis"
	"github.com/nitishagar/bharatdcim/internal/format"

	"github.com/spf13/cobra"
)

var (
	compareFlags profileFlags
	compareJSON  bool
	shiftFlags   profileFlags
	shiftPoints  float64
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Bill one facility in every state and rank by effective rate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := compareFlags.input(cmd, false)
		if err != nil {
			return err
		}
		reg, err := openRegistry(cmd)
		if err != nil {
			return err
		}

		calc := newCalculator(in.Averaging)
		ranked := analysis.RankByEffectiveRate(analysis.CompareStates(calc, reg, in.Profile))
		if compareJSON {
			return writeJSON(os.Stdout, ranked)
		}

		fmt.Printf("Profile: %s kWh IT, PUE %.2f, pattern %s\n\n",
			format.Number(in.Profile.ITLoadKWh, 0), in.Profile.PUE, patternString(in.Profile.Pattern))
		fmt.Printf("%-4s %-14s %-6s %-16s %-14s %s\n", "rank", "state", "unit", "total", "rate", "vs cheapest")
		for _, r := range ranked {
			fmt.Printf("%-4d %-14s %-6s %-16s %-14s %s\n",
				r.Rank, r.State, r.BillingUnit, format.INR(r.Bill.Total),
				format.Rate(r.Bill.EffectiveRate, "kWh"), format.INRCompact(r.DeltaVsCheapest))
		}
		return nil
	},
}

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Show the saving from moving load from peak to off-peak hours",
	Long: `Show the saving from moving --points percentage points of consumption from
the peak category to off-peak. The shift is capped at the current peak share.

Example:
  bharatdcim shift --scenario mumbai-colocation-50-racks --points 15`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if shiftPoints < 0 || shiftPoints > 100 {
			return fmt.Errorf("--points must be in [0, 100], got %v", shiftPoints)
		}
		in, err := shiftFlags.input(cmd, false)
		if err != nil {
			return err
		}
		if in.State == "" {
			return fmt.Errorf("a state is required: use --state, --config or --scenario")
		}
		reg, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		s, ok := reg.Schedule(in.State)
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: state %q not found; using %s\n", in.State, s.State)
		}

		shift := analysis.ShiftPeakToOffPeak(newCalculator(in.Averaging), s, in.Profile, shiftPoints)
		fmt.Printf("%s: moved %.1f points, pattern %s -> %s\n",
			s.State, shift.Points, patternString(in.Profile.Pattern), patternString(shift.Pattern))
		fmt.Printf("  Before:  %s  (%s)\n", format.INR(shift.Before.Total), format.Rate(shift.Before.EffectiveRate, "kWh"))
		fmt.Printf("  After:   %s  (%s)\n", format.INR(shift.After.Total), format.Rate(shift.After.EffectiveRate, "kWh"))
		fmt.Printf("  Savings: %s per month, %s per year\n", format.INR(shift.Savings), format.INRCompact(shift.Savings*12))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd, shiftCmd)

	compareFlags.bind(compareCmd, false)
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print the ranking as JSON")

	shiftFlags.bind(shiftCmd, true)
	shiftCmd.Flags().Float64Var(&shiftPoints, "points", 10, "percentage points to move from peak to off-peak")
}
