package main

import (
	"fmt"
	"strconv"

	"github.com/nitishagar/bharatdcim/internal/analysis"
	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/format"
	"github.com/nitishagar/bharatdcim/internal/model"
	"github.com/nitishagar/bharatdcim/internal/tariff"

	"github.com/spf13/cobra"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List the states in the tariff catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		def := reg.Default().State
		fmt.Printf("%-4s %-14s %-8s %-6s %-10s %-10s %s\n", "code", "state", "utility", "unit", "base", "demand", "slots")
		for _, s := range reg.States() {
			marker := ""
			if s.State == def {
				marker = " (default)"
			}
			fmt.Printf("%-4s %-14s %-8s %-6s %-10.2f %-10.2f %d%s\n",
				s.StateCode, s.State, s.Utility, s.BillingUnit, s.BaseEnergyRate, s.DemandCharge, len(s.TimeSlots), marker)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <state>",
	Short: "Show the full tariff schedule for a state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		s, ok := reg.Schedule(args[0])
		if !ok {
			fmt.Printf("state %q not found; showing default %s\n\n", args[0], s.State)
		}
		printSchedule(s)
		return nil
	},
}

var slotCmd = &cobra.Command{
	Use:   "slot <state> <hour>",
	Short: "Show the slot and energy rate in force at an hour (0-23)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hour, err := strconv.Atoi(args[1])
		if err != nil || hour < 0 || hour > 23 {
			return fmt.Errorf("hour must be an integer in [0, 23], got %q", args[1])
		}
		reg, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		s, ok := reg.Schedule(args[0])
		if !ok {
			fmt.Printf("state %q not found; using default %s\n", args[0], s.State)
		}
		unit := string(s.BillingUnit)
		if slot, found := tariff.SlotForHour(s, hour); found {
			fmt.Printf("%s %02d:00  %s (%s)  %s\n", s.State, hour, slot.Name, slot.Category, format.Rate(tariff.EffectiveRate(s.BaseEnergyRate, slot), unit))
		} else {
			fmt.Printf("%s %02d:00  no slot, billed as %s at base  %s\n", s.State, hour, model.CategoryNormal, format.Rate(s.BaseEnergyRate, unit))
		}
		return nil
	},
}

var spreadAveraging string

var spreadCmd = &cobra.Command{
	Use:   "spread [state...]",
	Short: "Summarize the intraday energy-rate spread of each state",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := billing.AveragingMode(spreadAveraging)
		if !mode.Valid() {
			return fmt.Errorf("averaging must be %q or %q", billing.AveragingSlotCount, billing.AveragingDuration)
		}
		reg, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		schedules := reg.States()
		if len(args) > 0 {
			schedules = schedules[:0]
			for _, name := range args {
				s, ok := reg.Schedule(name)
				if !ok {
					return fmt.Errorf("state %q not found", name)
				}
				schedules = append(schedules, s)
			}
		}
		fmt.Printf("%-14s %-7s %-7s %-7s %-7s %-7s %-11s %s\n", "state", "min", "p10", "mean", "p90", "max", "pk/n/op h", "shift/unit")
		for _, s := range schedules {
			sp := analysis.ComputeSpread(s, mode)
			fmt.Printf("%-14s %-7.2f %-7.2f %-7.2f %-7.2f %-7.2f %2d/%2d/%2d    %.2f\n",
				sp.State, sp.MinRate, sp.P10Rate, sp.MeanRate, sp.P90Rate, sp.MaxRate,
				sp.PeakHours, sp.NormalHours, sp.OffPeakHours, sp.ShiftValue)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statesCmd, showCmd, slotCmd, spreadCmd)
	spreadCmd.Flags().StringVar(&spreadAveraging, "averaging", string(billing.AveragingSlotCount), "category averaging: slot_count or duration")
}

func printSchedule(s model.TariffSchedule) {
	unit := string(s.BillingUnit)
	fmt.Printf("%s (%s) - %s, %s\n", s.State, s.StateCode, s.Utility, s.Category)
	if s.RegulatoryStatus != "" {
		fmt.Printf("Status:            %s\n", s.RegulatoryStatus)
	}
	fmt.Printf("Billing unit:      %s\n", unit)
	fmt.Printf("Base energy rate:  %s\n", format.Rate(s.BaseEnergyRate, unit))
	fmt.Printf("Demand charge:     %s/kVA/month\n", format.INRPaise(s.DemandCharge))
	if s.WheelingCharge > 0 {
		fmt.Printf("Wheeling:          %s\n", format.Rate(s.WheelingCharge, unit))
	}
	fmt.Printf("Fuel adjustment:   %v (%s)\n", s.FuelAdjustment.Amount, s.FuelAdjustment.Kind)
	fmt.Printf("Electricity duty:  %s\n", format.Percent(s.ElectricityDutyRate*100))
	fmt.Printf("PF penalty:        below %.2f, %s per 0.10 drop\n", s.PowerFactorPenalty.Threshold, format.Rate(s.PowerFactorPenalty.Rate, "kWh"))
	fmt.Printf("DG rate:           %s\n", format.Rate(s.DGRate, "kWh"))
	fmt.Println()
	fmt.Printf("%-22s %-11s %-9s %-10s %-8s %s\n", "slot", "hours", "category", "x", "+", "rate")
	for _, slot := range s.TimeSlots {
		fmt.Printf("%-22s %02d-%02d (%2dh) %-9s %-10.2f %-8.2f %s\n",
			slot.Name, slot.StartHour, slot.EndHour, slot.Hours(), slot.Category,
			slot.RateMultiplier, slot.RateAdder, format.Rate(tariff.EffectiveRate(s.BaseEnergyRate, slot), unit))
	}
}
