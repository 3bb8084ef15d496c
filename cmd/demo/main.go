package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nitishagar/bharatdcim/internal/billing"
	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/estimator"
	"github.com/nitishagar/bharatdcim/internal/format"
	"github.com/nitishagar/bharatdcim/internal/tariff"
)

// Demo:
// - Bill every builtin scenario (or one --config scenario) under the builtin catalog
// - Run the first one through the hourly path to show how the pieces fit together
func main() {
	cfgPath := flag.String("config", "", "Path to a scenario YAML (optional)")
	n := flag.Int("n", 24, "Number of hourly ledger rows to print")
	outCSV := flag.String("out", "", "Optional path to write the hourly ledger CSV (e.g. results/hourly.csv)")
	flag.Parse()

	reg := tariff.MustBuiltin()

	inputs := []estimator.Input{}
	names := []string{}
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		inputs = append(inputs, estimator.FromConfig(cfg))
		names = append(names, *cfgPath)
	} else {
		for _, s := range data.BuiltinScenarios() {
			inputs = append(inputs, estimator.FromScenario(s))
			names = append(names, s.ID)
		}
	}

	fmt.Printf("%-34s %-12s %-16s %-10s %s\n", "scenario", "state", "total", "compact", "rate")
	for i, in := range inputs {
		est := estimator.Estimate(reg, in)
		fmt.Printf("%-34s %-12s %-16s %-10s %s\n",
			names[i], est.State, format.INR(est.Bill.Total), format.INRCompact(est.Bill.Total),
			format.Rate(est.Bill.EffectiveRate, "kWh"))
	}

	first := inputs[0]
	first.Hourly = true
	est := estimator.Estimate(reg, first)
	fmt.Printf("\nHourly view of %s (%s), pattern %.1f/%.1f/%.1f\n\n", names[0], est.State,
		est.Profile.Pattern.PeakPercent, est.Profile.Pattern.NormalPercent, est.Profile.Pattern.OffPeakPercent)

	for i := 0; i < min(*n, len(est.Hourly)); i++ {
		r := est.Hourly[i]
		fmt.Printf(
			"%02d:00  %-18s %-8s  rate=%6.2f  load=%.4f  kwh=%10.1f  billed=%10.1f  charge=%s\n",
			r.Hour,
			r.SlotName,
			string(r.Category),
			r.Rate,
			r.LoadWeight,
			r.ConsumptionKWh,
			r.BilledUnits,
			format.INR(r.EnergyCharge),
		)
	}

	if *outCSV != "" {
		if err := billing.WriteHourlyCSVFile(*outCSV, est.Hourly); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	for _, w := range est.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Printf("\nDone. Total=%s  Effective rate=%s\n", format.INR(est.Bill.Total), format.Rate(est.Bill.EffectiveRate, "kWh"))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
