package main

import (
	"fmt"
	"sort"

	"github.com/nitishagar/bharatdcim/internal/config"
	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/format"

	"github.com/spf13/cobra"
)

var scenariosDir string

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List builtin and directory scenarios, grouped by state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := data.BuiltinScenarios()
		fromDir, skipped, err := data.LoadScenarioDir(scenariosDir)
		if err != nil {
			return err
		}
		all = append(all, fromDir...)

		byState := data.GroupByState(all)
		states := make([]string, 0, len(byState))
		for s := range byState {
			states = append(states, s)
		}
		sort.Strings(states)

		for _, state := range states {
			fmt.Printf("%s\n", state)
			for _, s := range byState[state] {
				fmt.Printf("  %-34s %-9s %14s  %s\n", s.ID, s.Source, format.Units(s.Profile.ITLoadKWh, "kWh"), s.Name)
			}
		}
		for name, err := range skipped {
			fmt.Printf("skipped %s: %v\n", name, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
	scenariosCmd.Flags().StringVar(&scenariosDir, "dir", config.FromEnv().ScenarioDir, "directory of scenario YAML files")
}
