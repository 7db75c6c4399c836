// Command hubctl is the Cobra-based CLI companion to cmd/api, replacing
// the teacher's flag-based cmd/cli: the pack's dominant CLI idiom
// (ollamamax, descheduler) is Cobra, not manual flag.Parse.
package main

import (
	"fmt"
	"os"

	"energyhub/internal/config"
	"energyhub/internal/hub"
	"energyhub/internal/obs"
	"energyhub/internal/scheduler"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "hubctl",
		Short: "Inspect and drive an energy hub scenario from the command line",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "scenario.yaml", "path to a scenario YAML file")

	root.AddCommand(runCmd(), scheduleCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadHub() (*hub.Hub, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	sched, err := scheduler.New(string(cfg.Scheduler.Type), cfg.Scheduler.Lookahead)
	if err != nil {
		return nil, nil, err
	}
	h := hub.New(sched)
	for _, s := range cfg.Sources {
		if err := h.UpdateSourceProfile(s.Name, s.Profile, false); err != nil {
			return nil, nil, err
		}
	}
	if err := h.Schedule(); err != nil {
		return nil, nil, err
	}
	return h, cfg, nil
}

func runCmd() *cobra.Command {
	var ticks int
	var ledgerPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario for N ticks and print (optionally write) a per-tick ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, err := loadHub()
			if err != nil {
				return err
			}

			rows := make([]obs.LedgerRow, 0, ticks)
			for t := 0; t < ticks; t++ {
				h.Tick()
				rows = append(rows, obs.LedgerRow{
					Tick:             t + 1,
					SourceEnergy0:    obs.Head0(h.SourceEnergy()),
					AssignedEnergy0:  obs.Head0(h.AssignedEnergy()),
					PlannedEnergy0:   obs.Head0(h.PlannedEnergy()),
					AvailableEnergy0: obs.Head0(h.AvailableEnergy()),
					Score:            h.Score(),
					WaitingCount:     len(h.WaitingRequests()),
					RunningCount:     len(h.RunningJobs()),
				})
			}

			for _, r := range rows {
				fmt.Printf("tick=%-4d available[0]=%.3f assigned[0]=%.3f planned[0]=%.3f score=%.4f waiting=%d running=%d\n",
					r.Tick, r.AvailableEnergy0, r.AssignedEnergy0, r.PlannedEnergy0, r.Score, r.WaitingCount, r.RunningCount)
			}

			if ledgerPath != "" {
				if err := obs.WriteLedgerCSV(ledgerPath, rows); err != nil {
					return err
				}
				fmt.Printf("wrote %d rows to %s\n", len(rows), ledgerPath)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 10, "number of ticks to run")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "optional path to write a CSV ledger")
	return cmd
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run a single schedule() call and print the resulting plan and score",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, err := loadHub()
			if err != nil {
				return err
			}
			fmt.Print(h.Summary())
			fmt.Printf("score: %.4f\n", h.Score())
			return nil
		},
	}
}
