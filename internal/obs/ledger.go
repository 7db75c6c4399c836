// Package obs holds observation/reporting helpers that sit outside the
// scheduling core: a per-tick CSV ledger, adapted from battery-backtest's
// internal/backtest/csv.go for hub runs rather than battery intervals.
package obs

import (
	"encoding/csv"
	"os"
	"strconv"
)

// LedgerRow is one row of per-tick output: what the hub saw and decided at
// a single tick of a cmd/hubctl run. This is the primary artifact for
// "what happened" in a run.
type LedgerRow struct {
	Tick            int
	SourceEnergy0   float64
	AssignedEnergy0 float64
	PlannedEnergy0  float64
	AvailableEnergy0 float64
	Score           float64
	WaitingCount    int
	RunningCount    int
}

// WriteLedgerCSV writes rows to path, one line per tick.
func WriteLedgerCSV(path string, rows []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"tick",
		"source_energy_0",
		"assigned_energy_0",
		"planned_energy_0",
		"available_energy_0",
		"score",
		"waiting_count",
		"running_count",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Tick),
			fmtFloat(r.SourceEnergy0),
			fmtFloat(r.AssignedEnergy0),
			fmtFloat(r.PlannedEnergy0),
			fmtFloat(r.AvailableEnergy0),
			fmtFloat(r.Score),
			strconv.Itoa(r.WaitingCount),
			strconv.Itoa(r.RunningCount),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// Head0 returns p[0] or 0 if p is empty, the zero-guard spec §6's clock
// adapter requires when publishing top-of-horizon figures.
func Head0(p []float64) float64 {
	if len(p) == 0 {
		return 0
	}
	return p[0]
}
