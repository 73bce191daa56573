package sim

// LedgerRow is one time step of model output: every resource's realized power
// plus the step's cross-border and residual accounting. This is the primary
// artifact for "what happened" in a run.
type LedgerRow struct {
	Index int `json:"index"`

	// Sources maps source name to net generation in MW.
	Sources map[string]float64 `json:"sources"`
	// Storage maps unit name to grid-side output in MW (negative while
	// charging).
	Storage map[string]float64 `json:"storage"`

	NetImport float64 `json:"net_import"`
	// Shortage is positive for unmet load, negative for dumped surplus.
	Shortage float64 `json:"shortage"`
}

func buildLedger(res *Result) []LedgerRow {
	run := res.Run
	rows := make([]LedgerRow, 0, run.Steps())
	for step := 0; step < run.Steps(); step++ {
		row := LedgerRow{
			Index:    step,
			Sources:  make(map[string]float64, len(res.SourceNames)),
			Storage:  make(map[string]float64, len(res.StorageNames)),
			Shortage: run.Shortages()[step],
		}
		for _, name := range res.SourceNames {
			row.Sources[name] = run.SourceGeneration(name)[step]
		}
		for _, name := range res.StorageNames {
			row.Storage[name] = run.StorageOutput(name)[step]
		}
		if res.HasCrossBorder {
			row.NetImport = run.NetImports()[step]
		}
		rows = append(rows, row)
	}
	return rows
}
