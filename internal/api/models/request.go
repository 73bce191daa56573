package models

import (
	"github.com/mgrabovsky/electric-waltz/internal/config"
	"github.com/mgrabovsky/electric-waltz/internal/data"
)

// SimulateRequest describes one simulation run. The scenario configuration is
// always inline; the world state is either a named dataset on the server or an
// inline load series with capacity-factor columns.
type SimulateRequest struct {
	Config  *config.Config  `json:"config"`
	Dataset string          `json:"dataset,omitempty"`
	World   *data.World     `json:"world,omitempty"`
	Options SimulateOptions `json:"options"`
}

// SimulateOptions tunes how the run is executed and reported.
type SimulateOptions struct {
	Year          int  `json:"year,omitempty"`
	LimitSteps    int  `json:"limit_steps,omitempty"`
	IncludeLedger bool `json:"include_ledger"`
}
