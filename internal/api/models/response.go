package models

import (
	"github.com/mgrabovsky/electric-waltz/internal/sim"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID        string          `json:"id,omitempty"`
	Status    string          `json:"status"`
	Summary   sim.Summary     `json:"summary"`
	Ledger    []sim.LedgerRow `json:"ledger,omitempty"`
	ElapsedMS float64         `json:"elapsed_ms"`
}

// ScenarioInfo represents information about a scenario preset
type ScenarioInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	File         string `json:"file"`
	Baseload     int    `json:"baseload"`
	Intermittent int    `json:"intermittent"`
	Flexible     int    `json:"flexible"`
	Storage      int    `json:"storage"`
	CrossBorder  bool   `json:"cross_border"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
