package models

import (
	"encoding/json"
	"time"
)

// CalculateRequest represents the request body for a cost calculation.
// The tariff document is passed through verbatim to the tariff decoder so
// the API accepts exactly what the file-based tooling accepts.
type CalculateRequest struct {
	Tariff   json.RawMessage    `json:"tariff" binding:"required"`
	Readings []ReadingRow       `json:"readings" binding:"required"`
	Options  CalculateOptions   `json:"options,omitempty"`
}

// ReadingRow is one meter reading: a timestamp plus named channel values.
type ReadingRow struct {
	Timestamp time.Time          `json:"timestamp" binding:"required"`
	Values    map[string]float64 `json:"values" binding:"required"`
}

// CalculateOptions mirrors the engine options.
type CalculateOptions struct {
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
	Resolution string     `json:"resolution,omitempty"` // "bill" (default) or "timestep"
}
