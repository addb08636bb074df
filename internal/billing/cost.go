package billing

import (
	"strings"

	"tariff-engine/internal/tariff"
)

// chargeShape is the closed set of gating variants a charge can take,
// decided by which optional fields are populated. Evaluation switches over
// it exhaustively, so a new combination is a compile-time decision.
type chargeShape int

const (
	shapeFlat chargeShape = iota
	shapeSeasonTime
	shapeSeason
	shapeTime
	shapeScheduled
)

func shapeOf(c *tariff.Charge) chargeShape {
	switch {
	case c.Time != nil && c.Season != nil:
		return shapeSeasonTime
	case c.Season != nil:
		return shapeSeason
	case c.Time != nil:
		return shapeTime
	case len(c.RateSchedule) > 0:
		return shapeScheduled
	default:
		return shapeFlat
	}
}

// ChargeKey identifies a cost bucket. It is a structured identifier
// compared field-wise, so distinct type/season/time combinations can never
// collide the way concatenated names could.
type ChargeKey struct {
	Type      tariff.ChargeType
	Season    string
	Time      string
	Scheduled bool
}

// KeyFor derives the bucket key of a charge from its shape.
func KeyFor(c *tariff.Charge) ChargeKey {
	key := ChargeKey{Type: c.Type}
	switch shapeOf(c) {
	case shapeSeasonTime:
		key.Season = c.Season.Name
		key.Time = c.Time.Name
	case shapeSeason:
		key.Season = c.Season.Name
	case shapeTime:
		key.Time = c.Time.Name
	case shapeScheduled:
		key.Scheduled = true
	}
	return key
}

// DisplayName renders the key as a stable human-readable bucket name,
// prefixed with the tariff's service.
func (k ChargeKey) DisplayName(service tariff.Service) string {
	parts := []string{string(service), string(k.Type)}
	if k.Season != "" {
		parts = append(parts, k.Season)
	}
	if k.Time != "" {
		parts = append(parts, k.Time)
	}
	if k.Scheduled {
		parts = append(parts, "scheduled")
	}
	return strings.Join(parts, "_")
}

// CostItem is one itemized output row, one per distinct charge bucket.
// Buckets exist (at zero) even when no row ever matched.
type CostItem struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Season    string  `json:"season,omitempty"`
	Time      string  `json:"time,omitempty"`
	Scheduled bool    `json:"scheduled,omitempty"`
	Cost      float64 `json:"cost"`
}

// Cost is the aggregate output of one engine application.
type Cost struct {
	Name  string     `json:"name,omitempty"`
	Code  string     `json:"code,omitempty"`
	Items []CostItem `json:"items"`
	Cost  float64    `json:"cost"`
}
