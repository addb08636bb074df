package billing

import "time"

// LedgerRow is one per-input-timestep output row: the cost incurred at that
// timestep, the running total, and the per-bucket components.
type LedgerRow struct {
	Index      int                `json:"index"`
	Timestamp  time.Time          `json:"timestamp"`
	Cost       float64            `json:"cost"`
	CumCost    float64            `json:"cum_cost"`
	Components map[string]float64 `json:"components"`
}

type ledgerBuilder struct {
	rows []LedgerRow
	cum  float64
}

func (b *ledgerBuilder) add(ts time.Time, components map[string]float64) {
	cost := 0.0
	for _, v := range components {
		cost += v
	}
	b.cum += cost
	b.rows = append(b.rows, LedgerRow{
		Index:      len(b.rows),
		Timestamp:  ts,
		Cost:       cost,
		CumCost:    b.cum,
		Components: components,
	})
}
