package billing

import (
	"tariff-engine/internal/meterdata"
	"tariff-engine/internal/tariff"
)

// evaluation holds the call-local state of one engine application: the
// block accumulator, the per-bucket running totals and (optionally) the
// per-timestep ledger. Nothing here outlives the Apply call that owns it.
type evaluation struct {
	tariff *tariff.Tariff
	accum  blockAccumulator
	totals map[ChargeKey]float64
	ledger *ledgerBuilder
}

func newEvaluation(t *tariff.Tariff) *evaluation {
	return &evaluation{
		tariff: t,
		accum:  blockAccumulator{},
		totals: map[ChargeKey]float64{},
	}
}

// familyMatches decides which charges a pass evaluates. The consumption
// pass also carries generation charges: export readings are billed on the
// same meter walk as import.
func familyMatches(ct, family tariff.ChargeType) bool {
	if family == tariff.ChargeConsumption {
		return ct == tariff.ChargeConsumption || ct == tariff.ChargeGeneration
	}
	return ct == family
}

// run walks the resampled rows for one charge family in timestamp order.
// Ordering is load-bearing: billing-cycle reset detection and schedule
// lookup both assume monotonic forward iteration.
func (e *evaluation) run(rows meterdata.Series, family tariff.ChargeType) {
	e.accum.reset()
	for _, row := range rows.Readings {
		if family == tariff.ChargeDemand {
			// Demand tiers apply per observation, never cumulatively.
			e.accum.reset()
		} else if cycleStart(e.tariff.BillingPeriod, row.Timestamp) {
			e.accum.reset()
		}

		var rowComponents map[string]float64
		if e.ledger != nil {
			rowComponents = map[string]float64{}
		}
		for i := range e.tariff.Charges {
			c := &e.tariff.Charges[i]
			if !familyMatches(c.Type, family) {
				continue
			}
			key := KeyFor(c)
			delta := e.evalCharge(c, key, row)
			e.totals[key] += delta
			if rowComponents != nil {
				rowComponents[key.DisplayName(e.tariff.Service)] += delta
			}
		}
		if e.ledger != nil {
			e.ledger.add(row.Timestamp, rowComponents)
		}
	}
}

// evalCharge applies one charge to one row, gated by the charge's shape.
// Gated no-match rows contribute zero; their bucket still exists because
// every charge is pre-seeded before evaluation starts.
func (e *evaluation) evalCharge(c *tariff.Charge, key ChargeKey, row meterdata.Reading) float64 {
	qty := row.Value(c.MeterChannel())
	switch shapeOf(c) {
	case shapeSeasonTime:
		if seasonMatches(c.Season, row.Timestamp) && timeMatches(c.Time, row.Timestamp) {
			return e.calc(c, key, qty)
		}
		return 0
	case shapeSeason:
		if seasonMatches(c.Season, row.Timestamp) {
			return e.calc(c, key, qty)
		}
		return 0
	case shapeTime:
		if timeMatches(c.Time, row.Timestamp) {
			return e.calc(c, key, qty)
		}
		return 0
	case shapeScheduled:
		if rate, ok := scheduleRate(c.RateSchedule, row.Timestamp); ok {
			return rate * qty
		}
		return 0
	default:
		return e.calc(c, key, qty)
	}
}

// calc is the costing shared by every shape once the applicable charge and
// quantity are known: a flat multiply, a block walk, or both when a charge
// carries both a rate and rate bands.
func (e *evaluation) calc(c *tariff.Charge, key ChargeKey, qty float64) float64 {
	cost := 0.0
	if c.Rate != 0 {
		cost += c.Rate * qty
	}
	if len(c.RateBands) > 0 {
		cost += e.accum.apply(key, c.RateBands, qty)
	}
	return cost
}
