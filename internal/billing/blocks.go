package billing

import (
	"time"

	"tariff-engine/internal/tariff"
)

// blockAccumulator tracks per-bucket usage so block (tiered) rates can
// retier within a billing cycle. It lives for one evaluation pass only and
// is never shared between engine calls.
type blockAccumulator map[ChargeKey]float64

func (a blockAccumulator) reset() {
	for k := range a {
		delete(a, k)
	}
}

// cycleStart reports whether ts is the first instant of a new billing
// cycle, at which point block accumulation resets. Daily billing resets on
// every row. Quarterly cycles start in January, April, July and October.
func cycleStart(p tariff.BillingPeriod, ts time.Time) bool {
	switch p {
	case tariff.BillDaily:
		return true
	case tariff.BillMonthly:
		return ts.Day() == 1 && ts.Hour() == 0 && ts.Minute() == 0
	case tariff.BillQuarterly:
		return (int(ts.Month())-1)%3 == 0 && ts.Day() == 1 && ts.Hour() == 0 && ts.Minute() == 0
	case tariff.BillAnnually:
		return ts.Month() == time.January && ts.Day() == 1 && ts.Hour() == 0 && ts.Minute() == 0
	}
	return false
}

// apply walks the charge's rate bands in stored order and returns the cost
// of qty under the block structure, advancing the bucket's running total.
// A band whose limit the running total already exceeds contributes nothing.
// The walk never breaks early, so bands with out-of-order limits are
// tolerated rather than rejected.
func (a blockAccumulator) apply(key ChargeKey, bands []tariff.RateBand, qty float64) float64 {
	cost := 0.0
	acc := a[key]
	for _, band := range bands {
		if acc > band.Limit {
			continue
		}
		usage := band.Limit - acc
		if rem := qty - acc; rem < usage {
			usage = rem
		}
		if usage < 0 {
			usage = 0
		}
		cost += band.Rate * usage
		acc += usage
	}
	a[key] = acc
	return cost
}
