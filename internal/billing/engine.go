package billing

import (
	"time"

	"tariff-engine/internal/meterdata"
	"tariff-engine/internal/tariff"
)

// Resolution selects the output shape of an engine application.
type Resolution string

const (
	// ResolutionBill is the default: itemized bucket totals plus a grand total.
	ResolutionBill Resolution = "bill"
	// ResolutionTimestep additionally yields a per-input-row ledger. It is
	// refused when the tariff carries demand charges, because demand
	// evaluation resamples away the input timestep.
	ResolutionTimestep Resolution = "timestep"
)

// Options bound and shape one engine application. Zero Start/End leave the
// series untruncated on that side.
type Options struct {
	Start      time.Time
	End        time.Time
	Resolution Resolution
}

// Result is the output of one Apply call.
type Result struct {
	Cost   Cost
	Ledger []LedgerRow // populated for ResolutionTimestep
}

// Engine evaluates one tariff against one historical series. It holds no
// state: every Apply call owns its accumulator, resampled series and output
// map exclusively, so concurrent calls against a shared Tariff are safe.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Apply truncates the series to [opts.Start, opts.End], runs the
// consumption/generation and demand passes, and aggregates the itemized
// cost. All failures are synchronous and typed; nothing is retried or
// partially computed.
func (e *Engine) Apply(t *tariff.Tariff, series meterdata.Series, opts Options) (*Result, error) {
	res := opts.Resolution
	if res == "" {
		res = ResolutionBill
	}
	if res != ResolutionBill && res != ResolutionTimestep {
		return nil, &UnsupportedResolutionError{Resolution: res}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	traits := t.Traits()
	if res == ResolutionTimestep && traits[tariff.TraitDemand] {
		return nil, &IncompatibleRequestError{
			Reason: "per-timestep output cannot be produced when demand charges are assigned",
		}
	}

	series = series.Truncate(opts.Start, opts.End)

	ev := newEvaluation(t)
	if res == ResolutionTimestep {
		ev.ledger = &ledgerBuilder{}
	}

	// Pre-seed one bucket per configured charge so charges that never match
	// any row still appear with zero cost.
	var order []ChargeKey
	for i := range t.Charges {
		key := KeyFor(&t.Charges[i])
		if _, ok := ev.totals[key]; !ok {
			ev.totals[key] = 0
			order = append(order, key)
		}
	}

	if traits[tariff.TraitConsumption] || traits[tariff.TraitGeneration] {
		rows := series
		// Coarsen the series when no time-of-use charge needs intraday
		// resolution and the caller has not asked for per-timestep output.
		if !traits[tariff.TraitTOU] && res != ResolutionTimestep {
			g := billingGranularity(t.BillingPeriod)
			if traits[tariff.TraitSeasonal] {
				g = meterdata.GranDaily
			}
			var err error
			rows, err = meterdata.Resample(series, g, meterdata.AggSum)
			if err != nil {
				return nil, err
			}
		}
		ev.run(rows, tariff.ChargeConsumption)
	}

	if traits[tariff.TraitDemand] {
		// Peak average demand: mean over the demand window, then the
		// maximum of those means per billing period.
		windowed, err := meterdata.Resample(series, demandGranularity(t.DemandWindow), meterdata.AggMean)
		if err != nil {
			return nil, err
		}
		peaks, err := meterdata.Resample(windowed, billingGranularity(t.BillingPeriod), meterdata.AggMax)
		if err != nil {
			return nil, err
		}
		ev.run(peaks, tariff.ChargeDemand)
	}

	cost := Cost{Name: t.Name, Code: t.Code}
	for _, key := range order {
		item := CostItem{
			Name:      key.DisplayName(t.Service),
			Type:      string(key.Type),
			Season:    key.Season,
			Time:      key.Time,
			Scheduled: key.Scheduled,
			Cost:      ev.totals[key],
		}
		cost.Items = append(cost.Items, item)
		cost.Cost += item.Cost
	}

	out := &Result{Cost: cost}
	if ev.ledger != nil {
		out.Ledger = ev.ledger.rows
	}
	return out, nil
}

func billingGranularity(p tariff.BillingPeriod) meterdata.Granularity {
	switch p {
	case tariff.BillDaily:
		return meterdata.GranDaily
	case tariff.BillQuarterly:
		return meterdata.GranQuarterly
	case tariff.BillAnnually:
		return meterdata.GranAnnually
	default:
		return meterdata.GranMonthly
	}
}

func demandGranularity(w tariff.DemandWindow) meterdata.Granularity {
	switch w {
	case tariff.Demand15Min:
		return meterdata.Gran15Min
	case tariff.DemandHourly:
		return meterdata.GranHourly
	default:
		return meterdata.Gran30Min
	}
}
