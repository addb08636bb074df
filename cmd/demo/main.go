package main

import (
	"flag"
	"fmt"
	"time"

	"tariff-engine/internal/billing"
	"tariff-engine/internal/meterdata"
	"tariff-engine/internal/tariff"
)

// Demo:
// - Build a time-of-use tariff with a block off-peak charge inline
// - Synthesize a day of half-hour meter readings
// - Apply the engine and show the itemized breakdown plus a short ledger
func main() {
	days := flag.Int("days", 1, "Number of days of synthetic half-hour readings")
	flag.Parse()

	trf := &tariff.Tariff{
		Name:    "Demo TOU",
		Code:    "DEMO-TOU",
		Service: tariff.ServiceElectricity,
		Charges: []tariff.Charge{
			{
				Rate: 0.30,
				Time: &tariff.Time{
					Name: "peak",
					Periods: []tariff.Period{
						{FromWeekday: 0, ToWeekday: 6, FromHour: 14, FromMinute: 0, ToHour: 19, ToMinute: 59},
					},
				},
			},
			{
				RateBands: []tariff.RateBand{
					{Limit: 10, Rate: 0.15},
					{Limit: tariff.DefaultBandLimit, Rate: 0.10},
				},
				Time: &tariff.Time{
					Name: "off_peak",
					Periods: []tariff.Period{
						{FromWeekday: 0, ToWeekday: 6, FromHour: 0, FromMinute: 0, ToHour: 13, ToMinute: 59},
						{FromWeekday: 0, ToWeekday: 6, FromHour: 20, FromMinute: 0, ToHour: 23, ToMinute: 59},
					},
				},
			},
			{
				Rate:  -0.05,
				Type:  tariff.ChargeGeneration,
				Meter: tariff.ChannelExported,
			},
		},
	}
	trf.ApplyDefaults()

	start := time.Date(2018, time.July, 1, 0, 0, 0, 0, time.UTC)
	readings := make([]meterdata.Reading, 0, *days*48)
	for i := 0; i < *days*48; i++ {
		ts := start.Add(time.Duration(i) * 30 * time.Minute)
		imported := 0.4
		exported := 0.0
		if h := ts.Hour(); h >= 9 && h < 16 {
			// Midday solar: lower import, some export.
			imported = 0.1
			exported = 0.3
		}
		readings = append(readings, meterdata.Reading{
			Timestamp: ts,
			Values: map[string]float64{
				tariff.ChannelImported: imported,
				tariff.ChannelExported: exported,
			},
		})
	}
	series := meterdata.New(readings)

	engine := billing.New()
	result, err := engine.Apply(trf, series, billing.Options{Resolution: billing.ResolutionTimestep})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Applied %q to %d half-hour readings\n\n", trf.Name, series.Len())
	for _, item := range result.Cost.Items {
		fmt.Printf("%-45s %10.4f\n", item.Name, item.Cost)
	}
	fmt.Printf("%-45s %10.4f\n\n", "total", result.Cost.Cost)

	for i := 0; i < min(12, len(result.Ledger)); i++ {
		r := result.Ledger[i]
		fmt.Printf("%s cost=%8.4f cum=%8.4f\n", r.Timestamp.Format("2006-01-02 15:04"), r.Cost, r.CumCost)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
