package meterdata

import (
	"sort"
	"time"
)

// Reading is one timestamped row of meter values, keyed by channel name
// (e.g. electricity_imported, electricity_exported).
type Reading struct {
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// Series is a timestamp-ordered sequence of readings. The billing engine
// depends on strictly forward iteration, so constructors sort on build and
// every derived series preserves order.
type Series struct {
	Readings []Reading
}

// New builds a series from rows, sorted by timestamp ascending.
func New(readings []Reading) Series {
	sorted := make([]Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return Series{Readings: sorted}
}

func (s Series) Len() int { return len(s.Readings) }

// Value reads one channel of one row; missing channels read as zero.
func (r Reading) Value(channel string) float64 {
	return r.Values[channel]
}

// Truncate returns the sub-series within [start, end] inclusive. Zero
// bounds are open on that side.
func (s Series) Truncate(start, end time.Time) Series {
	out := make([]Reading, 0, len(s.Readings))
	for _, r := range s.Readings {
		if !start.IsZero() && r.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && r.Timestamp.After(end) {
			continue
		}
		out = append(out, r)
	}
	return Series{Readings: out}
}

// Channels returns the sorted union of channel names across all rows.
func (s Series) Channels() []string {
	seen := map[string]bool{}
	for _, r := range s.Readings {
		for ch := range r.Values {
			seen[ch] = true
		}
	}
	out := make([]string, 0, len(seen))
	for ch := range seen {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}
