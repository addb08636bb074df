package meterdata

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// Granularity names a resampling bucket width. Sub-daily granularities are
// fixed-width; daily and coarser are calendar-start-aligned.
type Granularity string

const (
	Gran15Min     Granularity = "15min"
	Gran30Min     Granularity = "30min"
	GranHourly    Granularity = "hourly"
	GranDaily     Granularity = "daily"
	GranWeekly    Granularity = "weekly"
	GranMonthly   Granularity = "monthly"
	GranQuarterly Granularity = "quarterly"
	GranAnnually  Granularity = "annually"
)

// Aggregation selects how rows within a bucket combine per channel.
type Aggregation int

const (
	AggSum Aggregation = iota
	AggMean
	AggMax
)

// BucketStart returns the start of the bucket containing ts.
func BucketStart(ts time.Time, g Granularity) (time.Time, error) {
	switch g {
	case Gran15Min:
		return ts.Truncate(15 * time.Minute), nil
	case Gran30Min:
		return ts.Truncate(30 * time.Minute), nil
	case GranHourly:
		return ts.Truncate(time.Hour), nil
	case GranDaily:
		return now.New(ts).BeginningOfDay(), nil
	case GranWeekly:
		return now.New(ts).BeginningOfWeek(), nil
	case GranMonthly:
		return now.New(ts).BeginningOfMonth(), nil
	case GranQuarterly:
		return now.New(ts).BeginningOfQuarter(), nil
	case GranAnnually:
		return now.New(ts).BeginningOfYear(), nil
	default:
		return time.Time{}, fmt.Errorf("unknown granularity %q", g)
	}
}

// Resample aggregates the series into granularity-wide buckets, combining
// each channel with agg. Output rows carry the bucket start timestamp and
// stay in chronological order.
func Resample(s Series, g Granularity, agg Aggregation) (Series, error) {
	type bucket struct {
		start time.Time
		sums  map[string]float64
		maxs  map[string]float64
		count int
	}

	var order []time.Time
	buckets := map[time.Time]*bucket{}
	for _, r := range s.Readings {
		start, err := BucketStart(r.Timestamp, g)
		if err != nil {
			return Series{}, err
		}
		b := buckets[start]
		if b == nil {
			b = &bucket{start: start, sums: map[string]float64{}, maxs: map[string]float64{}}
			buckets[start] = b
			order = append(order, start)
		}
		for ch, v := range r.Values {
			b.sums[ch] += v
			if prev, ok := b.maxs[ch]; !ok || v > prev {
				b.maxs[ch] = v
			}
		}
		b.count++
	}

	out := make([]Reading, 0, len(order))
	for _, start := range order {
		b := buckets[start]
		values := make(map[string]float64, len(b.sums))
		switch agg {
		case AggSum:
			for ch, v := range b.sums {
				values[ch] = v
			}
		case AggMean:
			for ch, v := range b.sums {
				values[ch] = v / float64(b.count)
			}
		case AggMax:
			for ch, v := range b.maxs {
				values[ch] = v
			}
		}
		out = append(out, Reading{Timestamp: start, Values: values})
	}
	// Input order is chronological, so bucket order already is too, but a
	// final sort keeps the invariant independent of caller input.
	return New(out), nil
}
