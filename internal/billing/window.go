package billing

import (
	"time"

	"tariff-engine/internal/tariff"
)

// seasonMatches reports whether the reading's calendar date (month/day
// only, compared against its own year) falls inside the season's inclusive
// range. A season whose from is after its to wraps across year-end
// (e.g. December–February).
func seasonMatches(s *tariff.Season, ts time.Time) bool {
	date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	from := time.Date(ts.Year(), time.Month(s.FromMonth), s.FromDay, 0, 0, 0, 0, ts.Location())
	to := time.Date(ts.Year(), time.Month(s.ToMonth), s.ToDay, 0, 0, 0, 0, ts.Location())
	if from.After(to) {
		return !date.Before(from) || !date.After(to)
	}
	return !date.Before(from) && !date.After(to)
}

// weekday maps time.Weekday onto the tariff convention 0=Monday .. 6=Sunday.
func weekday(ts time.Time) int {
	return (int(ts.Weekday()) + 6) % 7
}

// periodMatches reports whether the timestamp's weekday and time-of-day
// both fall inside the period, inclusive on both ends.
func periodMatches(p tariff.Period, ts time.Time) bool {
	wd := weekday(ts)
	if wd < p.FromWeekday || wd > p.ToWeekday {
		return false
	}
	minute := ts.Hour()*60 + ts.Minute()
	return minute >= p.FromHour*60+p.FromMinute && minute <= p.ToHour*60+p.ToMinute
}

// timeMatches reports whether any period of the time-of-use bucket matches.
// Evaluation stops at the first match; overlapping periods are the tariff
// author's responsibility.
func timeMatches(t *tariff.Time, ts time.Time) bool {
	for _, p := range t.Periods {
		if periodMatches(p, ts) {
			return true
		}
	}
	return false
}

// scheduleRate returns the rate of the first schedule item, in stored
// order, whose datetime is strictly after ts. A timestamp past every entry
// yields no rate: the row contributes nothing.
func scheduleRate(items []tariff.ScheduleItem, ts time.Time) (float64, bool) {
	for _, item := range items {
		if ts.Before(item.Datetime) {
			return item.Rate, true
		}
	}
	return 0, false
}
