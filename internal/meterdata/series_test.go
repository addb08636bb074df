package meterdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSortsByTimestamp(t *testing.T) {
	t2 := time.Date(2018, 1, 1, 1, 0, 0, 0, time.UTC)
	t1 := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

	s := New([]Reading{
		{Timestamp: t2, Values: map[string]float64{"electricity_imported": 2}},
		{Timestamp: t1, Values: map[string]float64{"electricity_imported": 1}},
	})
	assert.Equal(t, t1, s.Readings[0].Timestamp)
	assert.Equal(t, t2, s.Readings[1].Timestamp)
}

func TestTruncateInclusiveBounds(t *testing.T) {
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := make([]Reading, 0, 5)
	for i := 0; i < 5; i++ {
		readings = append(readings, Reading{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Values:    map[string]float64{"electricity_imported": 1},
		})
	}
	s := New(readings)

	got := s.Truncate(start.Add(time.Hour), start.Add(3*time.Hour))
	assert.Equal(t, 3, got.Len())
	assert.Equal(t, start.Add(time.Hour), got.Readings[0].Timestamp)
	assert.Equal(t, start.Add(3*time.Hour), got.Readings[2].Timestamp)

	// Zero bounds leave that side open.
	assert.Equal(t, 5, s.Truncate(time.Time{}, time.Time{}).Len())
	assert.Equal(t, 2, s.Truncate(start.Add(3*time.Hour), time.Time{}).Len())
}

func TestMissingChannelReadsZero(t *testing.T) {
	r := Reading{Timestamp: time.Now(), Values: map[string]float64{"electricity_imported": 1.5}}
	assert.Equal(t, 0.0, r.Value("electricity_exported"))
}

func TestChannelsUnion(t *testing.T) {
	s := New([]Reading{
		{Timestamp: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"electricity_imported": 1}},
		{Timestamp: time.Date(2018, 1, 1, 1, 0, 0, 0, time.UTC), Values: map[string]float64{"electricity_exported": 2}},
	})
	assert.Equal(t, []string{"electricity_exported", "electricity_imported"}, s.Channels())
}
