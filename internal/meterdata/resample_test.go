package meterdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func halfHourly(start time.Time, n int, value float64) Series {
	readings := make([]Reading, 0, n)
	for i := 0; i < n; i++ {
		readings = append(readings, Reading{
			Timestamp: start.Add(time.Duration(i) * 30 * time.Minute),
			Values:    map[string]float64{"electricity_imported": value},
		})
	}
	return New(readings)
}

func TestResampleSumDaily(t *testing.T) {
	s := halfHourly(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), 96, 0.5)

	got, err := Resample(s, GranDaily, AggSum)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), got.Readings[0].Timestamp)
	assert.Equal(t, time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC), got.Readings[1].Timestamp)
	assert.InDelta(t, 24.0, got.Readings[0].Value("electricity_imported"), 1e-9)
	assert.InDelta(t, 24.0, got.Readings[1].Value("electricity_imported"), 1e-9)
}

func TestResampleSumMonthlySpansMonths(t *testing.T) {
	readings := []Reading{
		{Timestamp: time.Date(2018, 1, 31, 23, 30, 0, 0, time.UTC), Values: map[string]float64{"electricity_imported": 1}},
		{Timestamp: time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"electricity_imported": 2}},
		{Timestamp: time.Date(2018, 2, 14, 12, 0, 0, 0, time.UTC), Values: map[string]float64{"electricity_imported": 3}},
	}
	got, err := Resample(New(readings), GranMonthly, AggSum)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), got.Readings[0].Timestamp)
	assert.InDelta(t, 1.0, got.Readings[0].Value("electricity_imported"), 1e-9)
	assert.Equal(t, time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC), got.Readings[1].Timestamp)
	assert.InDelta(t, 5.0, got.Readings[1].Value("electricity_imported"), 1e-9)
}

func TestResampleMean15Min(t *testing.T) {
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []Reading{
		{Timestamp: start, Values: map[string]float64{"electricity_imported": 2}},
		{Timestamp: start.Add(5 * time.Minute), Values: map[string]float64{"electricity_imported": 4}},
		{Timestamp: start.Add(10 * time.Minute), Values: map[string]float64{"electricity_imported": 6}},
		{Timestamp: start.Add(15 * time.Minute), Values: map[string]float64{"electricity_imported": 8}},
	}
	got, err := Resample(New(readings), Gran15Min, AggMean)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.InDelta(t, 4.0, got.Readings[0].Value("electricity_imported"), 1e-9)
	assert.InDelta(t, 8.0, got.Readings[1].Value("electricity_imported"), 1e-9)
}

func TestResampleMaxMonthly(t *testing.T) {
	readings := []Reading{
		{Timestamp: time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"electricity_imported": 3}},
		{Timestamp: time.Date(2018, 3, 10, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"electricity_imported": 9}},
		{Timestamp: time.Date(2018, 3, 20, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"electricity_imported": 6}},
	}
	got, err := Resample(New(readings), GranMonthly, AggMax)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.InDelta(t, 9.0, got.Readings[0].Value("electricity_imported"), 1e-9)
}

func TestBucketStartQuarterAligned(t *testing.T) {
	got, err := BucketStart(time.Date(2018, 5, 20, 13, 45, 0, 0, time.UTC), GranQuarterly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = BucketStart(time.Date(2018, 11, 2, 0, 0, 0, 0, time.UTC), GranAnnually)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestResampleUnknownGranularity(t *testing.T) {
	_, err := Resample(halfHourly(time.Now().UTC(), 2, 1), Granularity("fortnightly"), AggSum)
	assert.Error(t, err)
}
