package aggregate

import (
	"testing"
	"time"

	"github.com/jgoulah/meterreport/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC)
}

func building(name string, kwh ...float64) *Building {
	b := NewBuilding(name)
	for i, v := range kwh {
		b.AddReading(models.Reading{Timestamp: at(i), KWh: v})
	}
	return b
}

func TestSummaryNorthHall(t *testing.T) {
	b := NewBuilding("North Hall")
	b.AddReading(models.Reading{Timestamp: at(0), KWh: 10})
	b.AddReading(models.Reading{Timestamp: at(2), KWh: 20})

	s := b.Summary()
	require.NotNil(t, s)
	assert.Equal(t, "North Hall", s.Building)
	assert.Equal(t, 2, s.TotalReadings)
	assert.Equal(t, 30.0, s.TotalKWh)
	assert.Equal(t, 15.0, s.AvgKWh)
	assert.Equal(t, 20.0, s.PeakKWh)
	assert.Equal(t, "2024-01-01 02:00:00", s.PeakTime())
}

func TestSummaryEmpty(t *testing.T) {
	assert.Nil(t, NewBuilding("Empty").Summary())
}

func TestSummaryPeakTieKeepsFirst(t *testing.T) {
	s := building("Gym", 5, 9, 3, 9).Summary()
	require.NotNil(t, s)
	assert.Equal(t, 9.0, s.PeakKWh)
	assert.Equal(t, at(1), s.PeakTimestamp)
}

func TestSummaryRounding(t *testing.T) {
	s := building("Lab", 0.1, 0.2, 1.005, 2.3333).Summary()
	require.NotNil(t, s)

	raw := 0.1 + 0.2 + 1.005 + 2.3333
	assert.InDelta(t, raw, s.TotalKWh, 0.01)
	assert.InDelta(t, s.TotalKWh/float64(s.TotalReadings), s.AvgKWh, 0.01)
	assert.Equal(t, 2.33, s.PeakKWh)
	assert.Equal(t, 4, s.TotalReadings)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 30.0, Round2(30))
	assert.Equal(t, 0.0, Round2(0.004))
}
