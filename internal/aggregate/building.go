package aggregate

import (
	"math"

	"github.com/jgoulah/meterreport/pkg/models"
)

// Building is a named collection of meter readings from one export file
type Building struct {
	Name     string
	Readings []models.Reading
}

// NewBuilding creates an empty building
func NewBuilding(name string) *Building {
	return &Building{Name: name}
}

// AddReading appends a reading in load order
func (b *Building) AddReading(r models.Reading) {
	b.Readings = append(b.Readings, r)
}

// Summary computes the building statistics. It returns nil when the
// building has no readings.
func (b *Building) Summary() *models.Summary {
	if len(b.Readings) == 0 {
		return nil
	}

	var total float64
	peak := b.Readings[0]
	for _, r := range b.Readings {
		total += r.KWh
		// strict comparison keeps the first occurrence on ties
		if r.KWh > peak.KWh {
			peak = r
		}
	}

	return &models.Summary{
		Building:      b.Name,
		TotalReadings: len(b.Readings),
		TotalKWh:      Round2(total),
		AvgKWh:        Round2(total / float64(len(b.Readings))),
		PeakKWh:       Round2(peak.KWh),
		PeakTimestamp: peak.Timestamp,
	}
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
