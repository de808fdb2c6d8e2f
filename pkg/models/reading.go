package models

import "time"

const (
	// TimestampLayout is how whole-second reading timestamps are rendered in reports
	TimestampLayout = "2006-01-02 15:04:05"

	microLayout = "2006-01-02 15:04:05.000000"
	nanoLayout  = "2006-01-02 15:04:05.000000000"
)

// Reading represents a single meter observation
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	KWh       float64   `json:"kwh"`
}

// Summary holds the derived statistics for one building
type Summary struct {
	Building      string    `json:"building"`
	TotalReadings int       `json:"total_readings"`
	TotalKWh      float64   `json:"total_kwh"`
	AvgKWh        float64   `json:"avg_kwh"`
	PeakKWh       float64   `json:"peak_kwh"`
	PeakTimestamp time.Time `json:"peak_timestamp"`
}

// PeakTime returns the peak timestamp in report format
func (s Summary) PeakTime() string {
	return FormatTimestamp(s.PeakTimestamp)
}

// FormatTimestamp renders t without a fraction when it falls on a whole
// second, otherwise with six (or nine, below a microsecond) fractional digits
func FormatTimestamp(t time.Time) string {
	switch ns := t.Nanosecond(); {
	case ns == 0:
		return t.Format(TimestampLayout)
	case ns%1000 == 0:
		return t.Format(microLayout)
	default:
		return t.Format(nanoLayout)
	}
}
