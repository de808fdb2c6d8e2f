package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", s)
	require.NoError(t, err)
	return ts
}

func TestCleanNorthHall(t *testing.T) {
	data := `timestamp,kwh
2024-01-01 00:00,10
2024-01-01 01:00,-5
bad-date,7
2024-01-01 02:00,20
`
	readings, stats, err := Clean(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.Equal(t, mustTime(t, "2024-01-01 00:00:00"), readings[0].Timestamp)
	assert.Equal(t, 10.0, readings[0].KWh)
	assert.Equal(t, mustTime(t, "2024-01-01 02:00:00"), readings[1].Timestamp)
	assert.Equal(t, 20.0, readings[1].KWh)

	assert.Equal(t, Stats{Rows: 4, Kept: 2, BadTimestamp: 1, Negative: 1}, stats)
	assert.Equal(t, 2, stats.Dropped())
}

func TestCleanNormalizesColumns(t *testing.T) {
	data := "\ufeff  TimeStamp , Meter_ID,  KWH  \n2024-03-01 12:00:00,m1, 4.5 \n"
	readings, _, err := Clean(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 4.5, readings[0].KWh)
}

func TestCleanSortsByTimestamp(t *testing.T) {
	data := `kwh,timestamp
3,2024-01-01 03:00
1,2024-01-01 01:00
2,2024-01-01 02:00
9,2024-01-01 01:00
`
	readings, _, err := Clean(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, readings, 4)

	var got []float64
	for _, r := range readings {
		got = append(got, r.KWh)
	}
	// equal timestamps keep their file order
	assert.Equal(t, []float64{1, 9, 2, 3}, got)

	// sorting an already sorted sequence changes nothing
	again := append(readings[:0:0], readings...)
	SortReadings(again)
	assert.Equal(t, readings, again)
}

func TestCleanMixedOffsets(t *testing.T) {
	data := `timestamp,kwh
2024-01-01 01:00,1
2024-01-01T05:00:00+05:00,2
2024-01-01T02:30:00-01:00,3
`
	readings, _, err := Clean(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, readings, 3)

	assert.Equal(t, mustTime(t, "2024-01-01 00:00:00"), readings[0].Timestamp)
	assert.Equal(t, 2.0, readings[0].KWh)
	assert.Equal(t, mustTime(t, "2024-01-01 01:00:00"), readings[1].Timestamp)
	assert.Equal(t, mustTime(t, "2024-01-01 03:30:00"), readings[2].Timestamp)

	// wall-clock values ascend in the same order as the instants
	for i := 1; i < len(readings); i++ {
		prev := readings[i-1].Timestamp.Format("2006-01-02 15:04:05")
		cur := readings[i].Timestamp.Format("2006-01-02 15:04:05")
		assert.Less(t, prev, cur)
	}
}

func TestCleanDropsMalformedRows(t *testing.T) {
	data := `timestamp,kwh
2024-01-01 00:00,
2024-01-01 01:00,abc
,5
2024-01-01 02:00,NaN
2024-01-01 03:00,inf
2024-01-01 04:00
2024-01-01 05:00,0
`
	readings, stats, err := Clean(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 0.0, readings[0].KWh)
	assert.Equal(t, 7, stats.Rows)
	assert.Equal(t, 1, stats.BadTimestamp)
	assert.Equal(t, 5, stats.BadKWh)
}

func TestCleanAllRowsInvalid(t *testing.T) {
	readings, stats, err := Clean(strings.NewReader("timestamp,kwh\nnope,-1\n2024-01-01,-3\n"))
	require.NoError(t, err)
	assert.Empty(t, readings)
	assert.Equal(t, 0, stats.Kept)
}

func TestCleanMissingColumn(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		column string
	}{
		{"no kwh", "timestamp,energy\n2024-01-01,1\n", "kwh"},
		{"no timestamp", "time,kwh\n2024-01-01,1\n", "timestamp"},
		{"empty file", "", "timestamp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Clean(strings.NewReader(tt.data))
			require.ErrorIs(t, err, ErrMissingColumn)
			assert.Contains(t, err.Error(), tt.column)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gym_usage.csv")
	require.NoError(t, os.WriteFile(path, []byte("kwh\n1\n"), 0644))

	_, _, err := ReadFile(path)
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "gym_usage.csv")

	_, _, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	want := mustTime(t, "2024-01-01 02:00:00")
	for _, in := range []string{
		"2024-01-01 02:00",
		"2024-01-01 02:00:00",
		"2024-01-01T02:00:00",
		"2024-01-01T02:00:00Z",
		"2024/01/01 02:00",
		"01/01/2024 02:00",
		" 2024-01-01 02:00:00.000 ",
	} {
		got, ok := ParseTimestamp(in)
		require.True(t, ok, in)
		assert.True(t, want.Equal(got), in)
	}

	for _, in := range []string{"", "bad-date", "2024-13-01", "yesterday"} {
		_, ok := ParseTimestamp(in)
		assert.False(t, ok, in)
	}
}

func TestParseKWh(t *testing.T) {
	v, ok := ParseKWh(" 12.5 ")
	require.True(t, ok)
	assert.Equal(t, 12.5, v)

	v, ok = ParseKWh("-3")
	require.True(t, ok)
	assert.Equal(t, -3.0, v)

	for _, in := range []string{"", "ten", "NaN", "-Inf", "1,5"} {
		_, ok := ParseKWh(in)
		assert.False(t, ok, in)
	}
}
