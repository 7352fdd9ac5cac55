package usecase

import (
	"fmt"
	"testing"
	"time"

	"GreeksBoard/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableDatesDistinctDescending(t *testing.T) {
	f := NormalizeFrame(recordSet([]string{"timestamp"},
		[]string{"2024-01-08 09:15:00"},
		[]string{"2024-01-10 09:15:00"},
		[]string{"garbage"},
		[]string{"2024-01-09 09:15:00"},
		[]string{"2024-01-10 15:30:00"},
	))

	assert.Equal(t, []models.DateKey{"2024-01-10", "2024-01-09", "2024-01-08"}, AvailableDates(f, 30))
	assert.Equal(t, []models.DateKey{"2024-01-10"}, AvailableDates(f, 1))
}

func TestAvailableDatesCapped(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)
	var rows [][]string
	for i := 0; i < 45; i++ {
		rows = append(rows, []string{start.AddDate(0, 0, i).Format("2006-01-02 15:04:05")})
	}
	f := NormalizeFrame(recordSet([]string{"timestamp"}, rows...))

	dates := AvailableDates(f, 0)
	require.Len(t, dates, DefaultMaxDates)
	assert.Equal(t, models.DateKey(start.AddDate(0, 0, 44).Format("2006-01-02")), dates[0])
	assert.Equal(t, models.DateKey(start.AddDate(0, 0, 15).Format("2006-01-02")), dates[29])
}

func TestSelectDate(t *testing.T) {
	available := []models.DateKey{"2024-01-10", "2024-01-09"}
	tests := []struct {
		requested models.DateKey
		want      models.DateKey
		ok        bool
	}{
		{"", "2024-01-10", true},
		{"2024-01-09", "2024-01-09", true},
		{"2023-12-31", "2023-12-31", false},
	}
	for _, tc := range tests {
		got, ok := SelectDate(available, tc.requested)
		assert.Equal(t, tc.want, got, tc.requested)
		assert.Equal(t, tc.ok, ok, tc.requested)
	}

	got, ok := SelectDate(nil, "")
	assert.Equal(t, models.DateKey(""), got)
	assert.False(t, ok)
}

func TestFilterByDate(t *testing.T) {
	var rows [][]string
	for i, d := range []string{"2024-01-10", "2024-01-09", "2024-01-09", "2024-01-08", "2024-01-09"} {
		rows = append(rows, []string{fmt.Sprintf("%s 09:%02d:00", d, i), fmt.Sprint(i)})
	}
	f := NormalizeFrame(recordSet([]string{"timestamp", "n"}, rows...))

	got := FilterByDate(f, "2024-01-09")
	require.Len(t, got, 3)
	for i, want := range []string{"1", "2", "4"} {
		assert.Equal(t, want, got[i].Cells["n"])
		assert.Equal(t, models.DateKey("2024-01-09"), got[i].Date)
	}
	assert.Empty(t, FilterByDate(f, "2024-02-01"))
	assert.Empty(t, FilterByDate(f, ""))
}
