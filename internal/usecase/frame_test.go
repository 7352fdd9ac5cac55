package usecase

import (
	"testing"

	"GreeksBoard/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFrame(t *testing.T) {
	rs := recordSet([]string{"timestamp", "CE_18000_ltp"},
		[]string{"2024-01-10 09:15:00", "101"},
		[]string{"not a time", "102"},
		[]string{"", "103"},
		[]string{"2024-01-09T15:29:00+05:30", "99"},
	)

	f := NormalizeFrame(rs)
	assert.Equal(t, rs.Columns, f.Columns)
	require.Len(t, f.Rows, 4)

	assert.True(t, f.Rows[0].HasTime)
	assert.Equal(t, models.DateKey("2024-01-10"), f.Rows[0].Date)
	assert.False(t, f.Rows[1].HasTime)
	assert.Empty(t, f.Rows[1].Date)
	assert.False(t, f.Rows[2].HasTime)
	// wall clock date of the timestamp's own zone
	assert.Equal(t, models.DateKey("2024-01-09"), f.Rows[3].Date)
	assert.Equal(t, "101", f.Rows[0].Cells["CE_18000_ltp"])
}

func TestNormalizeFrameWithoutTimestampColumn(t *testing.T) {
	f := NormalizeFrame(recordSet([]string{"CE_1_ltp"}, []string{"1"}))
	require.Len(t, f.Rows, 1)
	assert.False(t, f.Rows[0].HasTime)
	assert.Empty(t, AvailableDates(f, 30))
}

func TestNormalizeFrameEmpty(t *testing.T) {
	assert.Empty(t, NormalizeFrame(nil).Rows)
	f := NormalizeFrame(&models.RecordSet{Columns: []string{"timestamp"}})
	assert.Equal(t, []string{"timestamp"}, f.Columns)
	assert.Empty(t, f.Rows)
}
