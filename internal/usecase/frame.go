package usecase

import (
	"GreeksBoard/internal/domain/models"
	"GreeksBoard/pkg/util"
)

// TimestampColumn is the column parsed into the row time.
const TimestampColumn = "timestamp"

// NormalizeFrame builds the read-only frame of a record set and derives each row's date.
// Rows whose timestamp is missing or unparseable are kept without a date.
func NormalizeFrame(rs *models.RecordSet) models.Frame {
	if rs.Empty() {
		var cols []string
		if rs != nil {
			cols = rs.Columns
		}
		return models.Frame{Columns: cols}
	}

	f := models.Frame{
		Columns: rs.Columns,
		Rows:    make([]models.Row, 0, len(rs.Records)),
	}
	for _, rec := range rs.Records {
		row := models.Row{Cells: rec}
		if t, ok := util.ParseTime(rec[TimestampColumn]); ok {
			row.Timestamp = t
			row.HasTime = true
			row.Date = models.DateKey(util.DateOf(t))
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}
