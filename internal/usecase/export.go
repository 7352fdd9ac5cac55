package usecase

import (
	"encoding/csv"
	"fmt"
	"io"

	"GreeksBoard/internal/domain/models"
)

// ExportFilename is the download name of a date's CSV.
func ExportFilename(date models.DateKey) string {
	return fmt.Sprintf("greeks_data_%s.csv", date)
}

// ExportCSV writes a header with the source columns and one line per row with the original cell text.
func ExportCSV(w io.Writer, columns []string, rows []models.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	line := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			line[i] = r.Cells[c]
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
