package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"GreeksBoard/internal/domain/models"
	domrepo "GreeksBoard/internal/domain/repository"
	pkgch "GreeksBoard/pkg/clickhouse"
	applogger "GreeksBoard/pkg/logger"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

const timestampLayout = "2006-01-02 15:04:05"

// CHSource reads the greeks table from ClickHouse as a record set.
// Every column is returned as text, the way a spreadsheet would show it.
type CHSource struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewCHSource creates a RecordSource over table. table may be qualified as db.table.
func NewCHSource(ch *pkgch.Client, table string) (*CHSource, error) {
	return newCHSource(ch.DB(), table)
}

func newCHSource(db *sql.DB, table string) (*CHSource, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &CHSource{db: db, table: table, l: applogger.Nop()}, nil
}

// SetLogger injects a structured logger.
func (s *CHSource) SetLogger(l *applogger.Logger) {
	if l != nil {
		s.l = l
	}
}

func (s *CHSource) Name() string { return "clickhouse" }

func (s *CHSource) Fetch(ctx context.Context) (*models.RecordSet, error) {
	q := fmt.Sprintf("SELECT * FROM %s ORDER BY timestamp ASC", s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.l.Error("clickhouse fetch query error", applogger.String("table", s.table), applogger.Error(err))
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	rs := &models.RecordSet{Columns: cols, Records: make([]models.Record, 0, 1024)}
	vals := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			s.l.Error("clickhouse fetch scan error", applogger.String("table", s.table), applogger.Error(err))
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec := make(models.Record, len(cols))
		for i, c := range cols {
			rec[c] = cellString(vals[i])
		}
		rs.Records = append(rs.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return rs, nil
}

// cellString renders a scanned ClickHouse value as cell text.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(timestampLayout)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(timestampLayout)
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case *float64:
		if t == nil {
			return ""
		}
		return strconv.FormatFloat(*t, 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

var _ domrepo.RecordSource = (*CHSource)(nil)
