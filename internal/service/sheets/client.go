package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"GreeksBoard/internal/domain/models"
	drepo "GreeksBoard/internal/domain/repository"
	"GreeksBoard/internal/service/credentials"
	applogger "GreeksBoard/pkg/logger"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	ScopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	ScopeDrive        = "https://www.googleapis.com/auth/drive"

	mimeSpreadsheet = "application/vnd.google-apps.spreadsheet"
	sourceName      = "sheets"
)

var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

// dialFunc turns a credential into client options for the Google services.
type dialFunc func(ctx context.Context, cred *credentials.Credential) ([]option.ClientOption, error)

// Client reads the first worksheet of a named spreadsheet as a record set.
// It is a RecordSource and authenticates on every Fetch.
type Client struct {
	loader      *credentials.Loader
	spreadsheet string
	timeout     time.Duration
	log         *applogger.Logger
	dial        dialFunc
}

type Option func(*Client)

// WithTimeout bounds a single Fetch. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithServiceOptions replaces credential based authentication with fixed client options.
// Used to point the client at a fake endpoint.
func WithServiceOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.dial = func(context.Context, *credentials.Credential) ([]option.ClientOption, error) {
			return opts, nil
		}
	}
}

// New creates a Sheet Reader for the given spreadsheet name.
func New(loader *credentials.Loader, spreadsheet string, opts ...Option) drepo.RecordSource {
	c := &Client{
		loader:      loader,
		spreadsheet: spreadsheet,
		log:         applogger.Nop(),
		dial:        dialServiceAccount,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return sourceName }

// Fetch authenticates, opens the spreadsheet by name and returns all rows of its first sheet.
func (c *Client) Fetch(ctx context.Context) (*models.RecordSet, error) {
	cred, err := c.loader.Load()
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	opts, err := c.dial(ctx, cred)
	if err != nil {
		return nil, err
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	id, err := c.findSpreadsheet(ctx, driveSvc)
	if err != nil {
		return nil, err
	}

	ss, err := sheetsSvc.Spreadsheets.Get(id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %q: %w", c.spreadsheet, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		c.log.Debug("spreadsheet has no worksheets", applogger.String("spreadsheet", c.spreadsheet))
		return &models.RecordSet{}, nil
	}
	title := ss.Sheets[0].Properties.Title

	vr, err := sheetsSvc.Spreadsheets.Values.Get(id, quoteSheetTitle(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", title, err)
	}

	rs, err := valuesToRecordSet(vr.Values)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", title, err)
	}
	c.log.Debug("sheet read",
		applogger.String("spreadsheet", c.spreadsheet),
		applogger.String("sheet", title),
		applogger.Int("columns", len(rs.Columns)),
		applogger.Int("rows", len(rs.Records)),
	)
	return rs, nil
}

func (c *Client) findSpreadsheet(ctx context.Context, svc *drive.Service) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(c.spreadsheet), mimeSpreadsheet)
	list, err := svc.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(1).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("search spreadsheet %q: %w", c.spreadsheet, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, c.spreadsheet)
	}
	return list.Files[0].Id, nil
}

func dialServiceAccount(ctx context.Context, cred *credentials.Credential) ([]option.ClientOption, error) {
	gc, err := google.CredentialsFromJSON(ctx, cred.JSON(), ScopeSpreadsheets, ScopeDrive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", credentials.ErrCredentialMalformed, err)
	}
	return []option.ClientOption{option.WithCredentials(gc)}, nil
}

// valuesToRecordSet maps a header row plus data rows to records.
// Short rows are padded with empty cells. Columns with an empty header are dropped.
func valuesToRecordSet(values [][]interface{}) (*models.RecordSet, error) {
	if len(values) == 0 {
		return &models.RecordSet{}, nil
	}

	header := values[0]
	index := make([]int, 0, len(header))
	columns := make([]string, 0, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := strings.TrimSpace(cellText(h))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate header %q", name)
		}
		seen[name] = struct{}{}
		index = append(index, i)
		columns = append(columns, name)
	}

	rs := &models.RecordSet{Columns: columns, Records: make([]models.Record, 0, len(values)-1)}
	for _, row := range values[1:] {
		rec := make(models.Record, len(columns))
		for j, i := range index {
			if i < len(row) {
				rec[columns[j]] = cellText(row[i])
			} else {
				rec[columns[j]] = ""
			}
		}
		rs.Records = append(rs.Records, rec)
	}
	return rs, nil
}

func cellText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// escapeQuery escapes a literal for a Drive search query.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// quoteSheetTitle turns a sheet title into an A1 range covering the whole sheet.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
