package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"GreeksBoard/internal/service/credentials"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func loaderWith(value string) *credentials.Loader {
	return credentials.NewLoader("TEST_CREDS", credentials.WithLookup(func(string) (string, bool) {
		return value, value != ""
	}))
}

type fakeGoogle struct {
	files  []map[string]string
	sheets []string
	values [][]interface{}
	query  string
	rng    string
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/files"):
		f.query = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"files": f.files})
	case strings.Contains(r.URL.Path, "/values/"):
		f.rng = r.URL.Path[strings.Index(r.URL.Path, "/values/")+len("/values/"):]
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"majorDimension": "ROWS", "values": f.values})
	case strings.Contains(r.URL.Path, "/spreadsheets/"):
		sheets := make([]map[string]interface{}, 0, len(f.sheets))
		for i, title := range f.sheets {
			sheets = append(sheets, map[string]interface{}{"properties": map[string]interface{}{"index": i, "title": title}})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"sheets": sheets})
	default:
		http.NotFound(w, r)
	}
}

func newFakeClient(t *testing.T, f *fakeGoogle) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	src := New(loaderWith(`{"type":"service_account"}`), "Upstox-Greeks",
		WithServiceOptions(option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client())),
	)
	return src.(*Client)
}

func TestFetchFirstSheet(t *testing.T) {
	f := &fakeGoogle{
		files:  []map[string]string{{"id": "abc", "name": "Upstox-Greeks"}},
		sheets: []string{"Sheet1", "Archive"},
		values: [][]interface{}{
			{"timestamp", "CE_18000_ltp", "PE_18000_ltp"},
			{"2024-01-10 09:15:00", "101.5", "88"},
			{"2024-01-10 09:16:00", "102"},
		},
	}
	c := newFakeClient(t, f)

	rs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sheets", c.Name())
	assert.Equal(t, []string{"timestamp", "CE_18000_ltp", "PE_18000_ltp"}, rs.Columns)
	require.Len(t, rs.Records, 2)
	assert.Equal(t, "101.5", rs.Records[0]["CE_18000_ltp"])
	assert.Equal(t, "", rs.Records[1]["PE_18000_ltp"])
	assert.Contains(t, f.query, "name = 'Upstox-Greeks'")
	assert.Contains(t, f.query, "trashed = false")
	assert.Equal(t, "'Sheet1'", f.rng)
}

func TestFetchNotFound(t *testing.T) {
	c := newFakeClient(t, &fakeGoogle{})
	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpreadsheetNotFound))
}

func TestFetchHeaderOnly(t *testing.T) {
	c := newFakeClient(t, &fakeGoogle{
		files:  []map[string]string{{"id": "abc"}},
		sheets: []string{"Sheet1"},
		values: [][]interface{}{{"timestamp", "CE_1_ltp"}},
	})
	rs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, rs.Empty())
}

func TestFetchMissingCredential(t *testing.T) {
	src := New(loaderWith(""), "Upstox-Greeks")
	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, credentials.ErrCredentialMissing))
	assert.Equal(t, "TEST_CREDS environment variable not set", err.Error())
}

func TestValuesToRecordSet(t *testing.T) {
	rs, err := valuesToRecordSet(nil)
	require.NoError(t, err)
	assert.True(t, rs.Empty())

	rs, err = valuesToRecordSet([][]interface{}{
		{"timestamp", "", "CE_1_delta"},
		{"2024-01-09", "ignored", 0.5},
		{},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"timestamp", "CE_1_delta"}, rs.Columns)
	require.Len(t, rs.Records, 2)
	assert.Equal(t, "0.5", rs.Records[0]["CE_1_delta"])
	assert.Equal(t, "", rs.Records[1]["timestamp"])

	_, err = valuesToRecordSet([][]interface{}{{"a", "b", "a"}})
	assert.Error(t, err)
}

func TestQuoting(t *testing.T) {
	assert.Equal(t, `O\'Brien \\ sheet`, escapeQuery(`O'Brien \ sheet`))
	assert.Equal(t, `'Bob''s data'`, quoteSheetTitle("Bob's data"))
}
