package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSheets serves a single spreadsheet with the given worksheets and values.
type fakeSheets struct {
	id       string
	apiKey   string
	sheets   []map[string]any
	values   map[string][][]any
	requests []string
}

func (f *fakeSheets) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/spreadsheets/", func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("key") != f.apiKey {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
			return
		}

		switch r.URL.Path {
		case "/spreadsheets/" + f.id:
			assert.Equal(t, "sheets.properties", r.URL.Query().Get("fields"))
			_ = json.NewEncoder(w).Encode(map[string]any{"sheets": f.sheets})
			return
		}
		for rng, vals := range f.values {
			if r.URL.Path == "/spreadsheets/"+f.id+"/values/"+rng {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"range":          rng,
					"majorDimension": "ROWS",
					"values":         vals,
				})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))
	})
	return mux
}

func sheetProps(title string, index int) map[string]any {
	return map[string]any{"properties": map[string]any{"sheetId": index, "title": title, "index": index}}
}

func newTestClient(t *testing.T, srv *httptest.Server, key string) *Client {
	t.Helper()
	c, err := NewClient(Config{APIKey: key, BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return c
}

func TestClient_FetchTable(t *testing.T) {
	t.Parallel()

	fake := &fakeSheets{
		id:     "sheet123",
		apiKey: "k",
		sheets: []map[string]any{sheetProps("Archive", 1), sheetProps("Curator's terms", 0)},
		values: map[string][][]any{
			"'Curator''s terms'": {
				{"ID", "Name", "Description"},
				{"trm_1", "Foo", "a term"},
				{"trm_2", "Bar"},
				{"trm_3", "", 42.5},
			},
		},
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	table, err := newTestClient(t, srv, "k").FetchTable(context.Background(), "sheet123")
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "Name", "Description"}, table.Columns)
	require.Equal(t, 3, table.Len())

	_, ok := table.Cell(1, "Description")
	assert.False(t, ok, "short row padded with missing value")
	_, ok = table.Cell(2, "Name")
	assert.False(t, ok, "blank cell is missing")
	v, _ := table.Cell(2, "Description")
	assert.Equal(t, "42.5", v)

	assert.Equal(t, []string{
		"/spreadsheets/sheet123",
		"/spreadsheets/sheet123/values/'Curator''s terms'",
	}, fake.requests)
}

func TestClient_FetchTable_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fake       *fakeSheets
		key        string
		id         string
		wantStatus int
		wantErr    error
	}{
		"permission denied": {
			fake:       &fakeSheets{id: "s", apiKey: "right"},
			key:        "wrong",
			id:         "s",
			wantStatus: http.StatusForbidden,
		},
		"unknown spreadsheet": {
			fake:       &fakeSheets{id: "s", apiKey: "k"},
			key:        "k",
			id:         "other",
			wantStatus: http.StatusNotFound,
		},
		"no worksheets": {
			fake:    &fakeSheets{id: "s", apiKey: "k", sheets: []map[string]any{}},
			key:     "k",
			id:      "s",
			wantErr: ErrNoWorksheets,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tc.fake.handler(t))
			defer srv.Close()

			_, err := newTestClient(t, srv, tc.key).FetchTable(context.Background(), tc.id)
			require.Error(t, err)

			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %T: %v", err, err)
			assert.Equal(t, tc.wantStatus, apiErr.StatusCode)
			assert.NotEmpty(t, apiErr.Message)
			assert.NotEmpty(t, apiErr.Status)
		})
	}
}

func TestClient_FetchTable_EmptyWorksheet(t *testing.T) {
	t.Parallel()

	fake := &fakeSheets{
		id:     "s",
		apiKey: "k",
		sheets: []map[string]any{sheetProps("Sheet1", 0)},
		values: map[string][][]any{"'Sheet1'": nil},
	}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	table, err := newTestClient(t, srv, "k").FetchTable(context.Background(), "s")
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Equal(t, 0, table.Len())
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	fake := &fakeSheets{id: "s", apiKey: "k", sheets: []map[string]any{sheetProps("Sheet1", 0)}}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv, "k").FetchTable(ctx, "s")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestTableFromValues(t *testing.T) {
	t.Parallel()

	table := TableFromValues([][]any{
		{"id", "name", "flag", "n"},
		{"trm_1", "Foo", true, float64(3)},
		{nil, "Bar"},
	})

	v, _ := table.Cell(0, "flag")
	assert.Equal(t, "true", v)
	v, _ = table.Cell(0, "n")
	assert.Equal(t, "3", v)
	_, ok := table.Cell(1, "id")
	assert.False(t, ok)
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &APIError{StatusCode: 403, Status: "PERMISSION_DENIED", Message: "denied"}
	assert.Equal(t, "sheets API error 403 (PERMISSION_DENIED): denied", err.Error())

	err = &APIError{StatusCode: 500, Message: "500 Internal Server Error"}
	assert.Equal(t, "sheets API error 500: 500 Internal Server Error", err.Error())
}
