// Package sheets reads term tables from public Google Sheets through the Sheets
// API v4. Credentials are passed in explicitly; the package never reads the
// environment.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/neurobagel/communities/internal/vocab"
)

// DefaultBaseURL is the public Sheets API v4 endpoint.
const DefaultBaseURL = "https://sheets.googleapis.com/v4"

// DefaultTimeout bounds a single API request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// ErrNoWorksheets is returned for a spreadsheet without any worksheet.
var ErrNoWorksheets = errors.New("spreadsheet has no worksheets")

// Config holds the settings needed to reach the Sheets API.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// APIError is a non-2xx response from the Sheets API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("sheets API error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("sheets API error %d: %s", e.StatusCode, e.Message)
}

// errorEnvelope is the JSON error body returned by Google APIs.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type spreadsheetResponse struct {
	Sheets []struct {
		Properties struct {
			SheetID int    `json:"sheetId"`
			Title   string `json:"title"`
			Index   int    `json:"index"`
		} `json:"properties"`
	} `json:"sheets"`
}

type valuesResponse struct {
	Range          string  `json:"range"`
	MajorDimension string  `json:"majorDimension"`
	Values         [][]any `json:"values"`
}

// Client fetches worksheet contents.
type Client struct {
	http *resty.Client
}

// NewClient builds a client from cfg. An API key is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("a Google API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetQueryParam("key", cfg.APIKey)

	return &Client{http: rc}, nil
}

// FetchTable returns the first worksheet of the spreadsheet as a table. The
// first row is the header; blank cells are missing values.
func (c *Client) FetchTable(ctx context.Context, spreadsheetID string) (vocab.Table, error) {
	title, err := c.firstSheetTitle(ctx, spreadsheetID)
	if err != nil {
		return vocab.Table{}, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"spreadsheetId": spreadsheetID,
			"range":         quoteSheetTitle(title),
		}).
		SetQueryParam("majorDimension", "ROWS").
		SetResult(&valuesResponse{}).
		SetError(&errorEnvelope{}).
		Get("/spreadsheets/{spreadsheetId}/values/{range}")
	if err != nil {
		return vocab.Table{}, fmt.Errorf("reading worksheet %q: %w", title, err)
	}
	if resp.IsError() {
		return vocab.Table{}, apiError(resp)
	}

	values := resp.Result().(*valuesResponse)
	return TableFromValues(values.Values), nil
}

func (c *Client) firstSheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("spreadsheetId", spreadsheetID).
		SetQueryParam("fields", "sheets.properties").
		SetResult(&spreadsheetResponse{}).
		SetError(&errorEnvelope{}).
		Get("/spreadsheets/{spreadsheetId}")
	if err != nil {
		return "", fmt.Errorf("opening spreadsheet: %w", err)
	}
	if resp.IsError() {
		return "", apiError(resp)
	}

	sheet := resp.Result().(*spreadsheetResponse)
	if len(sheet.Sheets) == 0 {
		return "", ErrNoWorksheets
	}
	first := sheet.Sheets[0].Properties
	for _, s := range sheet.Sheets[1:] {
		if s.Properties.Index < first.Index {
			first = s.Properties
		}
	}
	return first.Title, nil
}

func apiError(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	if env, ok := resp.Error().(*errorEnvelope); ok && env.Error.Message != "" {
		apiErr.Message = env.Error.Message
		apiErr.Status = env.Error.Status
	}
	return apiErr
}

// quoteSheetTitle renders a worksheet title as an A1 range covering the sheet.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// TableFromValues converts a Sheets values grid into a table.
func TableFromValues(values [][]any) vocab.Table {
	records := make([][]string, len(values))
	for i, row := range values {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = cellString(cell)
		}
		records[i] = record
	}
	return vocab.FromRecords(records)
}

func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
