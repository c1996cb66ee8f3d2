// Package sheets fetches raw tabular rows from the Google Sheets
// values API. It is the external retrieval collaborator: the core
// pipeline only ever sees the [][]string rows returned here.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://sheets.googleapis.com"

// Client reads sheet values over HTTP.
type Client struct {
	BaseURL       string
	SpreadsheetID string
	APIKey        string
	HTTPClient    *http.Client
}

func NewClient(spreadsheetID, apiKey string) *Client {
	return &Client{
		BaseURL:       defaultBaseURL,
		SpreadsheetID: spreadsheetID,
		APIKey:        apiKey,
		HTTPClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// valuesResponse is the subset of the values API body we consume.
// Cells arrive untyped; everything is coerced to string.
type valuesResponse struct {
	Values [][]any `json:"values"`
}

// Fetch returns all rows of one sheet.
func (c *Client) Fetch(ctx context.Context, sheetName string) ([][]string, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		c.BaseURL,
		url.PathEscape(c.SpreadsheetID),
		url.PathEscape(sheetName),
		url.QueryEscape(c.APIKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %q: %w", sheetName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet %q: %s", sheetName, resp.Status)
	}

	var body valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode sheet %q: %w", sheetName, err)
	}

	rows := make([][]string, len(body.Values))
	for i, raw := range body.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = toString(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

// Dataset is one full pull of all three sheets.
type Dataset struct {
	Schedule    [][]string
	History     [][]string
	Regulations [][]string
}

// FetchAll pulls the schedule, history and regulation sheets. The
// schedule sheet is the vehicle allowlist, so a failure there is
// fatal; the other sheets degrade to empty row sets with a logged
// warning, preserving partial availability.
func (c *Client) FetchAll(ctx context.Context, scheduleSheet, historySheet, regulationSheet string) (*Dataset, error) {
	schedule, err := c.Fetch(ctx, scheduleSheet)
	if err != nil {
		return nil, err
	}

	history, err := c.Fetch(ctx, historySheet)
	if err != nil {
		log.Printf("sheets: history sheet unavailable, continuing without it: %v", err)
		history = nil
	}

	regulations, err := c.Fetch(ctx, regulationSheet)
	if err != nil {
		log.Printf("sheets: regulation sheet unavailable, continuing without it: %v", err)
		regulations = nil
	}

	return &Dataset{
		Schedule:    schedule,
		History:     history,
		Regulations: regulations,
	}, nil
}

func toString(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		// Sheets may return bare numbers for numeric cells.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NamedSource binds a client to the configured sheet names so callers
// depend only on a parameterless fetch.
type NamedSource struct {
	Client          *Client
	ScheduleSheet   string
	HistorySheet    string
	RegulationSheet string
}

func (s *NamedSource) Fetch(ctx context.Context) (*Dataset, error) {
	return s.Client.FetchAll(ctx, s.ScheduleSheet, s.HistorySheet, s.RegulationSheet)
}
