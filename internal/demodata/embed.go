// Package demodata provides sample sheet rows for demo deployments.
// With the -demo flag the server runs entirely from this data, no
// Sheets credentials needed.
package demodata

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/avtopark/fleetboard/internal/sheets"
)

//go:embed sample.json
var sampleJSON embed.FS

type rowsFile struct {
	Schedule    [][]string `json:"schedule"`
	History     [][]string `json:"history"`
	Regulations [][]string `json:"regulations"`
}

// Rows returns the embedded sample dataset.
func Rows() (*sheets.Dataset, error) {
	data, err := sampleJSON.ReadFile("sample.json")
	if err != nil {
		return nil, err
	}

	var f rowsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode sample data: %w", err)
	}

	return &sheets.Dataset{
		Schedule:    f.Schedule,
		History:     f.History,
		Regulations: f.Regulations,
	}, nil
}

// Source serves the embedded rows through the refresh pipeline's
// source interface.
type Source struct{}

func (Source) Fetch(ctx context.Context) (*sheets.Dataset, error) {
	return Rows()
}
