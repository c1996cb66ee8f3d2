package demodata_test

import (
	"context"
	"testing"

	"github.com/avtopark/fleetboard/internal/demodata"
	"github.com/avtopark/fleetboard/internal/normalize"
)

func TestRows(t *testing.T) {
	ds, err := demodata.Rows()
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	vehicles := normalize.Vehicles(ds.Schedule)
	if len(vehicles) != 4 {
		t.Errorf("expected 4 sample vehicles, got %d", len(vehicles))
	}

	records := normalize.Records(ds.History, vehicles)
	total := 0
	for _, recs := range records {
		total += len(recs)
	}
	if total != 8 {
		t.Errorf("expected all 8 sample history rows to survive normalization, got %d", total)
	}

	if len(ds.Regulations) < 2 {
		t.Errorf("expected sample regulations with a header, got %d rows", len(ds.Regulations))
	}
}

func TestSourceFetch(t *testing.T) {
	ds, err := demodata.Source{}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(ds.Schedule) == 0 {
		t.Error("expected schedule rows")
	}
}
