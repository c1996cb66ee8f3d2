package refresh_test

import (
	"context"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/avtopark/fleetboard/internal/demodata"
	"github.com/avtopark/fleetboard/internal/refresh"
	"github.com/avtopark/fleetboard/internal/sheets"
	"github.com/avtopark/fleetboard/internal/snapshot"
	"github.com/avtopark/fleetboard/internal/testutil"
)

// countingSource wraps another source and counts fetches, so tests can
// tell a cache hit from a full refresh.
type countingSource struct {
	inner   refresh.Source
	fetches int
}

func (s *countingSource) Fetch(ctx context.Context) (*sheets.Dataset, error) {
	s.fetches++
	return s.inner.Fetch(ctx)
}

type staticSource struct {
	ds  *sheets.Dataset
	err error
}

func (s staticSource) Fetch(ctx context.Context) (*sheets.Dataset, error) {
	return s.ds, s.err
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	snapSvc := snapshot.NewService(db)

	svc := refresh.NewService(demodata.Source{}, snapSvc, time.Hour)

	rep, err := svc.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(rep.Vehicles) != 4 {
		t.Errorf("expected 4 vehicles from the sample data, got %d", len(rep.Vehicles))
	}
	if rep.TotalRecords != 8 {
		t.Errorf("expected 8 records, got %d", rep.TotalRecords)
	}

	// The result must have been persisted.
	snap, err := snapSvc.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if snap.VehicleCount != 4 {
		t.Errorf("snapshot vehicle count %d, want 4", snap.VehicleCount)
	}
}

func TestReportServesFreshSnapshot(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	snapSvc := snapshot.NewService(db)

	src := &countingSource{inner: demodata.Source{}}
	svc := refresh.NewService(src, snapSvc, time.Hour)

	first, err := svc.Report(ctx)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if src.fetches != 1 {
		t.Fatalf("expected 1 fetch for a cold store, got %d", src.fetches)
	}

	second, err := svc.Report(ctx)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if src.fetches != 1 {
		t.Errorf("expected the second read to hit the snapshot, got %d fetches", src.fetches)
	}
	if second.GeneratedAt != first.GeneratedAt {
		t.Errorf("cached report differs: %q vs %q", second.GeneratedAt, first.GeneratedAt)
	}
}

func TestReportRefreshesStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	snapSvc := snapshot.NewService(db)

	src := &countingSource{inner: demodata.Source{}}
	// Zero freshness window: every read runs the pipeline.
	svc := refresh.NewService(src, snapSvc, 0)

	for i := 0; i < 2; i++ {
		if _, err := svc.Report(ctx); err != nil {
			t.Fatalf("Report %d: %v", i, err)
		}
	}
	if src.fetches != 2 {
		t.Errorf("expected a fetch per read with no freshness window, got %d", src.fetches)
	}
}

func TestRefreshEmptySchedule(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	snapSvc := snapshot.NewService(db)

	src := staticSource{ds: &sheets.Dataset{
		Schedule: [][]string{{"Місто", "Номер", "Модель", "Рік", "Примітки"}},
	}}
	svc := refresh.NewService(src, snapSvc, time.Hour)

	if _, err := svc.Refresh(ctx); !errors.Is(err, refresh.ErrEmptySchedule) {
		t.Errorf("got %v, want ErrEmptySchedule", err)
	}

	// No snapshot must have been written.
	if _, err := snapSvc.Latest(ctx); !errors.Is(err, snapshot.ErrNoSnapshot) {
		t.Errorf("got %v, want ErrNoSnapshot", err)
	}
}

func TestRefreshSourceError(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	snapSvc := snapshot.NewService(db)

	srcErr := errors.New("sheets unavailable")
	svc := refresh.NewService(staticSource{err: srcErr}, snapSvc, time.Hour)

	if _, err := svc.Refresh(ctx); !errors.Is(err, srcErr) {
		t.Errorf("got %v, want wrapped source error", err)
	}
}
