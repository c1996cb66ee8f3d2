// Package refresh ties the pipeline together: pull the sheet rows,
// normalize them, build the regulation table, run the aggregation
// driver and persist the result as a snapshot. Reads are served from
// the latest snapshot while it is fresh, matching the source system's
// short-lived cache.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/avtopark/fleetboard/internal/classify"
	"github.com/avtopark/fleetboard/internal/normalize"
	"github.com/avtopark/fleetboard/internal/regulation"
	"github.com/avtopark/fleetboard/internal/report"
	"github.com/avtopark/fleetboard/internal/sheets"
	"github.com/avtopark/fleetboard/internal/snapshot"
)

// ErrEmptySchedule is returned when the schedule sheet yields no
// vehicles. The schedule is the authoritative allowlist; without it a
// refresh would wipe the fleet, so the old snapshot is kept instead.
var ErrEmptySchedule = errors.New("schedule sheet contains no vehicles")

// Source provides one full pull of the three row sets.
type Source interface {
	Fetch(ctx context.Context) (*sheets.Dataset, error)
}

type Service struct {
	source    Source
	snapshots *snapshot.Service
	maxAge    time.Duration

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewService(source Source, snapshots *snapshot.Service, maxAge time.Duration) *Service {
	return &Service{
		source:    source,
		snapshots: snapshots,
		maxAge:    maxAge,
		now:       time.Now,
	}
}

// Report returns the current classification result, reusing the latest
// snapshot while it is younger than the freshness window and running a
// full refresh otherwise.
func (s *Service) Report(ctx context.Context) (*report.Report, error) {
	snap, err := s.snapshots.LatestFresh(ctx, s.maxAge)
	if err == nil {
		return snap.Decode()
	}
	if !errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil, err
	}
	return s.Refresh(ctx)
}

// Refresh runs the full pipeline unconditionally and persists the
// result.
func (s *Service) Refresh(ctx context.Context) (*report.Report, error) {
	ds, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}

	vehicles := normalize.Vehicles(ds.Schedule)
	if len(vehicles) == 0 {
		return nil, ErrEmptySchedule
	}
	records := normalize.Records(ds.History, vehicles)

	table := regulation.Build(ds.Regulations)
	cls := classify.New(table)

	rep := report.Run(vehicles, records, cls, s.now())

	if _, err := s.snapshots.Save(ctx, rep); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	log.Printf("refresh: %d vehicles, %d records, %d regulations",
		len(rep.Vehicles), rep.TotalRecords, table.Len())
	return rep, nil
}

// AutoRefresh re-runs the pipeline on a fixed interval until the
// context is canceled. Errors are logged and the previous snapshot
// stays live.
func (s *Service) AutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				log.Printf("auto refresh failed: %v", err)
			}
		}
	}
}
