package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avtopark/fleetboard/internal/report"
)

// keepSnapshots is how many historical snapshots survive a save.
const keepSnapshots = 20

type Service struct {
	repo Repository
	db   *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:   db,
		repo: New(db),
	}
}

func (s *Service) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Save persists a report as a new snapshot and prunes old ones.
func (s *Service) Save(ctx context.Context, rep *report.Report) (*Snapshot, error) {
	payload, err := json.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	snap := &Snapshot{
		SnapshotID:    uuid.NewString(),
		CreatedAt:     time.Now().UTC().Format("2006-01-02 15:04:05"),
		ReferenceDate: rep.GeneratedAt,
		VehicleCount:  len(rep.Vehicles),
		RecordCount:   rep.TotalRecords,
		Payload:       string(payload),
	}

	err = s.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.Create(ctx, tx, snap); err != nil {
			return err
		}
		return s.repo.Prune(ctx, tx, keepSnapshots)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Latest returns the most recent snapshot, ErrNoSnapshot when empty.
func (s *Service) Latest(ctx context.Context) (*Snapshot, error) {
	return s.repo.Latest(ctx)
}

// LatestFresh returns the most recent snapshot only when it is younger
// than maxAge; otherwise ErrNoSnapshot. This is the cache-hit path of
// a refresh.
func (s *Service) LatestFresh(ctx context.Context, maxAge time.Duration) (*Snapshot, error) {
	snap, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	created, err := time.ParseInLocation("2006-01-02 15:04:05", snap.CreatedAt, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s has bad timestamp %q", snap.SnapshotID, snap.CreatedAt)
	}
	if time.Since(created) > maxAge {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, limit int) ([]Meta, error) {
	return s.repo.List(ctx, limit)
}
