package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNoSnapshot is returned when the store holds no snapshots yet.
var ErrNoSnapshot = errors.New("no snapshot available")

type Repository interface {
	Create(ctx context.Context, tx *sqlx.Tx, s *Snapshot) error
	Latest(ctx context.Context) (*Snapshot, error)
	Get(ctx context.Context, id string) (*Snapshot, error)
	List(ctx context.Context, limit int) ([]Meta, error)
	Prune(ctx context.Context, tx *sqlx.Tx, keep int) error
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, tx *sqlx.Tx, s *Snapshot) error {
	_, err := tx.ExecContext(ctx, createSnapshotSQL,
		s.SnapshotID,
		s.CreatedAt,
		s.ReferenceDate,
		s.VehicleCount,
		s.RecordCount,
		s.Payload,
	)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	return nil
}

func (r *repo) Latest(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	err := r.db.GetContext(ctx, &s, latestSnapshotSQL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *repo) Get(ctx context.Context, id string) (*Snapshot, error) {
	var s Snapshot
	err := r.db.GetContext(ctx, &s, getSnapshotSQL, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot not found (%s)", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

func (r *repo) List(ctx context.Context, limit int) ([]Meta, error) {
	var out []Meta
	err := r.db.SelectContext(ctx, &out, listSnapshotsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

func (r *repo) Prune(ctx context.Context, tx *sqlx.Tx, keep int) error {
	_, err := tx.ExecContext(ctx, pruneSnapshotsSQL, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
