package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/avtopark/fleetboard/internal/report"
)

// Snapshot is one persisted refresh result. The payload is the full
// serialized report; the metadata columns exist so listings never have
// to deserialize it.
type Snapshot struct {
	SnapshotID    string `db:"snapshot_id" json:"snapshot_id"`
	CreatedAt     string `db:"created_at" json:"created_at"` // UTC, "2006-01-02 15:04:05"
	ReferenceDate string `db:"reference_date" json:"reference_date"`
	VehicleCount  int    `db:"vehicle_count" json:"vehicle_count"`
	RecordCount   int    `db:"record_count" json:"record_count"`
	Payload       string `db:"payload" json:"-"`
}

// Meta is a snapshot without its payload, for listings.
type Meta struct {
	SnapshotID    string `db:"snapshot_id" json:"snapshot_id"`
	CreatedAt     string `db:"created_at" json:"created_at"`
	ReferenceDate string `db:"reference_date" json:"reference_date"`
	VehicleCount  int    `db:"vehicle_count" json:"vehicle_count"`
	RecordCount   int    `db:"record_count" json:"record_count"`
}

// Decode deserializes the stored report. The payload is trusted as-is;
// the store wrote it and nothing else touches the column.
func (s *Snapshot) Decode() (*report.Report, error) {
	var rep report.Report
	if err := json.Unmarshal([]byte(s.Payload), &rep); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.SnapshotID, err)
	}
	return &rep, nil
}
