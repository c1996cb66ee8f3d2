package snapshot

const createSnapshotSQL = `
INSERT INTO snapshot (
    snapshot_id, created_at, reference_date, vehicle_count, record_count, payload
) VALUES (?, ?, ?, ?, ?, ?)
`

const latestSnapshotSQL = `
SELECT snapshot_id, created_at, reference_date, vehicle_count, record_count, payload
FROM snapshot
ORDER BY created_at DESC, snapshot_id DESC
LIMIT 1
`

const getSnapshotSQL = `
SELECT snapshot_id, created_at, reference_date, vehicle_count, record_count, payload
FROM snapshot
WHERE snapshot_id = ?
`

const listSnapshotsSQL = `
SELECT snapshot_id, created_at, reference_date, vehicle_count, record_count
FROM snapshot
ORDER BY created_at DESC, snapshot_id DESC
LIMIT ?
`

const pruneSnapshotsSQL = `
DELETE FROM snapshot
WHERE snapshot_id NOT IN (
    SELECT snapshot_id FROM snapshot
    ORDER BY created_at DESC, snapshot_id DESC
    LIMIT ?
)
`
