// Package history reduces a vehicle's raw service records to the most
// recent qualifying service per maintenance item.
package history

import (
	"sort"
	"time"

	"github.com/avtopark/fleetboard/internal/catalog"
	"github.com/avtopark/fleetboard/internal/fleet"
	"github.com/avtopark/fleetboard/internal/normalize"
)

// CurrentOdometer returns the vehicle's current reading: the maximum
// odometer across all of its surviving records. The schedule sheet
// carries no odometer column, so the history is the only source.
func CurrentOdometer(records []fleet.ServiceRecord) int {
	max := 0
	for _, r := range records {
		if r.Odometer > max {
			max = r.Odometer
		}
	}
	return max
}

// Latest picks, per catalog item, the qualifying record with the
// strictly greatest odometer reading. A record qualifies when its
// description contains any of the item's keywords; one record may
// qualify for several items independently. Ties keep the first record
// encountered in input order (last write wins only on strictly
// greater), so the reduction is deterministic for duplicated readings.
func Latest(records []fleet.ServiceRecord, items []catalog.Item) map[string]*fleet.ServiceRecord {
	out := make(map[string]*fleet.ServiceRecord, len(items))
	for _, item := range items {
		out[item.ID] = nil
	}

	for i := range records {
		rec := &records[i]
		for j := range items {
			item := &items[j]
			if !item.Matches(rec.Description) {
				continue
			}
			if cur := out[item.ID]; cur == nil || rec.Odometer > cur.Odometer {
				out[item.ID] = rec
			}
		}
	}
	return out
}

// Aggregate computes the per-item state for one vehicle. Statuses are
// not assigned here; the caller runs the classifier over the returned
// map. Items with no qualifying record map to nil.
func Aggregate(v fleet.Vehicle, records []fleet.ServiceRecord, items []catalog.Item, ref time.Time) map[string]*fleet.ItemStatus {
	currentOdo := CurrentOdometer(records)
	latest := Latest(records, items)

	out := make(map[string]*fleet.ItemStatus, len(items))
	for _, item := range items {
		rec := latest[item.ID]
		if rec == nil {
			out[item.ID] = nil
			continue
		}

		st := &fleet.ItemStatus{
			Date:            rec.Date,
			Odometer:        rec.Odometer,
			CurrentOdometer: currentOdo,
			DistanceSince:   currentOdo - rec.Odometer,
		}
		if rec.DateValid {
			if days, ok := normalize.DaysBetween(rec.Date, ref); ok {
				st.DateValid = true
				st.DaysSince = days
				st.TimeLabel = normalize.TimeLabel(days)
			}
		}
		out[item.ID] = st
	}
	return out
}

// SortByDateDesc orders a vehicle's history newest first for display.
// Records with unparsable dates sort last. Independent of the per-item
// reduction above, which works on input order.
func SortByDateDesc(records []fleet.ServiceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.DateValid != b.DateValid {
			return a.DateValid
		}
		return a.Date > b.Date
	})
}
