// Package report runs the full per-vehicle aggregation and produces
// the ordered result consumed by the API. Pure given its inputs: no
// I/O, no hidden state, so two runs over identical inputs yield
// identical output.
package report

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/avtopark/fleetboard/internal/catalog"
	"github.com/avtopark/fleetboard/internal/classify"
	"github.com/avtopark/fleetboard/internal/fleet"
	"github.com/avtopark/fleetboard/internal/history"
	"github.com/avtopark/fleetboard/internal/legacy"
)

// Report is the complete classification result for one refresh pass.
type Report struct {
	GeneratedAt  string                `json:"generated_at"` // reference date, ISO
	Vehicles     []fleet.VehicleReport `json:"vehicles"`
	Stats        fleet.Stats           `json:"stats"`
	TotalRecords int                   `json:"total_records"`
}

// Run aggregates and classifies every vehicle. Vehicles are ordered by
// city then plate using Ukrainian collation for stable presentation.
// Per-vehicle work has no cross-vehicle dependencies.
func Run(
	vehicles map[string]fleet.Vehicle,
	recordsByPlate map[string][]fleet.ServiceRecord,
	cls *classify.Classifier,
	ref time.Time,
) *Report {
	items := catalog.Items()

	rep := &Report{
		GeneratedAt: ref.Format("2006-01-02"),
		Vehicles:    make([]fleet.VehicleReport, 0, len(vehicles)),
	}

	for plate, v := range vehicles {
		records := recordsByPlate[plate]
		statuses := history.Aggregate(v, records, items, ref)
		currentOdo := history.CurrentOdometer(records)

		for itemID, st := range statuses {
			if st == nil {
				continue
			}
			st.Status = cls.Classify(itemID, v, legacy.Input{
				DistanceSince: st.DistanceSince,
				DaysSince:     st.DaysSince,
				DateValid:     st.DateValid,
				VehicleYear:   v.Year,
				ModelText:     v.ModelText,
			})
		}

		hist := make([]fleet.ServiceRecord, len(records))
		copy(hist, records)
		history.SortByDateDesc(hist)

		rep.Vehicles = append(rep.Vehicles, fleet.VehicleReport{
			Vehicle:         v,
			CurrentOdometer: currentOdo,
			Items:           statuses,
			History:         hist,
		})
		rep.TotalRecords += len(records)
	}

	sortVehicles(rep.Vehicles)
	rep.Stats = stats(rep.Vehicles)
	return rep
}

// sortVehicles orders by city then plate with uk-locale collation, so
// Cyrillic city names sort the way operators expect.
func sortVehicles(vehicles []fleet.VehicleReport) {
	c := collate.New(language.Ukrainian)
	sort.SliceStable(vehicles, func(i, j int) bool {
		if r := c.CompareString(vehicles[i].City, vehicles[j].City); r != 0 {
			return r < 0
		}
		return c.CompareString(vehicles[i].Plate, vehicles[j].Plate) < 0
	})
}

// stats counts vehicles carrying at least one item in each state.
func stats(vehicles []fleet.VehicleReport) fleet.Stats {
	s := fleet.Stats{TotalVehicles: len(vehicles)}
	for _, v := range vehicles {
		var good, warn, crit bool
		for _, st := range v.Items {
			if st == nil {
				continue
			}
			switch st.Status {
			case fleet.StatusGood:
				good = true
			case fleet.StatusWarning:
				warn = true
			case fleet.StatusCritical:
				crit = true
			}
		}
		if good {
			s.VehiclesGood++
		}
		if warn {
			s.VehiclesWarning++
		}
		if crit {
			s.VehiclesCritical++
		}
	}
	return s
}
