package normalize

import (
	"strconv"
	"strings"

	"github.com/avtopark/fleetboard/internal/fleet"
)

// Schedule sheet columns (positional contract).
const (
	scheduleColCity  = 0
	scheduleColPlate = 1
	scheduleColModel = 2
	scheduleColYear  = 3

	scheduleMinCells = 5
)

// History sheet columns (positional contract).
const (
	histColDate        = 0
	histColPlate       = 1
	histColOdometer    = 2
	histColDescription = 3
	histColPartCode    = 4
	histColUnit        = 5
	histColQuantity    = 6
	histColPrice       = 7
	histColTotalVAT    = 8
	histColStatus      = 9

	histMinCells = 8
)

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// Vehicles builds the vehicle allowlist from the schedule sheet. The
// first row is the header. Rows that are too short or have an empty
// plate are skipped. Later rows with a duplicate plate overwrite
// earlier ones, matching the source sheet's last-entry-wins behavior.
func Vehicles(scheduleRows [][]string) map[string]fleet.Vehicle {
	out := make(map[string]fleet.Vehicle)
	for i := 1; i < len(scheduleRows); i++ {
		row := scheduleRows[i]
		if len(row) < scheduleMinCells {
			continue
		}
		plate := cell(row, scheduleColPlate)
		if plate == "" {
			continue
		}
		year, _ := strconv.Atoi(cell(row, scheduleColYear))
		out[plate] = fleet.Vehicle{
			Plate:     plate,
			City:      cell(row, scheduleColCity),
			ModelText: cell(row, scheduleColModel),
			Year:      year,
		}
	}
	return out
}

// Records decodes the history sheet into service records partitioned by
// plate. The first row is the header. A row is skipped when it is too
// short, when its plate is not in the vehicle allowlist, or when its
// odometer cell does not yield a positive reading — a record serviced
// at an unknown mileage cannot be placed on the timeline.
func Records(historyRows [][]string, vehicles map[string]fleet.Vehicle) map[string][]fleet.ServiceRecord {
	out := make(map[string][]fleet.ServiceRecord)
	for i := 1; i < len(historyRows); i++ {
		row := historyRows[i]
		if len(row) < histMinCells {
			continue
		}
		plate := cell(row, histColPlate)
		if plate == "" {
			continue
		}
		if _, ok := vehicles[plate]; !ok {
			continue
		}
		odo, ok := Odometer(cell(row, histColOdometer))
		if !ok {
			continue
		}
		date, dateOK := Date(cell(row, histColDate))

		out[plate] = append(out[plate], fleet.ServiceRecord{
			Plate:        plate,
			Date:         date,
			DateValid:    dateOK,
			Odometer:     odo,
			Description:  cell(row, histColDescription),
			PartCode:     cell(row, histColPartCode),
			Unit:         cell(row, histColUnit),
			Quantity:     Number(cell(row, histColQuantity)),
			Price:        Number(cell(row, histColPrice)),
			TotalWithVAT: Number(cell(row, histColTotalVAT)),
			StatusLabel:  cell(row, histColStatus),
		})
	}
	return out
}
