// Package fleet defines the domain types shared by the maintenance
// tracking pipeline: vehicles, raw service records and derived per-item
// statuses.
package fleet

// Status is the urgency classification of a maintenance item.
type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"

	// StatusUnknown is returned when the governing rule needs the
	// elapsed time since service but the record's date did not parse.
	StatusUnknown Status = "unknown"
)

// Vehicle is one tracked vehicle, keyed by its license plate. Built
// once per refresh from the schedule sheet and immutable afterwards.
type Vehicle struct {
	Plate     string `json:"plate"`
	City      string `json:"city"`
	ModelText string `json:"model"` // free-text brand + model as entered in the sheet
	Year      int    `json:"year"`  // model year, 0 when unknown
}

// ServiceRecord is one raw maintenance transaction from the history
// sheet. Records without a usable odometer reading are never
// constructed (the normalizer drops them).
type ServiceRecord struct {
	Plate        string  `json:"plate"`
	Date         string  `json:"date"` // ISO yyyy-mm-dd, or the raw cell when unparsable
	DateValid    bool    `json:"date_valid"`
	Odometer     int     `json:"odometer_km"`
	Description  string  `json:"description"`
	PartCode     string  `json:"part_code,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Quantity     float64 `json:"quantity,omitempty"`
	Price        float64 `json:"price,omitempty"`
	TotalWithVAT float64 `json:"total_with_vat,omitempty"`
	StatusLabel  string  `json:"status_label,omitempty"`
}

// ItemStatus is the derived state of one maintenance item on one
// vehicle. Recomputed fully on every aggregation pass.
type ItemStatus struct {
	Date            string `json:"date"`
	DateValid       bool   `json:"date_valid"`
	Odometer        int    `json:"odometer_km"`
	CurrentOdometer int    `json:"current_odometer_km"`
	DistanceSince   int    `json:"distance_since_km"`
	DaysSince       int    `json:"days_since"` // meaningless when DateValid is false
	TimeLabel       string `json:"time_label"` // "{N}р {M}міс" or "{N}дн"
	Status          Status `json:"status"`
}

// VehicleReport is one vehicle with its computed odometer, per-item
// status map and chronologically sorted history. Items with no
// qualifying record are present with a nil status.
type VehicleReport struct {
	Vehicle
	CurrentOdometer int                    `json:"current_odometer_km"`
	Items           map[string]*ItemStatus `json:"items"` // keyed by catalog item ID
	History         []ServiceRecord        `json:"history"`
}

// Stats counts vehicles that carry at least one item in each state.
type Stats struct {
	TotalVehicles    int `json:"total_vehicles"`
	VehiclesGood     int `json:"vehicles_with_good"`
	VehiclesWarning  int `json:"vehicles_with_warning"`
	VehiclesCritical int `json:"vehicles_with_critical"`
}
