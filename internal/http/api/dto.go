package api

import "github.com/avtopark/fleetboard/internal/fleet"

// FleetResponse is the list view: every vehicle with its status map
// but without the full history, which has its own endpoint.
type FleetResponse struct {
	GeneratedAt  string           `json:"generated_at"`
	TotalRecords int              `json:"total_records"`
	Stats        fleet.Stats      `json:"stats"`
	Vehicles     []VehicleSummary `json:"vehicles"`
}

type VehicleSummary struct {
	Plate           string                       `json:"plate"`
	City            string                       `json:"city"`
	Model           string                       `json:"model"`
	Year            int                          `json:"year"`
	CurrentOdometer int                          `json:"current_odometer_km"`
	Items           map[string]*fleet.ItemStatus `json:"items"`
}

// VehicleResponse is the detail view including history.
type VehicleResponse struct {
	VehicleSummary
	History []fleet.ServiceRecord `json:"history"`
}

// CatalogItem describes one tracked item for presentation clients.
type CatalogItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
