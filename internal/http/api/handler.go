package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avtopark/fleetboard/internal/backup"
	"github.com/avtopark/fleetboard/internal/catalog"
	"github.com/avtopark/fleetboard/internal/fleet"
	"github.com/avtopark/fleetboard/internal/refresh"
	"github.com/avtopark/fleetboard/internal/snapshot"
)

type Handler struct {
	RefreshService  *refresh.Service
	SnapshotService *snapshot.Service
	BackupService   *backup.Service
}

func NewHandler(r *refresh.Service, s *snapshot.Service, b *backup.Service) *Handler {
	return &Handler{
		RefreshService:  r,
		SnapshotService: s,
		BackupService:   b,
	}
}

// GET /fleet
func (h *Handler) GetFleet(c echo.Context) error {
	rep, err := h.RefreshService.Report(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}

	resp := FleetResponse{
		GeneratedAt:  rep.GeneratedAt,
		TotalRecords: rep.TotalRecords,
		Stats:        rep.Stats,
		Vehicles:     make([]VehicleSummary, 0, len(rep.Vehicles)),
	}
	for _, v := range rep.Vehicles {
		resp.Vehicles = append(resp.Vehicles, summary(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// GET /fleet/:plate
func (h *Handler) GetVehicle(c echo.Context) error {
	rep, err := h.RefreshService.Report(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}

	v, ok := findVehicle(rep.Vehicles, c.Param("plate"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown vehicle")
	}
	return c.JSON(http.StatusOK, VehicleResponse{
		VehicleSummary: summary(*v),
		History:        v.History,
	})
}

// GET /fleet/:plate/history
func (h *Handler) GetVehicleHistory(c echo.Context) error {
	rep, err := h.RefreshService.Report(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}

	v, ok := findVehicle(rep.Vehicles, c.Param("plate"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown vehicle")
	}
	return c.JSON(http.StatusOK, v.History)
}

// GET /catalog
func (h *Handler) GetCatalog(c echo.Context) error {
	items := catalog.Items()
	out := make([]CatalogItem, 0, len(items))
	for _, it := range items {
		out = append(out, CatalogItem{ID: it.ID, Label: it.Label})
	}
	return c.JSON(http.StatusOK, out)
}

// POST /refresh (admin)
func (h *Handler) ForceRefresh(c echo.Context) error {
	rep, err := h.RefreshService.Refresh(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{
		"generated_at":  rep.GeneratedAt,
		"vehicles":      len(rep.Vehicles),
		"total_records": rep.TotalRecords,
	})
}

// POST /backup (admin)
func (h *Handler) CreateBackup(c echo.Context) error {
	result, err := h.BackupService.CreateBackup(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// GET /snapshots (admin)
func (h *Handler) ListSnapshots(c echo.Context) error {
	metas, err := h.SnapshotService.List(c.Request().Context(), 20)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, metas)
}

func summary(v fleet.VehicleReport) VehicleSummary {
	return VehicleSummary{
		Plate:           v.Plate,
		City:            v.City,
		Model:           v.ModelText,
		Year:            v.Year,
		CurrentOdometer: v.CurrentOdometer,
		Items:           v.Items,
	}
}

func findVehicle(vehicles []fleet.VehicleReport, plate string) (*fleet.VehicleReport, bool) {
	for i := range vehicles {
		if vehicles[i].Plate == plate {
			return &vehicles[i], true
		}
	}
	return nil, false
}
