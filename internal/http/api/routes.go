package api

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the read-only fleet endpoints under the given
// Echo group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/fleet", h.GetFleet)
	g.GET("/fleet/:plate", h.GetVehicle)
	g.GET("/fleet/:plate/history", h.GetVehicleHistory)
	g.GET("/catalog", h.GetCatalog)
}

// RegisterAdminRoutes wires the mutating endpoints; the caller applies
// API key auth to the group.
func RegisterAdminRoutes(g *echo.Group, h *Handler) {
	g.POST("/refresh", h.ForceRefresh)
	g.POST("/backup", h.CreateBackup)
	g.GET("/snapshots", h.ListSnapshots)
}
