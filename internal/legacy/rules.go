// Package legacy holds the code-defined fallback thresholds used when
// no regulation matches an item. The values and comparison operators
// reproduce the long-standing rule set the fleet has operated on, so
// classification stays identical when the regulations sheet is empty
// or only partially loaded.
package legacy

import (
	"strings"

	"github.com/avtopark/fleetboard/internal/catalog"
	"github.com/avtopark/fleetboard/internal/fleet"
)

// Input carries everything a legacy rule may consult.
type Input struct {
	DistanceSince int  // km since last qualifying service
	DaysSince     int  // elapsed days since last qualifying service
	DateValid     bool // false when the record's date failed to parse
	VehicleYear   int  // 0 when unknown
	ModelText     string
}

// timeBased reports whether the rule for an item compares elapsed time
// rather than distance. Callers use this to decide that an invalid
// date makes the status unknown instead of silently good.
func timeBased(itemID string) bool {
	switch itemID {
	case catalog.ChassisDiagnostics, catalog.WheelAlignment, catalog.CaliperService,
		catalog.ComputerDiagnostics, catalog.DPFBurn, catalog.Battery:
		return true
	}
	return false
}

// isSprinter matches the Mercedes Sprinter model-specific overrides:
// case-insensitive substring match on both the brand and model tokens.
func isSprinter(modelText string) bool {
	m := strings.ToLower(modelText)
	return strings.Contains(m, "mercedes") && strings.Contains(m, "sprinter")
}

// Classify resolves an item's status from the fixed rule table. Every
// item always resolves: anything not explicitly listed falls through
// to the generic distance default.
func Classify(itemID string, in Input) fleet.Status {
	if timeBased(itemID) && !in.DateValid {
		return fleet.StatusUnknown
	}

	monthsSince := float64(in.DaysSince) / 30

	if isSprinter(in.ModelText) {
		switch itemID {
		case catalog.TimingBelt:
			// Sprinter timing is chain driven, never degrades.
			return fleet.StatusGood
		case catalog.WaterPump:
			if in.DistanceSince >= 120000 {
				return fleet.StatusWarning
			}
			return fleet.StatusGood
		}
	}

	switch itemID {
	case catalog.OilService:
		if in.VehicleYear >= 2010 {
			return byDistance(in.DistanceSince, 14000, 15500)
		}
		return byDistance(in.DistanceSince, 9000, 10500)

	case catalog.TimingBelt, catalog.SerpentineBelt:
		return byDistance(in.DistanceSince, 58000, 60500)

	case catalog.WaterPump, catalog.Clutch, catalog.Starter, catalog.Alternator:
		return byDistance(in.DistanceSince, 80000, 120000)

	case catalog.ChassisDiagnostics:
		if monthsSince > 3 {
			return fleet.StatusCritical
		}
		if monthsSince >= 2 {
			return fleet.StatusWarning
		}
		return fleet.StatusGood

	case catalog.WheelAlignment, catalog.CaliperService, catalog.ComputerDiagnostics, catalog.DPFBurn:
		if monthsSince > 4 {
			return fleet.StatusCritical
		}
		if monthsSince >= 2 {
			return fleet.StatusWarning
		}
		return fleet.StatusGood

	case catalog.BrakePads:
		if in.DistanceSince > 80000 {
			return fleet.StatusCritical
		}
		if in.DistanceSince >= 60000 {
			return fleet.StatusWarning
		}
		return fleet.StatusGood

	case catalog.BrakeDiscs, catalog.ShockAbsorbers:
		if in.DistanceSince > 100000 {
			return fleet.StatusCritical
		}
		if in.DistanceSince >= 70000 {
			return fleet.StatusWarning
		}
		return fleet.StatusGood

	case catalog.StrutMounts, catalog.BallJoints, catalog.TieRods, catalog.TieRodEnds:
		if in.DistanceSince > 60000 {
			return fleet.StatusCritical
		}
		if in.DistanceSince >= 50000 {
			return fleet.StatusWarning
		}
		return fleet.StatusGood

	case catalog.Battery:
		yearsSince := float64(in.DaysSince) / 365
		if yearsSince > 4 {
			return fleet.StatusCritical
		}
		if yearsSince >= 3 {
			return fleet.StatusWarning
		}
		return fleet.StatusGood
	}

	// Generic distance default for anything not listed above.
	if in.DistanceSince > 50000 {
		return fleet.StatusCritical
	}
	if in.DistanceSince > 30000 {
		return fleet.StatusWarning
	}
	return fleet.StatusGood
}

// byDistance applies the common inclusive warning/critical pair.
func byDistance(distance, warning, critical int) fleet.Status {
	if distance >= critical {
		return fleet.StatusCritical
	}
	if distance >= warning {
		return fleet.StatusWarning
	}
	return fleet.StatusGood
}
