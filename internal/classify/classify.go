// Package classify maps an item's service deltas to an urgency status.
// Resolution is two tier: the data-driven regulation table is consulted
// first, and the code-defined legacy rules apply only when no
// regulation matches. Operators can therefore override thresholds per
// plate, brand, model or year from the sheet without a code change,
// while every item still resolves even with an empty regulations sheet.
package classify

import (
	"github.com/avtopark/fleetboard/internal/fleet"
	"github.com/avtopark/fleetboard/internal/legacy"
	"github.com/avtopark/fleetboard/internal/regulation"
)

// Classifier resolves statuses against a built regulation table. The
// table is read-only and the classifier is safe for concurrent use.
type Classifier struct {
	table *regulation.Table
}

func New(table *regulation.Table) *Classifier {
	return &Classifier{table: table}
}

// Classify resolves the status of one item on one vehicle.
func (c *Classifier) Classify(itemID string, v fleet.Vehicle, in legacy.Input) fleet.Status {
	if reg := c.table.Find(v.Plate, v.ModelText, v.Year, itemID); reg != nil {
		return applyRegulation(reg, in)
	}
	return legacy.Classify(itemID, in)
}

// applyRegulation evaluates a matched regulation. The comparison value
// is selected by the regulation's period type; thresholds are inclusive
// lower bounds with critical checked before warning.
func applyRegulation(reg *regulation.Regulation, in legacy.Input) fleet.Status {
	if reg.Chain {
		return fleet.StatusGood
	}

	var value float64
	switch reg.Period {
	case regulation.PeriodMonths:
		if !in.DateValid {
			return fleet.StatusUnknown
		}
		value = float64(in.DaysSince) / 30
	case regulation.PeriodYears:
		if !in.DateValid {
			return fleet.StatusUnknown
		}
		value = float64(in.DaysSince) / 365
	default:
		value = float64(in.DistanceSince)
	}

	// A threshold of 0 means the sheet cell was empty or unparsable
	// (normalize.Number degrades to 0); such a bound never fires, so a
	// threshold-less non-chain regulation classifies as good.
	if reg.Critical > 0 && value >= reg.Critical {
		return fleet.StatusCritical
	}
	if reg.Warning > 0 && value >= reg.Warning {
		return fleet.StatusWarning
	}
	return fleet.StatusGood
}
