// Package regulation implements the data-driven maintenance threshold
// rules loaded from the regulations sheet. Regulations override the
// code-defined legacy thresholds: the table is consulted first and the
// first structural match in priority order wins.
package regulation

import "regexp"

// Period selects which delta a regulation's thresholds compare against.
type Period string

const (
	PeriodDistance Period = "distance" // kilometers since service
	PeriodMonths   Period = "months"   // elapsed days / 30
	PeriodYears    Period = "years"    // elapsed days / 365
)

// Regulation is one matching rule. Patterns are compiled once at build
// time; a nil pattern means the wildcard "*".
type Regulation struct {
	PlatePattern string // exact plate or "*"
	BrandSource  string // raw pattern text from the sheet, for diagnostics
	ModelSource  string
	brandRe      *regexp.Regexp // nil = wildcard
	modelRe      *regexp.Regexp
	YearFrom     int // 0 = unbounded
	YearTo       int // 0 = unbounded
	ItemID       string
	ItemLabel    string
	Period       Period
	Chain        bool // sentinel: item never degrades, always good
	Normal       float64
	Warning      float64
	Critical     float64
	Unit         string
	Priority     int
}

// matches reports whether the regulation applies to a vehicle. The
// item check is done by the table before calling here. Cheap exact
// comparisons run before any regex evaluation.
func (r *Regulation) matches(plate, modelText string, year int) bool {
	if r.PlatePattern != "*" && r.PlatePattern != plate {
		return false
	}
	if r.brandRe != nil && !r.brandRe.MatchString(modelText) {
		return false
	}
	if r.modelRe != nil && !r.modelRe.MatchString(modelText) {
		return false
	}
	// Inclusive year bounds. A vehicle with unknown year (0) fails any
	// bound that requires a real year.
	if r.YearFrom > 0 && year < r.YearFrom {
		return false
	}
	if r.YearTo > 0 && (year == 0 || year > r.YearTo) {
		return false
	}
	return true
}
