package regulation

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/avtopark/fleetboard/internal/catalog"
	"github.com/avtopark/fleetboard/internal/normalize"
)

// Regulation sheet column titles. The sheet may arrive with columns in
// any order; the header row is matched by name, not position.
const (
	headerPlate    = "номер"
	headerBrand    = "марка"
	headerModel    = "модель"
	headerYearFrom = "рік з"
	headerYearTo   = "рік по"
	headerItem     = "запчастина"
	headerPeriod   = "тип періоду"
	headerNormal   = "норма"
	headerWarning  = "попередження"
	headerCritical = "критично"
	headerUnit     = "одиниця"
	headerPriority = "пріоритет"
)

const minRegulationCells = 5

// chain sentinel values accepted in the normal-threshold cell.
var chainSentinels = map[string]bool{"chain": true, "ланцюг": true}

// Table is the ordered regulation collection. Read-only once built and
// safe for concurrent lookups.
type Table struct {
	regs     []Regulation
	warnings []string
}

// Build constructs a table from raw regulation sheet rows. The first
// row must be the header. Malformed rows and regulations with invalid
// patterns or unknown items are logged and skipped — a single bad row
// never takes down the rest of the table.
func Build(rows [][]string) *Table {
	t := &Table{}
	if len(rows) == 0 {
		return t
	}

	cols := headerIndex(rows[0])

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < minRegulationCells {
			continue
		}
		reg, err := parseRow(row, cols)
		if err != nil {
			log.Printf("regulations: skipping row %d: %v", i+1, err)
			continue
		}
		t.regs = append(t.regs, *reg)
	}

	// Ascending priority, ties keep sheet order.
	sort.SliceStable(t.regs, func(a, b int) bool {
		return t.regs[a].Priority < t.regs[b].Priority
	})

	t.detectOverlaps()
	return t
}

// headerIndex maps column titles to indexes. Unknown titles are
// ignored; missing titles leave the index at -1 and the cell reads
// empty.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int)
	for _, name := range []string{
		headerPlate, headerBrand, headerModel, headerYearFrom, headerYearTo,
		headerItem, headerPeriod, headerNormal, headerWarning, headerCritical,
		headerUnit, headerPriority,
	} {
		cols[name] = -1
	}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, ok := cols[name]; ok {
			cols[name] = i
		}
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	i := cols[name]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, cols map[string]int) (*Regulation, error) {
	itemName := field(row, cols, headerItem)
	item, ok := catalog.Lookup(itemName)
	if !ok {
		return nil, fmt.Errorf("unknown item %q", itemName)
	}

	period, err := parsePeriod(field(row, cols, headerPeriod))
	if err != nil {
		return nil, err
	}

	reg := &Regulation{
		PlatePattern: wildcardOr(field(row, cols, headerPlate)),
		BrandSource:  wildcardOr(field(row, cols, headerBrand)),
		ModelSource:  wildcardOr(field(row, cols, headerModel)),
		ItemID:       item.ID,
		ItemLabel:    item.Label,
		Period:       period,
		Unit:         field(row, cols, headerUnit),
	}

	reg.YearFrom, _ = strconv.Atoi(field(row, cols, headerYearFrom))
	reg.YearTo, _ = strconv.Atoi(field(row, cols, headerYearTo))
	reg.Priority, _ = strconv.Atoi(field(row, cols, headerPriority))

	normalCell := field(row, cols, headerNormal)
	if chainSentinels[strings.ToLower(normalCell)] {
		reg.Chain = true
	} else {
		reg.Normal = normalize.Number(normalCell)
		reg.Warning = normalize.Number(field(row, cols, headerWarning))
		reg.Critical = normalize.Number(field(row, cols, headerCritical))
	}

	// Patterns compile once here; a malformed pattern rejects this one
	// regulation at build time instead of failing every lookup.
	if reg.brandRe, err = compilePattern(reg.BrandSource); err != nil {
		return nil, fmt.Errorf("brand pattern %q: %w", reg.BrandSource, err)
	}
	if reg.modelRe, err = compilePattern(reg.ModelSource); err != nil {
		return nil, fmt.Errorf("model pattern %q: %w", reg.ModelSource, err)
	}

	return reg, nil
}

func wildcardOr(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func compilePattern(src string) (*regexp.Regexp, error) {
	if src == "*" {
		return nil, nil
	}
	return regexp.Compile("(?i)" + src)
}

func parsePeriod(cell string) (Period, error) {
	switch strings.ToLower(cell) {
	case "", "пробіг", "км", "km", "distance":
		return PeriodDistance, nil
	case "місяці", "місяців", "months":
		return PeriodMonths, nil
	case "роки", "років", "years":
		return PeriodYears, nil
	}
	return "", fmt.Errorf("unknown period type %q", cell)
}

// Find returns the first regulation in priority order that structurally
// matches the query, or nil when none does. The item check runs first
// (exact string equality, cheapest and most selective), then plate,
// then the compiled brand/model patterns, then the year range.
func (t *Table) Find(plate, modelText string, year int, itemID string) *Regulation {
	for i := range t.regs {
		reg := &t.regs[i]
		if reg.ItemID != itemID {
			continue
		}
		if reg.matches(plate, modelText, year) {
			return reg
		}
	}
	return nil
}

// Len returns the number of loaded regulations.
func (t *Table) Len() int { return len(t.regs) }

// Warnings returns the ambiguity warnings collected at build time.
func (t *Table) Warnings() []string { return t.warnings }

// detectOverlaps flags pairs of regulations for the same item that are
// structurally indistinguishable (same patterns, intersecting year
// ranges). Such pairs are resolved only by their manually assigned
// priority, which is a known authoring footgun; lookup behavior is
// deliberately unchanged.
func (t *Table) detectOverlaps() {
	for i := 0; i < len(t.regs); i++ {
		for j := i + 1; j < len(t.regs); j++ {
			a, b := &t.regs[i], &t.regs[j]
			if a.ItemID != b.ItemID {
				continue
			}
			if a.PlatePattern != b.PlatePattern ||
				a.BrandSource != b.BrandSource ||
				a.ModelSource != b.ModelSource {
				continue
			}
			if !yearsIntersect(a, b) {
				continue
			}
			w := fmt.Sprintf("ambiguous regulations for item %q (plate %s, priorities %d and %d): resolved by priority only",
				a.ItemLabel, a.PlatePattern, a.Priority, b.Priority)
			t.warnings = append(t.warnings, w)
			log.Printf("regulations: %s", w)
		}
	}
}

func yearsIntersect(a, b *Regulation) bool {
	aFrom, aTo := boundsOf(a)
	bFrom, bTo := boundsOf(b)
	return aFrom <= bTo && bFrom <= aTo
}

func boundsOf(r *Regulation) (from, to int) {
	from, to = r.YearFrom, r.YearTo
	if to == 0 {
		to = 1 << 30
	}
	return from, to
}
