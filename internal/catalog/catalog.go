// Package catalog holds the fixed list of tracked maintenance items.
// Every item has a stable identifier used throughout the pipeline and
// a Ukrainian display label matching the source spreadsheets. Matching
// against free-text service descriptions is keyword based.
package catalog

import "strings"

// Item identifiers. Classification and storage key on these, never on
// the display labels.
const (
	OilService          = "oil_service"
	TimingBelt          = "timing_belt"
	SerpentineBelt      = "serpentine_belt"
	WaterPump           = "water_pump"
	Clutch              = "clutch"
	Starter             = "starter"
	Alternator          = "alternator"
	ChassisDiagnostics  = "chassis_diagnostics"
	WheelAlignment      = "wheel_alignment"
	CaliperService      = "caliper_service"
	ComputerDiagnostics = "computer_diagnostics"
	DPFBurn             = "dpf_burn"
	BrakePads           = "brake_pads"
	BrakeDiscs          = "brake_discs"
	ShockAbsorbers      = "shock_absorbers"
	StrutMounts         = "strut_mounts"
	BallJoints          = "ball_joints"
	TieRods             = "tie_rods"
	TieRodEnds          = "tie_rod_ends"
	Battery             = "battery"
)

// Item is one tracked maintenance category.
type Item struct {
	ID       string
	Label    string // display label from the source sheets
	Keywords []string
}

// items is the catalog in presentation order.
var items = []Item{
	{OilService, "ТО (масло+фільтри) 🛢️", []string{"масл", "мастил", "то-", "то "}},
	{TimingBelt, "ГРМ (ролики+ремінь) ⚙️", []string{"грм", "ремінь грм", "ролик грм"}},
	{SerpentineBelt, "Обвідний ремінь+ролики 🔧", []string{"обвідний", "обводний", "поліклиновий"}},
	{WaterPump, "Помпа 💧", []string{"помпа", "водяний насос"}},
	{Clutch, "Зчеплення ⚙️", []string{"зчеплення", "корзина", "вижимний"}},
	{Starter, "Стартер 🔋", []string{"стартер"}},
	{Alternator, "Генератор ⚡", []string{"генератор"}},
	{ChassisDiagnostics, "Діагностика ходової 🔍", []string{"діагностика ходової", "ходова"}},
	{WheelAlignment, "Розвал-сходження 📐", []string{"розвал", "сходження", "развал"}},
	{CaliperService, "Профілактика супортів 🛠️", []string{"супорт", "суппорт"}},
	{ComputerDiagnostics, "Комп'ютерна діагностика 💻", []string{"комп'ютерна діагностика", "компьютерна діагностика"}},
	{DPFBurn, "Прожиг сажового 🔥", []string{"прожиг", "сажов"}},
	{BrakePads, "Гальмівні колодки 🛑", []string{"колодки", "колодок"}},
	{BrakeDiscs, "Гальмівні диски 💿", []string{"гальмівні диски", "гальмівний диск", "диски гальм"}},
	{ShockAbsorbers, "Амортизатори 🔧", []string{"амортизатор"}},
	{StrutMounts, "Опора амортизаторів 🛠️", []string{"опора аморт", "опорний підшипник"}},
	{BallJoints, "Шарова опора ⚪", []string{"шарова", "шаровая"}},
	{TieRods, "Рульова тяга 🔗", []string{"рульова тяга", "рульові тяги"}},
	{TieRodEnds, "Рульовий накінечник 🔩", []string{"накінечник", "наконечник"}},
	{Battery, "Акумулятор 🔋", []string{"акумулятор", "акб", "аккумулятор"}},
}

// byID and byLabel are built once at init.
var (
	byID    = make(map[string]*Item, len(items))
	byLabel = make(map[string]*Item, len(items))
)

func init() {
	for i := range items {
		byID[items[i].ID] = &items[i]
		byLabel[strings.ToLower(items[i].Label)] = &items[i]
	}
}

// Items returns the catalog in presentation order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Lookup resolves an item by its ID or display label. Regulation rows
// reference items by the label that operators see in the sheet; the
// rest of the pipeline uses IDs.
func Lookup(name string) (*Item, bool) {
	if it, ok := byID[name]; ok {
		return it, true
	}
	it, ok := byLabel[strings.ToLower(strings.TrimSpace(name))]
	return it, ok
}

// Matches reports whether a service description qualifies for the item:
// case-insensitive substring match on any keyword, first match wins.
func (it *Item) Matches(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range it.Keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
