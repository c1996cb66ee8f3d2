package regulation_test

import (
	"testing"

	"github.com/avtopark/fleetboard/internal/regulation"
)

var header = []string{
	"Номер", "Марка", "Модель", "Рік з", "Рік по", "Запчастина",
	"Тип періоду", "Норма", "Попередження", "Критично", "Одиниця", "Пріоритет",
}

func row(plate, brand, model, yearFrom, yearTo, item, period, normal, warning, critical, unit, priority string) []string {
	return []string{plate, brand, model, yearFrom, yearTo, item, period, normal, warning, critical, unit, priority}
}

func TestBuildAndFind(t *testing.T) {
	rows := [][]string{
		header,
		row("*", "Renault", "Master", "", "", "ТО (масло+фільтри) 🛢️", "пробіг", "10000", "12000", "16000", "км", "5"),
		row("AA1234BB", "*", "*", "", "", "ТО (масло+фільтри) 🛢️", "пробіг", "9000", "11000", "14000", "км", "1"),
		row("*", "*", "*", "", "", "Акумулятор 🔋", "роки", "3", "3", "4", "р", "10"),
	}

	table := regulation.Build(rows)
	if table.Len() != 3 {
		t.Fatalf("expected 3 regulations, got %d", table.Len())
	}

	t.Run("priority order wins", func(t *testing.T) {
		reg := table.Find("AA1234BB", "Renault Master", 2018, "oil_service")
		if reg == nil {
			t.Fatal("expected a match")
		}
		if reg.Priority != 1 || reg.Critical != 14000 {
			t.Errorf("expected the priority-1 plate rule, got priority %d critical %v", reg.Priority, reg.Critical)
		}
	})

	t.Run("brand regex fallback", func(t *testing.T) {
		reg := table.Find("BC5678DE", "Renault Master", 2018, "oil_service")
		if reg == nil {
			t.Fatal("expected a match")
		}
		if reg.Critical != 16000 {
			t.Errorf("expected the Renault Master rule, got critical %v", reg.Critical)
		}
	})

	t.Run("item mismatch never matches", func(t *testing.T) {
		if reg := table.Find("AA1234BB", "Renault Master", 2018, "brake_pads"); reg != nil {
			t.Errorf("expected no match, got %+v", reg)
		}
	})

	t.Run("no structural match", func(t *testing.T) {
		if reg := table.Find("XX0000XX", "Fiat Ducato", 2020, "oil_service"); reg != nil {
			t.Errorf("expected no match, got %+v", reg)
		}
	})
}

func TestBuildShuffledColumns(t *testing.T) {
	// The header is matched by name, so column order must not matter.
	rows := [][]string{
		{"Запчастина", "Критично", "Номер", "Пріоритет", "Норма", "Тип періоду", "Попередження"},
		{"Помпа 💧", "120000", "*", "2", "80000", "пробіг", "100000"},
	}

	table := regulation.Build(rows)
	if table.Len() != 1 {
		t.Fatalf("expected 1 regulation, got %d", table.Len())
	}
	reg := table.Find("AA1234BB", "anything", 0, "water_pump")
	if reg == nil {
		t.Fatal("expected a match")
	}
	if reg.Normal != 80000 || reg.Warning != 100000 || reg.Critical != 120000 {
		t.Errorf("unexpected thresholds: %+v", reg)
	}
}

func TestBuildYearBounds(t *testing.T) {
	rows := [][]string{
		header,
		row("*", "*", "Sprinter", "2014", "2018", "Гальмівні колодки 🛑", "пробіг", "50000", "60000", "80000", "км", "1"),
	}
	table := regulation.Build(rows)

	cases := []struct {
		year int
		want bool
	}{
		{2014, true}, // inclusive lower bound
		{2018, true}, // inclusive upper bound
		{2013, false},
		{2019, false},
		{0, false}, // unknown year fails positive bounds
	}
	for _, c := range cases {
		got := table.Find("AA1234BB", "Mercedes-Benz Sprinter 316", c.year, "brake_pads") != nil
		if got != c.want {
			t.Errorf("year %d: match = %v, want %v", c.year, got, c.want)
		}
	}
}

func TestBuildChainSentinel(t *testing.T) {
	rows := [][]string{
		header,
		row("*", "*", "Sprinter", "", "", "ГРМ (ролики+ремінь) ⚙️", "пробіг", "ланцюг", "", "", "", "1"),
	}
	table := regulation.Build(rows)
	reg := table.Find("AA1234BB", "Mercedes-Benz Sprinter 316", 2015, "timing_belt")
	if reg == nil {
		t.Fatal("expected a match")
	}
	if !reg.Chain {
		t.Error("expected Chain to be set")
	}
	if reg.Critical != 0 {
		t.Errorf("expected no numeric thresholds, got critical %v", reg.Critical)
	}
}

func TestBuildSkipsBadRows(t *testing.T) {
	rows := [][]string{
		header,
		row("*", "*", "*", "", "", "невідома позиція", "пробіг", "1", "2", "3", "", "1"), // unknown item
		row("*", "[bad", "*", "", "", "Помпа 💧", "пробіг", "1", "2", "3", "", "1"),       // invalid regex
		row("*", "*", "*", "", "", "Помпа 💧", "декади", "1", "2", "3", "", "1"),          // unknown period
		{"*", "*", "*"}, // too short
		row("*", "*", "*", "", "", "Помпа 💧", "пробіг", "80000", "100000", "120000", "км", "1"),
	}
	table := regulation.Build(rows)
	if table.Len() != 1 {
		t.Fatalf("expected only the valid row to survive, got %d", table.Len())
	}
}

func TestBuildOverlapWarnings(t *testing.T) {
	rows := [][]string{
		header,
		row("*", "Renault", "*", "2015", "", "Помпа 💧", "пробіг", "80000", "100000", "120000", "км", "1"),
		row("*", "Renault", "*", "2017", "2020", "Помпа 💧", "пробіг", "90000", "110000", "130000", "км", "2"),
		row("*", "Fiat", "*", "", "", "Помпа 💧", "пробіг", "80000", "100000", "120000", "км", "1"),
	}
	table := regulation.Build(rows)
	if len(table.Warnings()) != 1 {
		t.Fatalf("expected 1 overlap warning, got %d: %v", len(table.Warnings()), table.Warnings())
	}

	// First match in priority order is still returned unchanged.
	reg := table.Find("AA1234BB", "Renault Master", 2018, "water_pump")
	if reg == nil || reg.Priority != 1 {
		t.Errorf("expected the priority-1 rule despite the overlap, got %+v", reg)
	}
}
