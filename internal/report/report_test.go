package report_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/avtopark/fleetboard/internal/catalog"
	"github.com/avtopark/fleetboard/internal/classify"
	"github.com/avtopark/fleetboard/internal/fleet"
	"github.com/avtopark/fleetboard/internal/regulation"
	"github.com/avtopark/fleetboard/internal/report"
)

var regulationHeader = []string{
	"Номер", "Марка", "Модель", "Рік з", "Рік по", "Запчастина",
	"Тип періоду", "Норма", "Попередження", "Критично", "Одиниця", "Пріоритет",
}

var refDate = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

func sprinter() map[string]fleet.Vehicle {
	return map[string]fleet.Vehicle{
		"AA1234BB": {Plate: "AA1234BB", City: "Київ", ModelText: "Mercedes-Benz Sprinter 316", Year: 2015},
	}
}

func oilRecords() map[string][]fleet.ServiceRecord {
	return map[string][]fleet.ServiceRecord{
		"AA1234BB": {
			{Plate: "AA1234BB", Date: "2025-06-02", DateValid: true, Odometer: 74000, Description: "Заміна масла та фільтрів"},
			{Plate: "AA1234BB", Date: "2025-07-20", DateValid: true, Odometer: 90000, Description: "Шиномонтаж"},
		},
	}
}

func emptyClassifier() *classify.Classifier {
	return classify.New(regulation.Build(nil))
}

func TestRunLegacyOilCritical(t *testing.T) {
	// 16000 km since the last oil service on a 2015 vehicle crosses the
	// legacy 15500 critical bound.
	rep := report.Run(sprinter(), oilRecords(), emptyClassifier(), refDate)

	if len(rep.Vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(rep.Vehicles))
	}
	v := rep.Vehicles[0]
	if v.CurrentOdometer != 90000 {
		t.Errorf("got current odometer %d, want 90000", v.CurrentOdometer)
	}

	oil := v.Items[catalog.OilService]
	if oil == nil {
		t.Fatal("expected an oil status")
	}
	if oil.DistanceSince != 16000 || oil.Status != fleet.StatusCritical {
		t.Errorf("got distance %d status %s, want 16000 critical", oil.DistanceSince, oil.Status)
	}

	if rep.GeneratedAt != "2025-08-01" {
		t.Errorf("got generated_at %q, want 2025-08-01", rep.GeneratedAt)
	}
	if rep.TotalRecords != 2 {
		t.Errorf("got total records %d, want 2", rep.TotalRecords)
	}
}

func TestRunRegulationOverride(t *testing.T) {
	t.Run("critical at inclusive bound", func(t *testing.T) {
		table := regulation.Build([][]string{
			regulationHeader,
			{"*", "*", "Sprinter", "", "", "ТО (масло+фільтри) 🛢️", "пробіг", "10000", "12000", "16000", "км", "1"},
		})
		rep := report.Run(sprinter(), oilRecords(), classify.New(table), refDate)
		oil := rep.Vehicles[0].Items[catalog.OilService]
		if oil.Status != fleet.StatusCritical {
			t.Errorf("got %s, want critical", oil.Status)
		}
	})

	t.Run("raised critical keeps warning", func(t *testing.T) {
		table := regulation.Build([][]string{
			regulationHeader,
			{"*", "*", "Sprinter", "", "", "ТО (масло+фільтри) 🛢️", "пробіг", "10000", "12000", "20000", "км", "1"},
		})
		rep := report.Run(sprinter(), oilRecords(), classify.New(table), refDate)
		oil := rep.Vehicles[0].Items[catalog.OilService]
		if oil.Status != fleet.StatusWarning {
			t.Errorf("got %s, want warning", oil.Status)
		}
	})
}

func TestRunChainTimingBelt(t *testing.T) {
	table := regulation.Build([][]string{
		regulationHeader,
		{"*", "Mercedes", "Sprinter", "", "", "ГРМ (ролики+ремінь) ⚙️", "пробіг", "ланцюг", "", "", "", "1"},
	})
	records := map[string][]fleet.ServiceRecord{
		"AA1234BB": {
			{Plate: "AA1234BB", Date: "2020-01-10", DateValid: true, Odometer: 10000, Description: "Ремінь ГРМ та ролики"},
			{Plate: "AA1234BB", Date: "2025-07-20", DateValid: true, Odometer: 310000, Description: "Шиномонтаж"},
		},
	}

	rep := report.Run(sprinter(), records, classify.New(table), refDate)
	belt := rep.Vehicles[0].Items[catalog.TimingBelt]
	if belt == nil {
		t.Fatal("expected a timing belt status")
	}
	if belt.DistanceSince != 300000 || belt.Status != fleet.StatusGood {
		t.Errorf("got distance %d status %s, want 300000 good", belt.DistanceSince, belt.Status)
	}
}

func TestRunVehicleOrdering(t *testing.T) {
	vehicles := map[string]fleet.Vehicle{
		"CC3333CC": {Plate: "CC3333CC", City: "Одеса"},
		"BB2222BB": {Plate: "BB2222BB", City: "Київ"},
		"AA1111AA": {Plate: "AA1111AA", City: "Львів"},
		"AA0001AA": {Plate: "AA0001AA", City: "Київ"},
	}

	rep := report.Run(vehicles, nil, emptyClassifier(), refDate)

	var got []string
	for _, v := range rep.Vehicles {
		got = append(got, v.City+"/"+v.Plate)
	}
	want := []string{"Київ/AA0001AA", "Київ/BB2222BB", "Львів/AA1111AA", "Одеса/CC3333CC"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestRunStats(t *testing.T) {
	vehicles := map[string]fleet.Vehicle{
		"AA1234BB": {Plate: "AA1234BB", City: "Київ", ModelText: "Renault Master", Year: 2018},
		"BC5678DE": {Plate: "BC5678DE", City: "Львів", ModelText: "Renault Master", Year: 2018},
	}
	records := map[string][]fleet.ServiceRecord{
		// 16000 km since oil: critical. The tire record carries the max odometer.
		"AA1234BB": {
			{Plate: "AA1234BB", Date: "2025-06-02", DateValid: true, Odometer: 74000, Description: "масло"},
			{Plate: "AA1234BB", Date: "2025-07-20", DateValid: true, Odometer: 90000, Description: "шиномонтаж"},
		},
		// 1000 km since oil: good.
		"BC5678DE": {
			{Plate: "BC5678DE", Date: "2025-07-10", DateValid: true, Odometer: 49000, Description: "масло"},
			{Plate: "BC5678DE", Date: "2025-07-25", DateValid: true, Odometer: 50000, Description: "шиномонтаж"},
		},
	}

	rep := report.Run(vehicles, records, emptyClassifier(), refDate)

	s := rep.Stats
	if s.TotalVehicles != 2 {
		t.Errorf("got total %d, want 2", s.TotalVehicles)
	}
	if s.VehiclesCritical != 1 {
		t.Errorf("got critical %d, want 1", s.VehiclesCritical)
	}
	if s.VehiclesGood != 1 {
		t.Errorf("got good %d, want 1", s.VehiclesGood)
	}
}

func TestRunHistorySorted(t *testing.T) {
	records := map[string][]fleet.ServiceRecord{
		"AA1234BB": {
			{Plate: "AA1234BB", Date: "2025-01-10", DateValid: true, Odometer: 70000, Description: "масло"},
			{Plate: "AA1234BB", Date: "2025-07-20", DateValid: true, Odometer: 90000, Description: "колодки"},
			{Plate: "AA1234BB", Date: "колись", DateValid: false, Odometer: 60000, Description: "помпа"},
		},
	}

	rep := report.Run(sprinter(), records, emptyClassifier(), refDate)

	hist := rep.Vehicles[0].History
	if len(hist) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(hist))
	}
	if hist[0].Date != "2025-07-20" || hist[1].Date != "2025-01-10" || hist[2].Date != "колись" {
		t.Errorf("unexpected order: %s, %s, %s", hist[0].Date, hist[1].Date, hist[2].Date)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	vehicles := sprinter()
	vehicles["BC5678DE"] = fleet.Vehicle{Plate: "BC5678DE", City: "Львів", ModelText: "Renault Master", Year: 2018}
	records := oilRecords()

	a := report.Run(vehicles, records, emptyClassifier(), refDate)
	b := report.Run(vehicles, records, emptyClassifier(), refDate)

	aj, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	bj, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(aj, bj) {
		t.Error("expected two runs over identical inputs to produce identical reports")
	}
}
