package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"usmca/internal"
)

func sampleReport() Report {
	return Report{
		PartNumber:  "PT-1000",
		Description: "ENGINE BRACKET",
		HTS:         "8708.29.0000",
		Date:        "08/31/2026",
		Result: &internal.AnalysisResult{
			TotalMaterials:        100,
			TotalManufacturedCost: 150,
			LaborAndOthers:        50,
			NonOriginatingTotal:   40,
			RVC:                   73.33333333333333,
			Qualifies:             internal.ComplianceYes,
			ByCountry: map[string]internal.CountryBreakdown{
				"MX": {Total: 80, Percentage: 53.33, IsUSMCA: true},
				"CN": {Total: 40, Percentage: 26.67, IsUSMCA: false},
				"US": {Total: 30, Percentage: 20, IsUSMCA: true},
			},
			Components: []internal.ComponentRecord{
				{ComponentNum: "C-001", Description: "BOLT", Quantity: "4", Unit: "PZA", CostUnit: 0.5, CostTotal: 2, Country: "MX", HTS: "7318.15.0000", TariffShift: internal.TariffShiftYes},
				{ComponentNum: "C-002", Description: "HARNESS", Quantity: "1", Unit: "PZA", CostUnit: 40, CostTotal: 40, Country: "CN", HTS: "8544.42.0000", TariffShift: internal.TariffShiftYes},
			},
			Warnings: []string{},
		},
	}
}

func TestGenerateXLSX(t *testing.T) {
	data, err := GenerateXLSX(sampleReport())
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "BOM Analysis" || sheets[1] != "Qualification Results" {
		t.Fatalf("sheets = %v", sheets)
	}

	title, _ := f.GetCellValue("BOM Analysis", "A1")
	if title != "USMCA ANALYSIS - BOM" {
		t.Fatalf("title = %q", title)
	}
	qualify, _ := f.GetCellValue("BOM Analysis", "A6")
	if qualify != "Qualify: YES" {
		t.Fatalf("qualify = %q", qualify)
	}
	shift, _ := f.GetCellValue("BOM Analysis", "I9")
	if shift != "YES" {
		t.Fatalf("first component tariff shift = %q", shift)
	}

	rvcCell, _ := f.GetCellValue("Qualification Results", "B19")
	if rvcCell != "73.33%" {
		t.Fatalf("calculated RVC = %q", rvcCell)
	}

	// Country table starts at row 23, sorted by descending total: MX first.
	country, _ := f.GetCellValue("Qualification Results", "A23")
	if country != "MX" {
		t.Fatalf("first country = %q", country)
	}
	status, _ := f.GetCellValue("Qualification Results", "D23")
	if status != "USMCA" {
		t.Fatalf("first country status = %q", status)
	}
}

func TestBaseName(t *testing.T) {
	got := BaseName("PT-1000", "08/31/2026")
	want := "USMCA_Analysis_PT-1000_08-31-2026"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSortedCountries(t *testing.T) {
	entries := sortedCountries(map[string]internal.CountryBreakdown{
		"US": {Total: 30},
		"MX": {Total: 80},
		"CN": {Total: 40},
	})
	order := []string{entries[0].Country, entries[1].Country, entries[2].Country}
	if order[0] != "MX" || order[1] != "CN" || order[2] != "US" {
		t.Fatalf("order = %v", order)
	}
}
