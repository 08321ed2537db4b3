package bom

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

var bomHeader = []any{
	"NUMPRODTERMINADO", "FRACCION_PT", "DESCESPANOL_PT", "NUMCOMPONENTE",
	"DESCESPANOL", "CANTIDADCONSUMO", "FRACCION", "UNI_MED_SALDOS",
	"COSTO_UNITARIO", "COSTO_TOTAL", "PAISORIGEN",
}

func mkWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func parseFixture(t *testing.T, rows [][]any) *Dataset {
	t.Helper()
	ds, err := ParseWorkbook(bytes.NewReader(mkWorkbook(t, rows)))
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestListParts(t *testing.T) {
	ds := parseFixture(t, [][]any{
		bomHeader,
		{"PT-1000", "870829", "ENGINE BRACKET", "C-001", "BOLT", 4, "731815", "PZA", 0.5, 2, "MX"},
		{"PT-1000", "870829", "ENGINE BRACKET OVERWRITE", "C-002", "HARNESS", 1, "854442", "PZA", 40, 40, "CN"},
		{"PT-2000", "853650", "", "C-010", "SWITCH", 2, "853650", "PZA", 3, 6, "US"},
		{"", "999999", "NO PART", "C-099", "SCRAP", 1, "", "PZA", 1, 1, "MX"},
	})

	parts := ListParts(ds.Rows, ds.Columns)
	if len(parts) != 2 {
		t.Fatalf("len=%d, want 2", len(parts))
	}
	if parts[0].PartNumber != "PT-1000" || parts[1].PartNumber != "PT-2000" {
		t.Fatalf("order: %+v", parts)
	}
	if parts[0].Description != "ENGINE BRACKET" {
		t.Fatalf("first occurrence should win, got %q", parts[0].Description)
	}
	if parts[0].HTS != "8708.29.0000" {
		t.Fatalf("main HTS not normalized: %q", parts[0].HTS)
	}
	if parts[1].Description != "No description" {
		t.Fatalf("missing description placeholder, got %q", parts[1].Description)
	}
}

func TestListPartsHeaderOnly(t *testing.T) {
	ds := parseFixture(t, [][]any{bomHeader})
	if parts := ListParts(ds.Rows, ds.Columns); len(parts) != 0 {
		t.Fatalf("expected empty catalog, got %+v", parts)
	}
}

func TestExtractComponents(t *testing.T) {
	ds := parseFixture(t, [][]any{
		bomHeader,
		{"PT-1000", "870829", "ENGINE BRACKET", "C-001", "BOLT", 4, "731815", "PZA", 0.5, 2, " mx "},
		{"PT-1000", "870829", "ENGINE BRACKET", "C-002", "HARNESS", 1, "854442", "PZA", 40, 40, "CN"},
		{"PT-2000", "853650", "SWITCH ASSY", "C-010", "SWITCH", 2, "853650", "PZA", 3, 6, "US"},
		{"PT-1000", "870829", "ENGINE BRACKET", "C-003", "LABEL", 1, "", "PZA", "bad", "bad", ""},
	})

	components, warnings := ExtractComponents(ds.Rows, ds.Columns, "PT-1000")
	if len(components) != 3 {
		t.Fatalf("len=%d, want 3", len(components))
	}

	first := components[0]
	if first.Country != "MX" {
		t.Fatalf("country not normalized: %q", first.Country)
	}
	if first.HTS != "7318.15.0000" {
		t.Fatalf("component HTS not normalized: %q", first.HTS)
	}
	if first.CostUnit != 0.5 || first.CostTotal != 2 {
		t.Fatalf("costs: %+v", first)
	}
	if first.TariffShift != "" {
		t.Fatalf("tariff shift must stay empty at extraction time, got %q", first.TariffShift)
	}

	bad := components[2]
	if bad.CostUnit != 0 || bad.CostTotal != 0 {
		t.Fatalf("unparseable costs should default to 0: %+v", bad)
	}

	// The bad row sits at spreadsheet row 5 (header is row 1).
	want := []string{
		"Row 5: cost is 0 or invalid",
		"Row 5: country not specified",
	}
	if len(warnings) != len(want) {
		t.Fatalf("warnings = %v", warnings)
	}
	for i, w := range want {
		if warnings[i] != w {
			t.Fatalf("warning[%d] = %q, want %q", i, warnings[i], w)
		}
	}
}

func TestExtractComponentsNoMatch(t *testing.T) {
	ds := parseFixture(t, [][]any{
		bomHeader,
		{"PT-1000", "870829", "ENGINE BRACKET", "C-001", "BOLT", 4, "731815", "PZA", 0.5, 2, "MX"},
	})
	components, warnings := ExtractComponents(ds.Rows, ds.Columns, "PT-9999")
	if len(components) != 0 || len(warnings) != 0 {
		t.Fatalf("expected no rows, got %d components %d warnings", len(components), len(warnings))
	}
}

func TestMainHTS(t *testing.T) {
	ds := parseFixture(t, [][]any{
		bomHeader,
		{"PT-1000", "870829", "ENGINE BRACKET", "C-001", "BOLT", 4, "731815", "PZA", 0.5, 2, "MX"},
	})
	if got := MainHTS(ds.Rows, ds.Columns, "PT-1000"); got != "8708.29.0000" {
		t.Fatalf("got %q", got)
	}
	if got := MainHTS(ds.Rows, ds.Columns, "PT-9999"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestParseWorkbookMissingColumns(t *testing.T) {
	blob := mkWorkbook(t, [][]any{{"NUMPRODTERMINADO", "DESCESPANOL"}})
	_, err := ParseWorkbook(bytes.NewReader(blob))
	if err == nil {
		t.Fatal("expected error")
	}
}
