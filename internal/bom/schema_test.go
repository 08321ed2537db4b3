package bom

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveColumnsFullHeader(t *testing.T) {
	headers := []string{
		"NUMPRODTERMINADO", "FRACCION_PT", "DESCESPANOL_PT", "NUMCOMPONENTE",
		"DESCESPANOL", "CANTIDADCONSUMO", "FRACCION", "UNI_MED_SALDOS",
		"COSTO_UNITARIO", "COSTO_TOTAL", "PAISORIGEN",
	}
	cols, err := ResolveColumns(headers)
	if err != nil {
		t.Fatal(err)
	}
	if cols.PartNumber != 0 || cols.HTSMain != 1 || cols.CostTotal != 9 || cols.Country != 10 {
		t.Fatalf("unexpected columns: %+v", cols)
	}
	if cols.Quantity != 5 || cols.Unit != 7 {
		t.Fatalf("unexpected optional columns: %+v", cols)
	}
}

func TestResolveColumnsAnyOrderTrimmed(t *testing.T) {
	cols, err := ResolveColumns([]string{" PAISORIGEN ", "COSTO_TOTAL", "extra", "FRACCION_PT", "NUMPRODTERMINADO  "})
	if err != nil {
		t.Fatal(err)
	}
	if cols.Country != 0 || cols.CostTotal != 1 || cols.HTSMain != 3 || cols.PartNumber != 4 {
		t.Fatalf("unexpected columns: %+v", cols)
	}
	if cols.Description != -1 || cols.Quantity != -1 {
		t.Fatalf("optional columns should be -1: %+v", cols)
	}
}

func TestResolveColumnsCaseSensitive(t *testing.T) {
	_, err := ResolveColumns([]string{"numprodterminado", "FRACCION_PT", "COSTO_TOTAL", "PAISORIGEN"})
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if !reflect.DeepEqual(missing.Missing, []string{"Part Number"}) {
		t.Fatalf("missing = %v", missing.Missing)
	}
}

func TestResolveColumnsMissingRequired(t *testing.T) {
	_, err := ResolveColumns([]string{"NUMPRODTERMINADO", "DESCESPANOL"})
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	want := []string{"Main HTSUS", "Total Cost", "Country of Origin"}
	if !reflect.DeepEqual(missing.Missing, want) {
		t.Fatalf("missing = %v, want %v", missing.Missing, want)
	}
}
