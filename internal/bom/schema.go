// Package bom turns a raw BOM spreadsheet into the normalized records the
// RVC engine works on: a resolved column schema, a part-number catalog and
// per-part component lists.
package bom

import (
	"fmt"
	"strings"
)

// Columns holds the zero-based index of every semantic BOM field in the
// uploaded sheet, or -1 when the header row does not carry the field.
type Columns struct {
	PartNumber    int
	HTSMain       int
	DescriptionPT int
	ComponentNum  int
	Description   int
	Quantity      int
	HTSComponent  int
	Unit          int
	CostUnit      int
	CostTotal     int
	Country       int
}

// Header labels as exported by the ERP. Matching is exact after trimming,
// case preserved.
const (
	labelPartNumber    = "NUMPRODTERMINADO"
	labelHTSMain       = "FRACCION_PT"
	labelDescriptionPT = "DESCESPANOL_PT"
	labelComponentNum  = "NUMCOMPONENTE"
	labelDescription   = "DESCESPANOL"
	labelQuantity      = "CANTIDADCONSUMO"
	labelHTSComponent  = "FRACCION"
	labelUnit          = "UNI_MED_SALDOS"
	labelCostUnit      = "COSTO_UNITARIO"
	labelCostTotal     = "COSTO_TOTAL"
	labelCountry       = "PAISORIGEN"
)

// MissingColumnsError reports required header labels that could not be
// resolved, by their human-readable names.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ResolveColumns maps the header row to semantic column positions. It fails
// with *MissingColumnsError when any of the four required fields (part
// number, main HTSUS, total cost, country of origin) is absent. Data rows
// are never inspected.
func ResolveColumns(headers []string) (Columns, error) {
	cols := Columns{
		PartNumber:    findHeader(headers, labelPartNumber),
		HTSMain:       findHeader(headers, labelHTSMain),
		DescriptionPT: findHeader(headers, labelDescriptionPT),
		ComponentNum:  findHeader(headers, labelComponentNum),
		Description:   findHeader(headers, labelDescription),
		Quantity:      findHeader(headers, labelQuantity),
		HTSComponent:  findHeader(headers, labelHTSComponent),
		Unit:          findHeader(headers, labelUnit),
		CostUnit:      findHeader(headers, labelCostUnit),
		CostTotal:     findHeader(headers, labelCostTotal),
		Country:       findHeader(headers, labelCountry),
	}

	var missing []string
	for _, req := range []struct {
		index int
		name  string
	}{
		{cols.PartNumber, "Part Number"},
		{cols.HTSMain, "Main HTSUS"},
		{cols.CostTotal, "Total Cost"},
		{cols.Country, "Country of Origin"},
	} {
		if req.index == -1 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return Columns{}, &MissingColumnsError{Missing: missing}
	}

	return cols, nil
}

func findHeader(headers []string, label string) int {
	for i, h := range headers {
		if strings.TrimSpace(h) == label {
			return i
		}
	}
	return -1
}
