package bom

import (
	"fmt"

	"usmca/internal"
	"usmca/internal/util"
)

const noDescription = "No description"

// ListParts scans the data rows once and returns the distinct part numbers
// in first-seen order. Rows without a part number are skipped; the first
// occurrence of a part number fixes its description and main HTS code.
func ListParts(rows [][]string, cols Columns) []internal.PartNumberEntry {
	seen := map[string]struct{}{}
	out := []internal.PartNumberEntry{}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		pn := cell(row, cols.PartNumber)
		if pn == "" {
			continue
		}
		if _, exists := seen[pn]; exists {
			continue
		}
		seen[pn] = struct{}{}

		desc := cell(row, cols.DescriptionPT)
		if desc == "" {
			desc = noDescription
		}
		out = append(out, internal.PartNumberEntry{
			PartNumber:  pn,
			Description: desc,
			HTS:         util.FormatHTS(cell(row, cols.HTSMain)),
		})
	}

	return out
}

// ExtractComponents returns the normalized component rows belonging to one
// part number, plus row-level data-quality warnings. Warnings are advisory:
// the offending row is still included. Row numbers in warnings are the
// spreadsheet's own 1-based numbering, header included.
func ExtractComponents(rows [][]string, cols Columns, partNumber string) ([]internal.ComponentRecord, []string) {
	components := []internal.ComponentRecord{}
	warnings := []string{}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		if cell(row, cols.PartNumber) != partNumber {
			continue
		}

		costUnit := util.ParseCost(cell(row, cols.CostUnit))
		costTotal := util.ParseCost(cell(row, cols.CostTotal))
		country := util.NormalizeCountry(cell(row, cols.Country))

		if costTotal == 0 {
			warnings = append(warnings, fmt.Sprintf("Row %d: cost is 0 or invalid", i+1))
		}
		if country == "" {
			warnings = append(warnings, fmt.Sprintf("Row %d: country not specified", i+1))
		}

		components = append(components, internal.ComponentRecord{
			ComponentNum: cell(row, cols.ComponentNum),
			Description:  cell(row, cols.Description),
			Quantity:     cell(row, cols.Quantity),
			Unit:         cell(row, cols.Unit),
			CostUnit:     costUnit,
			CostTotal:    costTotal,
			Country:      country,
			HTS:          util.FormatHTS(cell(row, cols.HTSComponent)),
		})
	}

	return components, warnings
}

// MainHTS returns the normalized main HTS code of a part, taken from its
// first matching row.
func MainHTS(rows [][]string, cols Columns, partNumber string) string {
	for i := 1; i < len(rows); i++ {
		if cell(rows[i], cols.PartNumber) == partNumber {
			return util.FormatHTS(cell(rows[i], cols.HTSMain))
		}
	}
	return ""
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
