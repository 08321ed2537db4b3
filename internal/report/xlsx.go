package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"usmca/internal"
	"usmca/internal/util"
)

const (
	bomSheet           = "BOM Analysis"
	qualificationSheet = "Qualification Results"
)

// GenerateXLSX builds the two-sheet analysis workbook and returns its bytes.
func GenerateXLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	res := r.Result

	if err := f.SetSheetName(f.GetSheetName(0), bomSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	bomRows := [][]any{
		{"USMCA ANALYSIS - BOM"},
		{fmt.Sprintf("Part Number: %s", r.PartNumber)},
		{fmt.Sprintf("Part Description: %s", r.Description)},
		{fmt.Sprintf("HTS: %s", r.HTS)},
		{fmt.Sprintf("Date: %s", r.Date)},
		{fmt.Sprintf("Qualify: %s", res.Qualifies)},
		{},
		{"Component", "Description", "HTSUS", "Country", "Quantity", "Unit", "Cost Unit.", "Cost Total", "Tariff Shift"},
	}
	for _, comp := range res.Components {
		bomRows = append(bomRows, componentRow(comp))
	}
	if err := writeRows(f, bomSheet, bomRows); err != nil {
		return nil, err
	}
	if err := setWidths(f, bomSheet, []float64{15, 40, 15, 10, 10, 10, 12, 12, 12}); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(qualificationSheet); err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	qualRows := [][]any{
		{"QUALIFICATION RESULTS"},
		{},
		{"PRODUCT INFORMATION"},
		{"Part Number:", r.PartNumber},
		{"Product Name:", r.Description},
		{"End Item HTS:", r.HTS},
		{"Date Cost:", r.Date},
		{"Currency:", "USD"},
		{"Agreement:", "USMCA"},
		{},
		{"COST BREAKDOWN"},
		{"Total Material Cost:", util.FormatCurrency(res.TotalMaterials)},
		{"Other (Labor Burden O/H):", util.FormatCurrency(res.LaborAndOthers)},
		{"Net Cost:", util.FormatCurrency(res.TotalManufacturedCost)},
		{},
		{"STATUS"},
		{"Qualify:", string(res.Qualifies)},
		{"RVC:", rvcStatus(res.Qualifies)},
		{"Calculated RVC:", util.FormatPercentage(res.RVC)},
		{},
		{"MATERIAL COST BY COUNTRY"},
		{"Country", "Total Cost", "Percentage", "Status"},
	}
	for _, entry := range sortedCountries(res.ByCountry) {
		qualRows = append(qualRows, []any{
			entry.Country,
			util.FormatCurrency(entry.Total),
			util.FormatPercentage(entry.Percentage),
			originStatus(entry.IsUSMCA),
		})
	}
	if err := writeRows(f, qualificationSheet, qualRows); err != nil {
		return nil, err
	}
	if err := setWidths(f, qualificationSheet, []float64{30, 20, 15, 15}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func componentRow(comp internal.ComponentRecord) []any {
	shift := string(comp.TariffShift)
	return []any{
		orDash(comp.ComponentNum),
		orDash(comp.Description),
		orDash(comp.HTS),
		orDash(comp.Country),
		orDash(comp.Quantity),
		orDash(comp.Unit),
		comp.CostUnit,
		comp.CostTotal,
		orDash(shift),
	}
}

func rvcStatus(qualifies internal.Compliance) string {
	if qualifies == internal.ComplianceYes {
		return "ACCOMPLISHED"
	}
	return "INELIGIBLE"
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	return nil
}
