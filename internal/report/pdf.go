package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"usmca/internal"
	"usmca/internal/util"
)

// GeneratePDF renders the analysis as a landscape A4 document: the BOM table
// with the tariff-shift column first, then a qualification summary page.
func GeneratePDF(r Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	addBOMHeader(m, r)
	addComponentHeader(m)
	for _, comp := range r.Result.Components {
		addComponentRow(m, comp)
	}
	m.AddPages(qualificationPage(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addBOMHeader(m core.Maroto, r Report) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("BOM WITH USMCA CALCULATION", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	info := props.Text{Size: 8, Align: align.Center}
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(text.New(fmt.Sprintf("Part Number: %s", r.PartNumber), info)),
		),
		row.New(5).Add(
			col.New(12).Add(text.New(fmt.Sprintf("Part Description: %s", r.Description), info)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Date Cost: %s", r.Date), info)),
			col.New(6).Add(text.New("Reference Currency: USD", info)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Qualify: %s", r.Result.Qualifies), info)),
			col.New(6).Add(text.New(fmt.Sprintf("HTS: %s", r.HTS), info)),
		),
		row.New(3),
	)
}

// componentWidths maps the nine BOM columns onto maroto's 12-column grid.
var componentWidths = []int{1, 3, 2, 1, 1, 1, 1, 1, 1}

func addComponentHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 79, Green: 70, Blue: 229}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	labels := []string{"Component", "Description", "HTSUS", "Country", "Quantity", "Unit", "Cost Unit.", "Cost Total", "Tariff Shift"}
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, col.New(componentWidths[i]).Add(text.New(label, headerText)).WithStyle(&headerCell))
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addComponentRow(m core.Maroto, comp internal.ComponentRecord) {
	baseText := props.Text{Size: 6, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	cells := []struct {
		value string
		style props.Text
	}{
		{orDash(comp.ComponentNum), leftText},
		{orDash(comp.Description), leftText},
		{orDash(comp.HTS), baseText},
		{orDash(comp.Country), baseText},
		{orDash(comp.Quantity), rightText},
		{orDash(comp.Unit), baseText},
		{util.FormatCurrency(comp.CostUnit), rightText},
		{util.FormatCurrency(comp.CostTotal), rightText},
		{orDash(string(comp.TariffShift)), baseText},
	}

	cols := make([]core.Col, 0, len(cells))
	for i, c := range cells {
		cols = append(cols, col.New(componentWidths[i]).Add(text.New(c.value, c.style)))
	}
	m.AddRows(row.New(5).Add(cols...))
}

func qualificationPage(r Report) core.Page {
	res := r.Result
	p := page.New()

	p.Add(
		row.New(10).Add(
			col.New(12).Add(
				text.New("QUALIFICATION RESULTS", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(4),
	)

	addSection(p, "PRODUCT INFORMATION", [][2]string{
		{"PART NUMBER:", r.PartNumber},
		{"PRODUCT NAME:", r.Description},
		{"END ITEM HTS:", r.HTS},
		{"DATE COST:", r.Date},
		{"CURRENCY:", "USD"},
		{"AGREEMENT:", "USMCA"},
	})
	addSection(p, "COST BREAKDOWN", [][2]string{
		{"TOTAL MATERIAL COST:", util.FormatCurrency(res.TotalMaterials)},
		{"OTHER (LABOR BURDEN O/H):", util.FormatCurrency(res.LaborAndOthers)},
		{"NET COST:", util.FormatCurrency(res.TotalManufacturedCost)},
	})
	addSection(p, "STATUS", [][2]string{
		{"QUALIFY:", string(res.Qualifies)},
		{"RVC:", rvcStatus(res.Qualifies)},
		{"CALCULATED RVC:", util.FormatPercentage(res.RVC)},
	})

	countryLines := make([][2]string, 0, len(res.ByCountry))
	for _, entry := range sortedCountries(res.ByCountry) {
		countryLines = append(countryLines, [2]string{
			fmt.Sprintf("MATERIAL COST/COUNTRY %s:", entry.Country),
			fmt.Sprintf("%s  (%s)", util.FormatCurrency(entry.Total), util.FormatPercentage(entry.Percentage)),
		})
	}
	addSection(p, "MATERIAL COST BY COUNTRY", countryLines)

	return p
}

func addSection(p core.Page, title string, lines [][2]string) {
	p.Add(
		row.New(6).Add(
			col.New(12).Add(
				text.New(title, props.Text{Size: 9, Style: fontstyle.Bold}),
			),
		),
	)
	for _, line := range lines {
		p.Add(
			row.New(5).Add(
				col.New(4).Add(text.New(line[0], props.Text{Size: 8, Style: fontstyle.Bold})),
				col.New(8).Add(text.New(line[1], props.Text{Size: 8})),
			),
		)
	}
	p.Add(row.New(3))
}
