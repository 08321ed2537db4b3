package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"usmca/internal"
	"usmca/internal/bom"
	"usmca/internal/report"
	"usmca/internal/rvc"
	"usmca/internal/util"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "parts":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "BOM workbook (.xlsx)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		ds, err := openWorkbook(*input)
		must(err)
		parts := bom.ListParts(ds.Rows, ds.Columns)
		if len(parts) == 0 {
			fmt.Println("no part numbers found")
			return
		}
		for _, p := range parts {
			fmt.Printf("%s\t%s\t%s\n", p.PartNumber, p.HTS, p.Description)
		}
	case "analyze":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "BOM workbook (.xlsx)")
		part := fs.String("part", "", "part number to analyze")
		tmc := fs.Float64("tmc", 0, "declared total manufactured cost")
		xlsxOut := fs.String("xlsx", "", "write the spreadsheet report here (optional)")
		pdfOut := fs.String("pdf", "", "write the PDF report here (optional)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" || strings.TrimSpace(*part) == "" {
			must(fmt.Errorf("--input and --part are required"))
		}

		ds, err := openWorkbook(*input)
		must(err)

		entry, ok := lookupPart(bom.ListParts(ds.Rows, ds.Columns), *part)
		if !ok {
			must(fmt.Errorf("part number not found: %s", *part))
		}

		components, warnings := bom.ExtractComponents(ds.Rows, ds.Columns, *part)
		result, err := rvc.Analyze(components, *tmc, entry.HTS)
		must(err)
		result.Warnings = append(warnings, result.Warnings...)

		printSummary(entry.PartNumber, entry.Description, entry.HTS, result)

		rep := report.Report{
			PartNumber:  entry.PartNumber,
			Description: entry.Description,
			HTS:         entry.HTS,
			Date:        util.CurrentDate(),
			Result:      result,
		}
		if strings.TrimSpace(*xlsxOut) != "" {
			must(writeReport(*xlsxOut, rep, report.GenerateXLSX))
			fmt.Printf("spreadsheet report written to %s\n", *xlsxOut)
		}
		if strings.TrimSpace(*pdfOut) != "" {
			must(writeReport(*pdfOut, rep, report.GeneratePDF))
			fmt.Printf("PDF report written to %s\n", *pdfOut)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func openWorkbook(path string) (*bom.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bom.ParseWorkbook(f)
}

func lookupPart(parts []internal.PartNumberEntry, part string) (internal.PartNumberEntry, bool) {
	for _, p := range parts {
		if p.PartNumber == part {
			return p, true
		}
	}
	return internal.PartNumberEntry{}, false
}

func printSummary(partNumber, description, hts string, result *internal.AnalysisResult) {
	fmt.Printf("Part Number:        %s\n", partNumber)
	fmt.Printf("Description:        %s\n", description)
	fmt.Printf("HTS:                %s\n", hts)
	fmt.Printf("Total Materials:    %s\n", util.FormatCurrency(result.TotalMaterials))
	fmt.Printf("Labor & Others:     %s\n", util.FormatCurrency(result.LaborAndOthers))
	fmt.Printf("Net Cost:           %s\n", util.FormatCurrency(result.TotalManufacturedCost))
	fmt.Printf("Non-Originating:    %s\n", util.FormatCurrency(result.NonOriginatingTotal))
	fmt.Printf("RVC:                %s\n", util.FormatPercentage(result.RVC))
	fmt.Printf("Qualifies:          %s\n", result.Qualifies)
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}

func writeReport(path string, rep report.Report, generate func(report.Report) ([]byte, error)) error {
	data, err := generate(rep)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func usage() {
	fmt.Println("usage: usmca <command>")
	fmt.Println("commands:")
	fmt.Println("  parts   --input=bom.xlsx")
	fmt.Println("  analyze --input=bom.xlsx --part=PN --tmc=150.00 [--xlsx=out.xlsx] [--pdf=out.pdf]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
