// Package report renders a finished RVC analysis into the two output
// documents: a spreadsheet and a printable PDF, both with the same two
// logical sections ("BOM Analysis" and "Qualification Results").
package report

import (
	"sort"
	"strings"

	"usmca/internal"
)

// Report bundles everything the generators need about one analyzed part.
// Date is the export date in MM/DD/YYYY form.
type Report struct {
	PartNumber  string
	Description string
	HTS         string
	Date        string
	Result      *internal.AnalysisResult
}

// BaseName is the shared output file name for a part, extension excluded:
// USMCA_Analysis_<partNumber>_<MM-DD-YYYY>.
func BaseName(partNumber, date string) string {
	return "USMCA_Analysis_" + partNumber + "_" + strings.ReplaceAll(date, "/", "-")
}

type countryEntry struct {
	Country string
	internal.CountryBreakdown
}

// sortedCountries returns the country breakdown ordered by descending total
// cost, ties broken by country code for stable output.
func sortedCountries(byCountry map[string]internal.CountryBreakdown) []countryEntry {
	out := make([]countryEntry, 0, len(byCountry))
	for country, entry := range byCountry {
		out = append(out, countryEntry{Country: country, CountryBreakdown: entry})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Country < out[j].Country
	})
	return out
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func originStatus(isUSMCA bool) string {
	if isUSMCA {
		return "USMCA"
	}
	return "Non-USMCA"
}
