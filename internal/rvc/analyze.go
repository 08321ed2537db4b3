// Package rvc implements the USMCA regional-value-content calculation over a
// list of BOM components and a declared total manufactured cost.
package rvc

import (
	"fmt"
	"math"

	"usmca/internal"
	"usmca/internal/util"
)

// ComplianceThreshold is the RVC percentage at or above which a part
// qualifies under USMCA.
const ComplianceThreshold = 60.0

// usmcaCountries is the fixed membership set used for origin classification.
var usmcaCountries = map[string]struct{}{
	"MX": {}, "US": {}, "CA": {},
	"MEXICO": {}, "USA": {}, "CANADA": {},
}

// laborCountry receives the labor-and-overhead allocation in the country
// breakdown. Fixed domain assumption: manufacturing happens in Mexico.
const laborCountry = "MX"

// IsUSMCACountry reports whether a country code belongs to the USMCA
// membership set. Comparison is whitespace-trimmed and case-insensitive.
func IsUSMCACountry(country string) bool {
	_, ok := usmcaCountries[util.NormalizeCountry(country)]
	return ok
}

// InvalidCostError rejects a declared total manufactured cost.
type InvalidCostError struct {
	Reason string
}

func (e *InvalidCostError) Error() string {
	return "total manufactured cost " + e.Reason
}

// Analyze runs the full RVC qualification for a component list, a declared
// total manufactured cost and the finished part's normalized HTS code. It is
// a pure function: the input slice is never mutated and identical inputs
// produce identical results.
func Analyze(components []internal.ComponentRecord, totalManufacturedCost float64, mainHTS string) (*internal.AnalysisResult, error) {
	totalMaterials := 0.0
	for _, comp := range components {
		totalMaterials += comp.CostTotal
	}

	if totalManufacturedCost <= 0 {
		return nil, &InvalidCostError{Reason: "must be greater than 0"}
	}
	if totalManufacturedCost < totalMaterials {
		return nil, &InvalidCostError{Reason: "cannot be less than total materials"}
	}

	laborAndOthers := totalManufacturedCost - totalMaterials

	nonOriginatingTotal := 0.0
	for _, comp := range components {
		if !IsUSMCACountry(comp.Country) {
			nonOriginatingTotal += comp.CostTotal
		}
	}

	rvc := 0.0
	if totalManufacturedCost > 0 {
		rvc = (totalManufacturedCost - nonOriginatingTotal) / totalManufacturedCost * 100
	}

	qualifies := internal.ComplianceNo
	if rvc >= ComplianceThreshold {
		qualifies = internal.ComplianceYes
	}

	byCountry := countryBreakdown(components, laborAndOthers, totalManufacturedCost)

	classified := make([]internal.ComponentRecord, len(components))
	copy(classified, components)
	for i := range classified {
		classified[i].TariffShift = TariffShift(mainHTS, classified[i].HTS)
	}

	warnings := []string{}
	totalPercentage := 0.0
	for _, entry := range byCountry {
		totalPercentage += entry.Percentage
	}
	if math.Abs(totalPercentage-100) > 0.1 {
		warnings = append(warnings, fmt.Sprintf("country percentages sum to %.2f%% instead of 100%%", totalPercentage))
	}

	return &internal.AnalysisResult{
		TotalMaterials:        totalMaterials,
		TotalManufacturedCost: totalManufacturedCost,
		LaborAndOthers:        laborAndOthers,
		NonOriginatingTotal:   nonOriginatingTotal,
		RVC:                   rvc,
		Qualifies:             qualifies,
		ByCountry:             byCountry,
		Components:            classified,
		Warnings:              warnings,
	}, nil
}

// countryBreakdown groups material cost by origin country and folds labor
// and overhead into the MX entry, creating it when no Mexican materials
// exist. Components with a blank country land under the "" key unchanged.
func countryBreakdown(components []internal.ComponentRecord, laborAndOthers, totalManufacturedCost float64) map[string]internal.CountryBreakdown {
	byCountry := map[string]internal.CountryBreakdown{}

	for _, comp := range components {
		entry, ok := byCountry[comp.Country]
		if !ok {
			entry = internal.CountryBreakdown{IsUSMCA: IsUSMCACountry(comp.Country)}
		}
		entry.Total += comp.CostTotal
		byCountry[comp.Country] = entry
	}

	for country, entry := range byCountry {
		entry.Percentage = entry.Total / totalManufacturedCost * 100
		byCountry[country] = entry
	}

	mx, ok := byCountry[laborCountry]
	if !ok {
		mx = internal.CountryBreakdown{IsUSMCA: true}
	}
	mx.Total += laborAndOthers
	mx.Percentage = mx.Total / totalManufacturedCost * 100
	byCountry[laborCountry] = mx

	return byCountry
}

// TariffShift classifies one component against the finished part. Equal
// tariff headings mean no shift (NA); different headings mean a shift
// occurred (YES). A missing code on either side yields NA.
func TariffShift(mainHTS, componentHTS string) internal.TariffShift {
	if mainHTS == "" || componentHTS == "" {
		return internal.TariffShiftNA
	}
	if util.Heading(mainHTS) == util.Heading(componentHTS) {
		return internal.TariffShiftNA
	}
	return internal.TariffShiftYes
}
