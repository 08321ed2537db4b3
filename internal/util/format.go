package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCurrency renders an amount as $X.XX for reports.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatPercentage renders a value as X.XX% for reports.
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// CurrentDate returns today's date as MM/DD/YYYY, the format stamped on
// generated reports.
func CurrentDate() string {
	return time.Now().Format("01/02/2006")
}

// ParseCost turns a raw spreadsheet cost cell into a float64. Thousand
// separators are tolerated; anything unparseable becomes 0.
func ParseCost(value string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return parsed
}
