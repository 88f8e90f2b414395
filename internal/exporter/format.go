package exporter

import (
	"fmt"
)

// formatFloat formats a metric value for export with exactly 2 decimal places.
// This ensures values like 13.4 appear as 13.40 in the output.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatPercent formats a percent change with an explicit sign, e.g. "+50.00".
func formatPercent(f float64) string {
	return fmt.Sprintf("%+.2f", f)
}

// FormatMoney formats a currency amount with thousands separators for
// display, e.g. "$1,234,567.89".
func FormatMoney(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart, fracPart := s[:len(s)-3], s[len(s)-2:]
	var grouped []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, c)
	}
	out := "$" + string(grouped) + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
