package exporter

import (
	"fmt"

	"salespulse/internal/analytics"
	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Format identifies an export byte format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates an export format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCSV, FormatXLSX:
		return Format(name), nil
	}
	return "", errors.NewValidationError(fmt.Sprintf("unsupported export format %q", name))
}

// Table is rectangular data ready for serialization: a header row plus zero
// or more data rows, every row as wide as the header.
type Table struct {
	Headers []string
	Rows    [][]string
}

// validate checks the table is rectangular. A malformed table is a caller
// bug but must surface as a recoverable error, not a crash.
func (t Table) validate() error {
	if len(t.Headers) == 0 {
		return errors.NewSerializationError("table has no header row", nil)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return errors.NewSerializationError(
				fmt.Sprintf("row %d has %d columns, header has %d", i, len(row), len(t.Headers)), nil)
		}
	}
	return nil
}

// Serialize renders the table in the requested format.
func Serialize(t Table, format Format) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return MarshalXLSX(t)
	case FormatCSV:
		return MarshalCSV(t)
	default:
		return nil, errors.NewSerializationError(fmt.Sprintf("unsupported export format %q", format), nil)
	}
}

// ComparisonTable converts a comparison result into an exportable table.
func ComparisonTable(result *analytics.ComparisonResult) Table {
	t := Table{
		Headers: []string{"Segment", "Current", "Previous", "Change (%)"},
		Rows:    make([][]string, 0, len(result.Rows)),
	}
	for _, row := range result.Rows {
		t.Rows = append(t.Rows, []string{
			row.Segment,
			formatFloat(row.Current),
			formatFloat(row.Previous),
			formatPercent(row.ChangePercent),
		})
	}
	return t
}

// RecordTable converts raw transaction records into an exportable table
// with one segment column per supported dimension.
func RecordTable(records domain.Batch) Table {
	headers := []string{"Date"}
	for _, dim := range analytics.Dimensions {
		headers = append(headers, dimensionHeader(dim))
	}
	headers = append(headers, "Revenue", "Cost", "Profit")

	t := Table{Headers: headers, Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		row := []string{r.Date.Format("2006-01-02")}
		for _, dim := range analytics.Dimensions {
			row = append(row, dim.SegmentOf(r))
		}
		row = append(row, formatFloat(r.Revenue), formatFloat(r.Cost), formatFloat(r.Profit))
		t.Rows = append(t.Rows, row)
	}
	return t
}

func dimensionHeader(d analytics.Dimension) string {
	switch d {
	case analytics.DimensionProduct:
		return "Product"
	case analytics.DimensionRegion:
		return "Region"
	case analytics.DimensionChannel:
		return "Channel"
	case analytics.DimensionCustomerType:
		return "Customer Type"
	default:
		return string(d)
	}
}
