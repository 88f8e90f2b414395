package exporter

import (
	"bytes"
	"encoding/csv"

	"salespulse/internal/errors"
)

// MarshalCSV renders the table as UTF-8 comma-separated text with a header
// row. An empty table produces a header-only byte sequence.
func MarshalCSV(t Table) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(t.Headers); err != nil {
		return nil, errors.NewSerializationError("failed to write CSV header row", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return nil, errors.NewSerializationError("failed to write CSV data row", err).
				WithContext("row", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.NewSerializationError("failed to flush CSV output", err)
	}
	return buf.Bytes(), nil
}
