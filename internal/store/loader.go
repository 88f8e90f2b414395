package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// segment columns recognized in input files, in header-name form.
var segmentColumns = map[string]string{
	"product":       "product",
	"region":        "region",
	"channel":       "channel",
	"customer type": "customer_type",
	"customer_type": "customer_type",
}

// LoadCSV reads a transaction batch from a CSV file. The file must carry a
// header row with Date and Revenue columns; Cost, Profit, and the segment
// columns (Product, Region, Channel, Customer Type) are optional. Profit is
// derived from revenue and cost when the column is absent.
func LoadCSV(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open transaction file", err)
	}
	defer file.Close()

	records, err := readRecords(file)
	if err != nil {
		return nil, err
	}
	return New(records), nil
}

func readRecords(r io.Reader) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewStorageError("failed to read CSV header", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))] = i
	}
	dateCol, ok := cols["date"]
	if !ok {
		return nil, errors.NewStorageError("transaction file has no Date column", nil)
	}
	revenueCol, ok := cols["revenue"]
	if !ok {
		return nil, errors.NewStorageError("transaction file has no Revenue column", nil)
	}

	var records []domain.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewStorageError("failed to read CSV row", err).
				WithContext("line", line)
		}
		line++

		date, err := time.Parse("2006-01-02", row[dateCol])
		if err != nil {
			return nil, errors.NewStorageError(
				fmt.Sprintf("invalid date %q on line %d", row[dateCol], line), err)
		}
		revenue, err := strconv.ParseFloat(row[revenueCol], 64)
		if err != nil {
			return nil, errors.NewStorageError(
				fmt.Sprintf("invalid revenue %q on line %d", row[revenueCol], line), err)
		}

		record := domain.Record{
			Date:     date,
			Segments: make(map[string]string),
			Revenue:  revenue,
		}
		for headerName, dimension := range segmentColumns {
			if i, ok := cols[headerName]; ok && i < len(row) && row[i] != "" {
				record.Segments[dimension] = row[i]
			}
		}
		if i, ok := cols["cost"]; ok && i < len(row) && row[i] != "" {
			if record.Cost, err = strconv.ParseFloat(row[i], 64); err != nil {
				return nil, errors.NewStorageError(
					fmt.Sprintf("invalid cost %q on line %d", row[i], line), err)
			}
		}
		if i, ok := cols["profit"]; ok && i < len(row) && row[i] != "" {
			if record.Profit, err = strconv.ParseFloat(row[i], 64); err != nil {
				return nil, errors.NewStorageError(
					fmt.Sprintf("invalid profit %q on line %d", row[i], line), err)
			}
		} else {
			record.Profit = record.Revenue - record.Cost
		}

		records = append(records, record)
	}
	return records, nil
}
