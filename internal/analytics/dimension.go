package analytics

import (
	"fmt"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// Dimension is a grouping dimension over transaction records. The set of
// dimensions is closed: unknown names are rejected at setup time, not at
// aggregation time.
type Dimension string

const (
	DimensionProduct      Dimension = "product"
	DimensionRegion       Dimension = "region"
	DimensionChannel      Dimension = "channel"
	DimensionCustomerType Dimension = "customer_type"
)

// UnspecifiedSegment is the segment assigned to records that carry no value
// for the requested dimension.
const UnspecifiedSegment = "Unspecified"

// Dimensions lists the supported grouping dimensions in display order.
var Dimensions = []Dimension{
	DimensionProduct,
	DimensionRegion,
	DimensionChannel,
	DimensionCustomerType,
}

// ParseDimension validates a dimension name against the closed set.
func ParseDimension(name string) (Dimension, error) {
	for _, d := range Dimensions {
		if Dimension(name) == d {
			return d, nil
		}
	}
	return "", errors.NewConfigError(
		fmt.Sprintf("unsupported grouping dimension %q", name), nil)
}

// SegmentOf extracts the record's segment value for this dimension.
// Records without a value fall into UnspecifiedSegment.
func (d Dimension) SegmentOf(r domain.Record) string {
	if v, ok := r.Segment(string(d)); ok {
		return v
	}
	return UnspecifiedSegment
}

// Metric selects the numeric field summed during aggregation.
type Metric string

const (
	MetricRevenue Metric = "revenue"
	MetricCost    Metric = "cost"
	MetricProfit  Metric = "profit"
)

// ParseMetric validates a metric name.
func ParseMetric(name string) (Metric, error) {
	switch Metric(name) {
	case MetricRevenue, MetricCost, MetricProfit:
		return Metric(name), nil
	}
	return "", errors.NewConfigError(
		fmt.Sprintf("unsupported metric %q", name), nil)
}

// ValueOf extracts the metric value from a record.
func (m Metric) ValueOf(r domain.Record) float64 {
	switch m {
	case MetricCost:
		return r.Cost
	case MetricProfit:
		return r.Profit
	default:
		return r.Revenue
	}
}
