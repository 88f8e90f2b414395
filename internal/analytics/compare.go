package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// ComparisonRow is one segment's period-over-period result. Rows exist only
// for segments present in the current bucket; a segment absent from the
// previous bucket reads as Previous == 0.
type ComparisonRow struct {
	Segment       string  `json:"segment"`
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	ChangePercent float64 `json:"change_percent"`
}

// ComparisonResult holds the comparison between the two most recent
// non-empty buckets of one granularity.
type ComparisonResult struct {
	Dimension      Dimension       `json:"dimension"`
	Metric         Metric          `json:"metric"`
	Granularity    Granularity     `json:"granularity"`
	CurrentBucket  string          `json:"current_bucket"`
	PreviousBucket string          `json:"previous_bucket"`
	Rows           []ComparisonRow `json:"rows"`
}

// Engine runs period comparisons over immutable record batches.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a comparison engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With(slog.String("component", "analytics"))}
}

// Compare selects the two most recent non-empty buckets at the requested
// granularity and computes each current-bucket segment's percent change.
//
// The zero-denominator policy is intentional: a segment with no revenue in
// the previous bucket reports 0% change, not infinite growth.
func (e *Engine) Compare(ctx context.Context, records domain.Batch, dim Dimension, g Granularity, metric Metric) (*ComparisonResult, error) {
	buckets := distinctBuckets(records, g)
	if len(buckets) < 2 {
		return nil, errors.NewInsufficientDataError(
			fmt.Sprintf("need at least two distinct %s buckets, have %d", g, len(buckets))).
			WithContext("granularity", string(g))
	}

	current := buckets[len(buckets)-1]
	previous := buckets[len(buckets)-2]

	currentSums := Aggregate(records, dim, current, g, metric)
	previousSums := Aggregate(records, dim, previous, g, metric)

	result := &ComparisonResult{
		Dimension:      dim,
		Metric:         metric,
		Granularity:    g,
		CurrentBucket:  current,
		PreviousBucket: previous,
	}

	for _, segment := range segmentOrder(records, dim) {
		cur, ok := currentSums[segment]
		if !ok {
			continue
		}
		prev := previousSums[segment]
		result.Rows = append(result.Rows, ComparisonRow{
			Segment:       segment,
			Current:       cur,
			Previous:      prev,
			ChangePercent: ChangePercent(cur, prev),
		})
	}

	e.logger.DebugContext(ctx, "computed period comparison",
		slog.String("dimension", string(dim)),
		slog.String("granularity", string(g)),
		slog.String("current_bucket", current),
		slog.String("previous_bucket", previous),
		slog.Int("row_count", len(result.Rows)))

	return result, nil
}

// ChangePercent computes the percent change from previous to current,
// treating a non-positive previous value as flat (0%).
func ChangePercent(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
