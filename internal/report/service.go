// Package report assembles the dashboard views on top of the analytics
// engine: headline totals, time-bucketed revenue series, the per-segment
// performance table, and the executive summary.
package report

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"salespulse/internal/analytics"
	"salespulse/internal/store"
)

// Service computes report views over an immutable record store.
type Service struct {
	logger *slog.Logger
	store  *store.Store
	engine *analytics.Engine
}

// NewService creates a report service.
func NewService(logger *slog.Logger, st *store.Store, engine *analytics.Engine) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger.With(slog.String("component", "report")),
		store:  st,
		engine: engine,
	}
}

// Overview holds the headline totals for the reporting period.
type Overview struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalProfit  float64 `json:"total_profit"`
	ProfitMargin float64 `json:"profit_margin"`
	RecordCount  int     `json:"record_count"`
	FirstDate    string  `json:"first_date"`
	LastDate     string  `json:"last_date"`
}

// Overview computes the headline totals. Margin is 0 when revenue is 0.
func (s *Service) Overview(ctx context.Context) Overview {
	var revenue, profit float64
	for _, r := range s.store.All() {
		revenue += r.Revenue
		profit += r.Profit
	}

	o := Overview{
		TotalRevenue: revenue,
		TotalProfit:  profit,
		RecordCount:  s.store.Len(),
	}
	if revenue > 0 {
		o.ProfitMargin = profit / revenue * 100
	}
	if s.store.Len() > 0 {
		min, max := s.store.Span()
		o.FirstDate = min.Format("2006-01-02")
		o.LastDate = max.Format("2006-01-02")
	}
	return o
}

// SeriesPoint is one time bucket's revenue total.
type SeriesPoint struct {
	Bucket  string  `json:"bucket"`
	Revenue float64 `json:"revenue"`
}

// SeriesGranularity extends the engine's granularities with a daily view
// for the revenue-over-time chart.
type SeriesGranularity string

const (
	SeriesDaily   SeriesGranularity = "daily"
	SeriesWeekly  SeriesGranularity = "weekly"
	SeriesMonthly SeriesGranularity = "monthly"
)

// RevenueSeries sums revenue per bucket at the requested granularity,
// sorted chronologically.
func (s *Service) RevenueSeries(ctx context.Context, g SeriesGranularity) []SeriesPoint {
	sums := make(map[string]float64)
	for _, r := range s.store.All() {
		var bucket string
		switch g {
		case SeriesWeekly:
			bucket = analytics.WeekBucket(r.Date)
		case SeriesMonthly:
			bucket = analytics.MonthBucket(r.Date)
		default:
			bucket = r.Date.Format("2006-01-02")
		}
		sums[bucket] += r.Revenue
	}

	points := make([]SeriesPoint, 0, len(sums))
	for bucket, revenue := range sums {
		points = append(points, SeriesPoint{Bucket: bucket, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket < points[j].Bucket })
	return points
}

// SegmentRow is one segment's merged week-over-week and month-over-month
// performance.
type SegmentRow struct {
	Segment        string  `json:"segment"`
	CurrentRevenue float64 `json:"current_revenue"`
	WoWChange      float64 `json:"wow_change"`
	MoMChange      float64 `json:"mom_change"`
}

// SegmentPerformance is the per-segment performance view for one dimension.
type SegmentPerformance struct {
	Dimension    analytics.Dimension `json:"dimension"`
	CurrentWeek  string              `json:"current_week"`
	CurrentMonth string              `json:"current_month"`
	Rows         []SegmentRow        `json:"rows"`
	Insight      analytics.Insight   `json:"insight"`
}

// SegmentPerformance compares the two most recent weeks and months for the
// given dimension and merges both into one table, with a best/worst insight
// ranked by month-over-month change. The two granularities are computed
// from the same batch independently; neither sees the other's buckets.
func (s *Service) SegmentPerformance(ctx context.Context, dim analytics.Dimension) (*SegmentPerformance, error) {
	records := s.store.All()

	var week, month *analytics.ComparisonResult
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		week, err = s.engine.Compare(ctx, records, dim, analytics.GranularityWeek, analytics.MetricRevenue)
		return err
	})
	g.Go(func() error {
		var err error
		month, err = s.engine.Compare(ctx, records, dim, analytics.GranularityMonth, analytics.MetricRevenue)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	perf := &SegmentPerformance{
		Dimension:    dim,
		CurrentWeek:  week.CurrentBucket,
		CurrentMonth: month.CurrentBucket,
	}

	wowBySegment := make(map[string]analytics.ComparisonRow, len(week.Rows))
	for _, row := range week.Rows {
		wowBySegment[row.Segment] = row
	}
	momBySegment := make(map[string]analytics.ComparisonRow, len(month.Rows))
	for _, row := range month.Rows {
		momBySegment[row.Segment] = row
	}

	// Union of both row sets, preserving first-appearance order. Segments
	// absent from one granularity's current bucket read as 0.
	seen := make(map[string]bool)
	var momRows []analytics.ComparisonRow
	appendRows := func(rows []analytics.ComparisonRow) {
		for _, row := range rows {
			if seen[row.Segment] {
				continue
			}
			seen[row.Segment] = true
			perf.Rows = append(perf.Rows, SegmentRow{
				Segment:        row.Segment,
				CurrentRevenue: wowBySegment[row.Segment].Current,
				WoWChange:      wowBySegment[row.Segment].ChangePercent,
				MoMChange:      momBySegment[row.Segment].ChangePercent,
			})
			momRows = append(momRows, analytics.ComparisonRow{
				Segment:       row.Segment,
				Current:       momBySegment[row.Segment].Current,
				Previous:      momBySegment[row.Segment].Previous,
				ChangePercent: momBySegment[row.Segment].ChangePercent,
			})
		}
	}
	appendRows(week.Rows)
	appendRows(month.Rows)

	insight, err := analytics.Rank(momRows)
	if err != nil {
		return nil, err
	}
	perf.Insight = insight

	s.logger.InfoContext(ctx, "computed segment performance",
		slog.String("dimension", string(dim)),
		slog.String("current_week", perf.CurrentWeek),
		slog.String("current_month", perf.CurrentMonth),
		slog.Int("segment_count", len(perf.Rows)),
		slog.String("best_segment", insight.Best.Segment),
		slog.String("worst_segment", insight.Worst.Segment))

	return perf, nil
}

// Executive is the period-over-period summary view.
type Executive struct {
	RevenueGrowth     float64 `json:"revenue_growth"`
	FirstHalfRevenue  float64 `json:"first_half_revenue"`
	SecondHalfRevenue float64 `json:"second_half_revenue"`
	TopProduct        string  `json:"top_product"`
	TopRegion         string  `json:"top_region"`
	ProfitMargin      float64 `json:"profit_margin"`
}

// Executive splits the batch's date span at its midpoint and reports
// second-half revenue growth over the first half, plus the top product and
// region by total revenue. The zero-denominator policy matches the
// comparator: no first-half revenue means 0% growth.
func (s *Service) Executive(ctx context.Context) Executive {
	var exec Executive
	if s.store.Len() == 0 {
		return exec
	}

	min, max := s.store.Span()
	mid := min.Add(max.Sub(min) / 2)

	for _, r := range s.store.All() {
		if r.Date.After(mid) {
			exec.SecondHalfRevenue += r.Revenue
		} else {
			exec.FirstHalfRevenue += r.Revenue
		}
	}
	exec.RevenueGrowth = analytics.ChangePercent(exec.SecondHalfRevenue, exec.FirstHalfRevenue)
	exec.TopProduct = s.topSegment(string(analytics.DimensionProduct))
	exec.TopRegion = s.topSegment(string(analytics.DimensionRegion))
	exec.ProfitMargin = s.Overview(ctx).ProfitMargin
	return exec
}

// topSegment finds the segment with the highest total revenue for a
// dimension. Ties keep the first-appearing segment.
func (s *Service) topSegment(dimension string) string {
	totals := make(map[string]float64)
	for _, r := range s.store.All() {
		if v, ok := r.Segment(dimension); ok {
			totals[v] += r.Revenue
		}
	}

	var top string
	var best float64
	for _, v := range s.store.SegmentValues(dimension) {
		if top == "" || totals[v] > best {
			top, best = v, totals[v]
		}
	}
	return top
}
