package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/analytics"
	"salespulse/internal/errors"
	"salespulse/internal/store"
	"salespulse/pkg/contracts/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sale(date time.Time, product, region string, revenue float64) domain.Record {
	return domain.Record{
		Date:     date,
		Segments: map[string]string{"product": product, "region": region},
		Revenue:  revenue,
		Cost:     revenue * 0.4,
		Profit:   revenue * 0.6,
	}
}

// twoMonthBatch spans May and June 2025 with weekly activity, enough
// history for both WoW and MoM comparisons.
func twoMonthBatch() []domain.Record {
	return []domain.Record{
		sale(day(2025, time.May, 5), "Enterprise", "Europe", 1000),
		sale(day(2025, time.May, 12), "Enterprise", "Europe", 1100),
		sale(day(2025, time.May, 12), "Starter", "Asia Pacific", 100),
		sale(day(2025, time.June, 2), "Enterprise", "Europe", 1200),
		sale(day(2025, time.June, 2), "Starter", "Asia Pacific", 80),
		sale(day(2025, time.June, 9), "Enterprise", "Europe", 1500),
		sale(day(2025, time.June, 9), "Starter", "Asia Pacific", 120),
	}
}

func newService(records []domain.Record) *Service {
	return NewService(nil, store.New(records), analytics.NewEngine(nil))
}

func TestOverview(t *testing.T) {
	svc := newService(twoMonthBatch())
	o := svc.Overview(context.Background())

	assert.InDelta(t, 5100, o.TotalRevenue, 1e-9)
	assert.InDelta(t, 3060, o.TotalProfit, 1e-9)
	assert.InDelta(t, 60, o.ProfitMargin, 1e-9)
	assert.Equal(t, 7, o.RecordCount)
	assert.Equal(t, "2025-05-05", o.FirstDate)
	assert.Equal(t, "2025-06-09", o.LastDate)
}

func TestOverviewEmptyBatch(t *testing.T) {
	o := newService(nil).Overview(context.Background())
	assert.Zero(t, o.TotalRevenue)
	assert.Zero(t, o.ProfitMargin, "margin must be 0, not NaN, when revenue is 0")
}

func TestRevenueSeries(t *testing.T) {
	svc := newService(twoMonthBatch())

	t.Run("monthly", func(t *testing.T) {
		points := svc.RevenueSeries(context.Background(), SeriesMonthly)
		require.Len(t, points, 2)
		assert.Equal(t, SeriesPoint{Bucket: "2025-05", Revenue: 2200}, points[0])
		assert.Equal(t, SeriesPoint{Bucket: "2025-06", Revenue: 2900}, points[1])
	})

	t.Run("weekly is sorted chronologically", func(t *testing.T) {
		points := svc.RevenueSeries(context.Background(), SeriesWeekly)
		require.Len(t, points, 4)
		for i := 1; i < len(points); i++ {
			assert.Less(t, points[i-1].Bucket, points[i].Bucket)
		}
	})

	t.Run("daily buckets by date", func(t *testing.T) {
		points := svc.RevenueSeries(context.Background(), SeriesDaily)
		require.Len(t, points, 4)
		assert.Equal(t, "2025-05-05", points[0].Bucket)
	})
}

func TestSegmentPerformance(t *testing.T) {
	svc := newService(twoMonthBatch())
	perf, err := svc.SegmentPerformance(context.Background(), analytics.DimensionProduct)
	require.NoError(t, err)

	assert.Equal(t, "2025-W24", perf.CurrentWeek)
	assert.Equal(t, "2025-06", perf.CurrentMonth)
	require.Len(t, perf.Rows, 2)

	enterprise := perf.Rows[0]
	assert.Equal(t, "Enterprise", enterprise.Segment)
	assert.InDelta(t, 1500, enterprise.CurrentRevenue, 1e-9)
	assert.InDelta(t, 25, enterprise.WoWChange, 1e-9)                    // 1500 vs 1200
	assert.InDelta(t, float64(600)/2100*100, enterprise.MoMChange, 1e-9) // 2700 vs 2100

	starter := perf.Rows[1]
	assert.Equal(t, "Starter", starter.Segment)
	assert.InDelta(t, 50, starter.WoWChange, 1e-9)              // 120 vs 80
	assert.InDelta(t, 100, starter.MoMChange, 1e-9)             // 200 vs 100

	assert.Equal(t, "Starter", perf.Insight.Best.Segment, "insight ranks by MoM change")
	assert.Equal(t, "Enterprise", perf.Insight.Worst.Segment)
}

func TestSegmentPerformanceInsufficientHistory(t *testing.T) {
	// Two weeks inside a single month: WoW succeeds but MoM cannot.
	records := []domain.Record{
		sale(day(2025, time.June, 2), "Enterprise", "Europe", 100),
		sale(day(2025, time.June, 9), "Enterprise", "Europe", 120),
	}

	_, err := newService(records).SegmentPerformance(context.Background(), analytics.DimensionProduct)
	require.Error(t, err)
	assert.True(t, errors.IsInsufficientData(err))
}

func TestExecutive(t *testing.T) {
	svc := newService(twoMonthBatch())
	exec := svc.Executive(context.Background())

	// Midpoint of May 5 .. Jun 9 is May 22 12:00; May records land in the
	// first half, June records in the second.
	assert.InDelta(t, 2200, exec.FirstHalfRevenue, 1e-9)
	assert.InDelta(t, 2900, exec.SecondHalfRevenue, 1e-9)
	assert.InDelta(t, float64(700)/2200*100, exec.RevenueGrowth, 1e-9)
	assert.Equal(t, "Enterprise", exec.TopProduct)
	assert.Equal(t, "Europe", exec.TopRegion)
	assert.InDelta(t, 60, exec.ProfitMargin, 1e-9)
}

func TestExecutiveEmptyBatch(t *testing.T) {
	exec := newService(nil).Executive(context.Background())
	assert.Zero(t, exec.RevenueGrowth)
	assert.Empty(t, exec.TopProduct)
}
