package analytics

import (
	"fmt"
	"time"
)

// Granularity selects the calendar interval used for time-based aggregation.
type Granularity string

const (
	GranularityWeek  Granularity = "weekly"
	GranularityMonth Granularity = "monthly"
)

// ParseGranularity validates a granularity name.
func ParseGranularity(name string) (Granularity, error) {
	switch Granularity(name) {
	case GranularityWeek, GranularityMonth:
		return Granularity(name), nil
	}
	return "", fmt.Errorf("unsupported granularity %q", name)
}

// WeekBucket returns the calendar-week bucket identifier for a date, in the
// form "2006-W02". It pairs the ISO week number with the ISO week-numbering
// year rather than the plain calendar year, so the first and last days of a
// year land in the chronologically correct bucket. Zero-padding keeps
// lexicographic order equal to chronological order.
func WeekBucket(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthBucket returns the calendar-month bucket identifier for a date, in
// the form "2006-01".
func MonthBucket(t time.Time) string {
	return t.Format("2006-01")
}

// Bucket returns the bucket identifier for a date at the given granularity.
func Bucket(t time.Time, g Granularity) string {
	if g == GranularityMonth {
		return MonthBucket(t)
	}
	return WeekBucket(t)
}
