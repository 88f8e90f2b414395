package domain

import (
	"time"
)

// Record represents a single sales transaction. Records are created once at
// load time and never mutated; the analytics engine only reads them.
type Record struct {
	Date     time.Time         `json:"date" csv:"Date"`
	Segments map[string]string `json:"segments" csv:"-"`
	Revenue  float64           `json:"revenue" csv:"Revenue" validate:"min=0"`
	Cost     float64           `json:"cost" csv:"Cost"`
	Profit   float64           `json:"profit" csv:"Profit"`
}

// Segment returns the record's value for the named grouping dimension.
// The second return reports whether the dimension was present.
func (r Record) Segment(dimension string) (string, bool) {
	v, ok := r.Segments[dimension]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Batch is an immutable, already-loaded set of transaction records for a
// reporting period.
type Batch []Record

// Span returns the earliest and latest record dates in the batch.
// Both are zero when the batch is empty.
func (b Batch) Span() (min, max time.Time) {
	for i, r := range b {
		if i == 0 || r.Date.Before(min) {
			min = r.Date
		}
		if i == 0 || r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}
