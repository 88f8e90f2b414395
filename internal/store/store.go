// Package store holds the immutable batch of transaction records for a
// reporting period and provides the filters the report views need. The
// batch is never mutated after construction, so concurrent readers need no
// locking.
package store

import (
	"time"

	"salespulse/pkg/contracts/domain"
)

// Store wraps an already-loaded record batch.
type Store struct {
	records domain.Batch
}

// New creates a store over a copy of the given records.
func New(records []domain.Record) *Store {
	batch := make(domain.Batch, len(records))
	copy(batch, records)
	return &Store{records: batch}
}

// All returns the full batch. Callers must treat the slice as read-only.
func (s *Store) All() domain.Batch {
	return s.records
}

// Len returns the number of records in the batch.
func (s *Store) Len() int {
	return len(s.records)
}

// Span returns the earliest and latest record dates in the batch.
func (s *Store) Span() (min, max time.Time) {
	return s.records.Span()
}

// Between returns the records whose date falls within [from, to] inclusive.
func (s *Store) Between(from, to time.Time) domain.Batch {
	var out domain.Batch
	for _, r := range s.records {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterSegment returns the records whose value for the named dimension is
// one of the given values. An empty value set matches everything.
func (s *Store) FilterSegment(dimension string, values ...string) domain.Batch {
	if len(values) == 0 {
		return s.records
	}
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}

	var out domain.Batch
	for _, r := range s.records {
		if v, ok := r.Segment(dimension); ok && allowed[v] {
			out = append(out, r)
		}
	}
	return out
}

// SegmentValues returns the distinct values of a dimension in order of
// first appearance in the batch.
func (s *Store) SegmentValues(dimension string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range s.records {
		v, ok := r.Segment(dimension)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
