// Package analytics implements the segment performance analytics engine:
// calendar bucket derivation, per-segment metric aggregation,
// period-over-period comparison (week-over-week, month-over-month), and
// best/worst segment ranking.
//
// All operations are pure computations over an already-loaded record batch.
// Nothing here performs I/O, holds state between invocations, or mutates its
// inputs, so concurrent calls over the same batch are safe without locking.
package analytics
