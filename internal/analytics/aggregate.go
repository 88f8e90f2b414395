package analytics

import (
	"sort"

	"salespulse/pkg/contracts/domain"
)

// Aggregate sums a metric per segment across the records that fall into the
// given bucket at the given granularity. It returns an empty map, not an
// error, when no records match.
func Aggregate(records domain.Batch, dim Dimension, bucketID string, g Granularity, metric Metric) map[string]float64 {
	sums := make(map[string]float64)
	for _, r := range records {
		if Bucket(r.Date, g) != bucketID {
			continue
		}
		sums[dim.SegmentOf(r)] += metric.ValueOf(r)
	}
	return sums
}

// distinctBuckets returns the sorted distinct bucket identifiers present in
// the batch at the given granularity. Bucket identifiers sort
// chronologically because their lexicographic order matches calendar order.
func distinctBuckets(records domain.Batch, g Granularity) []string {
	seen := make(map[string]bool)
	var buckets []string
	for _, r := range records {
		id := Bucket(r.Date, g)
		if !seen[id] {
			seen[id] = true
			buckets = append(buckets, id)
		}
	}
	sort.Strings(buckets)
	return buckets
}

// segmentOrder returns segment values in order of first appearance in the
// batch. Comparison rows preserve this order so output is deterministic.
func segmentOrder(records domain.Batch, dim Dimension) []string {
	seen := make(map[string]bool)
	var order []string
	for _, r := range records {
		seg := dim.SegmentOf(r)
		if !seen[seg] {
			seen[seg] = true
			order = append(order, seg)
		}
	}
	return order
}
