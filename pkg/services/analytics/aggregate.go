package analytics

import (
	"github.com/erp-tools/costboard/pkg/models/domain"
)

// UnknownKey labels items whose grouping key is empty. Aggregation
// never fails on a missing key.
const UnknownKey = "unknown"

type KeyFunc func(domain.LineItem) string

func ByCategory(item domain.LineItem) string { return item.Category }
func ByGroup(item domain.LineItem) string    { return item.Group }

// AggregateOrdered groups items by key in a single pass and returns
// buckets in first-seen order. A NaN amount propagates into the
// bucket total; the caller's validation boundary is expected to have
// rejected it already.
func AggregateOrdered(items []domain.LineItem, key KeyFunc) []domain.AggregateBucket {
	index := make(map[string]int, len(items))
	buckets := make([]domain.AggregateBucket, 0)

	for _, item := range items {
		k := key(item)
		if k == "" {
			k = UnknownKey
		}
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, domain.AggregateBucket{Key: k})
		}
		buckets[i].Total += item.Amount
		buckets[i].Count++
	}

	return buckets
}

// Aggregate is AggregateOrdered keyed by bucket key, for callers that
// do not care about ordering.
func Aggregate(items []domain.LineItem, key KeyFunc) map[string]domain.AggregateBucket {
	buckets := AggregateOrdered(items, key)
	m := make(map[string]domain.AggregateBucket, len(buckets))
	for _, b := range buckets {
		m[b.Key] = b
	}
	return m
}

// Sum returns the grand total across items.
func Sum(items []domain.LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}
