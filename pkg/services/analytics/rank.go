package analytics

import (
	"sort"

	"github.com/erp-tools/costboard/pkg/models/domain"
)

// TopN returns at most n buckets sorted descending by total. The sort
// is stable: buckets with equal totals keep their input order.
func TopN(buckets []domain.AggregateBucket, n int) []domain.AggregateBucket {
	if n <= 0 {
		return nil
	}

	ranked := make([]domain.AggregateBucket, len(buckets))
	copy(ranked, buckets)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
