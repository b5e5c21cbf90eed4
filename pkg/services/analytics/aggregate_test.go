package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp-tools/costboard/pkg/models/domain"
)

func item(category, group string, amount float64) domain.LineItem {
	return domain.LineItem{Category: category, Group: group, Amount: amount}
}

func TestAggregateOrdered(t *testing.T) {
	t.Run("groups by key in first-seen order", func(t *testing.T) {
		items := []domain.LineItem{
			item("utilities", "acme", 100),
			item("services", "globex", 50),
			item("utilities", "acme", 25),
		}

		buckets := AggregateOrdered(items, ByCategory)

		require.Len(t, buckets, 2)
		assert.Equal(t, domain.AggregateBucket{Key: "utilities", Total: 125, Count: 2}, buckets[0])
		assert.Equal(t, domain.AggregateBucket{Key: "services", Total: 50, Count: 1}, buckets[1])
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		assert.Empty(t, AggregateOrdered(nil, ByCategory))
		assert.Empty(t, Aggregate(nil, ByCategory))
	})

	t.Run("missing key falls back to sentinel", func(t *testing.T) {
		buckets := Aggregate([]domain.LineItem{item("", "", 10)}, ByGroup)

		require.Contains(t, buckets, UnknownKey)
		assert.Equal(t, 10.0, buckets[UnknownKey].Total)
	})

	t.Run("bucket totals sum to item totals", func(t *testing.T) {
		items := []domain.LineItem{
			item("a", "s1", 10.5),
			item("b", "s2", -3.25),
			item("a", "s1", 0),
			item("c", "s3", 99.99),
			item("b", "s1", 12.01),
		}

		var itemSum float64
		for _, it := range items {
			itemSum += it.Amount
		}

		var bucketSum float64
		for _, b := range Aggregate(items, ByCategory) {
			bucketSum += b.Total
		}

		assert.InDelta(t, itemSum, bucketSum, 1e-9)
		assert.InDelta(t, itemSum, Sum(items), 1e-9)
	})
}
