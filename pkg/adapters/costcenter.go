package adapters

import (
	"github.com/erp-tools/costboard/pkg/models/api"
	"github.com/erp-tools/costboard/pkg/models/domain"
	"github.com/erp-tools/costboard/pkg/models/store"
)

func MapStoreLineItemToDomain(row store.LineItemRow) domain.LineItem {
	return domain.LineItem{
		ID:         row.ID,
		CostCenter: row.CostCenter,
		Category:   row.Category,
		Group:      row.GroupKey,
		Amount:     row.Amount,
		Date:       row.Date,
	}
}

func MapDomainLineItemToStore(item domain.LineItem) store.LineItemRow {
	return store.LineItemRow{
		ID:         item.ID,
		CostCenter: item.CostCenter,
		Category:   item.Category,
		GroupKey:   item.Group,
		Amount:     item.Amount,
		Date:       item.Date,
	}
}

func MapApiLineItemToDomain(costCenter string, item api.LineItem) domain.LineItem {
	return domain.LineItem{
		ID:         item.ID,
		CostCenter: costCenter,
		Category:   item.Category,
		Group:      item.Group,
		Amount:     item.Amount,
		Date:       item.Date,
	}
}

func MapBucketDomainToApi(b domain.AggregateBucket) api.Bucket {
	return api.Bucket{Key: b.Key, Total: b.Total, Count: b.Count}
}

func MapBucketsDomainToApi(buckets []domain.AggregateBucket) []api.Bucket {
	out := make([]api.Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, MapBucketDomainToApi(b))
	}
	return out
}

func MapPeriodMetricDomainToApi(m domain.PeriodMetric) api.PeriodMetric {
	return api.PeriodMetric{
		Name:           m.Name,
		Current:        m.Current,
		Previous:       m.Previous,
		DeltaPercent:   m.DeltaPercent,
		IncreaseIsGood: m.IncreaseIsGood,
	}
}

func MapCostSummaryDomainToApi(s domain.CostSummary) api.CostSummary {
	return api.CostSummary{
		CostCenter: s.CostCenter,
		Period:     api.TimePeriod{Start: s.Period.Start, End: s.Period.End},
		Total:      MapPeriodMetricDomainToApi(s.Total),
		Count:      s.Count,
		ByCategory: MapBucketsDomainToApi(s.ByCategory),
	}
}
