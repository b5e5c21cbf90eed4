package analytics

import "github.com/erp-tools/costboard/pkg/models/domain"

// DeltaPercent returns the percentage change from previous to current.
// A missing baseline (previous <= 0) yields 0 rather than an error:
// the metric is display-only and "no data" is indistinguishable from
// zero throughout this layer.
func DeltaPercent(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	return 0
}

// NewPeriodMetric builds a period comparison. increaseIsGood is the
// caller's sign policy (cost up = bad, revenue up = good).
func NewPeriodMetric(name string, current, previous float64, increaseIsGood bool) domain.PeriodMetric {
	return domain.PeriodMetric{
		Name:           name,
		Current:        current,
		Previous:       previous,
		DeltaPercent:   DeltaPercent(current, previous),
		IncreaseIsGood: increaseIsGood,
	}
}
