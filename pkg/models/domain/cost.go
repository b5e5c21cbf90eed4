package domain

import "time"

type Period struct {
	Start time.Time
	End   time.Time
}

// Previous returns the window of equal length immediately preceding p.
func (p Period) Previous() Period {
	length := p.End.Sub(p.Start)
	return Period{
		Start: p.Start.Add(-length),
		End:   p.Start,
	}
}

type CostCenter struct {
	Name string
}

type LineItem struct {
	ID         string
	CostCenter string
	Category   string  // indirect-cost category (utilities, services, ...)
	Group      string  // supplier / client / product
	Amount     float64
	Date       time.Time
}

type AggregateBucket struct {
	Key   string
	Total float64
	Count int
}

// PeriodMetric compares a value against the preceding period.
// IncreaseIsGood carries the sign policy for the consuming view:
// a cost increase is bad, a revenue increase is good. The metric
// never infers it.
type PeriodMetric struct {
	Name           string
	Current        float64
	Previous       float64
	DeltaPercent   float64
	IncreaseIsGood bool
}

type CostSummary struct {
	CostCenter string
	Period     Period
	Total      PeriodMetric
	Count      int
	ByCategory []AggregateBucket
}
