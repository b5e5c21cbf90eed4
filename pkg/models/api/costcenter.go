package api

import (
	"fmt"
	"math"
	"time"
)

type CostCenter struct {
	Name string `json:"name"`
}

type LineItem struct {
	ID       string    `json:"id,omitempty"`
	Category string    `json:"category"`
	Group    string    `json:"group"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

type IngestLineItemsRequest struct {
	Items []LineItem `json:"items"`
}

// Validate rejects payloads the aggregation layer would otherwise
// silently absorb: non-finite amounts and zero dates never enter the
// store.
func (r *IngestLineItemsRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("items is empty")
	}
	for i, item := range r.Items {
		if math.IsNaN(item.Amount) || math.IsInf(item.Amount, 0) {
			return fmt.Errorf("items[%d]: amount must be finite", i)
		}
		if item.Date.IsZero() {
			return fmt.Errorf("items[%d]: date is required", i)
		}
	}
	return nil
}

type IngestLineItemsResponse struct {
	Stored int `json:"stored"`
}

type PeriodMetric struct {
	Name           string  `json:"name"`
	Current        float64 `json:"current"`
	Previous       float64 `json:"previous"`
	DeltaPercent   float64 `json:"delta_percent"`
	IncreaseIsGood bool    `json:"increase_is_good"`
}

type Bucket struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type TimePeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type CostSummary struct {
	CostCenter string       `json:"cost_center"`
	Period     TimePeriod   `json:"period"`
	Total      PeriodMetric `json:"total"`
	Count      int          `json:"count"`
	ByCategory []Bucket     `json:"by_category"`
}

type TopGroupsResponse struct {
	CostCenter string   `json:"cost_center"`
	By         string   `json:"by"`
	Groups     []Bucket `json:"groups"`
}

type Error struct {
	Error string `json:"error"`
}
