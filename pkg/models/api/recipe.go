package api

import (
	"fmt"
	"math"
)

type Recipe struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	YieldModel      string `json:"yield_model"`
	IngredientCount int    `json:"ingredient_count"`
}

type RecipeCost struct {
	RecipeID            int64   `json:"recipe_id"`
	IngredientsCost     float64 `json:"ingredients_cost"`
	BankIngredientsCost float64 `json:"bank_ingredients_cost,omitempty"`
	TotalCost           float64 `json:"total_cost"`
	CostPerUnit         float64 `json:"cost_per_unit"`
	TotalDisplay        string  `json:"total_display,omitempty"`
	PerUnitDisplay      string  `json:"per_unit_display,omitempty"`
	MissingPrices       []int64 `json:"missing_prices,omitempty"`
}

type SimulationIngredient struct {
	SupplyID   int64    `json:"supply_id"`
	Quantity   float64  `json:"quantity"`
	UnitPrice  *float64 `json:"unit_price,omitempty"`
	PulseCount *float64 `json:"pulse_count,omitempty"`
	KgPerPulse *float64 `json:"kg_per_pulse,omitempty"`
}

type SimulateRequest struct {
	Ingredients []SimulationIngredient `json:"ingredients"`
}

func (r *SimulateRequest) Validate() error {
	for i, ing := range r.Ingredients {
		if ing.SupplyID <= 0 {
			return fmt.Errorf("ingredients[%d]: supply_id is required", i)
		}
		if ing.Quantity < 0 || math.IsNaN(ing.Quantity) || math.IsInf(ing.Quantity, 0) {
			return fmt.Errorf("ingredients[%d]: quantity must be finite and non-negative", i)
		}
		if ing.UnitPrice != nil && *ing.UnitPrice < 0 {
			return fmt.Errorf("ingredients[%d]: unit_price must be non-negative", i)
		}
		if (ing.PulseCount == nil) != (ing.KgPerPulse == nil) {
			return fmt.Errorf("ingredients[%d]: pulse_count and kg_per_pulse must be set together", i)
		}
	}
	return nil
}

type IngredientDelta struct {
	SupplyID             int64   `json:"supply_id"`
	Name                 string  `json:"name,omitempty"`
	OriginalQuantity     float64 `json:"original_quantity"`
	NewQuantity          float64 `json:"new_quantity"`
	QuantityDeltaPercent float64 `json:"quantity_delta_percent"`
	CostDelta            float64 `json:"cost_delta"`
	Status               string  `json:"status"`
}

type SimulationResult struct {
	RecipeID      int64             `json:"recipe_id"`
	OriginalTotal float64           `json:"original_total"`
	TestTotal     float64           `json:"test_total"`
	TotalDelta    float64           `json:"total_delta"`
	Deltas        []IngredientDelta `json:"deltas"`
}

type Preference struct {
	User  string `json:"user"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (p *Preference) Validate() error {
	if p.Value == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}
