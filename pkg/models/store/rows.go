package store

import "time"

type LineItemRow struct {
	ID         string
	CostCenter string
	Category   string
	GroupKey   string
	Amount     float64
	Date       time.Time
}

type SupplyRow struct {
	ID        int64
	Name      string
	Unit      string
	UnitPrice *float64 // nil when no current price is recorded
}

type RecipeRow struct {
	ID             int64
	Name           string
	YieldModel     string
	OutputQuantity float64
	UsefulLength   float64
	BatchCount     int
}

type IngredientRow struct {
	RecipeID   int64
	SupplyID   int64
	Quantity   float64
	Unit       string
	PulseCount *float64
	KgPerPulse *float64
	Bank       bool
	Position   int
}
