package domain

type YieldModel string

const (
	YieldPerBatch YieldModel = "per_batch"
	YieldPerBank  YieldModel = "per_bank"
	YieldPerM3    YieldModel = "per_m3"
)

// RecipeIngredient is a recipe line pre-joined with its current unit
// price. When PulseCount and KgPerPulse are both set, the effective
// quantity is derived from them and overrides Quantity.
type RecipeIngredient struct {
	SupplyID     int64
	Name         string
	Quantity     float64
	Unit         string
	UnitPrice    float64
	PriceMissing bool
	PulseCount   *float64
	KgPerPulse   *float64
}

type Recipe struct {
	ID             int64
	Name           string
	YieldModel     YieldModel
	OutputQuantity float64 // per_batch / per_m3
	UsefulLength   float64 // per_bank
	BatchCount     int     // per_bank: batches per bank
	Ingredients    []RecipeIngredient
	// BankIngredients are added once per bank, not multiplied by
	// BatchCount. Only meaningful for the per_bank yield model.
	BankIngredients []RecipeIngredient
}

type RecipeCost struct {
	RecipeID            int64
	IngredientsCost     float64
	BankIngredientsCost float64
	TotalCost           float64
	CostPerUnit         float64
	// MissingPrices lists supplies whose current price could not be
	// resolved. Their contribution to the totals is zero.
	MissingPrices []int64
}

type DeltaStatus string

const (
	DeltaModified DeltaStatus = "modified"
	DeltaAdded    DeltaStatus = "added"
	DeltaRemoved  DeltaStatus = "removed"
)

type IngredientDelta struct {
	SupplyID             int64
	Name                 string
	OriginalQuantity     float64
	NewQuantity          float64
	QuantityDeltaPercent float64
	CostDelta            float64
	Status               DeltaStatus
}

type SimulationResult struct {
	RecipeID      int64
	OriginalTotal float64
	TestTotal     float64
	TotalDelta    float64
	Deltas        []IngredientDelta
}
