package costing

import (
	"github.com/erp-tools/costboard/pkg/models/domain"
)

// EffectiveQuantity resolves an ingredient's quantity. A pulse-count
// pair, when present, always overrides the stored quantity:
// pulses * kg-per-pulse, converted kg -> metric ton.
func EffectiveQuantity(ing domain.RecipeIngredient) float64 {
	if ing.PulseCount != nil && ing.KgPerPulse != nil {
		return *ing.PulseCount * *ing.KgPerPulse / 1000
	}
	return ing.Quantity
}

// IngredientsCost sums quantity * unit price across ingredients.
// An unresolved price contributes zero to the total; the supply is
// reported in missing so callers can surface a warning instead of
// silently understating cost.
func IngredientsCost(ingredients []domain.RecipeIngredient) (total float64, missing []int64) {
	for _, ing := range ingredients {
		if ing.PriceMissing {
			missing = append(missing, ing.SupplyID)
		}
		total += EffectiveQuantity(ing) * ing.UnitPrice
	}
	return total, missing
}

// Cost computes a recipe's total and per-output-unit cost under its
// yield model.
//
// per_bank: the per-batch ingredient cost is multiplied by the batch
// count and the bank-only layer is added once. Per-unit cost divides
// by useful length; a non-positive length falls back to the raw total
// (treated as a single unit, not an error).
//
// per_batch / per_m3: total is the ingredient cost and per-unit cost
// divides by output quantity with the same fallback.
func Cost(r domain.Recipe) domain.RecipeCost {
	cost := domain.RecipeCost{RecipeID: r.ID}

	ingredientsCost, missing := IngredientsCost(r.Ingredients)
	cost.IngredientsCost = ingredientsCost
	cost.MissingPrices = missing

	if r.YieldModel == domain.YieldPerBank {
		bankCost, bankMissing := IngredientsCost(r.BankIngredients)
		cost.BankIngredientsCost = bankCost
		cost.MissingPrices = append(cost.MissingPrices, bankMissing...)

		cost.TotalCost = ingredientsCost*float64(r.BatchCount) + bankCost
		if r.UsefulLength > 0 {
			cost.CostPerUnit = cost.TotalCost / r.UsefulLength
		} else {
			cost.CostPerUnit = cost.TotalCost
		}
		return cost
	}

	cost.TotalCost = ingredientsCost
	if r.OutputQuantity > 0 {
		cost.CostPerUnit = cost.TotalCost / r.OutputQuantity
	} else {
		cost.CostPerUnit = cost.TotalCost
	}
	return cost
}
