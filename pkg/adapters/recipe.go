package adapters

import (
	"github.com/erp-tools/costboard/pkg/format"
	"github.com/erp-tools/costboard/pkg/models/api"
	"github.com/erp-tools/costboard/pkg/models/domain"
	"github.com/erp-tools/costboard/pkg/models/store"
)

func MapStoreRecipeToDomain(row store.RecipeRow, ingredients []store.IngredientRow) domain.Recipe {
	recipe := domain.Recipe{
		ID:             row.ID,
		Name:           row.Name,
		YieldModel:     domain.YieldModel(row.YieldModel),
		OutputQuantity: row.OutputQuantity,
		UsefulLength:   row.UsefulLength,
		BatchCount:     row.BatchCount,
	}

	for _, ing := range ingredients {
		mapped := domain.RecipeIngredient{
			SupplyID:   ing.SupplyID,
			Quantity:   ing.Quantity,
			Unit:       ing.Unit,
			PulseCount: ing.PulseCount,
			KgPerPulse: ing.KgPerPulse,
		}
		if ing.Bank {
			recipe.BankIngredients = append(recipe.BankIngredients, mapped)
		} else {
			recipe.Ingredients = append(recipe.Ingredients, mapped)
		}
	}
	return recipe
}

func MapRecipeDomainToApi(r domain.Recipe) api.Recipe {
	return api.Recipe{
		ID:              r.ID,
		Name:            r.Name,
		YieldModel:      string(r.YieldModel),
		IngredientCount: len(r.Ingredients) + len(r.BankIngredients),
	}
}

func MapRecipeCostDomainToApi(c domain.RecipeCost, f *format.Formatter) api.RecipeCost {
	cost := api.RecipeCost{
		RecipeID:            c.RecipeID,
		IngredientsCost:     c.IngredientsCost,
		BankIngredientsCost: c.BankIngredientsCost,
		TotalCost:           c.TotalCost,
		CostPerUnit:         c.CostPerUnit,
		MissingPrices:       c.MissingPrices,
	}
	if f != nil {
		cost.TotalDisplay = f.Money(c.TotalCost)
		cost.PerUnitDisplay = f.Money(c.CostPerUnit)
	}
	return cost
}

func MapApiSimulationIngredientToDomain(ing api.SimulationIngredient) domain.RecipeIngredient {
	mapped := domain.RecipeIngredient{
		SupplyID:   ing.SupplyID,
		Quantity:   ing.Quantity,
		PulseCount: ing.PulseCount,
		KgPerPulse: ing.KgPerPulse,
	}
	if ing.UnitPrice != nil {
		mapped.UnitPrice = *ing.UnitPrice
	}
	return mapped
}

func MapSimulationResultDomainToApi(r domain.SimulationResult) api.SimulationResult {
	result := api.SimulationResult{
		RecipeID:      r.RecipeID,
		OriginalTotal: r.OriginalTotal,
		TestTotal:     r.TestTotal,
		TotalDelta:    r.TotalDelta,
		Deltas:        []api.IngredientDelta{},
	}
	for _, d := range r.Deltas {
		result.Deltas = append(result.Deltas, api.IngredientDelta{
			SupplyID:             d.SupplyID,
			Name:                 d.Name,
			OriginalQuantity:     d.OriginalQuantity,
			NewQuantity:          d.NewQuantity,
			QuantityDeltaPercent: d.QuantityDeltaPercent,
			CostDelta:            d.CostDelta,
			Status:               string(d.Status),
		})
	}
	return result
}
