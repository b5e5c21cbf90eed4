package simulation

import (
	"math"
	"sort"

	"github.com/erp-tools/costboard/pkg/models/domain"
	"github.com/erp-tools/costboard/pkg/services/analytics"
	"github.com/erp-tools/costboard/pkg/services/costing"
)

// priceEpsilon absorbs floating rounding when detecting a price
// change between the original and test ingredient sets. The value is
// carried over from the source system as-is; its precision rationale
// is undocumented there.
const priceEpsilon = 0.01

// Diff compares two ingredient sets joined by supply id and emits one
// delta per changed, added, or removed ingredient, sorted descending
// by absolute cost impact. The cost deltas are conservative: their
// sum equals the test total minus the original total.
func Diff(original, test []domain.RecipeIngredient) []domain.IngredientDelta {
	bySupply := make(map[int64]domain.RecipeIngredient, len(original))
	for _, ing := range original {
		if _, ok := bySupply[ing.SupplyID]; !ok {
			bySupply[ing.SupplyID] = ing
		}
	}

	matched := make(map[int64]bool, len(test))
	var deltas []domain.IngredientDelta

	for _, t := range test {
		o, ok := bySupply[t.SupplyID]
		if !ok {
			newQty := costing.EffectiveQuantity(t)
			deltas = append(deltas, domain.IngredientDelta{
				SupplyID:             t.SupplyID,
				Name:                 t.Name,
				NewQuantity:          newQty,
				QuantityDeltaPercent: 100,
				CostDelta:            newQty * t.UnitPrice,
				Status:               domain.DeltaAdded,
			})
			continue
		}
		matched[t.SupplyID] = true

		oldQty := costing.EffectiveQuantity(o)
		newQty := costing.EffectiveQuantity(t)
		qtyChanged := newQty != oldQty
		priceChanged := math.Abs(t.UnitPrice-o.UnitPrice) > priceEpsilon

		if !qtyChanged && !priceChanged {
			continue
		}

		name := t.Name
		if name == "" {
			name = o.Name
		}
		deltas = append(deltas, domain.IngredientDelta{
			SupplyID:             t.SupplyID,
			Name:                 name,
			OriginalQuantity:     oldQty,
			NewQuantity:          newQty,
			QuantityDeltaPercent: analytics.DeltaPercent(newQty, oldQty),
			CostDelta:            newQty*t.UnitPrice - oldQty*o.UnitPrice,
			Status:               domain.DeltaModified,
		})
	}

	for _, o := range original {
		if matched[o.SupplyID] {
			continue
		}
		oldQty := costing.EffectiveQuantity(o)
		deltas = append(deltas, domain.IngredientDelta{
			SupplyID:             o.SupplyID,
			Name:                 o.Name,
			OriginalQuantity:     oldQty,
			QuantityDeltaPercent: -100,
			CostDelta:            -(oldQty * o.UnitPrice),
			Status:               domain.DeltaRemoved,
		})
	}

	sort.SliceStable(deltas, func(i, j int) bool {
		return math.Abs(deltas[i].CostDelta) > math.Abs(deltas[j].CostDelta)
	})
	return deltas
}

// Run diffs the two sets and wraps the result with the totals the
// deltas reconcile against.
func Run(recipeID int64, original, test []domain.RecipeIngredient) domain.SimulationResult {
	originalTotal, _ := costing.IngredientsCost(original)
	testTotal, _ := costing.IngredientsCost(test)

	return domain.SimulationResult{
		RecipeID:      recipeID,
		OriginalTotal: originalTotal,
		TestTotal:     testTotal,
		TotalDelta:    testTotal - originalTotal,
		Deltas:        Diff(original, test),
	}
}
