package recipes

import (
	"context"
	"fmt"

	"github.com/erp-tools/costboard/pkg/adapters"
	"github.com/erp-tools/costboard/pkg/models/domain"
	storemodels "github.com/erp-tools/costboard/pkg/models/store"
	"github.com/erp-tools/costboard/pkg/services/analytics"
	"github.com/erp-tools/costboard/pkg/services/costing"
	"github.com/erp-tools/costboard/pkg/services/simulation"
	"github.com/erp-tools/costboard/pkg/store/sqlite/recipe"
	"github.com/erp-tools/costboard/pkg/store/sqlite/supply"
)

const (
	TopByCost        = "cost"
	TopByIngredients = "ingredients"
)

// ManagementService serves recipe listings, costing, and cost
// simulations. Ingredient prices are resolved against the supply
// store at call time; a supply with no current price contributes zero
// and is reported on the result.
type ManagementService interface {
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error)
	GetRecipeCost(ctx context.Context, id int64) (*domain.RecipeCost, error)
	Simulate(ctx context.Context, id int64, test []domain.RecipeIngredient) (*domain.SimulationResult, error)
	TopRecipes(ctx context.Context, by string, n int) ([]domain.AggregateBucket, error)
	SaveRecipe(ctx context.Context, r domain.Recipe) error
}

type managementService struct {
	recipes  recipe.Store
	supplies supply.Store
}

func NewManagementService(recipes recipe.Store, supplies supply.Store) ManagementService {
	return &managementService{recipes: recipes, supplies: supplies}
}

func (s *managementService) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := s.recipes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	recipes := make([]domain.Recipe, 0, len(rows))
	for _, row := range rows {
		_, ingredients, err := s.recipes.Get(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("load recipe %d: %w", row.ID, err)
		}
		recipes = append(recipes, adapters.MapStoreRecipeToDomain(row, ingredients))
	}
	return recipes, nil
}

func (s *managementService) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	row, ingredients, err := s.recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r := adapters.MapStoreRecipeToDomain(*row, ingredients)
	if err := s.resolvePrices(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *managementService) GetRecipeCost(ctx context.Context, id int64) (*domain.RecipeCost, error) {
	r, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	cost := costing.Cost(*r)
	return &cost, nil
}

// Simulate diffs the recipe's current ingredient set against a test
// set. Test ingredients without an explicit price are priced from the
// supply store, like the originals.
func (s *managementService) Simulate(
	ctx context.Context,
	id int64,
	test []domain.RecipeIngredient,
) (*domain.SimulationResult, error) {
	r, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveIngredients(ctx, test, false)
	if err != nil {
		return nil, err
	}

	result := simulation.Run(id, r.Ingredients, resolved)
	return &result, nil
}

func (s *managementService) TopRecipes(ctx context.Context, by string, n int) ([]domain.AggregateBucket, error) {
	recipes, err := s.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make([]domain.AggregateBucket, 0, len(recipes))
	for _, r := range recipes {
		bucket := domain.AggregateBucket{Key: r.Name, Count: 1}
		switch by {
		case TopByIngredients:
			bucket.Total = float64(len(r.Ingredients) + len(r.BankIngredients))
		default:
			if err := s.resolvePrices(ctx, &r); err != nil {
				return nil, err
			}
			bucket.Total = costing.Cost(r).TotalCost
		}
		buckets = append(buckets, bucket)
	}
	return analytics.TopN(buckets, n), nil
}

func (s *managementService) SaveRecipe(ctx context.Context, r domain.Recipe) error {
	row := storemodels.RecipeRow{
		ID:             r.ID,
		Name:           r.Name,
		YieldModel:     string(r.YieldModel),
		OutputQuantity: r.OutputQuantity,
		UsefulLength:   r.UsefulLength,
		BatchCount:     r.BatchCount,
	}

	var rows []storemodels.IngredientRow
	for i, ing := range r.Ingredients {
		rows = append(rows, mapIngredientToRow(r.ID, ing, false, i))
	}
	for i, ing := range r.BankIngredients {
		rows = append(rows, mapIngredientToRow(r.ID, ing, true, i))
	}

	if err := s.recipes.Save(ctx, row, rows); err != nil {
		return fmt.Errorf("save recipe %d: %w", r.ID, err)
	}
	return nil
}

func (s *managementService) resolvePrices(ctx context.Context, r *domain.Recipe) error {
	var err error
	r.Ingredients, err = s.resolveIngredients(ctx, r.Ingredients, true)
	if err != nil {
		return err
	}
	r.BankIngredients, err = s.resolveIngredients(ctx, r.BankIngredients, true)
	return err
}

// resolveIngredients joins ingredients with current supply prices.
// When overridePrice is false, an ingredient carrying its own price
// keeps it (simulation "what if" prices).
func (s *managementService) resolveIngredients(
	ctx context.Context,
	ingredients []domain.RecipeIngredient,
	overridePrice bool,
) ([]domain.RecipeIngredient, error) {
	if len(ingredients) == 0 {
		return ingredients, nil
	}

	ids := make([]int64, 0, len(ingredients))
	for _, ing := range ingredients {
		ids = append(ids, ing.SupplyID)
	}

	supplies, err := s.supplies.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve supply prices: %w", err)
	}

	resolved := make([]domain.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		sup, known := supplies[ing.SupplyID]
		if known {
			if ing.Name == "" {
				ing.Name = sup.Name
			}
			if ing.Unit == "" {
				ing.Unit = sup.Unit
			}
		}

		hasOwnPrice := !overridePrice && ing.UnitPrice > 0
		if !hasOwnPrice {
			if known && sup.UnitPrice != nil {
				ing.UnitPrice = *sup.UnitPrice
				ing.PriceMissing = false
			} else {
				ing.UnitPrice = 0
				ing.PriceMissing = true
			}
		}
		resolved = append(resolved, ing)
	}
	return resolved, nil
}

func mapIngredientToRow(recipeID int64, ing domain.RecipeIngredient, bank bool, position int) storemodels.IngredientRow {
	return storemodels.IngredientRow{
		RecipeID:   recipeID,
		SupplyID:   ing.SupplyID,
		Quantity:   ing.Quantity,
		Unit:       ing.Unit,
		PulseCount: ing.PulseCount,
		KgPerPulse: ing.KgPerPulse,
		Bank:       bank,
		Position:   position,
	}
}
