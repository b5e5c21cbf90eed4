package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erp-tools/costboard/pkg/models/store"
	"github.com/erp-tools/costboard/pkg/store/sqlite"
)

var ErrNotFound = errors.New("recipe not found")

type Store interface {
	List(ctx context.Context) ([]store.RecipeRow, error)
	// Get returns the recipe header and its ingredient rows ordered by
	// position, bank-only rows included.
	Get(ctx context.Context, id int64) (*store.RecipeRow, []store.IngredientRow, error)
	Save(ctx context.Context, recipe store.RecipeRow, ingredients []store.IngredientRow) error
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) List(ctx context.Context) ([]store.RecipeRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, yield_model, output_quantity, useful_length, batch_count
		FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []store.RecipeRow
	for rows.Next() {
		var r store.RecipeRow
		err := rows.Scan(&r.ID, &r.Name, &r.YieldModel, &r.OutputQuantity, &r.UsefulLength, &r.BatchCount)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

func (s *defaultStore) Get(ctx context.Context, id int64) (*store.RecipeRow, []store.IngredientRow, error) {
	var r store.RecipeRow
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, yield_model, output_quantity, useful_length, batch_count
		FROM recipes WHERE id = ?`, id).
		Scan(&r.ID, &r.Name, &r.YieldModel, &r.OutputQuantity, &r.UsefulLength, &r.BatchCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query recipe %d: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT recipe_id, supply_id, quantity, unit, pulse_count, kg_per_pulse, bank, position
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY bank, position`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []store.IngredientRow
	for rows.Next() {
		var ing store.IngredientRow
		var pulseCount, kgPerPulse sql.NullFloat64
		err := rows.Scan(&ing.RecipeID, &ing.SupplyID, &ing.Quantity, &ing.Unit,
			&pulseCount, &kgPerPulse, &ing.Bank, &ing.Position)
		if err != nil {
			return nil, nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		if pulseCount.Valid {
			ing.PulseCount = &pulseCount.Float64
		}
		if kgPerPulse.Valid {
			ing.KgPerPulse = &kgPerPulse.Float64
		}
		ingredients = append(ingredients, ing)
	}
	return &r, ingredients, rows.Err()
}

func (s *defaultStore) Save(
	ctx context.Context,
	recipe store.RecipeRow,
	ingredients []store.IngredientRow,
) error {
	tx := sqlite.GetTransaction(ctx)
	ownTx := tx == nil
	if ownTx {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (id, name, yield_model, output_quantity, useful_length, batch_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			yield_model = excluded.yield_model,
			output_quantity = excluded.output_quantity,
			useful_length = excluded.useful_length,
			batch_count = excluded.batch_count`,
		recipe.ID, recipe.Name, recipe.YieldModel,
		recipe.OutputQuantity, recipe.UsefulLength, recipe.BatchCount)
	if err != nil {
		return fmt.Errorf("upsert recipe %d: %w", recipe.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
		return fmt.Errorf("clear recipe ingredients: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recipe_ingredients
			(recipe_id, supply_id, quantity, unit, pulse_count, kg_per_pulse, bank, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, ing := range ingredients {
		_, err := stmt.ExecContext(ctx, recipe.ID, ing.SupplyID, ing.Quantity, ing.Unit,
			ing.PulseCount, ing.KgPerPulse, ing.Bank, ing.Position)
		if err != nil {
			return fmt.Errorf("insert recipe ingredient %d: %w", ing.SupplyID, err)
		}
	}

	if ownTx {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
	}
	return nil
}
