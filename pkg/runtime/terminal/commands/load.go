package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/erp-tools/costboard/pkg/models/domain"
	"github.com/erp-tools/costboard/pkg/models/store"
)

// loadFile is the JSON shape accepted by the load command: supplies
// with current prices plus recipes referencing them.
type loadFile struct {
	Supplies []loadSupply `json:"supplies"`
	Recipes  []loadRecipe `json:"recipes"`
}

type loadSupply struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Unit      string   `json:"unit"`
	UnitPrice *float64 `json:"unit_price"`
}

type loadRecipe struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	YieldModel      string           `json:"yield_model"`
	OutputQuantity  float64          `json:"output_quantity"`
	UsefulLength    float64          `json:"useful_length"`
	BatchCount      int              `json:"batch_count"`
	Ingredients     []loadIngredient `json:"ingredients"`
	BankIngredients []loadIngredient `json:"bank_ingredients"`
}

type loadIngredient struct {
	SupplyID   int64    `json:"supply_id"`
	Quantity   float64  `json:"quantity"`
	Unit       string   `json:"unit"`
	PulseCount *float64 `json:"pulse_count"`
	KgPerPulse *float64 `json:"kg_per_pulse"`
}

type LoadCmd struct {
	opts  *Options
	input string
}

func NewLoadCmd(opts *Options) *cobra.Command {
	lc := &LoadCmd{opts: opts}
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load supplies and recipes from a JSON file",
		RunE:  lc.run,
	}

	cmd.Flags().StringVar(&lc.input, "input", "", "Path to the JSON data file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (lc *LoadCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	raw, err := os.ReadFile(lc.input)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	var file loadFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}

	d, err := openDeps(lc.opts)
	if err != nil {
		return err
	}
	defer d.close()

	supplies := make([]store.SupplyRow, 0, len(file.Supplies))
	for _, s := range file.Supplies {
		supplies = append(supplies, store.SupplyRow{
			ID:        s.ID,
			Name:      s.Name,
			Unit:      s.Unit,
			UnitPrice: s.UnitPrice,
		})
	}
	if err := d.supplies.Upsert(ctx, supplies); err != nil {
		return fmt.Errorf("load supplies: %w", err)
	}

	for _, r := range file.Recipes {
		recipe := domain.Recipe{
			ID:             r.ID,
			Name:           r.Name,
			YieldModel:     domain.YieldModel(r.YieldModel),
			OutputQuantity: r.OutputQuantity,
			UsefulLength:   r.UsefulLength,
			BatchCount:     r.BatchCount,
		}
		for _, ing := range r.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, mapLoadIngredient(ing))
		}
		for _, ing := range r.BankIngredients {
			recipe.BankIngredients = append(recipe.BankIngredients, mapLoadIngredient(ing))
		}
		if err := d.recipes.SaveRecipe(ctx, recipe); err != nil {
			return err
		}
	}

	fmt.Fprintf(lc.opts.Output, "loaded %d supplies and %d recipes\n",
		len(file.Supplies), len(file.Recipes))
	return nil
}

func mapLoadIngredient(ing loadIngredient) domain.RecipeIngredient {
	return domain.RecipeIngredient{
		SupplyID:   ing.SupplyID,
		Quantity:   ing.Quantity,
		Unit:       ing.Unit,
		PulseCount: ing.PulseCount,
		KgPerPulse: ing.KgPerPulse,
	}
}
