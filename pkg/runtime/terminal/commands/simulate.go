package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/erp-tools/costboard/pkg/adapters"
	"github.com/erp-tools/costboard/pkg/models/api"
	"github.com/erp-tools/costboard/pkg/models/domain"
)

type SimulateCmd struct {
	opts     *Options
	recipeID int64
	input    string
}

func NewSimulateCmd(opts *Options) *cobra.Command {
	sc := &SimulateCmd{opts: opts}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Diff a recipe against a test ingredient set",
		RunE:  sc.run,
	}

	cmd.Flags().Int64Var(&sc.recipeID, "recipe", 0, "Recipe id to simulate against")
	cmd.Flags().StringVar(&sc.input, "input", "", "Path to a JSON file with the test ingredient set")

	_ = cmd.MarkFlagRequired("recipe")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (sc *SimulateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	raw, err := os.ReadFile(sc.input)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	var req api.SimulateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid test ingredient set: %w", err)
	}

	d, err := openDeps(sc.opts)
	if err != nil {
		return err
	}
	defer d.close()

	test := make([]domain.RecipeIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		test = append(test, adapters.MapApiSimulationIngredientToDomain(ing))
	}

	result, err := d.recipes.Simulate(ctx, sc.recipeID, test)
	if err != nil {
		return fmt.Errorf("failed to run simulation: %w", err)
	}

	return d.reporter.HandleSimulation(result)
}
