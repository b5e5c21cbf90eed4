package recipe

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/erp-tools/costboard/pkg/adapters"
	"github.com/erp-tools/costboard/pkg/format"
	"github.com/erp-tools/costboard/pkg/handlers/respond"
	"github.com/erp-tools/costboard/pkg/models/api"
	"github.com/erp-tools/costboard/pkg/models/domain"
	"github.com/erp-tools/costboard/pkg/services/recipes"
	recipestore "github.com/erp-tools/costboard/pkg/store/sqlite/recipe"
)

const defaultTopN = 5

type Handler struct {
	recipes   recipes.ManagementService
	formatter *format.Formatter
}

func NewHandler(svc recipes.ManagementService, formatter *format.Formatter) *Handler {
	return &Handler{recipes: svc, formatter: formatter}
}

func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	list, err := h.recipes.ListRecipes(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list recipes")
		respond.Error(w, r, http.StatusInternalServerError, "failed to list recipes")
		return
	}

	response := make([]api.Recipe, 0, len(list))
	for _, rec := range list {
		response = append(response, adapters.MapRecipeDomainToApi(rec))
	}
	respond.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) TopRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	by := r.URL.Query().Get("by")
	if by == "" {
		by = recipes.TopByCost
	}
	if by != recipes.TopByCost && by != recipes.TopByIngredients {
		respond.Error(w, r, http.StatusBadRequest, "by must be cost or ingredients")
		return
	}

	n := defaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		var err error
		n, err = strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.Error(w, r, http.StatusBadRequest, "n must be a positive integer")
			return
		}
	}

	top, err := h.recipes.TopRecipes(ctx, by, n)
	if err != nil {
		logger.Error().Err(err).Msg("failed to rank recipes")
		respond.Error(w, r, http.StatusInternalServerError, "failed to rank recipes")
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBucketsDomainToApi(top))
}

func (h *Handler) GetRecipeCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	id, err := recipeID(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cost, err := h.recipes.GetRecipeCost(ctx, id)
	if errors.Is(err, recipestore.ErrNotFound) {
		respond.Error(w, r, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("recipe_id", id).Msg("failed to compute recipe cost")
		respond.Error(w, r, http.StatusInternalServerError, "failed to compute recipe cost")
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapRecipeCostDomainToApi(*cost, h.formatter))
}

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	id, err := recipeID(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req api.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	test := make([]domain.RecipeIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		test = append(test, adapters.MapApiSimulationIngredientToDomain(ing))
	}

	result, err := h.recipes.Simulate(ctx, id, test)
	if errors.Is(err, recipestore.ErrNotFound) {
		respond.Error(w, r, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("recipe_id", id).Msg("failed to run simulation")
		respond.Error(w, r, http.StatusInternalServerError, "failed to run simulation")
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapSimulationResultDomainToApi(*result))
}

func recipeID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

var errInvalidID = errors.New("id must be a positive integer")
