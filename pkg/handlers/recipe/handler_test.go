package recipe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp-tools/costboard/pkg/format"
	"github.com/erp-tools/costboard/pkg/models/api"
	"github.com/erp-tools/costboard/pkg/models/domain"
	recipestore "github.com/erp-tools/costboard/pkg/store/sqlite/recipe"
)

type mockManagementService struct {
	mock.Mock
}

func (m *mockManagementService) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func (m *mockManagementService) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *mockManagementService) GetRecipeCost(ctx context.Context, id int64) (*domain.RecipeCost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecipeCost), args.Error(1)
}

func (m *mockManagementService) Simulate(
	ctx context.Context,
	id int64,
	test []domain.RecipeIngredient,
) (*domain.SimulationResult, error) {
	args := m.Called(ctx, id, test)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimulationResult), args.Error(1)
}

func (m *mockManagementService) TopRecipes(ctx context.Context, by string, n int) ([]domain.AggregateBucket, error) {
	args := m.Called(ctx, by, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AggregateBucket), args.Error(1)
}

func (m *mockManagementService) SaveRecipe(ctx context.Context, r domain.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func newRouter(svc *mockManagementService) *chi.Mux {
	h := NewHandler(svc, format.NewFormatter("en", "USD"))
	router := chi.NewRouter()
	router.Get("/recipes", h.ListRecipes)
	router.Get("/recipes/top", h.TopRecipes)
	router.Get("/recipes/{id}/cost", h.GetRecipeCost)
	router.Post("/recipes/{id}/simulate", h.Simulate)
	return router
}

func TestGetRecipeCost(t *testing.T) {
	svc := &mockManagementService{}
	svc.On("GetRecipeCost", mock.Anything, int64(1)).Return(&domain.RecipeCost{
		RecipeID:        1,
		IngredientsCost: 350,
		TotalCost:       350,
		CostPerUnit:     35,
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/1/cost", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got api.RecipeCost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 350.0, got.TotalCost)
	assert.Equal(t, "USD 350.00", got.TotalDisplay)
	assert.Equal(t, "USD 35.00", got.PerUnitDisplay)
}

func TestGetRecipeCost_NotFound(t *testing.T) {
	svc := &mockManagementService{}
	svc.On("GetRecipeCost", mock.Anything, int64(404)).Return(nil, recipestore.ErrNotFound)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/404/cost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRecipeCost_BadID(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&mockManagementService{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/recipes/abc/cost", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulate(t *testing.T) {
	svc := &mockManagementService{}
	svc.On("Simulate", mock.Anything, int64(1), mock.MatchedBy(func(test []domain.RecipeIngredient) bool {
		return len(test) == 1 && test[0].SupplyID == 2 && test[0].UnitPrice == 20
	})).Return(&domain.SimulationResult{
		RecipeID:      1,
		OriginalTotal: 50,
		TestTotal:     60,
		TotalDelta:    10,
		Deltas: []domain.IngredientDelta{
			{SupplyID: 2, NewQuantity: 3, QuantityDeltaPercent: 100, CostDelta: 60, Status: domain.DeltaAdded},
			{SupplyID: 1, OriginalQuantity: 5, QuantityDeltaPercent: -100, CostDelta: -50, Status: domain.DeltaRemoved},
		},
	}, nil)

	body := `{"ingredients":[{"supply_id":2,"quantity":3,"unit_price":20}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/1/simulate", strings.NewReader(body))
	newRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got api.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 10.0, got.TotalDelta)
	require.Len(t, got.Deltas, 2)
	assert.Equal(t, "added", got.Deltas[0].Status)
	assert.Equal(t, "removed", got.Deltas[1].Status)
}

func TestSimulate_InvalidBody(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/recipes/1/simulate", strings.NewReader("{"))
		newRouter(&mockManagementService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative quantity", func(t *testing.T) {
		body := `{"ingredients":[{"supply_id":2,"quantity":-1}]}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/recipes/1/simulate", strings.NewReader(body))
		newRouter(&mockManagementService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("dangling pulse field", func(t *testing.T) {
		body := `{"ingredients":[{"supply_id":2,"quantity":1,"pulse_count":4}]}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/recipes/1/simulate", strings.NewReader(body))
		newRouter(&mockManagementService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTopRecipes(t *testing.T) {
	svc := &mockManagementService{}
	svc.On("TopRecipes", mock.Anything, "cost", 5).Return([]domain.AggregateBucket{
		{Key: "expensive", Total: 1000, Count: 1},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/top", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []api.Bucket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "expensive", got[0].Key)
}

func TestTopRecipes_BadBy(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&mockManagementService{}).ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/recipes/top?by=price", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
