package costcenter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp-tools/costboard/pkg/models/api"
	"github.com/erp-tools/costboard/pkg/models/domain"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) ListCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *mockExplorer) GetSummary(
	ctx context.Context,
	costCenter string,
	period domain.Period,
) (*domain.CostSummary, error) {
	args := m.Called(ctx, costCenter, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostSummary), args.Error(1)
}

func (m *mockExplorer) GetTopGroups(
	ctx context.Context,
	costCenter string,
	period domain.Period,
	by string,
	n int,
) ([]domain.AggregateBucket, error) {
	args := m.Called(ctx, costCenter, period, by, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AggregateBucket), args.Error(1)
}

func (m *mockExplorer) AddLineItems(
	ctx context.Context,
	costCenter string,
	items []domain.LineItem,
) (int, error) {
	args := m.Called(ctx, costCenter, items)
	return args.Int(0), args.Error(1)
}

func newRouter(explorer *mockExplorer) *chi.Mux {
	h := NewHandler(explorer)
	router := chi.NewRouter()
	router.Get("/costcenters", h.ListCostCenters)
	router.Post("/costcenters/{center}/items", h.IngestLineItems)
	router.Get("/costcenters/{center}/summary", h.GetSummary)
	router.Get("/costcenters/{center}/top", h.GetTopGroups)
	return router
}

func TestListCostCenters(t *testing.T) {
	explorer := &mockExplorer{}
	explorer.On("ListCostCenters", mock.Anything).
		Return([]domain.CostCenter{{Name: "plant-a"}}, nil)

	rec := httptest.NewRecorder()
	newRouter(explorer).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/costcenters", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []api.CostCenter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []api.CostCenter{{Name: "plant-a"}}, got)
}

func TestGetSummary(t *testing.T) {
	explorer := &mockExplorer{}
	explorer.On("GetSummary", mock.Anything, "plant-a", mock.MatchedBy(func(p domain.Period) bool {
		return p.Start.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) &&
			p.End.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&domain.CostSummary{
		CostCenter: "plant-a",
		Total:      domain.PeriodMetric{Name: "total_cost", Current: 110, Previous: 100, DeltaPercent: 10},
		Count:      3,
		ByCategory: []domain.AggregateBucket{{Key: "utilities", Total: 90, Count: 2}},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/costcenters/plant-a/summary?from=2025-02-01&to=2025-03-01", nil)
	newRouter(explorer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got api.CostSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "plant-a", got.CostCenter)
	assert.Equal(t, 110.0, got.Total.Current)
	require.Len(t, got.ByCategory, 1)
	assert.Equal(t, "utilities", got.ByCategory[0].Key)
}

func TestGetSummary_InvalidPeriod(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/costcenters/plant-a/summary?from=2025-03-01&to=2025-02-01", nil)
	newRouter(&mockExplorer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTopGroups(t *testing.T) {
	explorer := &mockExplorer{}
	explorer.On("GetTopGroups", mock.Anything, "plant-a", mock.Anything, "group", 2).
		Return([]domain.AggregateBucket{
			{Key: "globex", Total: 90, Count: 1},
			{Key: "acme", Total: 10, Count: 1},
		}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/costcenters/plant-a/top?n=2", nil)
	newRouter(explorer).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got api.TopGroupsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "group", got.By)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "globex", got.Groups[0].Key)
}

func TestIngestLineItems(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		explorer := &mockExplorer{}
		explorer.On("AddLineItems", mock.Anything, "plant-a", mock.Anything).Return(1, nil)

		body := `{"items":[{"category":"utilities","group":"acme","amount":10,"date":"2025-01-10T00:00:00Z"}]}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/costcenters/plant-a/items", strings.NewReader(body))
		newRouter(explorer).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got api.IngestLineItemsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 1, got.Stored)
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/costcenters/plant-a/items", strings.NewReader(`{"items":[]}`))
		newRouter(&mockExplorer{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing date", func(t *testing.T) {
		body := `{"items":[{"category":"utilities","amount":10}]}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/costcenters/plant-a/items", strings.NewReader(body))
		newRouter(&mockExplorer{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
