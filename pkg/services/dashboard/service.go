package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/erp-tools/costboard/pkg/adapters"
	"github.com/erp-tools/costboard/pkg/models/domain"
	"github.com/erp-tools/costboard/pkg/models/store"
	"github.com/erp-tools/costboard/pkg/services/analytics"
	"github.com/erp-tools/costboard/pkg/store/sqlite/lineitem"
)

// Explorer serves the cost-center dashboard views.
type Explorer interface {
	ListCostCenters(ctx context.Context) ([]domain.CostCenter, error)
	// GetSummary aggregates the period by category and compares the
	// total against the preceding window of equal length.
	GetSummary(ctx context.Context, costCenter string, period domain.Period) (*domain.CostSummary, error)
	GetTopGroups(ctx context.Context, costCenter string, period domain.Period, by string, n int) ([]domain.AggregateBucket, error)
	// AddLineItems stores the items and returns how many were stored.
	// Callers re-read the canonical state afterwards instead of
	// patching their own view.
	AddLineItems(ctx context.Context, costCenter string, items []domain.LineItem) (int, error)
}

type explorer struct {
	items lineitem.Store
}

func NewExplorer(items lineitem.Store) Explorer {
	return &explorer{items: items}
}

func (e *explorer) ListCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	names, err := e.items.ListCostCenters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}

	centers := make([]domain.CostCenter, 0, len(names))
	for _, name := range names {
		centers = append(centers, domain.CostCenter{Name: name})
	}
	return centers, nil
}

func (e *explorer) GetSummary(
	ctx context.Context,
	costCenter string,
	period domain.Period,
) (*domain.CostSummary, error) {
	previous := period.Previous()

	// The two period fetches are independent; both must resolve
	// before the delta is computed.
	var currentRows, previousRows []store.LineItemRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currentRows, err = e.items.GetByPeriod(gctx, costCenter, period.Start, period.End)
		return err
	})
	g.Go(func() error {
		var err error
		previousRows, err = e.items.GetByPeriod(gctx, costCenter, previous.Start, previous.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch cost center %s: %w", costCenter, err)
	}

	current := mapRows(currentRows)
	currentTotal := analytics.Sum(current)
	previousTotal := analytics.Sum(mapRows(previousRows))

	return &domain.CostSummary{
		CostCenter: costCenter,
		Period:     period,
		Total:      analytics.NewPeriodMetric("total_cost", currentTotal, previousTotal, false),
		Count:      len(current),
		ByCategory: analytics.AggregateOrdered(current, analytics.ByCategory),
	}, nil
}

func (e *explorer) GetTopGroups(
	ctx context.Context,
	costCenter string,
	period domain.Period,
	by string,
	n int,
) ([]domain.AggregateBucket, error) {
	rows, err := e.items.GetByPeriod(ctx, costCenter, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("fetch cost center %s: %w", costCenter, err)
	}

	key := analytics.ByGroup
	if by == "category" {
		key = analytics.ByCategory
	}
	return analytics.TopN(analytics.AggregateOrdered(mapRows(rows), key), n), nil
}

func (e *explorer) AddLineItems(
	ctx context.Context,
	costCenter string,
	items []domain.LineItem,
) (int, error) {
	rows := make([]store.LineItemRow, 0, len(items))
	for _, item := range items {
		item.CostCenter = costCenter
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Date.IsZero() {
			item.Date = time.Now().UTC()
		}
		rows = append(rows, adapters.MapDomainLineItemToStore(item))
	}

	if err := e.items.Add(ctx, rows); err != nil {
		return 0, fmt.Errorf("store line items: %w", err)
	}
	return len(rows), nil
}

func mapRows(rows []store.LineItemRow) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, adapters.MapStoreLineItemToDomain(row))
	}
	return items
}
