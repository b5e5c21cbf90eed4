package lineitem

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erp-tools/costboard/pkg/models/store"
	"github.com/erp-tools/costboard/pkg/store/sqlite"
)

type Store interface {
	Add(ctx context.Context, items []store.LineItemRow) error
	GetByPeriod(ctx context.Context, costCenter string, start, end time.Time) ([]store.LineItemRow, error)
	ListCostCenters(ctx context.Context) ([]string, error)
}

// timeLayout is a fixed-width UTC layout so stored dates order
// lexicographically.
const timeLayout = "2006-01-02 15:04:05.000000000"

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) Add(ctx context.Context, items []store.LineItemRow) error {
	if len(items) == 0 {
		return nil
	}

	tx := sqlite.GetTransaction(ctx)
	query := `
		INSERT INTO line_items (id, cost_center, category, group_key, amount, date)
		VALUES (?, ?, ?, ?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.ExecContext(ctx,
			item.ID, item.CostCenter, item.Category, item.GroupKey, item.Amount,
			item.Date.UTC().Format(timeLayout))
		if err != nil {
			return fmt.Errorf("insert line item %s: %w", item.ID, err)
		}
	}
	return nil
}

func (s *defaultStore) GetByPeriod(
	ctx context.Context,
	costCenter string,
	start, end time.Time,
) ([]store.LineItemRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, cost_center, category, group_key, amount, date
		FROM line_items
		WHERE cost_center = ? AND date >= ? AND date < ?
		ORDER BY date, id`,
		costCenter, start.UTC().Format(timeLayout), end.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer rows.Close()

	var items []store.LineItemRow
	for rows.Next() {
		var item store.LineItemRow
		var rawDate string
		err := rows.Scan(&item.ID, &item.CostCenter, &item.Category, &item.GroupKey, &item.Amount, &rawDate)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		item.Date, err = time.ParseInLocation(timeLayout, rawDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse line item date: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *defaultStore) ListCostCenters(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT cost_center FROM line_items ORDER BY cost_center`)
	if err != nil {
		return nil, fmt.Errorf("query cost centers: %w", err)
	}
	defer rows.Close()

	var centers []string
	for rows.Next() {
		var center string
		if err := rows.Scan(&center); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		centers = append(centers, center)
	}
	return centers, rows.Err()
}
