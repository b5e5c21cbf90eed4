package supply

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erp-tools/costboard/pkg/models/store"
)

// Store is the current-price lookup used to resolve recipe
// ingredient costs.
type Store interface {
	List(ctx context.Context) ([]store.SupplyRow, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]store.SupplyRow, error)
	Upsert(ctx context.Context, supplies []store.SupplyRow) error
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

func (s *defaultStore) List(ctx context.Context) ([]store.SupplyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit, unit_price FROM supplies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query supplies: %w", err)
	}
	defer rows.Close()

	return scanSupplies(rows)
}

func (s *defaultStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]store.SupplyRow, error) {
	if len(ids) == 0 {
		return map[int64]store.SupplyRow{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, name, unit, unit_price FROM supplies WHERE id IN (%s)`, placeholders),
		args...)
	if err != nil {
		return nil, fmt.Errorf("query supplies by ids: %w", err)
	}
	defer rows.Close()

	supplies, err := scanSupplies(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]store.SupplyRow, len(supplies))
	for _, sup := range supplies {
		byID[sup.ID] = sup
	}
	return byID, nil
}

func (s *defaultStore) Upsert(ctx context.Context, supplies []store.SupplyRow) error {
	if len(supplies) == 0 {
		return nil
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO supplies (id, name, unit, unit_price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			unit = excluded.unit,
			unit_price = excluded.unit_price`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, sup := range supplies {
		if _, err := stmt.ExecContext(ctx, sup.ID, sup.Name, sup.Unit, sup.UnitPrice); err != nil {
			return fmt.Errorf("upsert supply %d: %w", sup.ID, err)
		}
	}
	return nil
}

func scanSupplies(rows *sql.Rows) ([]store.SupplyRow, error) {
	var supplies []store.SupplyRow
	for rows.Next() {
		var sup store.SupplyRow
		var price sql.NullFloat64
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Unit, &price); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		if price.Valid {
			sup.UnitPrice = &price.Float64
		}
		supplies = append(supplies, sup)
	}
	return supplies, rows.Err()
}
