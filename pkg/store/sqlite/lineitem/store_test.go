package lineitem

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp-tools/costboard/pkg/models/store"
	"github.com/erp-tools/costboard/pkg/store/sqlite"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func TestLineItemStore_Add(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("success - add records", func(t *testing.T) {
		items := []store.LineItemRow{
			{
				ID:         "item1",
				CostCenter: "plant-a",
				Category:   "utilities",
				GroupKey:   "acme",
				Amount:     120.5,
				Date:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:         "item2",
				CostCenter: "plant-a",
				Category:   "services",
				GroupKey:   "globex",
				Amount:     40,
				Date:       time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			},
		}

		err := f.store.Add(ctx, items)
		require.NoError(t, err)

		var count int
		err = f.db.QueryRow(`SELECT COUNT(*) FROM line_items WHERE cost_center = ?`, "plant-a").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("success - empty records", func(t *testing.T) {
		err := f.store.Add(ctx, nil)
		require.NoError(t, err)
	})

	t.Run("failure - duplicate id within cost center", func(t *testing.T) {
		item := store.LineItemRow{
			ID:         "dup",
			CostCenter: "plant-b",
			Amount:     1,
			Date:       time.Now().UTC(),
		}

		require.NoError(t, f.store.Add(ctx, []store.LineItemRow{item}))
		assert.Error(t, f.store.Add(ctx, []store.LineItemRow{item}))
	})
}

func TestLineItemStore_GetByPeriod(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	items := []store.LineItemRow{
		{ID: "a", CostCenter: "plant-a", Category: "utilities", Amount: 10,
			Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "b", CostCenter: "plant-a", Category: "services", Amount: 20,
			Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "c", CostCenter: "plant-a", Category: "utilities", Amount: 30,
			Date: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "d", CostCenter: "plant-b", Category: "utilities", Amount: 40,
			Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, f.store.Add(ctx, items))

	t.Run("filters by cost center and window", func(t *testing.T) {
		got, err := f.store.GetByPeriod(ctx, "plant-a",
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})

	t.Run("end of window is exclusive", func(t *testing.T) {
		got, err := f.store.GetByPeriod(ctx, "plant-a",
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("no rows yields empty result", func(t *testing.T) {
		got, err := f.store.GetByPeriod(ctx, "plant-z",
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestLineItemStore_ListCostCenters(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, []store.LineItemRow{
		{ID: "a", CostCenter: "plant-b", Amount: 1, Date: time.Now().UTC()},
		{ID: "b", CostCenter: "plant-a", Amount: 1, Date: time.Now().UTC()},
		{ID: "c", CostCenter: "plant-a", Amount: 1, Date: time.Now().UTC()},
	}))

	centers, err := f.store.ListCostCenters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plant-a", "plant-b"}, centers)
}

func TestLineItemStore_AddPrepareError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPrepare("INSERT INTO line_items").WillReturnError(sql.ErrConnDone)

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Add(context.Background(), []store.LineItemRow{
		{ID: "a", CostCenter: "plant-a", Amount: 1, Date: time.Now().UTC()},
	})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
