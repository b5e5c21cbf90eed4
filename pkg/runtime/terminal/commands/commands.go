package commands

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/erp-tools/costboard/pkg/format"
	"github.com/erp-tools/costboard/pkg/runtime/terminal/export"
	"github.com/erp-tools/costboard/pkg/services/dashboard"
	"github.com/erp-tools/costboard/pkg/services/recipes"
	"github.com/erp-tools/costboard/pkg/store/sqlite"
	"github.com/erp-tools/costboard/pkg/store/sqlite/lineitem"
	"github.com/erp-tools/costboard/pkg/store/sqlite/recipe"
	"github.com/erp-tools/costboard/pkg/store/sqlite/supply"
)

// Options are shared by all subcommands and populated from the root
// command's persistent flags.
type Options struct {
	DbPath   string
	Locale   string
	Currency string
	Output   io.Writer
}

type deps struct {
	db        *sql.DB
	dashboard dashboard.Explorer
	recipes   recipes.ManagementService
	supplies  supply.Store
	reporter  *export.Reporter
}

func openDeps(opts *Options) (*deps, error) {
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: opts.DbPath})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	itemStore, err := lineitem.NewStore(db)
	if err != nil {
		return nil, err
	}
	recipeStore, err := recipe.NewStore(db)
	if err != nil {
		return nil, err
	}
	supplyStore, err := supply.NewStore(db)
	if err != nil {
		return nil, err
	}

	formatter := format.NewFormatter(opts.Locale, opts.Currency)

	return &deps{
		db:        db,
		dashboard: dashboard.NewExplorer(itemStore),
		recipes:   recipes.NewManagementService(recipeStore, supplyStore),
		supplies:  supplyStore,
		reporter:  export.NewReporter(opts.Output, formatter),
	}, nil
}

func (d *deps) close() {
	_ = d.db.Close()
}
