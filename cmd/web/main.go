package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/erp-tools/costboard/pkg/format"
	"github.com/erp-tools/costboard/pkg/server"
	"github.com/erp-tools/costboard/pkg/services/config"
	"github.com/erp-tools/costboard/pkg/services/dashboard"
	"github.com/erp-tools/costboard/pkg/services/recipes"
	"github.com/erp-tools/costboard/pkg/store/sqlite"
	"github.com/erp-tools/costboard/pkg/store/sqlite/lineitem"
	"github.com/erp-tools/costboard/pkg/store/sqlite/prefs"
	"github.com/erp-tools/costboard/pkg/store/sqlite/recipe"
	"github.com/erp-tools/costboard/pkg/store/sqlite/supply"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the cost analytics web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the YAML config file (defaults + COSTBOARD_* env vars apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: cfg.Database.Path})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	itemStore, err := lineitem.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create line item store: %w", err)
	}
	recipeStore, err := recipe.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create recipe store: %w", err)
	}
	supplyStore, err := supply.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create supply store: %w", err)
	}
	prefStore, err := prefs.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create preference store: %w", err)
	}

	logger.Info().Str("db", cfg.Database.Path).Msg("database ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Dashboard: dashboard.NewExplorer(itemStore),
			Recipes:   recipes.NewManagementService(recipeStore, supplyStore),
			Prefs:     prefStore,
			Formatter: format.NewFormatter(cfg.Display.Locale, cfg.Display.Currency),
		},
	})

	return api.Start()
}
