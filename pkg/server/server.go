package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	costcenterhandler "github.com/erp-tools/costboard/pkg/handlers/costcenter"
	prefshandler "github.com/erp-tools/costboard/pkg/handlers/prefs"
	recipehandler "github.com/erp-tools/costboard/pkg/handlers/recipe"

	costboardmiddleware "github.com/erp-tools/costboard/pkg/server/middleware"

	"github.com/erp-tools/costboard/pkg/format"
	"github.com/erp-tools/costboard/pkg/services/dashboard"
	"github.com/erp-tools/costboard/pkg/services/recipes"
	"github.com/erp-tools/costboard/pkg/store/sqlite/prefs"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Dashboard dashboard.Explorer
	Recipes   recipes.ManagementService
	Prefs     prefs.Store
	Formatter *format.Formatter
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	ccHandler := costcenterhandler.NewHandler(config.Dependencies.Dashboard)
	rcHandler := recipehandler.NewHandler(config.Dependencies.Recipes, config.Dependencies.Formatter)
	prefHandler := prefshandler.NewHandler(config.Dependencies.Prefs)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(costboardmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/costcenters", ccHandler.ListCostCenters)
		r.Post("/costcenters/{center}/items", ccHandler.IngestLineItems)
		r.Get("/costcenters/{center}/summary", ccHandler.GetSummary)
		r.Get("/costcenters/{center}/top", ccHandler.GetTopGroups)

		r.Get("/recipes", rcHandler.ListRecipes)
		r.Get("/recipes/top", rcHandler.TopRecipes)
		r.Get("/recipes/{id}/cost", rcHandler.GetRecipeCost)
		r.Post("/recipes/{id}/simulate", rcHandler.Simulate)

		r.Get("/preferences/{user}/{key}", prefHandler.Get)
		r.Put("/preferences/{user}/{key}", prefHandler.Set)
	})

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
