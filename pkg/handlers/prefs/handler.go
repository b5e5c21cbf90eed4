package prefs

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/erp-tools/costboard/pkg/handlers/respond"
	"github.com/erp-tools/costboard/pkg/models/api"
	prefstore "github.com/erp-tools/costboard/pkg/store/sqlite/prefs"
)

type Handler struct {
	prefs prefstore.Store
}

func NewHandler(store prefstore.Store) *Handler {
	return &Handler{prefs: store}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	user := chi.URLParam(r, "user")
	key := chi.URLParam(r, "key")

	value, found, err := h.prefs.Get(ctx, user, key)
	if err != nil {
		logger.Error().Err(err).Str("user", user).Str("key", key).Msg("failed to read preference")
		respond.Error(w, r, http.StatusInternalServerError, "failed to read preference")
		return
	}
	if !found {
		respond.Error(w, r, http.StatusNotFound, "preference not found")
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Preference{User: user, Key: key, Value: value})
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	user := chi.URLParam(r, "user")
	key := chi.URLParam(r, "key")

	var pref api.Preference
	if err := json.NewDecoder(r.Body).Decode(&pref); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := pref.Validate(); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.prefs.Set(ctx, user, key, pref.Value); err != nil {
		logger.Error().Err(err).Str("user", user).Str("key", key).Msg("failed to store preference")
		respond.Error(w, r, http.StatusInternalServerError, "failed to store preference")
		return
	}
	respond.JSON(w, r, http.StatusOK, api.Preference{User: user, Key: key, Value: pref.Value})
}
