// Package respond carries the JSON response helpers shared by all
// handlers.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/erp-tools/costboard/pkg/models/api"
)

func JSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, api.Error{Error: msg})
}
