package costcenter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/erp-tools/costboard/pkg/adapters"
	"github.com/erp-tools/costboard/pkg/handlers/respond"
	"github.com/erp-tools/costboard/pkg/models/api"
	"github.com/erp-tools/costboard/pkg/models/domain"
	"github.com/erp-tools/costboard/pkg/services/dashboard"
)

const (
	defaultIntervalDays = 30
	defaultTopN         = 5
)

type Handler struct {
	dashboard dashboard.Explorer
}

func NewHandler(d dashboard.Explorer) *Handler {
	return &Handler{dashboard: d}
}

func (h *Handler) ListCostCenters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	centers, err := h.dashboard.ListCostCenters(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list cost centers")
		respond.Error(w, r, http.StatusInternalServerError, "failed to list cost centers")
		return
	}

	response := make([]api.CostCenter, 0, len(centers))
	for _, c := range centers {
		response = append(response, api.CostCenter{Name: c.Name})
	}
	respond.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) IngestLineItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	center := chi.URLParam(r, "center")

	var req api.IngestLineItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, adapters.MapApiLineItemToDomain(center, item))
	}

	stored, err := h.dashboard.AddLineItems(ctx, center, items)
	if err != nil {
		logger.Error().Err(err).Str("center", center).Msg("failed to store line items")
		respond.Error(w, r, http.StatusInternalServerError, "failed to store line items")
		return
	}
	respond.JSON(w, r, http.StatusCreated, api.IngestLineItemsResponse{Stored: stored})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	center := chi.URLParam(r, "center")

	period, err := parsePeriod(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.dashboard.GetSummary(ctx, center, period)
	if err != nil {
		logger.Error().Err(err).Str("center", center).Msg("failed to build summary")
		respond.Error(w, r, http.StatusInternalServerError, "failed to build summary")
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapCostSummaryDomainToApi(*summary))
}

func (h *Handler) GetTopGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	center := chi.URLParam(r, "center")

	period, err := parsePeriod(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	by := r.URL.Query().Get("by")
	if by == "" {
		by = "group"
	}
	n := defaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respond.Error(w, r, http.StatusBadRequest, "n must be a positive integer")
			return
		}
	}

	groups, err := h.dashboard.GetTopGroups(ctx, center, period, by, n)
	if err != nil {
		logger.Error().Err(err).Str("center", center).Msg("failed to rank groups")
		respond.Error(w, r, http.StatusInternalServerError, "failed to rank groups")
		return
	}
	respond.JSON(w, r, http.StatusOK, api.TopGroupsResponse{
		CostCenter: center,
		By:         by,
		Groups:     adapters.MapBucketsDomainToApi(groups),
	})
}

// parsePeriod reads from/to query parameters (RFC 3339 dates). A
// missing range defaults to the trailing 30 days.
func parsePeriod(r *http.Request) (domain.Period, error) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" && to == "" {
		end := time.Now().UTC()
		return domain.Period{Start: end.AddDate(0, 0, -defaultIntervalDays), End: end}, nil
	}

	start, err := parseDate(from)
	if err != nil {
		return domain.Period{}, err
	}
	end, err := parseDate(to)
	if err != nil {
		return domain.Period{}, err
	}
	if !end.After(start) {
		return domain.Period{}, errInvalidPeriod
	}
	return domain.Period{Start: start, End: end}, nil
}

var errInvalidPeriod = periodError("to must be after from")

type periodError string

func (e periodError) Error() string { return string(e) }

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, periodError("from/to must be RFC 3339 timestamps or YYYY-MM-DD dates")
	}
	return t, nil
}
