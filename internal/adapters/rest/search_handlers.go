package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"autofinder-client/internal/contextkeys"
	"autofinder-client/internal/core/coordinator"
	"autofinder-client/internal/core/domain"
	"autofinder-client/internal/core/port"
	"autofinder-client/internal/core/querylog"
)

// SearchHandlers — HTTP-фасад над координатором поиска и журналом запросов.
type SearchHandlers struct {
	coordinator *coordinator.Coordinator
	queryLog    *querylog.RecentQueryLog
}

func NewSearchHandlers(c *coordinator.Coordinator, queryLog *querylog.RecentQueryLog) *SearchHandlers {
	return &SearchHandlers{
		coordinator: c,
		queryLog:    queryLog,
	}
}

// HandleSearch обрабатывает POST /api/v1/search
func (h *SearchHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.coordinator.Search(r.Context(), req.Query)

	RespondWithJSON(w, http.StatusOK, toSearchStateResponse(h.coordinator.Snapshot()))
}

// HandleLoad обрабатывает POST /api/v1/cars/load
func (h *SearchHandlers) HandleLoad(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.coordinator.Load(r.Context(), req.toFilterSet())

	RespondWithJSON(w, http.StatusOK, toSearchStateResponse(h.coordinator.Snapshot()))
}

// HandleLoadMore обрабатывает POST /api/v1/cars/load-more
func (h *SearchHandlers) HandleLoadMore(w http.ResponseWriter, r *http.Request) {
	h.coordinator.LoadMore(r.Context())
	RespondWithJSON(w, http.StatusOK, toSearchStateResponse(h.coordinator.Snapshot()))
}

// HandleRefresh обрабатывает POST /api/v1/cars/refresh
func (h *SearchHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.coordinator.Refresh(r.Context())
	RespondWithJSON(w, http.StatusOK, toSearchStateResponse(h.coordinator.Snapshot()))
}

// HandleState обрабатывает GET /api/v1/cars/state
func (h *SearchHandlers) HandleState(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, toSearchStateResponse(h.coordinator.Snapshot()))
}

// HandleDetail обрабатывает GET /api/v1/cars/{carID}
func (h *SearchHandlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	carID, err := strconv.ParseInt(chi.URLParam(r, "carID"), 10, 64)
	if err != nil {
		logger.Warn("Invalid car ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	detail, err := h.coordinator.GetDetail(r.Context(), carID)
	if err != nil {
		writeCatalogError(w, logger, err)
		return
	}

	response := CarDetailResponse{
		CarCardResponse: toCarCard(detail.CarSummary),
		Description:     detail.Description,
		SellerName:      detail.SellerName,
	}
	if !detail.ListedAt.IsZero() {
		response.ListedAt = detail.ListedAt.Format(time.RFC3339)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// HandleSimilar обрабатывает GET /api/v1/cars/{carID}/similar
func (h *SearchHandlers) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	carID, err := strconv.ParseInt(chi.URLParam(r, "carID"), 10, 64)
	if err != nil {
		logger.Warn("Invalid car ID format", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	limit := parseLimit(r, 10)

	cars, err := h.coordinator.GetSimilar(r.Context(), carID, limit)
	if err != nil {
		writeCatalogError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toCarCards(cars))
}

// HandlePopular обрабатывает GET /api/v1/cars/popular
func (h *SearchHandlers) HandlePopular(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	limit := parseLimit(r, 10)

	cars, err := h.coordinator.GetPopular(r.Context(), limit)
	if err != nil {
		writeCatalogError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toCarCards(cars))
}

// HandlePriceAnalysis обрабатывает GET /api/v1/cars/price-analysis?model=
func (h *SearchHandlers) HandlePriceAnalysis(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	model := r.URL.Query().Get("model")
	if model == "" {
		WriteJSONError(w, http.StatusBadRequest, "Query parameter 'model' is required")
		return
	}

	analysis, err := h.coordinator.GetPriceAnalysis(r.Context(), model)
	if err != nil {
		writeCatalogError(w, logger, err)
		return
	}

	response := make([]PriceAnalysisResponse, len(analysis))
	for i, point := range analysis {
		response[i] = PriceAnalysisResponse{
			Year:         point.Year,
			AveragePrice: point.AveragePrice,
			ListingCount: point.ListingCount,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// HandleStatistics обрабатывает GET /api/v1/cars/statistics
func (h *SearchHandlers) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	stats := h.coordinator.Statistics()

	RespondWithJSON(w, http.StatusOK, StatisticsResponse{
		Total:        stats.Total,
		AveragePrice: stats.AveragePrice,
		ByBrand:      stats.ByBrand,
		ByFuel:       stats.ByFuelType,
		ByRegion:     stats.ByRegion,
	})
}

// HandleRecentQueries обрабатывает GET /api/v1/recent-queries
func (h *SearchHandlers) HandleRecentQueries(w http.ResponseWriter, r *http.Request) {
	entries := h.queryLog.Entries()

	response := make([]RecentQueryResponse, len(entries))
	for i, entry := range entries {
		response[i] = RecentQueryResponse{
			Query:       entry.Query,
			SearchedAt:  entry.SearchedAt.Format(time.RFC3339),
			ResultCount: entry.ResultCount,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// HandleClearRecentQueries обрабатывает DELETE /api/v1/recent-queries
func (h *SearchHandlers) HandleClearRecentQueries(w http.ResponseWriter, r *http.Request) {
	h.queryLog.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveRecentQuery обрабатывает DELETE /api/v1/recent-queries/{index}
func (h *SearchHandlers) HandleRemoveRecentQuery(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		logger.Warn("Invalid index format", port.Fields{"error": chi.URLParam(r, "index")})
		WriteJSONError(w, http.StatusBadRequest, "Invalid index format")
		return
	}

	h.queryLog.RemoveAt([]int{index})
	w.WriteHeader(http.StatusNoContent)
}

func parseLimit(r *http.Request, fallback int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		return fallback
	}
	return limit
}

// writeCatalogError маппит вид ошибки каталога в HTTP-статус фасада.
func writeCatalogError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	logger.Error("Catalog request failed", err, nil)

	switch domain.ErrorKindOf(err) {
	case domain.ErrorKindNetworkFailure:
		WriteJSONError(w, http.StatusServiceUnavailable, "Catalog is unreachable")
	case domain.ErrorKindServerError:
		WriteJSONError(w, http.StatusBadGateway, "Catalog returned an error")
	case domain.ErrorKindDecodingError:
		WriteJSONError(w, http.StatusBadGateway, "Catalog returned malformed data")
	default:
		WriteJSONError(w, http.StatusInternalServerError, "Unexpected error")
	}
}
