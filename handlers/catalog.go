package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"reelfind/models"
	catalogpkg "reelfind/services/catalog"
)

// queryCoordinator is the slice of the request coordinator the handler
// drives: one input, one observable snapshot.
type queryCoordinator interface {
	SetQuery(query string)
	Retry()
	Snapshot() catalogpkg.Snapshot
}

var _ queryCoordinator = (*catalogpkg.Coordinator)(nil)

// detailsService resolves the details bundle for one title.
type detailsService interface {
	Details(ctx context.Context, contentType models.ContentType, id int64) (*models.DetailsBundle, error)
}

var _ detailsService = (*catalogpkg.Service)(nil)

// trendingSearchLister reads the recorded search-term counter.
type trendingSearchLister interface {
	Trending(ctx context.Context, limit int) ([]models.TrendingSearch, error)
}

type CatalogHandler struct {
	Coordinator queryCoordinator
	Service     detailsService
	SearchLog   trendingSearchLister
}

func NewCatalogHandler(coordinator queryCoordinator, service detailsService, searchLog trendingSearchLister) *CatalogHandler {
	return &CatalogHandler{Coordinator: coordinator, Service: service, SearchLog: searchLog}
}

// Register wires the catalog routes onto the API subrouter.
func (h *CatalogHandler) Register(r *mux.Router) {
	r.HandleFunc("/query", h.Query).Methods(http.MethodGet)
	r.HandleFunc("/retry", h.Retry).Methods(http.MethodPost)
	r.HandleFunc("/state", h.State).Methods(http.MethodGet)
	r.HandleFunc("/details/{type}/{id}", h.Details).Methods(http.MethodGet)
	r.HandleFunc("/trending-searches", h.TrendingSearches).Methods(http.MethodGet)
}

// Query feeds a keystroke into the coordinator and returns the snapshot
// as it stands. Clients poll /api/state (or call Query again) while
// loading is true.
func (h *CatalogHandler) Query(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	h.Coordinator.SetQuery(query)
	writeJSON(w, http.StatusOK, h.Coordinator.Snapshot())
}

// Retry re-submits the current query through the normal coordinator path.
func (h *CatalogHandler) Retry(w http.ResponseWriter, r *http.Request) {
	h.Coordinator.Retry()
	writeJSON(w, http.StatusOK, h.Coordinator.Snapshot())
}

// State returns the observable snapshot without changing anything.
func (h *CatalogHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Coordinator.Snapshot())
}

func (h *CatalogHandler) Details(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var contentType models.ContentType
	switch strings.ToLower(strings.TrimSpace(vars["type"])) {
	case "movie":
		contentType = models.ContentTypeMovie
	case "series", "tv":
		contentType = models.ContentTypeSeries
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be movie or series"})
		return
	}

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	bundle, err := h.Service.Details(r.Context(), contentType, id)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *CatalogHandler) TrendingSearches(w http.ResponseWriter, r *http.Request) {
	if h.SearchLog == nil {
		writeJSON(w, http.StatusOK, []models.TrendingSearch{})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	terms, err := h.SearchLog.Trending(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if terms == nil {
		terms = []models.TrendingSearch{}
	}
	writeJSON(w, http.StatusOK, terms)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
