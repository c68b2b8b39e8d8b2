package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/rishabh-adev/myfavmovies/internal/models"
	"github.com/rishabh-adev/myfavmovies/internal/services"
)

// MoviesResponse is the body of GET /api/movies
type MoviesResponse struct {
	Results []models.MovieSummary `json:"results"`
	Page    int                   `json:"page"`
	HasMore bool                  `json:"has_more"`
}

// TMDBHandler exposes the two flows as JSON
type TMDBHandler struct {
	movies  services.MovieFetcher
	details services.DetailFetcher
	logger  *log.Logger
}

// NewTMDBHandler creates a new TMDB handler
func NewTMDBHandler(movies services.MovieFetcher, details services.DetailFetcher, logger *log.Logger) *TMDBHandler {
	return &TMDBHandler{
		movies:  movies,
		details: details,
		logger:  logger,
	}
}

// ListMovies handles GET /api/movies
func (h *TMDBHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	sort := models.DefaultSort
	if raw := r.URL.Query().Get("sort"); raw != "" {
		parsed, err := models.ParseSortOption(raw)
		if err != nil {
			http.Error(w, `{"error":"Invalid sort option"}`, http.StatusBadRequest)
			return
		}
		sort = parsed
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	results, hasMore := services.LoadPage(r.Context(), h.movies, h.logger, sort, page)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MoviesResponse{
		Results: results,
		Page:    page,
		HasMore: hasMore,
	})
}

// GetMovie handles GET /api/movies/{id}
func (h *TMDBHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	detail := services.NewDetailController(h.details, h.logger, r.PathValue("id"))
	detail.Load(r.Context())
	if err := detail.Wait(r.Context()); err != nil {
		http.Error(w, `{"error":"Request cancelled"}`, http.StatusGatewayTimeout)
		return
	}

	if detail.State() == services.DetailFailed {
		if errors.Is(detail.Err(), models.ErrInvalidIdentifier) {
			http.Error(w, `{"error":"Invalid movie ID"}`, http.StatusBadRequest)
			return
		}
		http.Error(w, `{"error":"Failed to fetch movie"}`, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail.Detail())
}
