package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/rishabh-adev/myfavmovies/internal/middleware"
	"github.com/rishabh-adev/myfavmovies/internal/models"
	"github.com/rishabh-adev/myfavmovies/internal/services"
)

const detailErrorMessage = "Error loading movie details."

var sortOptions = []models.SortOption{models.SortPopular, models.SortTopRated}

// PageHandler handles page rendering
type PageHandler struct {
	details     services.DetailFetcher
	images      services.ImageLinker
	locale      *services.Locale
	renderer    *Renderer
	logger      *log.Logger
	waitTimeout time.Duration
}

// NewPageHandler creates a new page handler
func NewPageHandler(details services.DetailFetcher, images services.ImageLinker, locale *services.Locale, renderer *Renderer, logger *log.Logger, waitTimeout time.Duration) *PageHandler {
	if waitTimeout == 0 {
		waitTimeout = 10 * time.Second
	}
	return &PageHandler{
		details:     details,
		images:      images,
		locale:      locale,
		renderer:    renderer,
		logger:      logger,
		waitTimeout: waitTimeout,
	}
}

// BrowseMovies handles GET /movies
func (h *PageHandler) BrowseMovies(w http.ResponseWriter, r *http.Request) {
	listing, ok := middleware.GetListingFromContext(r.Context())
	if !ok {
		http.Error(w, "Screen not mounted", http.StatusInternalServerError)
		return
	}

	h.wait(r.Context(), listing.Wait)

	query := r.URL.Query().Get("q")
	state := listing.State()

	data := map[string]any{
		"PageTitle":   "Movies",
		"Sort":        state.Sort,
		"SortOptions": sortOptions,
		"Movies":      listing.Filter(query),
		"Query":       query,
		"Page":        state.Page,
		"HasMore":     state.HasMore,
		"Loading":     state.Loading,
	}

	h.renderer.RenderPage(w, http.StatusOK, "movies.html", data)
}

// ChangeSort handles POST /movies/sort
func (h *PageHandler) ChangeSort(w http.ResponseWriter, r *http.Request) {
	listing, ok := middleware.GetListingFromContext(r.Context())
	if !ok {
		http.Error(w, "Screen not mounted", http.StatusInternalServerError)
		return
	}

	sort, err := models.ParseSortOption(r.FormValue("sort"))
	if err != nil {
		http.Error(w, "Invalid sort option", http.StatusBadRequest)
		return
	}

	listing.ChangeSort(r.Context(), sort)

	http.Redirect(w, r, "/movies", http.StatusSeeOther)
}

// LoadMore handles POST /movies/more
func (h *PageHandler) LoadMore(w http.ResponseWriter, r *http.Request) {
	listing, ok := middleware.GetListingFromContext(r.Context())
	if !ok {
		http.Error(w, "Screen not mounted", http.StatusInternalServerError)
		return
	}

	if listing.AdvancePage(r.Context()) {
		h.wait(r.Context(), listing.Wait)
	}

	target := "/movies"
	if q := r.FormValue("q"); q != "" {
		target += "?" + url.Values{"q": {q}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// MovieDetails handles GET /details/{id}
func (h *PageHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	detail := services.NewDetailController(h.details, h.logger, r.PathValue("id"))
	detail.Load(r.Context())
	h.wait(r.Context(), detail.Wait)

	data := map[string]any{
		"PageTitle": "Movie",
	}

	switch detail.State() {
	case services.DetailLoaded:
		view := services.NewMovieView(detail.Detail(), h.images, h.locale)
		data["PageTitle"] = view.Title
		data["Movie"] = view
		h.renderer.RenderPage(w, http.StatusOK, "details.html", data)
	case services.DetailFailed:
		data["Error"] = detailErrorMessage
		status := http.StatusBadGateway
		if errors.Is(detail.Err(), models.ErrInvalidIdentifier) {
			status = http.StatusBadRequest
		}
		h.renderer.RenderPage(w, status, "details.html", data)
	default:
		// The fetch outlived the wait. It is not retried; the screen fails.
		data["Error"] = detailErrorMessage
		h.renderer.RenderPage(w, http.StatusGatewayTimeout, "details.html", data)
	}
}

// wait blocks on a controller for at most waitTimeout
func (h *PageHandler) wait(ctx context.Context, wait func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, h.waitTimeout)
	defer cancel()

	if err := wait(ctx); err != nil {
		h.logger.Printf("Gave up waiting for screen data: %v", err)
	}
}
