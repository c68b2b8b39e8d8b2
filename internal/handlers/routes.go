package handlers

import (
	"net/http"

	"github.com/rishabh-adev/myfavmovies/internal/middleware"
)

// NewRouter wires the screen and JSON routes onto a ServeMux
func NewRouter(pages *PageHandler, api *TMDBHandler, screens *middleware.ScreenMiddleware) *http.ServeMux {
	mux := http.NewServeMux()

	// Listing screen (one per cookie)
	mux.Handle("GET /movies", screens.Mount(http.HandlerFunc(pages.BrowseMovies)))
	mux.Handle("POST /movies/sort", screens.Mount(http.HandlerFunc(pages.ChangeSort)))
	mux.Handle("POST /movies/more", screens.Mount(http.HandlerFunc(pages.LoadMore)))

	// Detail screen
	mux.HandleFunc("GET /details/{id}", pages.MovieDetails)

	// JSON API
	mux.HandleFunc("GET /api/movies", api.ListMovies)
	mux.HandleFunc("GET /api/movies/{id}", api.GetMovie)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/movies", http.StatusFound)
	})

	return mux
}
