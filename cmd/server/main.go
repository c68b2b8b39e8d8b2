package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rishabh-adev/myfavmovies/internal/config"
	"github.com/rishabh-adev/myfavmovies/internal/handlers"
	"github.com/rishabh-adev/myfavmovies/internal/middleware"
	"github.com/rishabh-adev/myfavmovies/internal/models"
	"github.com/rishabh-adev/myfavmovies/internal/screens"
	"github.com/rishabh-adev/myfavmovies/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := log.New(os.Stdout, "[myfavmovies] ", log.LstdFlags|log.Lshortfile)
	logger.Printf("Starting MyFavMovies in %s mode", cfg.Server.Env)

	locale, err := services.NewLocale(cfg.TMDB.Language)
	if err != nil {
		logger.Fatalf("Failed to resolve locale: %v", err)
	}

	tmdbService := services.NewTMDBService(services.TMDBConfig{
		APIKey:       cfg.TMDB.APIKey,
		BaseURL:      cfg.TMDB.BaseURL,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		Language:     cfg.TMDB.Language,
		Timeout:      cfg.TMDB.Timeout,
	})

	// Listing screens live in memory until they sit idle past the TTL
	screenStore := screens.NewStore[*services.ListingController](cfg.Screens.TTL)
	screenMiddleware := middleware.NewScreenMiddleware(screenStore, func() *services.ListingController {
		return services.NewListingController(tmdbService, logger, models.DefaultSort)
	}, "screen", cfg.IsProduction())

	renderer, err := handlers.NewRenderer(tmdbService, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize renderer: %v", err)
	}

	// Waits outlast the TMDB client timeout so a fetch always settles first
	pageHandler := handlers.NewPageHandler(tmdbService, tmdbService, locale, renderer, logger, cfg.TMDB.Timeout+2*time.Second)
	tmdbHandler := handlers.NewTMDBHandler(tmdbService, tmdbService, logger)

	mux := handlers.NewRouter(pageHandler, tmdbHandler, screenMiddleware)
	handler := middleware.Logger(logger)(mux)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go screenStore.RunSweeper(ctx, logger, time.Minute)

	// Start server in a goroutine
	go func() {
		logger.Printf("Server listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Println("Server exited")
}
