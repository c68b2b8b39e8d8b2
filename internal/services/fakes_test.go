package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rishabh-adev/myfavmovies/internal/models"
)

type mockMovieFetcher struct {
	MoviesFunc func(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error)
	calls      atomic.Int32
}

func (m *mockMovieFetcher) Movies(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
	m.calls.Add(1)
	return m.MoviesFunc(ctx, sort, page)
}

type mockDetailFetcher struct {
	MovieDetailsFunc func(ctx context.Context, movieID int) (*models.MovieDetail, error)
	calls            atomic.Int32
}

func (m *mockDetailFetcher) MovieDetails(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	m.calls.Add(1)
	return m.MovieDetailsFunc(ctx, movieID)
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// moviesFor builds a deterministic page of n movies for sort and page
func moviesFor(sort models.SortOption, page, n int) []models.MovieSummary {
	movies := make([]models.MovieSummary, n)
	for i := range movies {
		movies[i] = models.MovieSummary{
			ID:         page*100 + i + 1,
			Title:      fmt.Sprintf("%s %d-%d", sort, page, i+1),
			PosterPath: fmt.Sprintf("/%s-%d-%d.jpg", sort, page, i+1),
		}
	}
	return movies
}

// pagedFetcher serves totalPages pages of perPage movies for every sort
func pagedFetcher(totalPages, perPage int) *mockMovieFetcher {
	return &mockMovieFetcher{
		MoviesFunc: func(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
			return &models.MoviePage{
				Page:       page,
				Results:    moviesFor(sort, page, perPage),
				TotalPages: totalPages,
			}, nil
		},
	}
}
