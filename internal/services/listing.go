package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rishabh-adev/myfavmovies/internal/models"
)

// LoadPage fetches one listing page. Failures are logged and degrade to an
// empty page with no further pages; nothing is retried.
func LoadPage(ctx context.Context, fetcher MovieFetcher, logger Logger, sort models.SortOption, page int) ([]models.MovieSummary, bool) {
	result, err := fetcher.Movies(ctx, sort, page)
	if err != nil {
		logger.Printf("Failed to load %s movies page %d: %v", sort, page, err)
		return []models.MovieSummary{}, false
	}

	return result.Results, page < result.TotalPages
}

// AppendOrReplace merges a freshly loaded page into the accumulated list.
// The first page replaces, later pages append in server order. Duplicates
// across overlapping pages are kept.
func AppendOrReplace(existing, incoming []models.MovieSummary, isFirstPage bool) []models.MovieSummary {
	if isFirstPage {
		return slices.Clone(incoming)
	}

	merged := make([]models.MovieSummary, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	return append(merged, incoming...)
}

// FilterMovies returns the movies whose title contains query, ignoring case.
// An empty query returns every movie. The input is never modified.
func FilterMovies(movies []models.MovieSummary, query string) []models.MovieSummary {
	if query == "" {
		return slices.Clone(movies)
	}

	needle := strings.ToLower(query)
	filtered := make([]models.MovieSummary, 0, len(movies))
	for _, movie := range movies {
		if strings.Contains(strings.ToLower(movie.Title), needle) {
			filtered = append(filtered, movie)
		}
	}
	return filtered
}

// ListingController owns the state of one listing screen: the selected sort,
// the accumulated pages and the single in-flight request.
type ListingController struct {
	fetcher MovieFetcher
	logger  Logger

	mu      sync.Mutex
	started bool
	sort    models.SortOption
	page    int
	movies  []models.MovieSummary
	hasMore bool
	loading bool

	// generation tags every dispatched request; responses carrying an
	// older tag are dropped.
	generation uint64
	// idle is closed whenever no request of the current generation is pending
	idle chan struct{}
}

// NewListingController creates a controller for a screen starting on sort
func NewListingController(fetcher MovieFetcher, logger Logger, sort models.SortOption) *ListingController {
	idle := make(chan struct{})
	close(idle)

	return &ListingController{
		fetcher: fetcher,
		logger:  logger,
		sort:    sort,
		page:    1,
		hasMore: true,
		idle:    idle,
	}
}

// Start loads the first page. Only the first call has any effect.
func (c *ListingController) Start(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return false
	}
	c.started = true
	c.dispatchLocked(ctx)
	return true
}

// ChangeSort switches the listing to sort, discarding every loaded page and
// fetching page 1 again. It reports false when sort is already selected.
func (c *ListingController) ChangeSort(ctx context.Context, sort models.SortOption) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sort == c.sort {
		return false
	}

	c.sort = sort
	c.page = 1
	c.movies = nil
	c.hasMore = true
	c.started = true
	c.dispatchLocked(ctx)
	return true
}

// AdvancePage requests the next page. It reports false and does nothing while
// a request is in flight or once the last page has been reached.
func (c *ListingController) AdvancePage(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.loading || !c.hasMore {
		return false
	}

	c.page++
	c.dispatchLocked(ctx)
	return true
}

// Filter narrows the loaded movies by title without touching the network
func (c *ListingController) Filter(query string) []models.MovieSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	return FilterMovies(c.movies, query)
}

// State returns a snapshot of the screen state
func (c *ListingController) State() models.PageState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.PageState{
		Sort:    c.sort,
		Page:    c.page,
		Movies:  slices.Clone(c.movies),
		HasMore: c.hasMore,
		Loading: c.loading,
	}
}

// Wait blocks until the pending request, if any, has been applied
func (c *ListingController) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatchLocked issues the request for the current sort and page.
// c.mu must be held.
func (c *ListingController) dispatchLocked(ctx context.Context) {
	if !c.loading {
		c.idle = make(chan struct{})
	}
	c.loading = true
	c.generation++

	gen, sort, page := c.generation, c.sort, c.page
	// Requests outlive the caller: nothing is cancelled when a screen goes away.
	ctx = context.WithoutCancel(ctx)

	go func() {
		movies, hasMore := LoadPage(ctx, c.fetcher, c.logger, sort, page)
		c.apply(gen, sort, page, movies, hasMore)
	}()
}

func (c *ListingController) apply(gen uint64, sort models.SortOption, page int, movies []models.MovieSummary, hasMore bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Printf("Discarding stale %s movies page %d response", sort, page)
		return
	}

	c.movies = AppendOrReplace(c.movies, movies, page == 1)
	c.hasMore = hasMore
	c.loading = false
	close(c.idle)
}
