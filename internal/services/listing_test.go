package services

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rishabh-adev/myfavmovies/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitIdle(t *testing.T, c *ListingController) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))
}

func TestLoadPage(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		totalPages  int
		perPage     int
		wantLen     int
		wantHasMore bool
	}{
		{name: "last page", page: 5, totalPages: 5, perPage: 20, wantLen: 20, wantHasMore: false},
		{name: "page before last", page: 4, totalPages: 5, perPage: 20, wantLen: 20, wantHasMore: true},
		{name: "empty page still trusts total", page: 2, totalPages: 5, perPage: 0, wantLen: 0, wantHasMore: true},
		{name: "page past declared total", page: 7, totalPages: 5, perPage: 3, wantLen: 3, wantHasMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := pagedFetcher(tt.totalPages, tt.perPage)
			logger := &recordingLogger{}

			movies, hasMore := LoadPage(context.Background(), fetcher, logger, models.SortPopular, tt.page)

			assert.Len(t, movies, tt.wantLen)
			assert.Equal(t, tt.wantHasMore, hasMore)
			assert.Equal(t, int32(1), fetcher.calls.Load())
			assert.Zero(t, logger.count())
		})
	}
}

func TestLoadPage_FailureDegradesToEmpty(t *testing.T) {
	fetcher := &mockMovieFetcher{
		MoviesFunc: func(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
			return nil, models.ErrTransportOrParse
		},
	}
	logger := &recordingLogger{}

	movies, hasMore := LoadPage(context.Background(), fetcher, logger, models.SortTopRated, 3)

	assert.NotNil(t, movies)
	assert.Empty(t, movies)
	assert.False(t, hasMore)
	assert.Equal(t, int32(1), fetcher.calls.Load(), "failures must not be retried")
	assert.True(t, logger.contains("top_rated movies page 3"))
}

func TestAppendOrReplace(t *testing.T) {
	page1 := moviesFor(models.SortPopular, 1, 3)
	page2 := moviesFor(models.SortPopular, 2, 2)

	t.Run("first page replaces", func(t *testing.T) {
		got := AppendOrReplace(page2, page1, true)
		if diff := cmp.Diff(page1, got); diff != "" {
			t.Errorf("AppendOrReplace() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("later pages append in server order", func(t *testing.T) {
		got := AppendOrReplace(page1, page2, false)
		want := append(slices.Clone(page1), page2...)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("AppendOrReplace() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("overlapping pages keep duplicates", func(t *testing.T) {
		got := AppendOrReplace(page1, page1[1:], false)
		require.Len(t, got, 5)
		assert.Equal(t, got[1], got[3])
		assert.Equal(t, got[2], got[4])
	})

	t.Run("existing list is not modified", func(t *testing.T) {
		existing := slices.Clip(slices.Clone(page1))
		before := slices.Clone(existing)
		_ = AppendOrReplace(existing, page2, false)
		assert.Equal(t, before, existing)
	})
}

func TestFilterMovies(t *testing.T) {
	movies := []models.MovieSummary{
		{ID: 1, Title: "The Dark Knight"},
		{ID: 2, Title: "Dark Waters"},
		{ID: 3, Title: "Inception"},
		{ID: 4, Title: "KNIGHT and Day"},
	}
	original := slices.Clone(movies)

	tests := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{name: "empty query returns everything", query: "", wantIDs: []int{1, 2, 3, 4}},
		{name: "case insensitive", query: "dark", wantIDs: []int{1, 2}},
		{name: "upper case query", query: "KNIGHT", wantIDs: []int{1, 4}},
		{name: "inner substring", query: "cept", wantIDs: []int{3}},
		{name: "no match", query: "matrix", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterMovies(movies, tt.query)

			ids := []int{}
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			again := FilterMovies(got, tt.query)
			assert.Equal(t, got, again, "filter must be idempotent")
			assert.Equal(t, original, movies, "filter must not mutate its input")
		})
	}
}

func TestListingController_Start(t *testing.T) {
	fetcher := pagedFetcher(3, 4)
	c := NewListingController(fetcher, &recordingLogger{}, models.SortPopular)

	assert.False(t, c.AdvancePage(context.Background()), "no page advance before the screen is mounted")

	require.True(t, c.Start(context.Background()))
	waitIdle(t, c)

	state := c.State()
	assert.Equal(t, models.SortPopular, state.Sort)
	assert.Equal(t, 1, state.Page)
	assert.True(t, state.HasMore)
	assert.False(t, state.Loading)
	assert.Equal(t, moviesFor(models.SortPopular, 1, 4), state.Movies)

	assert.False(t, c.Start(context.Background()))
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestListingController_AccumulatesPages(t *testing.T) {
	fetcher := pagedFetcher(3, 2)
	c := NewListingController(fetcher, &recordingLogger{}, models.SortPopular)

	c.Start(context.Background())
	waitIdle(t, c)

	for page := 2; page <= 3; page++ {
		require.True(t, c.AdvancePage(context.Background()))
		waitIdle(t, c)
	}

	var want []models.MovieSummary
	for page := 1; page <= 3; page++ {
		want = append(want, moviesFor(models.SortPopular, page, 2)...)
	}

	state := c.State()
	if diff := cmp.Diff(want, state.Movies); diff != "" {
		t.Errorf("accumulated movies mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, state.Page)
	assert.False(t, state.HasMore)

	// saturated: no further requests
	assert.False(t, c.AdvancePage(context.Background()))
	assert.False(t, c.AdvancePage(context.Background()))
	assert.Equal(t, int32(3), fetcher.calls.Load())
	assert.Equal(t, 3, c.State().Page)
}

func TestListingController_AdvancePageWhileLoading(t *testing.T) {
	release := make(chan struct{})
	fetcher := &mockMovieFetcher{
		MoviesFunc: func(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
			<-release
			return &models.MoviePage{Page: page, Results: moviesFor(sort, page, 1), TotalPages: 10}, nil
		},
	}
	c := NewListingController(fetcher, &recordingLogger{}, models.SortPopular)

	c.Start(context.Background())
	require.True(t, c.State().Loading)

	assert.False(t, c.AdvancePage(context.Background()))
	assert.False(t, c.AdvancePage(context.Background()))

	close(release)
	waitIdle(t, c)

	state := c.State()
	assert.Equal(t, 1, state.Page)
	assert.Len(t, state.Movies, 1)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestListingController_FailedLaterPageKeepsList(t *testing.T) {
	fetcher := &mockMovieFetcher{
		MoviesFunc: func(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
			if page == 2 {
				return nil, errors.New("connection reset")
			}
			return &models.MoviePage{Page: page, Results: moviesFor(sort, page, 3), TotalPages: 5}, nil
		},
	}
	logger := &recordingLogger{}
	c := NewListingController(fetcher, logger, models.SortPopular)

	c.Start(context.Background())
	waitIdle(t, c)
	require.True(t, c.AdvancePage(context.Background()))
	waitIdle(t, c)

	state := c.State()
	assert.Equal(t, moviesFor(models.SortPopular, 1, 3), state.Movies)
	assert.False(t, state.HasMore)
	assert.False(t, c.AdvancePage(context.Background()))
	assert.True(t, logger.contains("connection reset"))
}

func TestListingController_ChangeSort(t *testing.T) {
	fetcher := pagedFetcher(5, 2)
	c := NewListingController(fetcher, &recordingLogger{}, models.SortPopular)

	c.Start(context.Background())
	waitIdle(t, c)
	c.AdvancePage(context.Background())
	waitIdle(t, c)
	require.Len(t, c.State().Movies, 4)

	t.Run("same sort is a no-op", func(t *testing.T) {
		assert.False(t, c.ChangeSort(context.Background(), models.SortPopular))
		state := c.State()
		assert.Len(t, state.Movies, 4)
		assert.Equal(t, 2, state.Page)
		assert.Equal(t, int32(2), fetcher.calls.Load())
	})

	t.Run("new sort resets and refetches page 1", func(t *testing.T) {
		assert.True(t, c.ChangeSort(context.Background(), models.SortTopRated))
		waitIdle(t, c)

		state := c.State()
		assert.Equal(t, models.SortTopRated, state.Sort)
		assert.Equal(t, 1, state.Page)
		assert.True(t, state.HasMore)
		assert.Equal(t, moviesFor(models.SortTopRated, 1, 2), state.Movies)
		assert.Equal(t, int32(3), fetcher.calls.Load())
	})
}

func TestListingController_ChangeSortRevivesExhaustedListing(t *testing.T) {
	fetcher := pagedFetcher(1, 2)
	c := NewListingController(fetcher, &recordingLogger{}, models.SortPopular)

	c.Start(context.Background())
	waitIdle(t, c)
	require.False(t, c.State().HasMore)

	require.True(t, c.ChangeSort(context.Background(), models.SortTopRated))
	waitIdle(t, c)
	assert.Equal(t, int32(2), fetcher.calls.Load())
	assert.Equal(t, moviesFor(models.SortTopRated, 1, 2), c.State().Movies)
	assert.False(t, c.State().HasMore)
}

func TestListingController_DiscardsStaleResponse(t *testing.T) {
	releasePopular := make(chan struct{})
	fetcher := &mockMovieFetcher{
		MoviesFunc: func(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
			if sort == models.SortPopular {
				<-releasePopular
			}
			return &models.MoviePage{Page: page, Results: moviesFor(sort, page, 2), TotalPages: 4}, nil
		},
	}
	logger := &recordingLogger{}
	c := NewListingController(fetcher, logger, models.SortPopular)

	c.Start(context.Background())
	require.True(t, c.ChangeSort(context.Background(), models.SortTopRated))
	waitIdle(t, c)

	want := moviesFor(models.SortTopRated, 1, 2)
	assert.Equal(t, want, c.State().Movies)

	close(releasePopular)
	require.Eventually(t, func() bool {
		return logger.contains("Discarding stale popular movies page 1")
	}, 2*time.Second, 10*time.Millisecond)

	state := c.State()
	assert.Equal(t, models.SortTopRated, state.Sort)
	assert.Equal(t, want, state.Movies)
	assert.False(t, state.Loading)
	assert.True(t, state.HasMore)
}

func TestListingController_Filter(t *testing.T) {
	fetcher := &mockMovieFetcher{
		MoviesFunc: func(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
			return &models.MoviePage{
				Page: page,
				Results: []models.MovieSummary{
					{ID: 1, Title: "Alien"},
					{ID: 2, Title: "Aliens"},
					{ID: 3, Title: "Heat"},
				},
				TotalPages: 1,
			}, nil
		},
	}
	c := NewListingController(fetcher, &recordingLogger{}, models.SortPopular)
	c.Start(context.Background())
	waitIdle(t, c)

	assert.Len(t, c.Filter("ALIEN"), 2)
	assert.Len(t, c.Filter(""), 3)
	assert.Len(t, c.State().Movies, 3)
	assert.Equal(t, int32(1), fetcher.calls.Load(), "filtering must not hit the network")
}

func TestListingController_WaitHonoursContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	fetcher := &mockMovieFetcher{
		MoviesFunc: func(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
			<-block
			return &models.MoviePage{Page: page, Results: []models.MovieSummary{}, TotalPages: 1}, nil
		},
	}
	c := NewListingController(fetcher, &recordingLogger{}, models.SortPopular)
	c.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Wait(ctx), context.DeadlineExceeded)
}
