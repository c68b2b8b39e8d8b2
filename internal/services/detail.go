package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rishabh-adev/myfavmovies/internal/models"
)

// DetailState is the lifecycle of one detail screen
type DetailState int

const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailLoaded
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailIdle:
		return "idle"
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	default:
		return fmt.Sprintf("DetailState(%d)", int(s))
	}
}

// ParseMovieID parses the route parameter handed over by the listing screen
func ParseMovieID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidIdentifier, raw)
	}
	return id, nil
}

// DetailController loads a single movie record exactly once
type DetailController struct {
	fetcher DetailFetcher
	logger  Logger
	rawID   string

	once   sync.Once
	done   chan struct{}
	mu     sync.Mutex
	state  DetailState
	detail *models.MovieDetail
	err    error
}

// NewDetailController creates a controller for the movie named by rawID
func NewDetailController(fetcher DetailFetcher, logger Logger, rawID string) *DetailController {
	return &DetailController{
		fetcher: fetcher,
		logger:  logger,
		rawID:   rawID,
		done:    make(chan struct{}),
		state:   DetailIdle,
	}
}

// Load moves the controller out of Idle. An invalid id fails immediately
// without touching the network; later calls are no-ops.
func (c *DetailController) Load(ctx context.Context) {
	c.once.Do(func() {
		id, err := ParseMovieID(c.rawID)
		if err != nil {
			c.logger.Printf("Failed to load movie details: %v", err)
			c.finish(nil, err)
			return
		}

		c.mu.Lock()
		c.state = DetailLoading
		c.mu.Unlock()

		ctx := context.WithoutCancel(ctx)
		go func() {
			detail, err := c.fetcher.MovieDetails(ctx, id)
			if err != nil {
				c.logger.Printf("Failed to fetch movie %d details: %v", id, err)
				c.finish(nil, err)
				return
			}
			c.finish(detail, nil)
		}()
	})
}

func (c *DetailController) finish(detail *models.MovieDetail, err error) {
	c.mu.Lock()
	if err != nil {
		c.state = DetailFailed
		c.err = err
	} else {
		c.state = DetailLoaded
		c.detail = detail
	}
	c.mu.Unlock()
	close(c.done)
}

// Wait blocks until the controller reaches Loaded or Failed
func (c *DetailController) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current lifecycle state
func (c *DetailController) State() DetailState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Detail returns the loaded record, nil unless the state is Loaded
func (c *DetailController) Detail() *models.MovieDetail {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detail
}

// Err returns the failure that moved the controller to Failed
func (c *DetailController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
