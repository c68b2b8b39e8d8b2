package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rishabh-adev/myfavmovies/internal/models"
)

// Image size tokens understood by the TMDB image host
const (
	PosterSize   = "w200"
	BackdropSize = "w780"
	LogoSize     = "w500"
	ProfileSize  = "w200"
)

// MovieFetcher loads one page of a listing endpoint
type MovieFetcher interface {
	Movies(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error)
}

// DetailFetcher loads one full movie record with its cast
type DetailFetcher interface {
	MovieDetails(ctx context.Context, movieID int) (*models.MovieDetail, error)
}

// TMDBService handles interactions with The Movie Database API
type TMDBService struct {
	client       *http.Client
	validate     *validator.Validate
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
}

// TMDBConfig holds TMDB service configuration
type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Language     string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// NewTMDBService creates a new TMDB service
func NewTMDBService(cfg TMDBConfig) *TMDBService {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &TMDBService{
		client:       client,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		language:     cfg.Language,
	}
}

// doRequest performs a GET against the TMDB API and returns the raw body.
// Every failure is wrapped in models.ErrTransportOrParse.
func (s *TMDBService) doRequest(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s%s", s.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", models.ErrTransportOrParse, err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("api_key", s.apiKey)
	if s.language != "" {
		q.Set("language", s.language)
	}
	for key, value := range params {
		q.Set(key, value)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", models.ErrTransportOrParse, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", models.ErrTransportOrParse, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d, body: %s", models.ErrTransportOrParse, resp.StatusCode, string(body))
	}

	return body, nil
}

// decode unmarshals body into v and validates it against its schema tags
func (s *TMDBService) decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: failed to unmarshal response: %w", models.ErrTransportOrParse, err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: malformed response: %w", models.ErrTransportOrParse, err)
	}
	return nil
}

// Movies retrieves one page of the listing selected by sort
func (s *TMDBService) Movies(ctx context.Context, sort models.SortOption, page int) (*models.MoviePage, error) {
	if page < 1 {
		page = 1
	}

	params := map[string]string{
		"page": strconv.Itoa(page),
	}

	body, err := s.doRequest(ctx, "/movie/"+string(sort), params)
	if err != nil {
		return nil, err
	}

	var response models.MoviePage
	if err := s.decode(body, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// MovieDetails retrieves a movie by ID with its credits appended
func (s *TMDBService) MovieDetails(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	if movieID < 1 {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidIdentifier, movieID)
	}

	params := map[string]string{
		"append_to_response": "credits",
	}

	body, err := s.doRequest(ctx, fmt.Sprintf("/movie/%d", movieID), params)
	if err != nil {
		return nil, err
	}

	var movie models.MovieDetail
	if err := s.decode(body, &movie); err != nil {
		return nil, err
	}

	return &movie, nil
}

// ImageURL builds a displayable image URL from a size token and an API path.
// The path is not checked; empty paths are the caller's concern.
func (s *TMDBService) ImageURL(size, path string) string {
	return s.imageBaseURL + "/" + size + path
}
