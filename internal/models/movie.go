package models

import "fmt"

// SortOption selects which TMDB listing endpoint is queried
type SortOption string

const (
	SortPopular  SortOption = "popular"
	SortTopRated SortOption = "top_rated"
)

// DefaultSort is the sort a listing screen starts with
const DefaultSort = SortPopular

// ParseSortOption converts a raw form/query value into a SortOption
func ParseSortOption(s string) (SortOption, error) {
	switch SortOption(s) {
	case SortPopular, SortTopRated:
		return SortOption(s), nil
	}
	return "", fmt.Errorf("unknown sort option %q", s)
}

// Label returns the human readable picker label
func (s SortOption) Label() string {
	switch s {
	case SortTopRated:
		return "Top Rated"
	default:
		return "Popular"
	}
}

// MovieSummary is the partial record returned by the listing endpoints
type MovieSummary struct {
	ID           int    `json:"id" validate:"gt=0"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	Title        string `json:"title"`
}

// MoviePage is one decoded page of a listing endpoint
type MoviePage struct {
	Page       int            `json:"page"`
	Results    []MovieSummary `json:"results" validate:"required,dive"`
	TotalPages int            `json:"total_pages" validate:"gte=0"`
}

// Genre is a named movie genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany is a studio credited on a movie
type ProductionCompany struct {
	ID       int    `json:"id"`
	LogoPath string `json:"logo_path"`
	Name     string `json:"name"`
}

// CastMember is one entry of a movie's cast
type CastMember struct {
	ID          int    `json:"id" validate:"gt=0"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// Credits holds the appended credits sub-resource
type Credits struct {
	Cast []CastMember `json:"cast" validate:"dive"`
}

// MovieDetail is the full record fetched for the detail screen
type MovieDetail struct {
	ID                  int                 `json:"id" validate:"gt=0"`
	BackdropPath        string              `json:"backdrop_path"`
	Title               string              `json:"title" validate:"required"`
	Genres              []Genre             `json:"genres"`
	Homepage            string              `json:"homepage"`
	Overview            string              `json:"overview"`
	Tagline             string              `json:"tagline"`
	VoteAverage         float64             `json:"vote_average" validate:"gte=0,lte=10"`
	VoteCount           int                 `json:"vote_count" validate:"gte=0"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             int                 `json:"runtime" validate:"gte=0"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	Credits             Credits             `json:"credits"`
}

// GenreNames returns the genre names in server order
func (m *MovieDetail) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// PageState is the transient state of one listing screen
type PageState struct {
	Sort    SortOption     `json:"sort"`
	Page    int            `json:"page"`
	Movies  []MovieSummary `json:"movies"`
	HasMore bool           `json:"has_more"`
	Loading bool           `json:"loading"`
}
