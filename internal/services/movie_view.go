package services

import (
	"fmt"
	"strings"

	"github.com/rishabh-adev/myfavmovies/internal/models"
)

// ImageLinker turns API image paths into displayable URLs
type ImageLinker interface {
	ImageURL(size, path string) string
}

// CastView is one rendered cast thumbnail
type CastView struct {
	ID         int
	Name       string
	Character  string
	ProfileURL string
}

// MovieView is everything the detail screen displays
type MovieView struct {
	ID          int
	Title       string
	BackdropURL string
	LogoURL     string
	Subtitle    string
	ReleaseDate string
	Runtime     string
	Rating      string
	Body        string
	Homepage    string
	Cast        []CastView
}

// HasCast reports whether the cast section should be rendered
func (v MovieView) HasCast() bool {
	return len(v.Cast) > 0
}

// NewMovieView derives the detail screen contents from a loaded record
func NewMovieView(detail *models.MovieDetail, images ImageLinker, locale *Locale) MovieView {
	view := MovieView{
		ID:          detail.ID,
		Title:       detail.Title,
		BackdropURL: imageOrEmpty(images, BackdropSize, detail.BackdropPath),
		Subtitle:    strings.Join(detail.GenreNames(), ", "),
		ReleaseDate: locale.ShortDate(detail.ReleaseDate),
		Runtime:     FormatRuntime(detail.Runtime),
		Body:        detail.Overview,
		Homepage:    detail.Homepage,
	}

	if view.Body == "" {
		view.Body = detail.Tagline
	}
	if detail.VoteAverage > 0 {
		view.Rating = locale.Rating(detail.VoteAverage, detail.VoteCount)
	}
	if logo, ok := PrimaryLogo(detail.ProductionCompanies); ok {
		view.LogoURL = images.ImageURL(LogoSize, logo)
	}

	for _, member := range detail.Credits.Cast {
		view.Cast = append(view.Cast, CastView{
			ID:         member.ID,
			Name:       member.Name,
			Character:  member.Character,
			ProfileURL: imageOrEmpty(images, ProfileSize, member.ProfilePath),
		})
	}

	return view
}

// PrimaryLogo returns the logo of the first production company that has one
func PrimaryLogo(companies []models.ProductionCompany) (string, bool) {
	for _, company := range companies {
		if company.LogoPath != "" {
			return company.LogoPath, true
		}
	}
	return "", false
}

// FormatRuntime renders minutes as "2h 15min", "2h" or "45min"
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}

	hours, rest := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dmin", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dmin", hours, rest)
	}
}

func imageOrEmpty(images ImageLinker, size, path string) string {
	if path == "" {
		return ""
	}
	return images.ImageURL(size, path)
}
