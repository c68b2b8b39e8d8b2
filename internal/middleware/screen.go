package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rishabh-adev/myfavmovies/internal/screens"
	"github.com/rishabh-adev/myfavmovies/internal/services"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ListingContextKey is the key for storing the listing controller in context
	ListingContextKey ContextKey = "listing"
	// ScreenIDContextKey is the key for storing the screen ID in context
	ScreenIDContextKey ContextKey = "screenID"
)

// ScreenMiddleware attaches the caller's listing screen to the request,
// mounting a new one when the cookie is missing or the screen has expired.
type ScreenMiddleware struct {
	store        *screens.Store[*services.ListingController]
	newListing   func() *services.ListingController
	cookieName   string
	isProduction bool
}

// NewScreenMiddleware creates a new screen middleware
func NewScreenMiddleware(store *screens.Store[*services.ListingController], newListing func() *services.ListingController, cookieName string, isProduction bool) *ScreenMiddleware {
	if cookieName == "" {
		cookieName = "screen"
	}
	return &ScreenMiddleware{
		store:        store,
		newListing:   newListing,
		cookieName:   cookieName,
		isProduction: isProduction,
	}
}

// Mount ensures a listing screen exists for the request
func (m *ScreenMiddleware) Mount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, listing, ok := m.lookup(r)
		if !ok {
			listing = m.newListing()
			listing.Start(r.Context())
			id = m.store.Create(listing)
			m.SetScreenCookie(w, id.String())
		}

		ctx := context.WithValue(r.Context(), ListingContextKey, listing)
		ctx = context.WithValue(ctx, ScreenIDContextKey, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *ScreenMiddleware) lookup(r *http.Request) (uuid.UUID, *services.ListingController, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return uuid.Nil, nil, false
	}

	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return uuid.Nil, nil, false
	}

	listing, ok := m.store.Get(id)
	if !ok {
		return uuid.Nil, nil, false
	}
	return id, listing, true
}

// GetListingFromContext retrieves the listing controller from request context
func GetListingFromContext(ctx context.Context) (*services.ListingController, bool) {
	listing, ok := ctx.Value(ListingContextKey).(*services.ListingController)
	return listing, ok
}

// GetScreenIDFromContext retrieves the screen ID from request context
func GetScreenIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ScreenIDContextKey).(uuid.UUID)
	return id, ok
}

// SetScreenCookie sets the screen cookie
func (m *ScreenMiddleware) SetScreenCookie(w http.ResponseWriter, screenID string) {
	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    screenID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}
