package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/puthiwat7/UniMart/internal/domain"
)

// FavoriteKeeper is the minimal interface needed for the favorites endpoints.
type FavoriteKeeper interface {
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	List(ctx context.Context, userID string) ([]domain.Listing, error)
}

// HandleFavorites returns an HTTP handler for listing the caller's
// favorites.
func HandleFavorites(svc FavoriteKeeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		listings, err := svc.List(r.Context(), UserID(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]listingResponse, 0, len(listings))
		for _, listing := range listings {
			resp = append(resp, toListingResponse(listing))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleFavoriteByID returns an HTTP handler for adding and removing a
// single favorite.
func HandleFavoriteByID(svc FavoriteKeeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, ok := parseFavoritePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		userID := UserID(r.Context())

		switch r.Method {
		case http.MethodPut:
			if err := svc.Add(r.Context(), userID, listingID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			if err := svc.Remove(r.Context(), userID, listingID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func parseFavoritePath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "favorites" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
