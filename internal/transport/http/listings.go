package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/puthiwat7/UniMart/internal/app"
	"github.com/puthiwat7/UniMart/internal/domain"
)

// ListingCatalog is the minimal interface needed for the listing endpoints.
type ListingCatalog interface {
	Create(ctx context.Context, in app.CreateListingInput) (domain.Listing, error)
	Get(ctx context.Context, id string) (domain.Listing, error)
	Search(ctx context.Context, filter app.ListingFilter) ([]domain.Listing, error)
	Delete(ctx context.Context, callerID, id string) error
	MarkSold(ctx context.Context, callerID, id string) (domain.Listing, error)
}

// HandleListings returns an HTTP handler for searching and creating
// listings. Browsing is public; posting requires a bearer token.
func HandleListings(svc ListingCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			filter, err := parseListingFilter(r)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
				return
			}
			listings, err := svc.Search(r.Context(), filter)
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
		case http.MethodPost:
			userID := UserID(r.Context())
			if userID == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing or invalid bearer token")
				return
			}

			var req createListingRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			listing, err := svc.Create(r.Context(), app.CreateListingInput{
				SellerID:    userID,
				Title:       req.Title,
				Description: req.Description,
				Price:       req.Price,
				Category:    req.Category,
				College:     req.College,
				ImageURL:    req.ImageURL,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toListingResponse(listing))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleListingByID returns an HTTP handler for a single listing: fetch,
// owner-only delete, and the owner's mark-sold action.
func HandleListingByID(svc ListingCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, sold, ok := parseListingPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if sold {
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			userID := UserID(r.Context())
			if userID == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing or invalid bearer token")
				return
			}
			listing, err := svc.MarkSold(r.Context(), userID, listingID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toListingResponse(listing))
			return
		}

		switch r.Method {
		case http.MethodGet:
			listing, err := svc.Get(r.Context(), listingID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toListingResponse(listing))
		case http.MethodDelete:
			userID := UserID(r.Context())
			if userID == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing or invalid bearer token")
				return
			}
			if err := svc.Delete(r.Context(), userID, listingID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func parseListingPath(path string) (id string, sold bool, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "listings" && parts[1] != "":
		return parts[1], false, true
	case len(parts) == 3 && parts[0] == "listings" && parts[1] != "" && parts[2] == "sold":
		return parts[1], true, true
	default:
		return "", false, false
	}
}

func parseListingFilter(r *http.Request) (app.ListingFilter, error) {
	q := r.URL.Query()
	filter := app.ListingFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		College:  q.Get("college"),
		Sort:     q.Get("sort"),
	}
	if raw := q.Get("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return app.ListingFilter{}, domain.ErrInvalidPrice
		}
		filter.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return app.ListingFilter{}, domain.ErrInvalidPrice
		}
		filter.MaxPrice = &v
	}
	return filter, nil
}

type createListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	College     string  `json:"college"`
	ImageURL    string  `json:"image_url"`
}

type listingResponse struct {
	ID          string     `json:"id"`
	SellerID    string     `json:"seller_id"`
	SellerName  string     `json:"seller_name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	College     string     `json:"college"`
	ImageURL    string     `json:"image_url"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	SoldAt      *time.Time `json:"sold_at,omitempty"`
}

func toListingResponse(listing domain.Listing) listingResponse {
	return listingResponse{
		ID:          listing.ID,
		SellerID:    listing.SellerID,
		SellerName:  listing.SellerName,
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Category:    listing.Category,
		College:     listing.College,
		ImageURL:    listing.ImageURL,
		Status:      string(listing.Status),
		CreatedAt:   listing.CreatedAt,
		SoldAt:      listing.SoldAt,
	}
}
