package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/puthiwat7/UniMart/internal/app"
)

// SalesLister is the minimal interface needed for the seller dashboard.
type SalesLister interface {
	MySales(ctx context.Context, sellerID string) (app.SalesSummary, error)
}

// HandleMyListings returns an HTTP handler for the caller's own listings
// with active/sold tallies.
func HandleMyListings(svc SalesLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		summary, err := svc.MySales(r.Context(), UserID(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := salesSummaryResponse{
			Listings: make([]listingResponse, 0, len(summary.Listings)),
			Total:    summary.Total,
			Active:   summary.Active,
			Sold:     summary.Sold,
		}
		for _, listing := range summary.Listings {
			resp.Listings = append(resp.Listings, toListingResponse(listing))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type salesSummaryResponse struct {
	Listings []listingResponse `json:"listings"`
	Total    int               `json:"total"`
	Active   int               `json:"active"`
	Sold     int               `json:"sold"`
}
