package kurir

import (
	"context"
	"strings"
)

// APIClient defines the interface for the Kurir tariff service.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// SearchDestinations searches the region directory by free-text postcode
	SearchDestinations(ctx context.Context, req *SearchRequest) (*SearchResponse, error)

	// GetTariff fetches priced shipping services for one parcel
	GetTariff(ctx context.Context, req *TariffRequest) (*TariffResponse, error)
}

// ============================================================================
// API Request/Response Types (match the Kurir REST contract)
// ============================================================================

// FlexID accepts a region identifier encoded as a JSON number or string.
type FlexID string

// UnmarshalJSON strips quoting so both encodings normalize to a string.
func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*f = FlexID(s)
	return nil
}

// SearchRequest represents a region search.
// POST /destination/search endpoint
type SearchRequest struct {
	Search string `json:"search"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// Destination is one region candidate from the search endpoint. Older
// deployments return subdistrict_id, newer ones plain id; either works.
type Destination struct {
	SubdistrictID   FlexID `json:"subdistrict_id,omitempty"`
	ID              FlexID `json:"id,omitempty"`
	PostCode        string `json:"post_code"`
	SubdistrictName string `json:"subdistrict_name,omitempty"`
	City            string `json:"city,omitempty"`
	Province        string `json:"province,omitempty"`
}

// RegionID returns whichever identifier field is present.
func (d Destination) RegionID() string {
	if d.SubdistrictID != "" {
		return string(d.SubdistrictID)
	}
	return string(d.ID)
}

// DisplayName composes a human-readable region name.
func (d Destination) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.SubdistrictName, d.City, d.Province} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// SearchResponse is the region search envelope.
type SearchResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    []Destination `json:"data"`
}

// TariffRequest represents a tariff quote request.
// POST /tariff endpoint. All fields are integers per the wire contract;
// weight is in grams, dimensions in centimeters.
type TariffRequest struct {
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
	Weight      int `json:"weight"`
	Length      int `json:"length"`
	Width       int `json:"width"`
	Height      int `json:"height"`
}

// TariffRecord is one priced service inside a category. Total is a
// pointer so a missing field is distinguishable from a zero price.
type TariffRecord struct {
	Total       *float64 `json:"total"`
	CourierName string   `json:"courier_name"`
	Service     string   `json:"service"`
	ETD         string   `json:"etd"`
}

// TariffResponse is the tariff envelope. Data maps a service category
// ("regular", "next day", "same day", "cargo", ...) to its rate records.
type TariffResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message,omitempty"`
	Data    map[string][]TariffRecord `json:"data"`
}

// APIError represents an error from the Kurir API.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"` // Field-level errors
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}
