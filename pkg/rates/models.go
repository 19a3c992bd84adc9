package rates

// MatchKind identifies which matching strategy resolved a postcode.
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchNumeric  MatchKind = "numeric"
	MatchSimilar  MatchKind = "similar"
	MatchFallback MatchKind = "fallback"
	MatchCached   MatchKind = "cached"
)

// ResultKind tags a calculation outcome so the presentation layer's
// fallback choice is an explicit branch rather than an empty-list check.
type ResultKind string

const (
	ResultQuotes   ResultKind = "quotes"
	ResultFallback ResultKind = "fallback"
)

// Package dimension and weight bounds. Aggregates below the minimums are
// clamped up; aggregates above the maximums are rejected.
const (
	MinWeightKG = 1.0
	MaxWeightKG = 100.0
	MinSideCM   = 10.0
	MaxSideCM   = 300.0
)

// CartItem is one checkout line item with its physical attributes.
// Zero or negative fields mean the product data is missing.
type CartItem struct {
	Weight   float64 // kg
	Length   float64 // cm
	Width    float64 // cm
	Height   float64 // cm
	Quantity int
}

// Package is the aggregate parcel sent to the tariff endpoint.
type Package struct {
	Weight float64 // kg
	Length float64 // cm
	Width  float64 // cm
	Height float64 // cm
}

// RegionCandidate is one entry from the remote region search, normalized
// from the wire representation.
type RegionCandidate struct {
	ID       string
	PostCode string
	Name     string
}

// RegionMatch is the outcome of resolving a postcode. Only RegionID is
// required downstream; Kind and Name are diagnostic.
type RegionMatch struct {
	RegionID string
	Name     string
	Kind     MatchKind
}

// RateQuote is one priced shipping option.
type RateQuote struct {
	ID       string
	Label    string
	Cost     float64
	Courier  string
	Service  string
	ETD      string
	Category string
}

// FallbackRate is the fixed-cost option registered when no real quotes
// are available.
type FallbackRate struct {
	Cost  float64
	Label string
}

// RateResult is the tagged outcome of a shipping calculation.
type RateResult struct {
	Kind   ResultKind
	Quotes []RateQuote

	// Diagnostics for logging and session state.
	Match      RegionMatch
	Incomplete bool // cart items were missing weight or dimensions
}
