// Package rates implements shipping-rate lookup for checkout flows:
// postcode-to-region resolution, tariff quoting and rate presentation,
// with a fixed-cost fallback when the remote tariff service is unavailable.
package rates

import (
	"context"
)

// RegionSearcher searches the remote region directory for candidates
// matching a free-text postal code.
type RegionSearcher interface {
	// SearchRegions queries the remote search endpoint. The query is sent
	// verbatim; matching against the returned candidates is the caller's job.
	SearchRegions(ctx context.Context, query string, limit, offset int) ([]RegionCandidate, error)
}

// TariffProvider requests priced shipping services for a resolved
// origin/destination pair and an aggregate package.
type TariffProvider interface {
	// GetTariffs returns one quote per usable rate record. An empty result
	// or any transport/contract failure is reported as an error.
	GetTariffs(ctx context.Context, originID, destinationID string, pkg Package) ([]RateQuote, error)
}

// Provider is the full remote courier API surface consumed by the
// calculation pipeline.
type Provider interface {
	RegionSearcher
	TariffProvider

	// Name returns the provider identifier.
	Name() string

	// Configured reports whether the provider has the credentials it
	// needs to make remote calls.
	Configured() bool
}

// RegionCache stores resolved region ids for the lifetime of a checkout
// session so repeated recalculations skip the remote search.
type RegionCache interface {
	Get(ctx context.Context, sessionID, postcode string) (string, bool)
	Put(ctx context.Context, sessionID, postcode, regionID string)
}

// RateRegistrar receives presented rates. The host checkout adapter
// implements this to surface options to the customer.
type RateRegistrar interface {
	AddRate(quote RateQuote) error
}
