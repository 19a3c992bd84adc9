package rates

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// defaultSearchLimit caps the number of candidates requested from the
// region search endpoint.
const defaultSearchLimit = 25

// Resolver maps a free-text postal code to a carrier region id. It
// consults the session cache first, then runs the remote search results
// through the matcher chain.
type Resolver struct {
	searcher RegionSearcher
	cache    RegionCache
	chain    []Matcher
	limit    int
	logger   *otelzap.Logger
}

// NewResolver creates a resolver with the default matcher chain.
// A limit of 0 uses the default search limit.
func NewResolver(searcher RegionSearcher, cache RegionCache, limit int, logger *otelzap.Logger) *Resolver {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return &Resolver{
		searcher: searcher,
		cache:    cache,
		chain:    DefaultMatchChain(),
		limit:    limit,
		logger:   logger,
	}
}

// Resolve returns the region id for a destination postcode. Transport
// errors, unsuccessful envelopes and empty candidate lists all surface
// as ErrRegionNotFound; the caller decides whether to fall back.
func (r *Resolver) Resolve(ctx context.Context, sessionID, postcode string) (RegionMatch, error) {
	postcode = strings.TrimSpace(postcode)
	if postcode == "" {
		return RegionMatch{}, ErrInvalidPostcode
	}

	if id, ok := r.cache.Get(ctx, sessionID, postcode); ok {
		return RegionMatch{RegionID: id, Kind: MatchCached}, nil
	}

	candidates, err := r.searcher.SearchRegions(ctx, postcode, r.limit, 0)
	if err != nil {
		r.logger.Warn("Region search failed",
			zap.String("postcode", postcode),
			zap.Error(err),
		)
		return RegionMatch{}, fmt.Errorf("%w: %v", ErrRegionNotFound, err)
	}
	if len(candidates) == 0 {
		return RegionMatch{}, fmt.Errorf("%w: no candidates for %q", ErrRegionNotFound, postcode)
	}

	match, ok := MatchRegion(postcode, candidates, r.chain)
	if !ok {
		return RegionMatch{}, fmt.Errorf("%w: no candidate with a region id for %q", ErrRegionNotFound, postcode)
	}

	r.cache.Put(ctx, sessionID, postcode, match.RegionID)
	r.logger.Info("Destination resolved",
		zap.String("postcode", postcode),
		zap.String("region_id", match.RegionID),
		zap.String("match_kind", string(match.Kind)),
	)
	return match, nil
}
