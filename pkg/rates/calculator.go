package rates

import (
	"context"
	"errors"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CalculatorConfig holds the store-side settings for the pipeline.
type CalculatorConfig struct {
	// OriginID is the region id of the shipping warehouse/store.
	OriginID string

	// SearchLimit caps region search results. 0 uses the default.
	SearchLimit int
}

// CalculationRequest is one shipping recalculation from the checkout.
type CalculationRequest struct {
	SessionID string
	Postcode  string
	Items     []CartItem
}

// Calculator runs the per-checkout calculation pipeline:
// credentials check, postcode validation, destination resolution,
// dimension aggregation, tariff request.
//
// Configuration and validation failures are returned as errors for the
// host to display. Resolution and quote failures degrade to a fallback
// result with a nil error; the calculation never aborts checkout.
type Calculator struct {
	cfg      CalculatorConfig
	provider Provider
	resolver *Resolver
	quoter   *Quoter
	logger   *otelzap.Logger
}

// NewCalculator wires the pipeline over a provider and a session cache.
func NewCalculator(cfg CalculatorConfig, provider Provider, cache RegionCache, logger *otelzap.Logger) *Calculator {
	return &Calculator{
		cfg:      cfg,
		provider: provider,
		resolver: NewResolver(provider, cache, cfg.SearchLimit, logger),
		quoter:   NewQuoter(provider, logger),
		logger:   logger,
	}
}

// Calculate runs the pipeline for one checkout recalculation.
func (c *Calculator) Calculate(ctx context.Context, req CalculationRequest) (RateResult, error) {
	if !c.provider.Configured() {
		return RateResult{}, ErrMissingCredentials
	}
	if c.cfg.OriginID == "" {
		return RateResult{}, ErrMissingOrigin
	}

	match, err := c.resolver.Resolve(ctx, req.SessionID, req.Postcode)
	if err != nil {
		if errors.Is(err, ErrInvalidPostcode) {
			return RateResult{}, err
		}
		c.logger.Info("Falling back after resolution failure",
			zap.String("postcode", req.Postcode),
			zap.Error(err),
		)
		return RateResult{Kind: ResultFallback}, nil
	}

	pkg, complete := AggregateItems(req.Items)
	if !complete {
		c.logger.Warn("Cart items missing weight or dimensions, using defaults",
			zap.String("session_id", req.SessionID),
		)
	}
	pkg, err = pkg.Normalize()
	if err != nil {
		return RateResult{}, err
	}

	quotes, err := c.quoter.Quote(ctx, c.cfg.OriginID, match.RegionID, pkg)
	if err != nil {
		c.logger.Info("Falling back after quote failure",
			zap.String("destination_id", match.RegionID),
			zap.Error(err),
		)
		return RateResult{Kind: ResultFallback, Match: match, Incomplete: !complete}, nil
	}

	return RateResult{
		Kind:       ResultQuotes,
		Quotes:     quotes,
		Match:      match,
		Incomplete: !complete,
	}, nil
}
