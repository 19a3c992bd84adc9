package rates

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Quoter requests tariff quotes for a resolved origin/destination pair.
type Quoter struct {
	provider TariffProvider
	logger   *otelzap.Logger
}

// NewQuoter creates a quoter over the given provider.
func NewQuoter(provider TariffProvider, logger *otelzap.Logger) *Quoter {
	return &Quoter{provider: provider, logger: logger}
}

// Quote returns the usable rate quotes for the shipment, or ErrNoRates
// when the remote call fails or every record was filtered out.
func (q *Quoter) Quote(ctx context.Context, originID, destinationID string, pkg Package) ([]RateQuote, error) {
	if originID == "" {
		return nil, ErrMissingOrigin
	}
	if destinationID == "" {
		return nil, fmt.Errorf("%w: empty destination id", ErrRegionNotFound)
	}
	if pkg.Weight <= 0 || pkg.Length <= 0 || pkg.Width <= 0 || pkg.Height <= 0 {
		return nil, fmt.Errorf("%w: all package fields must be positive", ErrInvalidPackage)
	}

	quotes, err := q.provider.GetTariffs(ctx, originID, destinationID, pkg)
	if err != nil {
		q.logger.Warn("Tariff request failed",
			zap.String("origin_id", originID),
			zap.String("destination_id", destinationID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrNoRates, err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: tariff response had no usable records", ErrNoRates)
	}
	return quotes, nil
}
