// Package kurir provides integration with the Kurir tariff API.
package kurir

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/manavdhamecha77/fastrac-shipping/pkg/rates"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const providerName = "kurir"

// Config holds Kurir configuration.
type Config struct {
	AccessKey string
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
	UseMock   bool // When true, uses mock API client
}

// Client is the Kurir provider client.
// It implements the rates.Provider interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Kurir client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:   cfg.BaseURL,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Timeout:   cfg.Timeout,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new Kurir client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return providerName
}

// Configured reports whether remote calls can be authenticated.
func (c *Client) Configured() bool {
	if c.config.UseMock {
		return true
	}
	return c.config.AccessKey != "" && c.config.SecretKey != ""
}

// SearchRegions queries the Kurir region directory.
func (c *Client) SearchRegions(ctx context.Context, query string, limit, offset int) ([]rates.RegionCandidate, error) {
	if !c.Configured() {
		return nil, rates.ErrMissingCredentials
	}

	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "kurir.SearchRegions")
		defer span.End()
	}

	c.logger.Info("Searching Kurir destinations",
		zap.String("query", query),
		zap.Int("limit", limit),
	)

	apiResp, err := c.apiClient.SearchDestinations(ctx, &SearchRequest{
		Search: query,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.logger.Error("Kurir API error", zap.Error(err))
		return nil, err
	}
	if !apiResp.Success {
		return nil, rates.NewProviderError(providerName, "SEARCH_FAILED", apiResp.Message)
	}

	candidates := make([]rates.RegionCandidate, 0, len(apiResp.Data))
	for _, d := range apiResp.Data {
		candidates = append(candidates, rates.RegionCandidate{
			ID:       d.RegionID(),
			PostCode: d.PostCode,
			Name:     d.DisplayName(),
		})
	}
	return candidates, nil
}

// GetTariffs requests tariff quotes from Kurir and flattens the
// per-category rate records into quotes.
func (c *Client) GetTariffs(ctx context.Context, originID, destinationID string, pkg rates.Package) ([]rates.RateQuote, error) {
	if !c.Configured() {
		return nil, rates.ErrMissingCredentials
	}

	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "kurir.GetTariffs")
		defer span.End()
	}

	apiReq, err := tariffRequestFromPackage(originID, destinationID, pkg)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Requesting Kurir tariffs",
		zap.Int("origin", apiReq.Origin),
		zap.Int("destination", apiReq.Destination),
		zap.Int("weight_g", apiReq.Weight),
	)

	apiResp, err := c.apiClient.GetTariff(ctx, apiReq)
	if err != nil {
		c.logger.Error("Kurir API error", zap.Error(err))
		return nil, err
	}
	if !apiResp.Success {
		return nil, rates.NewProviderError(providerName, "TARIFF_FAILED", apiResp.Message)
	}

	return tariffResponseToQuotes(apiResp), nil
}

// ============================================================================
// Conversion helpers: rates models -> API models
// ============================================================================

// tariffRequestFromPackage builds the wire payload. Weight converts from
// kilograms to grams; every numeric field truncates to an integer per
// the remote contract.
func tariffRequestFromPackage(originID, destinationID string, pkg rates.Package) (*TariffRequest, error) {
	origin, err := strconv.Atoi(originID)
	if err != nil {
		return nil, rates.NewProviderError(providerName, "BAD_ORIGIN",
			fmt.Sprintf("origin id %q is not numeric", originID)).WithCause(err)
	}
	destination, err := strconv.Atoi(destinationID)
	if err != nil {
		return nil, rates.NewProviderError(providerName, "BAD_DESTINATION",
			fmt.Sprintf("destination id %q is not numeric", destinationID)).WithCause(err)
	}

	return &TariffRequest{
		Origin:      origin,
		Destination: destination,
		Weight:      int(pkg.Weight * 1000),
		Length:      int(pkg.Length),
		Width:       int(pkg.Width),
		Height:      int(pkg.Height),
	}, nil
}

// ============================================================================
// Conversion helpers: API models -> rates models
// ============================================================================

func tariffResponseToQuotes(resp *TariffResponse) []rates.RateQuote {
	// Categories are iterated in sorted order so ids and tie ordering are
	// deterministic across calls.
	categories := make([]string, 0, len(resp.Data))
	for category := range resp.Data {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	quotes := make([]rates.RateQuote, 0)
	seen := make(map[string]int)

	for _, category := range categories {
		for _, record := range resp.Data[category] {
			courier := strings.TrimSpace(record.CourierName)
			service := strings.TrimSpace(record.Service)
			etd := strings.TrimSpace(record.ETD)

			// Records missing any required field are skipped silently.
			if record.Total == nil || *record.Total <= 0 || courier == "" || service == "" || etd == "" {
				continue
			}

			id := slugify(category + "-" + courier + "-" + service)
			seen[id]++
			if n := seen[id]; n > 1 {
				id = fmt.Sprintf("%s-%d", id, n)
			}

			quotes = append(quotes, rates.RateQuote{
				ID:       id,
				Label:    fmt.Sprintf("%s %s (%s)", courier, service, etd),
				Cost:     *record.Total,
				Courier:  courier,
				Service:  service,
				ETD:      etd,
				Category: category,
			})
		}
	}
	return quotes
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = slugPattern.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

var _ rates.Provider = (*Client)(nil)
