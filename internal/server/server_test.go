package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/manavdhamecha77/fastrac-shipping/internal/server"
	"github.com/manavdhamecha77/fastrac-shipping/pkg/rates"
	"github.com/manavdhamecha77/fastrac-shipping/pkg/rates/kurir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type rateResponse struct {
	Rates []struct {
		ID    string  `json:"id"`
		Label string  `json:"label"`
		Cost  float64 `json:"cost"`
	} `json:"rates"`
	Fallback bool     `json:"fallback"`
	Notices  []string `json:"notices"`
}

func newTestHandler(t *testing.T, mockAPI *kurir.MockAPIClient) http.Handler {
	t.Helper()

	logger := otelzap.New(zap.NewNop())
	provider := kurir.NewWithAPIClient(
		kurir.Config{AccessKey: "test-access", SecretKey: "test-secret"},
		mockAPI,
		logger,
		nil,
	)
	calculator := rates.NewCalculator(rates.CalculatorConfig{OriginID: "501"},
		provider, rates.NewMemoryCache(time.Minute), logger)

	srv := server.New(server.Config{
		Port:     8080,
		Fallback: rates.FallbackRate{Cost: 25000, Label: "Flat Rate (estimated)"},
	}, calculator, logger)
	return srv.Handler()
}

func postRates(t *testing.T, handler http.Handler, body string) (*httptest.ResponseRecorder, rateResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/rates", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var resp rateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

const validBody = `{
	"session_id": "sess-1",
	"destination_postcode": "10110",
	"items": [
		{"weight_kg": 2, "length_cm": 10, "width_cm": 10, "height_cm": 10, "quantity": 1},
		{"weight_kg": 3, "length_cm": 20, "width_cm": 5, "height_cm": 5, "quantity": 1}
	]
}`

func TestServer_Health(t *testing.T) {
	handler := newTestHandler(t, kurir.NewMockAPIClient())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	handler := newTestHandler(t, kurir.NewMockAPIClient())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Rates_Success(t *testing.T) {
	handler := newTestHandler(t, kurir.NewMockAPIClient())

	rec, resp := postRates(t, handler, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Fallback)
	require.Len(t, resp.Rates, 4) // Mock returns 4 usable records

	// Rates arrive sorted ascending by cost.
	for i := 1; i < len(resp.Rates); i++ {
		assert.LessOrEqual(t, resp.Rates[i-1].Cost, resp.Rates[i].Cost)
	}
}

func TestServer_Rates_FallbackOnProviderError(t *testing.T) {
	mockAPI := kurir.NewMockAPIClient()
	mockAPI.OnGetTariff = func(ctx context.Context, req *kurir.TariffRequest) (*kurir.TariffResponse, error) {
		return nil, context.DeadlineExceeded // simulated timeout
	}
	handler := newTestHandler(t, mockAPI)

	rec, resp := postRates(t, handler, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Fallback)
	require.Len(t, resp.Rates, 1)
	assert.Equal(t, rates.FallbackRateID, resp.Rates[0].ID)
	assert.Equal(t, 25000.0, resp.Rates[0].Cost)
}

func TestServer_Rates_FallbackOnResolutionFailure(t *testing.T) {
	mockAPI := kurir.NewMockAPIClient()
	mockAPI.OnSearchDestinations = func(ctx context.Context, req *kurir.SearchRequest) (*kurir.SearchResponse, error) {
		return &kurir.SearchResponse{Success: true, Data: nil}, nil
	}
	handler := newTestHandler(t, mockAPI)

	rec, resp := postRates(t, handler, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Fallback)
	require.Len(t, resp.Rates, 1)
}

func TestServer_Rates_MissingPostcodeNotice(t *testing.T) {
	handler := newTestHandler(t, kurir.NewMockAPIClient())

	rec, resp := postRates(t, handler, `{"session_id": "sess-1", "items": []}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Rates)
	require.Len(t, resp.Notices, 1)
	assert.Contains(t, resp.Notices[0], "postal code")
}

func TestServer_Rates_InvalidJSON(t *testing.T) {
	handler := newTestHandler(t, kurir.NewMockAPIClient())

	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Rates_CachedSecondCall(t *testing.T) {
	mockAPI := kurir.NewMockAPIClient()
	searchCalls := 0
	mockAPI.OnSearchDestinations = func(ctx context.Context, req *kurir.SearchRequest) (*kurir.SearchResponse, error) {
		searchCalls++
		return &kurir.SearchResponse{
			Success: true,
			Data:    []kurir.Destination{{SubdistrictID: "77", PostCode: "10110"}},
		}, nil
	}
	handler := newTestHandler(t, mockAPI)

	_, first := postRates(t, handler, validBody)
	_, second := postRates(t, handler, validBody)

	assert.Equal(t, 1, searchCalls, "second calculation must reuse the session cache")
	assert.Equal(t, len(first.Rates), len(second.Rates))
}
