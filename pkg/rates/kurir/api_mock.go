package kurir

import (
	"context"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnSearchDestinations func(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
	OnGetTariff          func(ctx context.Context, req *TariffRequest) (*TariffResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

func f64(v float64) *float64 { return &v }

// SearchDestinations returns mock region candidates.
func (m *MockAPIClient) SearchDestinations(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated API error"}
	}

	if m.OnSearchDestinations != nil {
		return m.OnSearchDestinations(ctx, req)
	}

	return &SearchResponse{
		Success: true,
		Data: []Destination{
			{
				SubdistrictID:   "77",
				PostCode:        "10110",
				SubdistrictName: "Gambir",
				City:            "Jakarta Pusat",
				Province:        "DKI Jakarta",
			},
			{
				SubdistrictID:   "78",
				PostCode:        "10120",
				SubdistrictName: "Tanah Abang",
				City:            "Jakarta Pusat",
				Province:        "DKI Jakarta",
			},
		},
	}, nil
}

// GetTariff returns mock tariff quotes across a few service categories.
func (m *MockAPIClient) GetTariff(ctx context.Context, req *TariffRequest) (*TariffResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated API error"}
	}

	if m.OnGetTariff != nil {
		return m.OnGetTariff(ctx, req)
	}

	return &TariffResponse{
		Success: true,
		Data: map[string][]TariffRecord{
			"regular": {
				{Total: f64(18000), CourierName: "JNE", Service: "REG", ETD: "2-3 hari"},
				{Total: f64(16500), CourierName: "SiCepat", Service: "SIUNT", ETD: "2-4 hari"},
			},
			"next day": {
				{Total: f64(32000), CourierName: "JNE", Service: "YES", ETD: "1 hari"},
			},
			"cargo": {
				{Total: f64(95000), CourierName: "Indah Cargo", Service: "Darat", ETD: "4-7 hari"},
			},
		},
	}, nil
}

var _ APIClient = (*MockAPIClient)(nil)
