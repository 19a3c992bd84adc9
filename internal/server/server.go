// Package server exposes the checkout-facing HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/manavdhamecha77/fastrac-shipping/internal/telemetry"
	"github.com/manavdhamecha77/fastrac-shipping/pkg/rates"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server is the HTTP server for the shipping-rate service.
type Server struct {
	port       int
	fallback   rates.FallbackRate
	calculator *rates.Calculator
	logger     *otelzap.Logger
	metrics    *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port     int
	Fallback rates.FallbackRate
}

// New creates a new server instance.
func New(cfg Config, calculator *rates.Calculator, logger *otelzap.Logger) *Server {
	return &Server{
		port:       cfg.Port,
		fallback:   cfg.Fallback,
		calculator: calculator,
		logger:     logger,
		metrics:    telemetry.NewMetrics(),
	}
}

// Handler builds the HTTP routes. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	r.Post("/v1/rates", s.handleRates)

	return r
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 45 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Checkout-facing request/response types
type rateRequest struct {
	SessionID           string     `json:"session_id"`
	DestinationPostcode string     `json:"destination_postcode"`
	Items               []rateItem `json:"items"`
}

type rateItem struct {
	WeightKG float64 `json:"weight_kg"`
	LengthCM float64 `json:"length_cm"`
	WidthCM  float64 `json:"width_cm"`
	HeightCM float64 `json:"height_cm"`
	Quantity int     `json:"quantity"`
}

type rateEntry struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Cost     float64 `json:"cost"`
	Courier  string  `json:"courier,omitempty"`
	Service  string  `json:"service,omitempty"`
	ETD      string  `json:"etd,omitempty"`
	Category string  `json:"category,omitempty"`
}

type rateResponse struct {
	Rates    []rateEntry `json:"rates"`
	Fallback bool        `json:"fallback"`
	Notices  []string    `json:"notices,omitempty"`
}

// responseRegistrar collects presented rates into the JSON response.
type responseRegistrar struct {
	entries []rateEntry
}

func (r *responseRegistrar) AddRate(q rates.RateQuote) error {
	r.entries = append(r.entries, rateEntry{
		ID:       q.ID,
		Label:    q.Label,
		Cost:     q.Cost,
		Courier:  q.Courier,
		Service:  q.Service,
		ETD:      q.ETD,
		Category: q.Category,
	})
	return nil
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	requestID := uuid.New().String()
	start := time.Now()

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rateResponse{
			Rates:   []rateEntry{},
			Notices: []string{"Invalid JSON: " + err.Error()},
		})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = requestID
	}

	items := make([]rates.CartItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = rates.CartItem{
			Weight:   item.WeightKG,
			Length:   item.LengthCM,
			Width:    item.WidthCM,
			Height:   item.HeightCM,
			Quantity: item.Quantity,
		}
	}

	result, err := s.calculator.Calculate(r.Context(), rates.CalculationRequest{
		SessionID: sessionID,
		Postcode:  req.DestinationPostcode,
		Items:     items,
	})
	if err != nil {
		s.metrics.RecordCalculation("error", time.Since(start).Seconds())
		s.logger.Warn("Calculation rejected",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		// Configuration and validation problems become notices; the
		// checkout keeps working, it just shows no options.
		json.NewEncoder(w).Encode(rateResponse{
			Rates:   []rateEntry{},
			Notices: []string{noticeFor(err)},
		})
		return
	}

	registrar := &responseRegistrar{entries: []rateEntry{}}
	if err := rates.Present(result, s.fallback, registrar); err != nil {
		s.metrics.RecordCalculation("error", time.Since(start).Seconds())
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(rateResponse{
			Rates:   []rateEntry{},
			Notices: []string{"Failed to register shipping rates"},
		})
		return
	}

	if result.Match.RegionID != "" {
		s.metrics.RecordCacheLookup(result.Match.Kind == rates.MatchCached)
	}
	if result.Kind == rates.ResultFallback {
		s.metrics.FallbacksTotal.Inc()
	}
	s.metrics.RecordCalculation(string(result.Kind), time.Since(start).Seconds())

	s.logger.Info("Rates calculated",
		zap.String("request_id", requestID),
		zap.String("postcode", req.DestinationPostcode),
		zap.String("outcome", string(result.Kind)),
		zap.Int("rate_count", len(registrar.entries)),
	)

	json.NewEncoder(w).Encode(rateResponse{
		Rates:    registrar.entries,
		Fallback: result.Kind == rates.ResultFallback,
	})
}

// noticeFor maps pipeline errors to customer-facing notices.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, rates.ErrMissingCredentials), errors.Is(err, rates.ErrMissingOrigin):
		return "Shipping rates are not configured for this store."
	case errors.Is(err, rates.ErrInvalidPostcode):
		return "Please enter a valid destination postal code."
	case errors.Is(err, rates.ErrInvalidPackage):
		return "This order exceeds the maximum shippable weight or size."
	default:
		return "Unable to calculate shipping rates."
	}
}
