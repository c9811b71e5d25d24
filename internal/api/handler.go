package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/model"
)

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}
	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if encodeErr := json.NewEncoder(w).Encode(NewErrorResponse(errType, err.Error())); encodeErr != nil {
		log.Errorf("encode error response: %v", encodeErr)
	}
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, collector.ErrInvalidSymbol):
		return http.StatusNotFound
	case errors.Is(err, collector.ErrNoData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// IndicatorsRequest is the body of POST /api/v1/indicators.
type IndicatorsRequest struct {
	Symbol   string             `json:"symbol"`
	Interval string             `json:"interval"`
	Points   []model.PricePoint `json:"points"`
}

// maxBodyBytes bounds uploaded series; ten years of daily bars fit comfortably.
const maxBodyBytes = 8 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status": "ok",
		"source": s.Collector.Fetcher.Name(),
		"time":   time.Now().UTC(),
	}
	if err := setResponse(resp, w); err != nil {
		log.Errorf("healthz: %v", err)
	}
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	interval := model.ParseInterval(r.URL.Query().Get("interval"))

	analysis, err := s.Collector.Collect(r.Context(), symbol, interval)
	if err != nil {
		setErrorResponse("handleAnalysis: failed to analyze", statusFor(err), err, w)
		return
	}
	if err := s.Recorder.RecordAnalysis(analysis); err != nil {
		log.WithField("symbol", analysis.Symbol).Errorf("record analysis: %v", err)
	}

	if err := setResponse(analysis, w); err != nil {
		log.Errorf("handleAnalysis: %v", err)
	}
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	var req IndicatorsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		setErrorResponse("handleIndicators: failed to decode request", http.StatusBadRequest, err, w)
		return
	}

	symbol := req.Symbol
	if symbol == "" {
		symbol = "CUSTOM"
	}
	sym, err := collector.NormalizeSymbol(symbol)
	if err != nil {
		setErrorResponse("handleIndicators: invalid symbol", http.StatusBadRequest, err, w)
		return
	}

	series := &model.PriceSeries{
		Symbol:    sym,
		Interval:  model.ParseInterval(req.Interval),
		Points:    req.Points,
		FetchedAt: time.Now(),
	}
	analysis, err := s.Collector.Analyze(series, "api")
	if err != nil {
		setErrorResponse("handleIndicators: no usable price points", statusFor(err), err, w)
		return
	}

	if err := setResponse(analysis, w); err != nil {
		log.Errorf("handleIndicators: %v", err)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sym, err := collector.NormalizeSymbol(mux.Vars(r)["symbol"])
	if err != nil {
		setErrorResponse("handleHistory: invalid symbol", http.StatusBadRequest, err, w)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			setErrorResponse("handleHistory: invalid limit", http.StatusBadRequest, fmt.Errorf("limit must be a non-negative integer, got %q", v), w)
			return
		}
	}

	entries, err := s.Recorder.History(r.Context(), sym, limit)
	if err != nil {
		setErrorResponse("handleHistory: failed to load history", http.StatusInternalServerError, err, w)
		return
	}

	resp := map[string]interface{}{
		"symbol":  sym,
		"entries": entries,
	}
	if err := setResponse(resp, w); err != nil {
		log.Errorf("handleHistory: %v", err)
	}
}
