package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"stock-tracker/internal/stocks"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	Stocks Stocks
}

type Stocks interface {
	GetInfo(ctx context.Context, symbol string) (*stocks.QuoteSnapshot, error)
	GetHistory(ctx context.Context, symbol, period, interval string) (*stocks.HistorySnapshot, error)
	Search(ctx context.Context, query string) []stocks.SearchMatch
}

func NewServer(service Stocks) *Server {
	return &Server{Stocks: service}
}

func (s *Server) Mount(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/stock/{symbol}", s.handleStock)
		r.Get("/stock/history/{symbol}", s.handleStockHistory)
		r.Get("/search", s.handleSearch)
		r.Get("/health", s.handleHealth)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "page not found")
	})
}

// Recoverer converts handler panics into JSON 500 responses. The detail is
// logged, never echoed to the client.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic while handling request", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, apiError{Error: message})
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(chi.URLParam(r, "symbol"))

	snapshot, err := s.Stocks.GetInfo(r.Context(), symbol)
	if err != nil {
		slog.Error("stock lookup failed", "symbol", symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error while processing the request")
		return
	}
	if snapshot == nil {
		writeError(w, http.StatusNotFound, "no data found for this symbol")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleStockHistory(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(chi.URLParam(r, "symbol"))

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "1mo"
	}
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "1d"
	}

	snapshot, err := s.Stocks.GetHistory(r.Context(), symbol, period, interval)
	if err != nil {
		slog.Error("history lookup failed", "symbol", symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error while processing the request")
		return
	}
	if snapshot == nil {
		writeError(w, http.StatusNotFound, "no historical data found for this symbol")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

type searchResponse struct {
	Quotes []stocks.SearchMatch `json:"quotes"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "search query parameter is required")
		return
	}

	matches := s.Stocks.Search(r.Context(), query)
	writeJSON(w, http.StatusOK, searchResponse{Quotes: matches})
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexHTML))
}

const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Stock Tracker</title>
</head>
<body>
<h1>Stock Tracker API</h1>
<ul>
<li><code>GET /api/stock/{symbol}</code></li>
<li><code>GET /api/stock/history/{symbol}?period=1mo&amp;interval=1d</code></li>
<li><code>GET /api/search?q=apple</code></li>
<li><code>GET /api/health</code></li>
</ul>
</body>
</html>
`
