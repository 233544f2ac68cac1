// Package http wires user actions (submit, delete, filter change) to the
// ledger store and keeps the rendered views consistent.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/cache"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/charts"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/ledger"
	"github.com/nayanchhabhaiya/Expense-Tracker/internal/view"
	appweb "github.com/nayanchhabhaiya/Expense-Tracker/web"
)

type Server struct {
	http.Server
	store    *ledger.Store
	renderer *view.Renderer
	chart    charts.Renderer

	chartWidth  int
	chartHeight int

	// Rendered chart PNGs keyed by (revision, width); a mutation changes the
	// revision, so stale images simply age out.
	chartCache *cache.LRUCache[[]byte]
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, store *ledger.Store, renderer *view.Renderer, chart charts.Renderer, chartWidth, chartHeight int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       store,
		renderer:    renderer,
		chart:       chart,
		chartWidth:  chartWidth,
		chartHeight: chartHeight,
		chartCache:  cache.NewLRUCache[[]byte](16, 5*time.Minute),
	}

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withRequestLog(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/transactions", s.withRequestLog(s.handleCreateTransaction))
	mux.HandleFunc("/transactions/delete", s.withRequestLog(s.handleDeleteTransaction))
	// UI partials
	mux.HandleFunc("/ui/transactions", s.withRequestLog(s.handleListTransactions))
	mux.HandleFunc("/ui/summary", s.withRequestLog(s.handleSummary))
	mux.HandleFunc("/chart.png", s.withRequestLog(s.handleChart))

	return s
}

// withRequestLog adds security headers and request logging to responses.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()

		slog.InfoContext(r.Context(), "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(r.Context(), "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
