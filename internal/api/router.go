// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
// Ledger routes are only reachable while a user is logged in.
func NewRouter(sessionHandler *handler.SessionHandler, ledgerHandler *handler.LedgerHandler, requestTimeout time.Duration, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)               // Add a request ID to the context
	r.Use(middleware.RealIP)                  // Use the real IP address
	r.Use(requestLogger(logger))              // Log HTTP requests
	r.Use(middleware.Recoverer)               // Recover from panics and return 500
	r.Use(middleware.Timeout(requestTimeout)) // Bound every request

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/session", func(r chi.Router) {
		r.Get("/", sessionHandler.GetSession)
		r.Post("/login", sessionHandler.Login)
		r.Post("/signup", sessionHandler.Signup)
		r.Post("/logout", sessionHandler.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(sessionHandler.RequireSession)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", ledgerHandler.ListTransactions)
			r.Post("/", ledgerHandler.CreateTransaction)
			r.Delete("/{id}", ledgerHandler.DeleteTransaction)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", ledgerHandler.ListDebts)
			r.Post("/", ledgerHandler.CreateDebt)
			r.Get("/{id}", ledgerHandler.GetDebt)
			r.Delete("/{id}", ledgerHandler.DeleteDebt)
			r.Post("/{id}/repayments", ledgerHandler.AddRepayment)
			r.Post("/{id}/settle", ledgerHandler.SettleDebt)
		})

		r.Get("/summary", ledgerHandler.GetSummary)
	})

	return r
}

// requestLogger logs one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
