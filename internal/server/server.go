// Package server exposes the ledger's query and command surface as a
// JSON HTTP API. It is a presentation adapter: all business rules live
// in the ledger, calculator and service packages.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmoa/tripledger/internal/auth"
	"github.com/tripmoa/tripledger/internal/middleware"
	"github.com/tripmoa/tripledger/internal/service"
)

// Server routes HTTP requests to the ledger and auth services.
type Server struct {
	ledger *service.LedgerService
	auth   *service.AuthService
	jwt    *auth.JWTManager
}

// New creates a server over the given services.
func New(ledgerSvc *service.LedgerService, authSvc *service.AuthService, jwtManager *auth.JWTManager) *Server {
	return &Server{
		ledger: ledgerSvc,
		auth:   authSvc,
		jwt:    jwtManager,
	}
}

// Router builds the full route tree with logging, metrics and CORS
// applied to everything and auth guarding the write routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)
	r.Use(corsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/summary", s.handleSummary)
		r.Get("/members/stats", s.handleMemberStats)
		r.Get("/members/{member}/settlement", s.handleSettlementDetail)
		r.Get("/categories/stats", s.handleCategoryStats)
		r.Get("/settlements", s.handleSettlements)
		r.Get("/expenses", s.handleListExpenses)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwt))
			r.Post("/expenses", s.handleAddExpense)
			r.Put("/expenses/{id}", s.handleUpdateExpense)
			r.Delete("/expenses/{id}", s.handleDeleteExpense)
		})
	})

	return r
}

// corsMiddleware allows browser clients on other origins to call the
// API directly.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
