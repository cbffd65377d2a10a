// Package http exposes the JSON API over the services: cash expenses,
// saving goals, dashboard and analytics reads, report enqueue and download.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"pext/internal/cache"
	"pext/internal/services"
)

const dashboardCacheTTL = 30 * time.Second

type Server struct {
	http.Server
	cash      *services.CashExpenseService
	goals     *services.SavingGoalService
	dashboard *services.DashboardService
	reportDir string

	rateLimiter *rateLimiter

	// Dashboard summaries are expensive (full account fan-out), so reads
	// are cached briefly per owner. Writes invalidate.
	summaryCache *cache.Cache[services.Summary]

	stopJanitor  chan struct{}
	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, cash *services.CashExpenseService, goals *services.SavingGoalService, dashboard *services.DashboardService, reportDir string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		cash:         cash,
		goals:        goals,
		dashboard:    dashboard,
		reportDir:    reportDir,
		rateLimiter:  newRateLimiter(),
		summaryCache: cache.New[services.Summary](100, dashboardCacheTTL),
		stopJanitor:  make(chan struct{}),
	}
	go s.purgeSummaries()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/cash-expenses", s.withMiddleware(s.handleListCashExpenses))
	mux.HandleFunc("POST /api/cash-expenses", s.withMiddleware(s.handleCreateCashExpense))
	mux.HandleFunc("DELETE /api/cash-expenses/{id}", s.withMiddleware(s.handleDeleteCashExpense))

	mux.HandleFunc("GET /api/saving-goals", s.withMiddleware(s.handleListSavingGoals))
	mux.HandleFunc("POST /api/saving-goals", s.withMiddleware(s.handleCreateSavingGoal))
	mux.HandleFunc("DELETE /api/saving-goals/{id}", s.withMiddleware(s.handleDeleteSavingGoal))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("GET /api/profile", s.withMiddleware(s.handleProfile))
	mux.HandleFunc("GET /api/cards", s.withMiddleware(s.handleCards))
	mux.HandleFunc("GET /api/loans", s.withMiddleware(s.handleLoans))

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("GET /api/analytics", s.withMiddleware(s.handleAnalytics))

	mux.HandleFunc("POST /api/reports", s.withMiddleware(s.handleRequestReport))
	mux.HandleFunc("GET /api/reports/{filename}", s.withMiddleware(s.handleDownloadReport))

	return s
}

// purgeSummaries drops expired dashboard summaries between requests so
// idle owners do not pin memory until the next eviction.
func (s *Server) purgeSummaries() {
	ticker := time.NewTicker(dashboardCacheTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.summaryCache.PurgeExpired()
		case <-s.stopJanitor:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		close(s.stopJanitor)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
