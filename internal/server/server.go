package server

import (
	"log/slog"
	"net/http"

	"beauty-dashboard/internal/handlers"
	"beauty-dashboard/internal/observability"
	"beauty-dashboard/internal/services"
)

type Server struct {
	analytics   *services.Analytics
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, metrics *observability.Metrics, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		analytics:   analytics,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(analytics, logger),
		sseHandlers: handlers.NewSSEHandlers(analytics, logger),
	}
	s.setupRoutes(metrics, templateHandlers)
	return s
}

func (s *Server) setupRoutes(metrics *observability.Metrics, templateHandlers *TemplateHandlers) {
	// Dashboard page and operational endpoints
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)
	s.mux.Handle("GET /metrics", metrics.Handler())

	// REST API endpoints; all accept the shared filter query params
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/monthly-sales", s.apiHandlers.HandleMonthlySales)
	s.mux.HandleFunc("GET /api/order-heatmap", s.apiHandlers.HandleOrderHeatmap)
	s.mux.HandleFunc("GET /api/status-breakdown", s.apiHandlers.HandleStatusBreakdown)
	s.mux.HandleFunc("GET /api/top-products", s.apiHandlers.HandleTopProducts)
	s.mux.HandleFunc("GET /api/category-revenue", s.apiHandlers.HandleCategoryRevenue)
	s.mux.HandleFunc("GET /api/country-revenue", s.apiHandlers.HandleCountryRevenue)
	s.mux.HandleFunc("GET /api/payment-methods", s.apiHandlers.HandlePaymentMethods)
	s.mux.HandleFunc("GET /api/discount-codes", s.apiHandlers.HandleDiscountCodes)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/top-products", s.sseHandlers.HandleTopProducts)
	s.mux.HandleFunc("GET /sse/monthly-sales", s.sseHandlers.HandleMonthlySales)
	s.mux.HandleFunc("GET /sse/category-revenue", s.sseHandlers.HandleCategoryRevenue)
	s.mux.HandleFunc("GET /sse/order-heatmap", s.sseHandlers.HandleOrderHeatmap)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
