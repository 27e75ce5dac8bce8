package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"beauty-dashboard/internal/errors"
	"beauty-dashboard/internal/observability"
	"beauty-dashboard/internal/services"
)

const (
	topProductsLimit  = 20
	topCountriesLimit = 15

	cacheControl = "public, max-age=300"
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// parseFilter reads the shared filter query params: start, end (YYYY-MM-DD),
// category, country, status. Absent params leave the filter unbounded.
func parseFilter(r *http.Request) (services.Filter, error) {
	q := r.URL.Query()
	f := services.Filter{
		Category: q.Get("category"),
		Country:  q.Get("country"),
		Status:   q.Get("status"),
	}

	if v := q.Get("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return services.Filter{}, errors.BadRequestWrap(err, "invalid start date, expected YYYY-MM-DD")
		}
		f.Start = t
	}
	if v := q.Get("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return services.Filter{}, errors.BadRequestWrap(err, "invalid end date, expected YYYY-MM-DD")
		}
		f.End = t
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return services.Filter{}, errors.BadRequest("end date is before start date")
	}
	return f, nil
}

func (h *APIHandlers) respond(w http.ResponseWriter, r *http.Request, query func(services.Filter) any) {
	f, err := parseFilter(r)
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	errors.WriteSuccessWithHeaders(w, query(f), map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.Summary(f) })
}

func (h *APIHandlers) HandleMonthlySales(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.MonthlySales(f) })
}

func (h *APIHandlers) HandleOrderHeatmap(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.OrderHeatmap(f) })
}

func (h *APIHandlers) HandleStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.StatusBreakdown(f) })
}

func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.TopProducts(f, topProductsLimit) })
}

func (h *APIHandlers) HandleCategoryRevenue(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.CategoryRevenue(f) })
}

func (h *APIHandlers) HandleCountryRevenue(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.CountryRevenue(f, topCountriesLimit) })
}

func (h *APIHandlers) HandlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.PaymentMethods(f) })
}

func (h *APIHandlers) HandleDiscountCodes(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(f services.Filter) any { return h.analytics.DiscountCodes(f) })
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
