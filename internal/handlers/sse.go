package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"beauty-dashboard/internal/models"
	"beauty-dashboard/internal/services"
	"github.com/starfederation/datastar-go/datastar"
)

const maxTableRows = 20

var productTableTemplate = template.Must(template.New("productTable").Parse(`
<div id="products-content">
<table class="modern-table">
<thead><tr><th>Product</th><th>Category</th><th>Revenue</th><th>Orders</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.ProductName}}</td>
<td><span class="category-badge">{{.Category}}</span></td>
<td><strong>${{printf "%.2f" .Revenue}}</strong></td>
<td>{{.Orders}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *SSEHandlers) renderProductTable(rows []models.ProductRevenue) (string, error) {
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}

	var buf strings.Builder
	err := productTableTemplate.Execute(&buf, struct{ Rows []models.ProductRevenue }{rows})
	return buf.String(), err
}

// patchSignals marshals the chart payloads and patches them as datastar
// signals; the page's chart bindings redraw from them.
func (h *SSEHandlers) patchSignals(sse *datastar.ServerSentEventGenerator, signals map[string]any) bool {
	jsonData, err := json.Marshal(signals)
	if err != nil {
		h.logger.Error("marshal sse signals", "error", err)
		return false
	}
	sse.PatchSignals(jsonData)
	return true
}

func (h *SSEHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	f, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("invalid filter on sse request", "error", err)
		return
	}

	html, err := h.renderProductTable(h.analytics.TopProducts(f, topProductsLimit))
	if err != nil {
		h.logger.Error("render product table", "error", err)
		return
	}
	sse.PatchElements(html)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

func (h *SSEHandlers) HandleMonthlySales(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	f, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("invalid filter on sse request", "error", err)
		return
	}

	if !h.patchSignals(sse, map[string]any{
		"monthlyData": h.analytics.MonthlySales(f),
	}) {
		return
	}
	sse.PatchElements(`<div id="monthly-content">Monthly sales chart data loaded</div>`)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

func (h *SSEHandlers) HandleCategoryRevenue(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	f, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("invalid filter on sse request", "error", err)
		return
	}

	if !h.patchSignals(sse, map[string]any{
		"categoryData": h.analytics.CategoryRevenue(f),
	}) {
		return
	}
	sse.PatchElements(`<div id="category-content">Category chart data loaded</div>`)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

func (h *SSEHandlers) HandleOrderHeatmap(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	f, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("invalid filter on sse request", "error", err)
		return
	}

	if !h.patchSignals(sse, map[string]any{
		"heatmapData": h.analytics.OrderHeatmap(f),
	}) {
		return
	}
	sse.PatchElements(`<div id="heatmap-content">Heatmap data loaded</div>`)

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}

// HandleRefreshAll pushes every dashboard panel in one SSE response.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	f, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("invalid filter on sse request", "error", err)
		return
	}

	html, err := h.renderProductTable(h.analytics.TopProducts(f, topProductsLimit))
	if err != nil {
		h.logger.Error("render product table", "error", err)
		return
	}
	sse.PatchElements(html)

	if !h.patchSignals(sse, map[string]any{
		"summary":      h.analytics.Summary(f),
		"monthlyData":  h.analytics.MonthlySales(f),
		"categoryData": h.analytics.CategoryRevenue(f),
		"countryData":  h.analytics.CountryRevenue(f, topCountriesLimit),
		"paymentData":  h.analytics.PaymentMethods(f),
		"statusData":   h.analytics.StatusBreakdown(f),
		"discountData": h.analytics.DiscountCodes(f),
		"heatmapData":  h.analytics.OrderHeatmap(f),
	}) {
		return
	}

	if fl, ok := w.(http.Flusher); ok {
		fl.Flush()
	}
}
