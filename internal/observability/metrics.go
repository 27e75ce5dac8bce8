package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide prometheus registry exposed on /metrics.
type Metrics struct {
	reg *prometheus.Registry

	OrdersGenerated    prometheus.Counter
	GenerationSeconds  prometheus.Gauge
	RecordsLoaded      prometheus.Gauge
	DatasetLoadSeconds prometheus.Gauge
	HTTPRequests       *prometheus.CounterVec
	HTTPDurationSec    prometheus.Histogram
}

func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()

	ordersGenerated := prometheus.NewCounter(prometheus.CounterOpts{Name: "dashboard_orders_generated_total"})
	generationSeconds := prometheus.NewGauge(prometheus.GaugeOpts{Name: "dashboard_generation_seconds"})
	recordsLoaded := prometheus.NewGauge(prometheus.GaugeOpts{Name: "dashboard_records_loaded"})
	datasetLoadSeconds := prometheus.NewGauge(prometheus.GaugeOpts{Name: "dashboard_dataset_load_seconds"})
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dashboard_http_requests_total"}, []string{"method", "status"})
	httpDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(ordersGenerated, generationSeconds, recordsLoaded, datasetLoadSeconds, httpRequests, httpDuration)
	return &Metrics{
		reg:                r,
		OrdersGenerated:    ordersGenerated,
		GenerationSeconds:  generationSeconds,
		RecordsLoaded:      recordsLoaded,
		DatasetLoadSeconds: datasetLoadSeconds,
		HTTPRequests:       httpRequests,
		HTTPDurationSec:    httpDuration,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
