// Package templates renders the dashboard page. The page itself is a single
// html/template wrapped as a templ component; chart panels load their data
// from the API and SSE endpoints.
package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

var page = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Beauty Store Sales Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<style>
:root {
  --bg: #f4f1ee;
  --card-bg: #ffffff;
  --primary: #c06078;
  --text: #2e2e2e;
  --text-muted: #777777;
  --border: #e8e2dd;
  --radius: 12px;
}
body { font-family: 'Inter', sans-serif; background: var(--bg); color: var(--text); margin: 0; padding: 24px; }
h1 { font-size: 1.75rem; margin: 0 0 4px 0; }
.subtitle { color: var(--text-muted); margin-bottom: 24px; }
.kpi-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 16px; margin-bottom: 28px; }
.kpi { background: var(--card-bg); border: 1px solid var(--border); border-radius: var(--radius); padding: 18px 22px; }
.kpi .label { color: var(--text-muted); font-size: 0.78rem; text-transform: uppercase; letter-spacing: 0.4px; }
.kpi .value { font-size: 1.35rem; font-weight: 700; }
.chart-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(420px, 1fr)); gap: 16px; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: var(--radius); padding: 16px; }
.modern-table { width: 100%; border-collapse: collapse; font-size: 0.88rem; }
.modern-table th, .modern-table td { text-align: left; padding: 6px 10px; border-bottom: 1px solid var(--border); }
.category-badge { background: #f8e8ec; color: var(--primary); border-radius: 8px; padding: 2px 8px; font-size: 0.78rem; }
.filters { display: flex; gap: 12px; margin-bottom: 20px; flex-wrap: wrap; }
.filters input, .filters select { padding: 6px 10px; border: 1px solid var(--border); border-radius: 8px; }
</style>
</head>
<body data-on-load="@get('/sse/refresh-all')">
<h1>Beauty Store Sales Dashboard</h1>
<div class="subtitle">Beauty &amp; Skincare Store &middot; Performance overview of sales data</div>

<form class="filters" id="filters">
  <input type="date" name="start" aria-label="Start date">
  <input type="date" name="end" aria-label="End date">
  <select name="category"><option value="">All Categories</option></select>
  <select name="country"><option value="">All Countries</option></select>
  <select name="status"><option value="">All Statuses</option></select>
</form>

<div class="kpi-grid" id="kpis">
  <div class="kpi"><div class="label">Total Revenue</div><div class="value" id="kpi-revenue">&ndash;</div></div>
  <div class="kpi"><div class="label">Total Orders</div><div class="value" id="kpi-orders">&ndash;</div></div>
  <div class="kpi"><div class="label">Avg Order Value</div><div class="value" id="kpi-aov">&ndash;</div></div>
  <div class="kpi"><div class="label">Best-Selling Product</div><div class="value" id="kpi-best">&ndash;</div></div>
  <div class="kpi"><div class="label">Unique Customers</div><div class="value" id="kpi-customers">&ndash;</div></div>
</div>

<div class="chart-grid">
  <div class="card"><canvas id="chart-monthly"></canvas><div id="monthly-content"></div></div>
  <div class="card"><canvas id="chart-category"></canvas><div id="category-content"></div></div>
  <div class="card"><canvas id="chart-status"></canvas></div>
  <div class="card"><canvas id="chart-country"></canvas></div>
  <div class="card"><canvas id="chart-payment"></canvas></div>
  <div class="card"><canvas id="chart-discount"></canvas></div>
  <div class="card" id="heatmap-content"></div>
  <div class="card" id="products-content">Loading top products&hellip;</div>
</div>

<script>
const palette = ["#c06078","#e8a0b0","#7c9885","#d4a574","#8facc0","#c9b8d9","#e6c88a","#9cb3a0","#d98a94","#a0c4d8"];
const charts = {};

function barChart(id, labels, values, label) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), {
    type: "bar",
    data: { labels, datasets: [{ label, data: values, backgroundColor: palette }] },
    options: { plugins: { legend: { display: false } } },
  });
}

function lineChart(id, labels, values, label) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), {
    type: "line",
    data: { labels, datasets: [{ label, data: values, borderColor: palette[0], tension: 0.3 }] },
  });
}

function filterQuery() {
  const params = new URLSearchParams(new FormData(document.getElementById("filters")));
  for (const [k, v] of [...params]) if (!v) params.delete(k);
  const qs = params.toString();
  return qs ? "?" + qs : "";
}

async function fetchData(path) {
  const res = await fetch("/api/" + path + filterQuery());
  const body = await res.json();
  return body.data;
}

async function refresh() {
  const summary = await fetchData("summary");
  document.getElementById("kpi-revenue").textContent = "$" + Math.round(summary.total_revenue).toLocaleString();
  document.getElementById("kpi-orders").textContent = summary.total_orders.toLocaleString();
  document.getElementById("kpi-aov").textContent = "$" + summary.avg_order_value.toFixed(2);
  document.getElementById("kpi-best").textContent = summary.best_product;
  document.getElementById("kpi-customers").textContent = summary.unique_customers.toLocaleString();

  const monthly = await fetchData("monthly-sales");
  lineChart("chart-monthly", monthly.map(m => m.month), monthly.map(m => m.revenue), "Monthly Revenue");

  const categories = await fetchData("category-revenue");
  barChart("chart-category", categories.map(c => c.category), categories.map(c => c.revenue), "Revenue by Category");

  const statuses = await fetchData("status-breakdown");
  barChart("chart-status", statuses.map(s => s.status), statuses.map(s => s.orders), "Orders by Status");

  const countries = await fetchData("country-revenue");
  barChart("chart-country", countries.map(c => c.country), countries.map(c => c.revenue), "Revenue by Country");

  const payments = await fetchData("payment-methods");
  barChart("chart-payment", payments.map(p => p.method), payments.map(p => p.revenue), "Revenue by Payment Method");

  const discounts = await fetchData("discount-codes");
  barChart("chart-discount", discounts.map(d => d.code), discounts.map(d => d.uses), "Discount Code Usage");
}

document.getElementById("filters").addEventListener("change", refresh);
refresh();
</script>
</body>
</html>
`))

// Dashboard returns the page as a templ component so the handler can render
// it with a request-scoped context.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page.Execute(w, nil)
	})
}
