package models

// SummaryMetrics are the dashboard KPI cards. Deltas compare the trailing 30
// days against the 30 days before that, relative to the newest order in the
// set; nil when there is no prior window to compare against.
type SummaryMetrics struct {
	TotalRevenue    float64  `json:"total_revenue"`
	TotalOrders     int      `json:"total_orders"`
	AvgOrderValue   float64  `json:"avg_order_value"`
	BestProduct     string   `json:"best_product"`
	UniqueCustomers int      `json:"unique_customers"`
	RevenueDeltaPct *float64 `json:"revenue_delta_pct,omitempty"`
	OrdersDeltaPct  *float64 `json:"orders_delta_pct,omitempty"`
}

// MonthlyPoint is one month of the sales trend series.
type MonthlyPoint struct {
	Month         string  `json:"month"`
	Revenue       float64 `json:"revenue"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
}

type ProductRevenue struct {
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Revenue     float64 `json:"revenue"`
	Orders      int     `json:"orders"`
}

type CountryRevenue struct {
	Country string  `json:"country"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type PaymentRevenue struct {
	Method  string  `json:"method"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type StatusCount struct {
	Status string `json:"status"`
	Orders int    `json:"orders"`
}

// DiscountUsage counts uses of one discount code and the revenue of the
// orders that used it.
type DiscountUsage struct {
	Code              string  `json:"code"`
	Uses              int     `json:"uses"`
	DiscountedRevenue float64 `json:"discounted_revenue"`
}

// HeatmapCell is one weekday/hour bucket of the order-volume heatmap.
type HeatmapCell struct {
	Weekday string `json:"weekday"`
	Hour    int    `json:"hour"`
	Orders  int    `json:"orders"`
}
