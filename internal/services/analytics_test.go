package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"beauty-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

func createTempCSV(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "orders*.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func order(id string, date time.Time, product, category string, total float64) models.OrderRecord {
	return models.OrderRecord{
		OrderID:         id,
		OrderDate:       date,
		ProductName:     product,
		ProductCategory: category,
		SKU:             "SKI-TEST-123",
		Quantity:        1,
		UnitPrice:       decimal.NewFromFloat(total),
		TotalPrice:      decimal.NewFromFloat(total),
		CustomerID:      "CUST-000001",
		CustomerCountry: "United States",
		PaymentMethod:   "Credit Card",
		ShippingMethod:  "Standard Shipping",
		ShippingCost:    decimal.NewFromFloat(4.99),
		OrderStatus:     "Delivered",
	}
}

func TestNewAnalytics(t *testing.T) {
	a := NewAnalytics()
	if a == nil {
		t.Fatal("NewAnalytics() returned nil")
	}
	if a.snapshot == nil {
		t.Error("snapshot should be initialized")
	}
	if a.logger == nil {
		t.Error("logger should be initialized")
	}
}

func TestAnalytics_SetData(t *testing.T) {
	a := NewAnalytics()
	jan := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 16, 14, 0, 0, 0, time.UTC)

	a.SetData([]models.OrderRecord{
		order("#SB1001", jan, "Hydrating Face Serum", "Skincare", 34.99),
		order("#SB1002", feb, "Matte Liquid Lipstick", "Makeup", 16.99),
	})

	if a.RecordCount() != 2 {
		t.Errorf("RecordCount() = %d, want 2", a.RecordCount())
	}

	var none Filter
	if got := a.Summary(none); got.TotalOrders != 2 {
		t.Errorf("Summary().TotalOrders = %d, want 2", got.TotalOrders)
	}
	if got := a.MonthlySales(none); len(got) != 2 {
		t.Errorf("MonthlySales() returned %d points, want 2", len(got))
	}
	if got := a.CategoryRevenue(none); len(got) != 2 {
		t.Errorf("CategoryRevenue() returned %d rows, want 2", len(got))
	}
	if got := a.TopProducts(none, 20); len(got) != 2 {
		t.Errorf("TopProducts() returned %d rows, want 2", len(got))
	}
}

func TestAnalytics_LoadFromCSV_ValidData(t *testing.T) {
	rec := order("#SB1001", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), "Setting Spray", "Makeup", 18.99)
	content := strings.Join(models.Columns(), ",") + "\n" +
		strings.Join(rec.CSVRow(), ",") + "\n"

	f := createTempCSV(t, content)

	a := NewAnalytics()
	if err := a.LoadFromCSV(context.Background(), f); err != nil {
		t.Fatalf("LoadFromCSV() with valid data should not error, got: %v", err)
	}

	if a.RecordCount() != 1 {
		t.Errorf("RecordCount() = %d, want 1", a.RecordCount())
	}
	summary := a.Summary(Filter{})
	if summary.BestProduct != "Setting Spray" {
		t.Errorf("BestProduct = %q, want Setting Spray", summary.BestProduct)
	}
}

func TestAnalytics_LoadFromCSV_InvalidData(t *testing.T) {
	header := strings.Join(models.Columns(), ",")

	tests := []struct {
		name string
		csv  string
	}{
		{"empty file", ""},
		{"wrong column count", "a,b,c"},
		{"header only", header},
		{"all rows malformed", header + "\n#SB1001,not-a-date,x,x,x,one,x,x,x,x,x,x,x,x,x,x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTempCSV(t, tt.csv)

			a := NewAnalytics()
			if err := a.LoadFromCSV(context.Background(), f); err == nil {
				t.Error("LoadFromCSV() should error")
			}
		})
	}
}

func TestAnalytics_LoadFromCSV_SkipsMalformedLines(t *testing.T) {
	good := order("#SB1001", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), "Setting Spray", "Makeup", 18.99)
	content := strings.Join(models.Columns(), ",") + "\n" +
		"#SB0999,garbage-date,x,x,x,1,1.00,,0.00,1.00,c,US,card,std,0.00,Delivered\n" +
		strings.Join(good.CSVRow(), ",") + "\n"

	f := createTempCSV(t, content)

	a := NewAnalytics()
	if err := a.LoadFromCSV(context.Background(), f); err != nil {
		t.Fatalf("LoadFromCSV() error: %v", err)
	}
	if a.RecordCount() != 1 {
		t.Errorf("RecordCount() = %d, want 1 (malformed line skipped)", a.RecordCount())
	}
}

func TestAnalytics_Filter(t *testing.T) {
	a := NewAnalytics()
	jan := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	skincare := order("#SB1001", jan, "Hydrating Face Serum", "Skincare", 34.99)
	makeup := order("#SB1002", mar, "Matte Liquid Lipstick", "Makeup", 16.99)
	makeup.CustomerCountry = "Canada"
	makeup.OrderStatus = "Returned"

	a.SetData([]models.OrderRecord{skincare, makeup})

	tests := []struct {
		name       string
		filter     Filter
		wantOrders int
	}{
		{"no filter", Filter{}, 2},
		{"category", Filter{Category: "Skincare"}, 1},
		{"country", Filter{Country: "Canada"}, 1},
		{"status", Filter{Status: "Returned"}, 1},
		{"date range excludes march", Filter{Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)}, 1},
		{"end day is inclusive", Filter{End: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}, 2},
		{"no match", Filter{Category: "Fragrance"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Summary(tt.filter); got.TotalOrders != tt.wantOrders {
				t.Errorf("Summary(%+v).TotalOrders = %d, want %d", tt.filter, got.TotalOrders, tt.wantOrders)
			}
		})
	}
}

func TestAnalytics_SummaryDeltas(t *testing.T) {
	a := NewAnalytics()
	newest := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	// Two orders in the trailing 30 days, one in the 30 days before.
	a.SetData([]models.OrderRecord{
		order("#SB1001", newest, "Setting Spray", "Makeup", 100),
		order("#SB1002", newest.AddDate(0, 0, -10), "Setting Spray", "Makeup", 100),
		order("#SB1003", newest.AddDate(0, 0, -40), "Setting Spray", "Makeup", 100),
	})

	summary := a.Summary(Filter{})
	if summary.RevenueDeltaPct == nil {
		t.Fatal("RevenueDeltaPct should be set when the prior window has revenue")
	}
	if got := *summary.RevenueDeltaPct; got < 99.9 || got > 100.1 {
		t.Errorf("RevenueDeltaPct = %.2f, want ~100", got)
	}
	if summary.OrdersDeltaPct == nil {
		t.Fatal("OrdersDeltaPct should be set when the prior window has orders")
	}
}

func TestAnalytics_MonthlySalesChronological(t *testing.T) {
	a := NewAnalytics()
	a.SetData([]models.OrderRecord{
		order("#SB1001", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "A", "Skincare", 10),
		order("#SB1002", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "A", "Skincare", 20),
		order("#SB1003", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "A", "Skincare", 30),
	})

	result := a.MonthlySales(Filter{})
	if len(result) != 2 {
		t.Fatalf("got %d monthly points, want 2", len(result))
	}
	if result[0].Month != "2025-01" || result[1].Month != "2025-03" {
		t.Errorf("months not chronological: %v, %v", result[0].Month, result[1].Month)
	}
	if result[0].Revenue < 49.9 || result[0].Revenue > 50.1 {
		t.Errorf("January revenue = %.2f, want 50", result[0].Revenue)
	}
	if result[0].Orders != 2 {
		t.Errorf("January orders = %d, want 2", result[0].Orders)
	}
}

func TestAnalytics_OrderHeatmapDenseGrid(t *testing.T) {
	a := NewAnalytics()
	// 2025-06-02 is a Monday.
	a.SetData([]models.OrderRecord{
		order("#SB1001", time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC), "A", "Skincare", 10),
	})

	cells := a.OrderHeatmap(Filter{})
	if len(cells) != 7*24 {
		t.Fatalf("got %d heatmap cells, want %d", len(cells), 7*24)
	}
	if cells[0].Weekday != "Monday" || cells[0].Hour != 0 {
		t.Errorf("grid should start Monday hour 0, got %s hour %d", cells[0].Weekday, cells[0].Hour)
	}

	var total int
	for _, c := range cells {
		total += c.Orders
		if c.Weekday == "Monday" && c.Hour == 14 && c.Orders != 1 {
			t.Errorf("Monday 14h = %d orders, want 1", c.Orders)
		}
	}
	if total != 1 {
		t.Errorf("heatmap totals %d orders, want 1", total)
	}
}

func TestAnalytics_TopProductsSortedAndLimited(t *testing.T) {
	a := NewAnalytics()
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	a.SetData([]models.OrderRecord{
		order("#SB1001", day, "Volumizing Mascara", "Makeup", 10),
		order("#SB1002", day, "Retinol Night Cream", "Skincare", 50),
		order("#SB1003", day, "Retinol Night Cream", "Skincare", 50),
		order("#SB1004", day, "Setting Spray", "Makeup", 30),
	})

	result := a.TopProducts(Filter{}, 2)
	if len(result) != 2 {
		t.Fatalf("limit not applied, got %d rows", len(result))
	}
	if result[0].ProductName != "Retinol Night Cream" {
		t.Errorf("top product = %q, want Retinol Night Cream", result[0].ProductName)
	}
	if result[0].Revenue < result[1].Revenue {
		t.Error("TopProducts() should be sorted by revenue descending")
	}
	if result[0].Orders != 2 {
		t.Errorf("top product orders = %d, want 2", result[0].Orders)
	}
}

func TestAnalytics_DiscountCodesIgnoreEmpty(t *testing.T) {
	a := NewAnalytics()
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	withCode := order("#SB1001", day, "A", "Skincare", 30)
	withCode.DiscountCode = "SUMMER15"
	withCode.DiscountAmount = decimal.NewFromFloat(5.25)
	noCode := order("#SB1002", day, "A", "Skincare", 35)

	a.SetData([]models.OrderRecord{withCode, withCode, noCode})

	result := a.DiscountCodes(Filter{})
	if len(result) != 1 {
		t.Fatalf("got %d discount rows, want 1", len(result))
	}
	if result[0].Code != "SUMMER15" || result[0].Uses != 2 {
		t.Errorf("got %+v, want SUMMER15 with 2 uses", result[0])
	}
}

func TestAnalytics_StatusBreakdown(t *testing.T) {
	a := NewAnalytics()
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	returned := order("#SB1003", day, "A", "Skincare", 10)
	returned.OrderStatus = "Returned"
	a.SetData([]models.OrderRecord{
		order("#SB1001", day, "A", "Skincare", 10),
		order("#SB1002", day, "A", "Skincare", 10),
		returned,
	})

	result := a.StatusBreakdown(Filter{})
	if len(result) != 2 {
		t.Fatalf("got %d status rows, want 2", len(result))
	}
	if result[0].Status != "Delivered" || result[0].Orders != 2 {
		t.Errorf("top status = %+v, want Delivered with 2 orders", result[0])
	}
}

func TestAnalytics_ConcurrentAccess(t *testing.T) {
	a := NewAnalytics()
	a.SetData([]models.OrderRecord{
		order("#SB1001", time.Now(), "Setting Spray", "Makeup", 18.99),
	})

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()

			_ = a.Summary(Filter{})
			_ = a.TopProducts(Filter{Category: "Makeup"}, 20)
			_ = a.MonthlySales(Filter{})
			_ = a.CountryRevenue(Filter{}, 15)
			_ = a.OrderHeatmap(Filter{})
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestAnalytics_EmptyData(t *testing.T) {
	a := NewAnalytics()

	if got := a.Summary(Filter{}); got.TotalOrders != 0 {
		t.Errorf("Summary() on empty data reports %d orders", got.TotalOrders)
	}
	if got := a.MonthlySales(Filter{}); len(got) != 0 {
		t.Errorf("MonthlySales() should be empty, got %d", len(got))
	}
	if got := a.TopProducts(Filter{}, 20); len(got) != 0 {
		t.Errorf("TopProducts() should be empty, got %d", len(got))
	}
	if got := a.CountryRevenue(Filter{}, 15); len(got) != 0 {
		t.Errorf("CountryRevenue() should be empty, got %d", len(got))
	}
}

func BenchmarkAnalytics_Summary(b *testing.B) {
	a := NewAnalytics()
	records := make([]models.OrderRecord, 1000)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range records {
		records[i] = order("#SB1001", base.AddDate(0, 0, i%180), "Product", "Skincare", float64(i%50)+10)
	}
	a.SetData(records)

	b.ResetTimer()
	for b.Loop() {
		_ = a.Summary(Filter{})
	}
}

func BenchmarkAnalytics_FilteredTopProducts(b *testing.B) {
	a := NewAnalytics()
	records := make([]models.OrderRecord, 1000)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range records {
		records[i] = order("#SB1001", base.AddDate(0, 0, i%180), "Product", "Skincare", float64(i%50)+10)
	}
	a.SetData(records)

	b.ResetTimer()
	for b.Loop() {
		_ = a.TopProducts(Filter{Category: "Skincare"}, 20)
	}
}
