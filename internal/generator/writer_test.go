package generator

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"beauty-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

func sampleRecord(id string) models.OrderRecord {
	return models.OrderRecord{
		OrderID:         id,
		OrderDate:       time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC),
		ProductName:     "Hydrating Face Serum",
		ProductCategory: "Skincare",
		SKU:             "SKI-HYDR-123",
		Quantity:        2,
		UnitPrice:       decimal.NewFromFloat(34.99),
		DiscountCode:    "SUMMER15",
		DiscountAmount:  decimal.NewFromFloat(10.50),
		TotalPrice:      decimal.NewFromFloat(59.48),
		CustomerID:      "CUST-000042",
		CustomerCountry: "United States",
		PaymentMethod:   "Credit Card",
		ShippingMethod:  "Standard Shipping",
		ShippingCost:    decimal.NewFromFloat(4.50),
		OrderStatus:     "Delivered",
	}
}

func TestWriteCSV_CreatesNestedDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "orders.csv")

	if err := writeCSV(path, []models.OrderRecord{sampleRecord("#SB1001")}); err != nil {
		t.Fatalf("writeCSV() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	want := sampleRecord("#SB1001")

	if err := writeCSV(path, []models.OrderRecord{want}); err != nil {
		t.Fatalf("writeCSV() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}
	if !slices.Equal(rows[0], models.Columns()) {
		t.Errorf("header = %v, want %v", rows[0], models.Columns())
	}

	got, err := models.ParseRow(rows[1])
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	if got.OrderID != want.OrderID || !got.OrderDate.Equal(want.OrderDate) ||
		got.Quantity != want.Quantity || !got.TotalPrice.Equal(want.TotalPrice) {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if rows[1][6] != "34.99" || rows[1][14] != "4.50" {
		t.Errorf("money columns not fixed to two decimals: %v", rows[1])
	}
}

func TestWriteCSV_HeaderOnlyForEmptyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")

	if err := writeCSV(path, nil); err != nil {
		t.Fatalf("writeCSV() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join(models.Columns(), ",") + "\n"
	if string(data) != want {
		t.Errorf("empty dataset file = %q, want header only", string(data))
	}
}

func TestWriteCSV_NoLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")

	if err := writeCSV(path, []models.OrderRecord{sampleRecord("#SB1001")}); err != nil {
		t.Fatalf("writeCSV() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "orders.csv" {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}

func TestWriteCSV_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte("stale contents\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := writeCSV(path, []models.OrderRecord{sampleRecord("#SB2001")}); err != nil {
		t.Fatalf("writeCSV() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("previous file contents survived the rewrite")
	}
	if !strings.Contains(string(data), "#SB2001") {
		t.Error("new record missing from rewritten file")
	}
}
