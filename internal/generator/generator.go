// Package generator produces the synthetic order dataset: a seasonally
// weighted stream of internally consistent commerce records written as CSV.
package generator

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"beauty-dashboard/internal/catalog"
	"beauty-dashboard/internal/errors"
	"beauty-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

const (
	orderIDPrefix    = "#SB"
	customerIDPrefix = "CUST"

	// customerPoolRatio sizes the customer pool relative to the order count,
	// so roughly 45% of orders hit a repeat customer.
	customerPoolRatio = 0.55
)

// Config are the generation parameters. Seed and Count are explicit so runs
// are reproducible and testable.
type Config struct {
	Count      int
	Seed       int64
	Start      time.Time
	End        time.Time
	OutputPath string
}

// Validate fails fast before any sampling begins.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return errors.Configuration(fmt.Sprintf("order count must be positive, got %d", c.Count))
	}
	if c.OutputPath == "" {
		return errors.Configuration("output path cannot be empty")
	}
	if c.Start.IsZero() || c.End.IsZero() {
		return errors.Configuration("date range must be set")
	}
	if c.End.Before(c.Start) {
		return errors.Configuration(fmt.Sprintf("end date %s is before start date %s",
			c.End.Format("2006-01-02"), c.Start.Format("2006-01-02")))
	}
	if len(catalog.Categories) == 0 {
		return errors.Configuration("product catalog is empty")
	}
	for _, cat := range catalog.Categories {
		if len(cat.Products) == 0 {
			return errors.Configuration(fmt.Sprintf("category %q has no products", cat.Name))
		}
	}
	return nil
}

// CategoryCount is one row of the run summary.
type CategoryCount struct {
	Category string
	Orders   int
	Revenue  decimal.Decimal
}

// Summary reports what a generation run produced.
type Summary struct {
	Orders     int
	Revenue    decimal.Decimal
	ByCategory []CategoryCount
	Elapsed    time.Duration
}

// Generate produces cfg.Count records and writes them to cfg.OutputPath.
// Generation is single-threaded over one seeded rng, so a fixed
// (seed, count, range) yields a byte-identical file.
func Generate(cfg Config, logger *slog.Logger) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger.Info("generating order dataset",
		"count", cfg.Count,
		"seed", cfg.Seed,
		"start", cfg.Start.Format("2006-01-02"),
		"end", cfg.End.Format("2006-01-02"),
		"output", cfg.OutputPath,
	)

	rng := rand.New(rand.NewSource(cfg.Seed))
	products, weights := catalog.Flat()
	poolSize := int(float64(cfg.Count) * customerPoolRatio)
	if poolSize < 1 {
		poolSize = 1
	}

	records := make([]models.OrderRecord, cfg.Count)
	byCategory := make(map[string]*CategoryCount)
	revenue := decimal.Zero

	for i := range records {
		rec := buildOrder(rng, i+1, poolSize, cfg.Start, cfg.End, products, weights)
		records[i] = rec

		cc := byCategory[rec.ProductCategory]
		if cc == nil {
			cc = &CategoryCount{Category: rec.ProductCategory}
			byCategory[rec.ProductCategory] = cc
		}
		cc.Orders++
		cc.Revenue = cc.Revenue.Add(rec.TotalPrice)
		revenue = revenue.Add(rec.TotalPrice)
	}

	if err := writeCSV(cfg.OutputPath, records); err != nil {
		return nil, err
	}

	summary := &Summary{
		Orders:  cfg.Count,
		Revenue: revenue,
		Elapsed: time.Since(start),
	}
	for _, cat := range catalog.Categories {
		if cc := byCategory[cat.Name]; cc != nil {
			summary.ByCategory = append(summary.ByCategory, *cc)
		}
	}

	logger.Info("order dataset ready",
		"orders", summary.Orders,
		"revenue", summary.Revenue.StringFixed(2),
		"duration", summary.Elapsed,
	)
	return summary, nil
}

// buildOrder assembles record number idx (1-based). The draw order is fixed;
// changing it changes the byte output of seeded runs.
func buildOrder(rng *rand.Rand, idx, poolSize int, start, end time.Time,
	products []catalog.FlatProduct, weights []float64) models.OrderRecord {

	product := choiceWeighted(rng, products, weights)
	quantity := choiceWeighted(rng, catalog.Quantities, catalog.QuantityWeights)

	unitPrice := decimal.NewFromFloat(product.UnitPrice)
	code := catalog.DiscountCodes[rng.Intn(len(catalog.DiscountCodes))]
	discount, total := derivePricing(unitPrice, quantity, code)

	shipping := choiceShipping(rng, catalog.ShippingMethods)
	shippingCost := decimal.Zero
	if shipping.CostHigh > 0 {
		shippingCost = decimal.NewFromFloat(shipping.CostLow + rng.Float64()*(shipping.CostHigh-shipping.CostLow)).Round(2)
	}

	return models.OrderRecord{
		OrderID:         fmt.Sprintf("%s%d", orderIDPrefix, 1000+idx),
		SKU:             buildSKU(rng, product.Category, product.Name),
		OrderDate:       randomOrderTime(rng, start, end),
		ProductName:     product.Name,
		ProductCategory: product.Category,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountCode:    code.Code,
		DiscountAmount:  discount,
		TotalPrice:      total,
		CustomerID:      fmt.Sprintf("%s-%06d", customerIDPrefix, 1+rng.Intn(poolSize)),
		CustomerCountry: choicePool(rng, catalog.Countries),
		PaymentMethod:   choicePool(rng, catalog.PaymentMethods),
		ShippingMethod:  shipping.Name,
		ShippingCost:    shippingCost,
		OrderStatus:     choicePool(rng, catalog.OrderStatuses),
	}
}

// derivePricing computes the discount amount and total for one line item.
// Both are rounded to cents; total stays non-negative for any catalog price
// and discount percentage below 100.
func derivePricing(unitPrice decimal.Decimal, quantity int, code catalog.DiscountCode) (discount, total decimal.Decimal) {
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount = decimal.Zero
	if code.Code != "" {
		discount = gross.Mul(decimal.New(int64(code.Percent), -2)).Round(2)
	}
	return discount, gross.Sub(discount).Round(2)
}

// buildSKU derives CAT-PROD-NNN from the category, the product's first word
// and a random 3-digit suffix.
func buildSKU(rng *rand.Rand, category, productName string) string {
	catPart := strings.ToUpper(prefixOf(category, 3))
	prodPart := strings.ToUpper(prefixOf(strings.Fields(productName)[0], 4))
	return fmt.Sprintf("%s-%s-%d", catPart, prodPart, 100+rng.Intn(900))
}

func prefixOf(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
