package catalog

import (
	"math"
	"testing"
)

func TestCategoryWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, c := range Categories {
		if c.Weight <= 0 {
			t.Errorf("category %q has non-positive weight %v", c.Name, c.Weight)
		}
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("category weights sum to %v, want 1.0", sum)
	}
}

func TestCategoriesHaveProductsAndPrices(t *testing.T) {
	for _, c := range Categories {
		if len(c.Products) == 0 {
			t.Errorf("category %q has no products", c.Name)
		}
		for _, p := range c.Products {
			if p.Name == "" {
				t.Errorf("category %q has a product with no name", c.Name)
			}
			if p.UnitPrice <= 0 {
				t.Errorf("product %q has non-positive price %v", p.Name, p.UnitPrice)
			}
		}
	}
}

func TestFlat(t *testing.T) {
	pairs, weights := Flat()

	var want int
	for _, c := range Categories {
		want += len(c.Products)
	}
	if len(pairs) != want || len(weights) != want {
		t.Fatalf("Flat() returned %d pairs and %d weights, want %d", len(pairs), len(weights), want)
	}

	// A category's weight is split evenly across its products, so the
	// flattened weights still sum to 1.0.
	var sum float64
	for i, w := range weights {
		if w <= 0 {
			t.Errorf("pair %v has non-positive weight", pairs[i])
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("flattened weights sum to %v, want 1.0", sum)
	}

	byCategory := make(map[string]float64)
	for i, p := range pairs {
		byCategory[p.Category] += weights[i]
	}
	for _, c := range Categories {
		if got := byCategory[c.Name]; math.Abs(got-c.Weight) > 1e-9 {
			t.Errorf("category %q flattened weight = %v, want %v", c.Name, got, c.Weight)
		}
	}
}

func TestWeightedPoolsNonEmpty(t *testing.T) {
	pools := map[string][]Weighted{
		"countries":       Countries,
		"payment methods": PaymentMethods,
		"order statuses":  OrderStatuses,
	}
	for name, pool := range pools {
		if len(pool) == 0 {
			t.Errorf("%s pool is empty", name)
			continue
		}
		for _, entry := range pool {
			if entry.Value == "" || entry.Weight <= 0 {
				t.Errorf("%s pool has invalid entry %+v", name, entry)
			}
		}
	}
}

func TestDiscountCodesPool(t *testing.T) {
	var empty, coded int
	for _, c := range DiscountCodes {
		if c.Code == "" {
			if c.Percent != 0 {
				t.Errorf("empty code carries percent %d", c.Percent)
			}
			empty++
			continue
		}
		coded++
		if c.Percent <= 0 || c.Percent >= 100 {
			t.Errorf("code %q has percent %d outside (0, 100)", c.Code, c.Percent)
		}
	}
	if empty == 0 {
		t.Error("pool should contain empty entries so some orders go undiscounted")
	}
	if coded == 0 {
		t.Error("pool should contain real codes")
	}
}

func TestShippingMethodCostRanges(t *testing.T) {
	for _, m := range ShippingMethods {
		if m.CostLow > m.CostHigh {
			t.Errorf("method %q has cost low %v above high %v", m.Name, m.CostLow, m.CostHigh)
		}
		if m.Weight <= 0 {
			t.Errorf("method %q has non-positive weight", m.Name)
		}
	}
}
