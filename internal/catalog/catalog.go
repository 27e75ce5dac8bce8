// Package catalog holds the static product catalog and the weighted pools the
// order generator draws from. Weights are selection probabilities relative to
// the sum of their pool.
package catalog

// Product is one sellable item with its fixed catalog price.
type Product struct {
	Name      string
	UnitPrice float64
}

// Category groups products and carries the category's popularity weight.
// Products within a category are equally likely, so a product's effective
// weight is Weight / len(Products).
type Category struct {
	Name     string
	Weight   float64
	Products []Product
}

// DiscountCode carries the percentage off as an explicit attribute rather
// than encoding it in the code string.
type DiscountCode struct {
	Code    string
	Percent int
}

// ShippingMethod determines the shipping cost range; Free Shipping has a
// zero range.
type ShippingMethod struct {
	Name     string
	Weight   float64
	CostLow  float64
	CostHigh float64
}

// Weighted is a generic (value, weight) pool entry.
type Weighted struct {
	Value  string
	Weight float64
}

// Categories is the beauty-store catalog. Category weights sum to 1.0.
var Categories = []Category{
	{
		Name:   "Skincare",
		Weight: 0.30,
		Products: []Product{
			{"Hydrating Face Serum", 34.99},
			{"Vitamin C Brightening Cream", 28.99},
			{"Retinol Night Cream", 42.99},
			{"Gentle Foaming Cleanser", 18.99},
			{"SPF 50 Daily Sunscreen", 24.99},
			{"Hyaluronic Acid Moisturizer", 31.99},
			{"Niacinamide Pore Minimizer", 26.99},
			{"Exfoliating Toner", 19.99},
		},
	},
	{
		Name:   "Makeup",
		Weight: 0.28,
		Products: []Product{
			{"Matte Liquid Lipstick", 16.99},
			{"Full Coverage Foundation", 32.99},
			{"Volumizing Mascara", 14.99},
			{"Eyeshadow Palette - Neutral", 38.99},
			{"Cream Blush Stick", 22.99},
			{"Setting Spray", 18.99},
			{"Brow Defining Pencil", 12.99},
			{"Concealer Wand", 15.99},
		},
	},
	{
		Name:   "Haircare",
		Weight: 0.18,
		Products: []Product{
			{"Argan Oil Shampoo", 21.99},
			{"Deep Repair Conditioner", 21.99},
			{"Leave-In Hair Treatment", 27.99},
			{"Heat Protectant Spray", 16.99},
			{"Scalp Detox Scrub", 24.99},
			{"Keratin Smoothing Mask", 29.99},
		},
	},
	{
		Name:   "Bath & Body",
		Weight: 0.14,
		Products: []Product{
			{"Shea Butter Body Lotion", 19.99},
			{"Coconut Milk Body Wash", 14.99},
			{"Exfoliating Body Scrub", 22.99},
			{"Rose Petal Bath Bombs (Set of 4)", 18.99},
			{"Hand & Nail Cream", 12.99},
		},
	},
	{
		Name:   "Fragrance",
		Weight: 0.10,
		Products: []Product{
			{"Floral Eau de Parfum", 54.99},
			{"Citrus Eau de Toilette", 44.99},
			{"Vanilla Musk Body Mist", 24.99},
			{"Woody Amber Perfume Oil", 39.99},
		},
	},
}

var Countries = []Weighted{
	{"United States", 0.42},
	{"United Kingdom", 0.12},
	{"Canada", 0.10},
	{"Australia", 0.07},
	{"Germany", 0.05},
	{"France", 0.04},
	{"Netherlands", 0.03},
	{"India", 0.03},
	{"Brazil", 0.03},
	{"Japan", 0.02},
	{"Mexico", 0.02},
	{"South Korea", 0.02},
	{"Italy", 0.02},
	{"Spain", 0.015},
	{"Sweden", 0.005},
}

var PaymentMethods = []Weighted{
	{"Credit Card", 0.40},
	{"PayPal", 0.25},
	{"Shopify Payments", 0.20},
	{"Apple Pay", 0.08},
	{"Google Pay", 0.05},
	{"Klarna", 0.02},
}

var OrderStatuses = []Weighted{
	{"Delivered", 0.72},
	{"Shipped", 0.12},
	{"Processing", 0.06},
	{"Returned", 0.05},
	{"Cancelled", 0.03},
	{"Refunded", 0.02},
}

var ShippingMethods = []ShippingMethod{
	{"Standard Shipping", 0.50, 3.99, 6.99},
	{"Express Shipping", 0.30, 9.99, 14.99},
	{"Free Shipping", 0.15, 0, 0},
	{"Overnight Shipping", 0.05, 19.99, 29.99},
}

// DiscountCodes is a uniform pool; the seven empty entries bias the draw
// toward undiscounted orders.
var DiscountCodes = []DiscountCode{
	{}, {}, {}, {}, {}, {}, {},
	{"WELCOME10", 10},
	{"SUMMER15", 15},
	{"BEAUTY20", 20},
	{"VIP25", 25},
	{"FLASH10", 10},
	{"HOLIDAY15", 15},
	{"NEWYEAR20", 20},
	{"BDAY10", 10},
}

// Quantities and QuantityWeights define the per-order quantity draw.
var (
	Quantities      = []int{1, 2, 3, 4, 5}
	QuantityWeights = []float64{55, 25, 12, 5, 3}
)

// Flat returns every (category, product) pair with its effective weight:
// the category weight split evenly across the category's products.
func Flat() (pairs []FlatProduct, weights []float64) {
	for _, c := range Categories {
		per := c.Weight / float64(len(c.Products))
		for _, p := range c.Products {
			pairs = append(pairs, FlatProduct{Category: c.Name, Name: p.Name, UnitPrice: p.UnitPrice})
			weights = append(weights, per)
		}
	}
	return pairs, weights
}

// FlatProduct is one entry of the flattened catalog.
type FlatProduct struct {
	Category  string
	Name      string
	UnitPrice float64
}
