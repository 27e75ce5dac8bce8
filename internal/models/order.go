package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the order_date format used in the CSV.
const TimestampLayout = "2006-01-02 15:04:05"

// OrderRecord is one row of the orders dataset. Currency fields are decimals
// and serialize with exactly two fraction digits.
type OrderRecord struct {
	OrderID         string
	OrderDate       time.Time
	ProductName     string
	ProductCategory string
	SKU             string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountCode    string
	DiscountAmount  decimal.Decimal
	TotalPrice      decimal.Decimal
	CustomerID      string
	CustomerCountry string
	PaymentMethod   string
	ShippingMethod  string
	ShippingCost    decimal.Decimal
	OrderStatus     string
}

// Columns is the fixed CSV column order.
func Columns() []string {
	return []string{
		"order_id",
		"order_date",
		"product_name",
		"product_category",
		"sku",
		"quantity",
		"unit_price",
		"discount_code",
		"discount_amount",
		"total_price",
		"customer_id",
		"customer_country",
		"payment_method",
		"shipping_method",
		"shipping_cost",
		"order_status",
	}
}

// CSVRow renders the record in column order.
func (r OrderRecord) CSVRow() []string {
	return []string{
		r.OrderID,
		r.OrderDate.Format(TimestampLayout),
		r.ProductName,
		r.ProductCategory,
		r.SKU,
		strconv.Itoa(r.Quantity),
		r.UnitPrice.StringFixed(2),
		r.DiscountCode,
		r.DiscountAmount.StringFixed(2),
		r.TotalPrice.StringFixed(2),
		r.CustomerID,
		r.CustomerCountry,
		r.PaymentMethod,
		r.ShippingMethod,
		r.ShippingCost.StringFixed(2),
		r.OrderStatus,
	}
}

// ParseRow parses one CSV row in column order.
func ParseRow(record []string) (OrderRecord, error) {
	if len(record) != len(Columns()) {
		return OrderRecord{}, fmt.Errorf("expected %d columns, got %d", len(Columns()), len(record))
	}

	date, err := time.Parse(TimestampLayout, strings.TrimSpace(record[1]))
	if err != nil {
		return OrderRecord{}, fmt.Errorf("order_date: %w", err)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil {
		return OrderRecord{}, fmt.Errorf("quantity: %w", err)
	}

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(record[6]))
	if err != nil {
		return OrderRecord{}, fmt.Errorf("unit_price: %w", err)
	}

	discountAmount, err := decimal.NewFromString(strings.TrimSpace(record[8]))
	if err != nil {
		return OrderRecord{}, fmt.Errorf("discount_amount: %w", err)
	}

	totalPrice, err := decimal.NewFromString(strings.TrimSpace(record[9]))
	if err != nil {
		return OrderRecord{}, fmt.Errorf("total_price: %w", err)
	}

	shippingCost, err := decimal.NewFromString(strings.TrimSpace(record[14]))
	if err != nil {
		return OrderRecord{}, fmt.Errorf("shipping_cost: %w", err)
	}

	return OrderRecord{
		OrderID:         strings.TrimSpace(record[0]),
		OrderDate:       date,
		ProductName:     strings.TrimSpace(record[2]),
		ProductCategory: strings.TrimSpace(record[3]),
		SKU:             strings.TrimSpace(record[4]),
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountCode:    strings.TrimSpace(record[7]),
		DiscountAmount:  discountAmount,
		TotalPrice:      totalPrice,
		CustomerID:      strings.TrimSpace(record[10]),
		CustomerCountry: strings.TrimSpace(record[11]),
		PaymentMethod:   strings.TrimSpace(record[12]),
		ShippingMethod:  strings.TrimSpace(record[13]),
		ShippingCost:    shippingCost,
		OrderStatus:     strings.TrimSpace(record[15]),
	}, nil
}
