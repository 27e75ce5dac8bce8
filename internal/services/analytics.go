package services

import (
	"bufio"
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"beauty-dashboard/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize    = 10000
	maxWorkers   = 10
	cacheVersion = "v2"
	cacheDir     = ".cache"

	deltaWindow = 30 * 24 * time.Hour
)

// Filter narrows aggregations to a slice of the dataset. Zero fields are
// unbounded; End is inclusive of the whole end day.
type Filter struct {
	Start    time.Time
	End      time.Time
	Category string
	Country  string
	Status   string
}

func (f Filter) IsZero() bool {
	return f.Start.IsZero() && f.End.IsZero() && f.Category == "" && f.Country == "" && f.Status == ""
}

func (f Filter) matches(r models.OrderRecord) bool {
	if !f.Start.IsZero() && r.OrderDate.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && !r.OrderDate.Before(f.End.AddDate(0, 0, 1)) {
		return false
	}
	if f.Category != "" && r.ProductCategory != f.Category {
		return false
	}
	if f.Country != "" && r.CustomerCountry != f.Country {
		return false
	}
	if f.Status != "" && r.OrderStatus != f.Status {
		return false
	}
	return true
}

// DashboardSnapshot holds every unfiltered aggregation, precomputed once at
// load so the common no-filter requests are map-free reads.
type DashboardSnapshot struct {
	Summary      models.SummaryMetrics    `json:"summary"`
	Monthly      []models.MonthlyPoint    `json:"monthly"`
	Heatmap      []models.HeatmapCell     `json:"heatmap"`
	Statuses     []models.StatusCount     `json:"statuses"`
	TopProducts  []models.ProductRevenue  `json:"top_products"`
	Categories   []models.CategoryRevenue `json:"categories"`
	Countries    []models.CountryRevenue  `json:"countries"`
	Payments     []models.PaymentRevenue  `json:"payments"`
	Discounts    []models.DiscountUsage   `json:"discounts"`
	LastModified time.Time                `json:"last_modified"`
	RecordCount  int64                    `json:"record_count"`
}

// cachePayload is what gets gob-encoded: the snapshot plus the raw records,
// since filtered queries aggregate records on demand.
type cachePayload struct {
	Snapshot *DashboardSnapshot
	Records  []models.OrderRecord
}

type Analytics struct {
	mu       sync.RWMutex
	records  []models.OrderRecord
	snapshot *DashboardSnapshot
	csvPath  string
	logger   *slog.Logger
}

func NewAnalytics() *Analytics {
	return &Analytics{
		snapshot: &DashboardSnapshot{},
		logger:   slog.Default(),
	}
}

// SetData replaces the dataset directly, bypassing the CSV path.
func (a *Analytics) SetData(records []models.OrderRecord) {
	snapshot := computeSnapshot(records)
	snapshot.LastModified = time.Now()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = records
	a.snapshot = snapshot
}

func (a *Analytics) LoadFromCSV(ctx context.Context, filename string) error {
	a.csvPath = filename

	if cached, err := a.loadFromCache(filename); err == nil {
		fileInfo, err := os.Stat(filename)
		if err == nil && fileInfo.ModTime().Before(cached.Snapshot.LastModified) {
			a.mu.Lock()
			a.records = cached.Records
			a.snapshot = cached.Snapshot
			a.mu.Unlock()
			a.logger.Info("loaded from cache", "records", cached.Snapshot.RecordCount)
			return nil
		}
	}

	start := time.Now()
	a.logger.Info("processing orders CSV", "filename", filename)

	records, err := a.streamParseCSV(ctx, filename)
	if err != nil {
		return fmt.Errorf("process csv: %w", err)
	}

	snapshot := computeSnapshot(records)
	snapshot.LastModified = time.Now()

	a.mu.Lock()
	a.records = records
	a.snapshot = snapshot
	a.mu.Unlock()

	if err := a.saveToCache(filename); err != nil {
		a.logger.Warn("failed to save cache", "error", err)
	}

	duration := time.Since(start)
	a.logger.Info("orders CSV processed",
		"records", len(records),
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(len(records))/duration.Seconds()))

	return nil
}

// streamParseCSV reads the file line by line and parses batches in parallel.
// Lines that do not parse are skipped.
func (a *Analytics) streamParseCSV(ctx context.Context, filename string) ([]models.OrderRecord, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty file")
	}
	header := strings.Split(scanner.Text(), ",")
	if len(header) != len(models.Columns()) {
		return nil, fmt.Errorf("expected %d columns in header, got %d", len(models.Columns()), len(header))
	}

	var records []models.OrderRecord
	batch := make([]string, 0, batchSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch = append(batch, scanner.Text())

		if len(batch) >= batchSize {
			parsed, err := parseBatch(ctx, batch)
			if err != nil {
				return nil, err
			}
			records = append(records, parsed...)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		parsed, err := parseBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no valid records found")
	}
	return records, nil
}

func parseBatch(ctx context.Context, batch []string) ([]models.OrderRecord, error) {
	parsed := make([]*models.OrderRecord, len(batch))

	var wg errgroup.Group
	wg.SetLimit(maxWorkers)

	for i, line := range batch {
		wg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rec, err := models.ParseRow(strings.Split(line, ","))
			if err != nil {
				return nil // skip malformed lines
			}
			parsed[i] = &rec
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.OrderRecord, 0, len(parsed))
	for _, rec := range parsed {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// filtered returns the records matching f under the read lock.
func (a *Analytics) filtered(f Filter) []models.OrderRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if f.IsZero() {
		return a.records
	}
	out := make([]models.OrderRecord, 0, len(a.records)/2)
	for _, r := range a.records {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Query methods. The zero filter is served from the precomputed snapshot;
// anything else aggregates on demand.

func (a *Analytics) Summary(f Filter) models.SummaryMetrics {
	if f.IsZero() {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.snapshot.Summary
	}
	return computeSummary(a.filtered(f))
}

func (a *Analytics) MonthlySales(f Filter) []models.MonthlyPoint {
	if f.IsZero() {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.snapshot.Monthly
	}
	return computeMonthly(a.filtered(f))
}

func (a *Analytics) OrderHeatmap(f Filter) []models.HeatmapCell {
	if f.IsZero() {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.snapshot.Heatmap
	}
	return computeHeatmap(a.filtered(f))
}

func (a *Analytics) StatusBreakdown(f Filter) []models.StatusCount {
	if f.IsZero() {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.snapshot.Statuses
	}
	return computeStatuses(a.filtered(f))
}

func (a *Analytics) TopProducts(f Filter, limit int) []models.ProductRevenue {
	var products []models.ProductRevenue
	if f.IsZero() {
		a.mu.RLock()
		products = a.snapshot.TopProducts
		a.mu.RUnlock()
	} else {
		products = computeTopProducts(a.filtered(f))
	}
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}

func (a *Analytics) CategoryRevenue(f Filter) []models.CategoryRevenue {
	if f.IsZero() {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.snapshot.Categories
	}
	return computeCategories(a.filtered(f))
}

func (a *Analytics) CountryRevenue(f Filter, limit int) []models.CountryRevenue {
	var countries []models.CountryRevenue
	if f.IsZero() {
		a.mu.RLock()
		countries = a.snapshot.Countries
		a.mu.RUnlock()
	} else {
		countries = computeCountries(a.filtered(f))
	}
	if limit > 0 && len(countries) > limit {
		return countries[:limit]
	}
	return countries
}

func (a *Analytics) PaymentMethods(f Filter) []models.PaymentRevenue {
	if f.IsZero() {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.snapshot.Payments
	}
	return computePayments(a.filtered(f))
}

func (a *Analytics) DiscountCodes(f Filter) []models.DiscountUsage {
	if f.IsZero() {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return a.snapshot.Discounts
	}
	return computeDiscounts(a.filtered(f))
}

func (a *Analytics) RecordCount() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot.RecordCount
}

// Stats is the /admin/stats payload.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]any{
		"record_count":   a.snapshot.RecordCount,
		"last_processed": a.snapshot.LastModified,
		"months":         len(a.snapshot.Monthly),
		"products":       len(a.snapshot.TopProducts),
		"categories":     len(a.snapshot.Categories),
		"countries":      len(a.snapshot.Countries),
		"statuses":       len(a.snapshot.Statuses),
	}
}

// Cache management

func (a *Analytics) getCacheFilename(csvPath string) string {
	return fmt.Sprintf("%s/%s_%s.gob", cacheDir, strings.ReplaceAll(csvPath, "/", "_"), cacheVersion)
}

func (a *Analytics) saveToCache(csvPath string) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}

	file, err := os.Create(a.getCacheFilename(csvPath))
	if err != nil {
		return err
	}
	defer file.Close()

	a.mu.RLock()
	defer a.mu.RUnlock()

	return gob.NewEncoder(file).Encode(cachePayload{
		Snapshot: a.snapshot,
		Records:  a.records,
	})
}

func (a *Analytics) loadFromCache(csvPath string) (*cachePayload, error) {
	file, err := os.Open(a.getCacheFilename(csvPath))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var payload cachePayload
	if err := gob.NewDecoder(file).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Snapshot == nil {
		return nil, fmt.Errorf("cache missing snapshot")
	}
	return &payload, nil
}

func computeSnapshot(records []models.OrderRecord) *DashboardSnapshot {
	return &DashboardSnapshot{
		Summary:     computeSummary(records),
		Monthly:     computeMonthly(records),
		Heatmap:     computeHeatmap(records),
		Statuses:    computeStatuses(records),
		TopProducts: computeTopProducts(records),
		Categories:  computeCategories(records),
		Countries:   computeCountries(records),
		Payments:    computePayments(records),
		Discounts:   computeDiscounts(records),
		RecordCount: int64(len(records)),
	}
}

func computeSummary(records []models.OrderRecord) models.SummaryMetrics {
	if len(records) == 0 {
		return models.SummaryMetrics{BestProduct: "—"}
	}

	var (
		revenue    float64
		maxDate    time.Time
		byProduct  = make(map[string]float64)
		byCustomer = make(map[string]struct{})
	)
	for _, r := range records {
		total := r.TotalPrice.InexactFloat64()
		revenue += total
		byProduct[r.ProductName] += total
		byCustomer[r.CustomerID] = struct{}{}
		if r.OrderDate.After(maxDate) {
			maxDate = r.OrderDate
		}
	}

	best := ""
	bestRevenue := -1.0
	for name, rev := range byProduct {
		if rev > bestRevenue || (rev == bestRevenue && name < best) {
			best, bestRevenue = name, rev
		}
	}

	summary := models.SummaryMetrics{
		TotalRevenue:    revenue,
		TotalOrders:     len(records),
		AvgOrderValue:   revenue / float64(len(records)),
		BestProduct:     best,
		UniqueCustomers: len(byCustomer),
	}

	// Trailing 30 days vs the 30 days before, anchored on the newest order.
	var lastRev, prevRev float64
	var lastOrders, prevOrders int
	lastCutoff := maxDate.Add(-deltaWindow)
	prevCutoff := maxDate.Add(-2 * deltaWindow)
	for _, r := range records {
		switch {
		case !r.OrderDate.Before(lastCutoff):
			lastRev += r.TotalPrice.InexactFloat64()
			lastOrders++
		case !r.OrderDate.Before(prevCutoff):
			prevRev += r.TotalPrice.InexactFloat64()
			prevOrders++
		}
	}
	if prevRev > 0 {
		delta := (lastRev/prevRev - 1) * 100
		summary.RevenueDeltaPct = &delta
	}
	if prevOrders > 0 {
		delta := (float64(lastOrders)/float64(prevOrders) - 1) * 100
		summary.OrdersDeltaPct = &delta
	}
	return summary
}

func computeMonthly(records []models.OrderRecord) []models.MonthlyPoint {
	type acc struct {
		revenue float64
		orders  int
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		month := r.OrderDate.Format("2006-01")
		g := groups[month]
		if g == nil {
			g = &acc{}
			groups[month] = g
		}
		g.revenue += r.TotalPrice.InexactFloat64()
		g.orders++
	}

	result := make([]models.MonthlyPoint, 0, len(groups))
	for month, g := range groups {
		result = append(result, models.MonthlyPoint{
			Month:         month,
			Revenue:       g.revenue,
			Orders:        g.orders,
			AvgOrderValue: g.revenue / float64(g.orders),
		})
	}
	// Chronological, it is a trend series.
	slices.SortFunc(result, func(a, b models.MonthlyPoint) int {
		return strings.Compare(a.Month, b.Month)
	})
	return result
}

var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func computeHeatmap(records []models.OrderRecord) []models.HeatmapCell {
	counts := make(map[string][24]int, len(weekdayOrder))
	for _, r := range records {
		day := r.OrderDate.Weekday().String()
		hours := counts[day]
		hours[r.OrderDate.Hour()]++
		counts[day] = hours
	}

	// Dense Monday-first grid, zero cells included.
	result := make([]models.HeatmapCell, 0, len(weekdayOrder)*24)
	for _, day := range weekdayOrder {
		hours := counts[day]
		for h := 0; h < 24; h++ {
			result = append(result, models.HeatmapCell{Weekday: day, Hour: h, Orders: hours[h]})
		}
	}
	return result
}

func computeStatuses(records []models.OrderRecord) []models.StatusCount {
	groups := make(map[string]int)
	for _, r := range records {
		groups[r.OrderStatus]++
	}

	result := make([]models.StatusCount, 0, len(groups))
	for status, orders := range groups {
		result = append(result, models.StatusCount{Status: status, Orders: orders})
	}
	slices.SortFunc(result, func(a, b models.StatusCount) int {
		if a.Orders != b.Orders {
			return b.Orders - a.Orders
		}
		return strings.Compare(a.Status, b.Status)
	})
	return result
}

func computeTopProducts(records []models.OrderRecord) []models.ProductRevenue {
	groups := make(map[string]*models.ProductRevenue)
	for _, r := range records {
		g := groups[r.ProductName]
		if g == nil {
			g = &models.ProductRevenue{ProductName: r.ProductName, Category: r.ProductCategory}
			groups[r.ProductName] = g
		}
		g.Revenue += r.TotalPrice.InexactFloat64()
		g.Orders++
	}
	return sortedByRevenue(groups, func(v *models.ProductRevenue) (float64, string) {
		return v.Revenue, v.ProductName
	})
}

func computeCategories(records []models.OrderRecord) []models.CategoryRevenue {
	groups := make(map[string]*models.CategoryRevenue)
	for _, r := range records {
		g := groups[r.ProductCategory]
		if g == nil {
			g = &models.CategoryRevenue{Category: r.ProductCategory}
			groups[r.ProductCategory] = g
		}
		g.Revenue += r.TotalPrice.InexactFloat64()
		g.Orders++
	}
	return sortedByRevenue(groups, func(v *models.CategoryRevenue) (float64, string) {
		return v.Revenue, v.Category
	})
}

func computeCountries(records []models.OrderRecord) []models.CountryRevenue {
	groups := make(map[string]*models.CountryRevenue)
	for _, r := range records {
		g := groups[r.CustomerCountry]
		if g == nil {
			g = &models.CountryRevenue{Country: r.CustomerCountry}
			groups[r.CustomerCountry] = g
		}
		g.Revenue += r.TotalPrice.InexactFloat64()
		g.Orders++
	}
	return sortedByRevenue(groups, func(v *models.CountryRevenue) (float64, string) {
		return v.Revenue, v.Country
	})
}

func computePayments(records []models.OrderRecord) []models.PaymentRevenue {
	groups := make(map[string]*models.PaymentRevenue)
	for _, r := range records {
		g := groups[r.PaymentMethod]
		if g == nil {
			g = &models.PaymentRevenue{Method: r.PaymentMethod}
			groups[r.PaymentMethod] = g
		}
		g.Revenue += r.TotalPrice.InexactFloat64()
		g.Orders++
	}
	return sortedByRevenue(groups, func(v *models.PaymentRevenue) (float64, string) {
		return v.Revenue, v.Method
	})
}

func computeDiscounts(records []models.OrderRecord) []models.DiscountUsage {
	groups := make(map[string]*models.DiscountUsage)
	for _, r := range records {
		if r.DiscountCode == "" {
			continue
		}
		g := groups[r.DiscountCode]
		if g == nil {
			g = &models.DiscountUsage{Code: r.DiscountCode}
			groups[r.DiscountCode] = g
		}
		g.Uses++
		g.DiscountedRevenue += r.TotalPrice.InexactFloat64()
	}

	result := make([]models.DiscountUsage, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	slices.SortFunc(result, func(a, b models.DiscountUsage) int {
		if a.Uses != b.Uses {
			return b.Uses - a.Uses
		}
		return strings.Compare(a.Code, b.Code)
	})
	return result
}

// sortedByRevenue flattens a grouping map and sorts descending by revenue,
// ties broken by name for stable output.
func sortedByRevenue[V any](groups map[string]*V, key func(*V) (float64, string)) []V {
	flat := make([]*V, 0, len(groups))
	for _, v := range groups {
		flat = append(flat, v)
	}
	slices.SortFunc(flat, func(a, b *V) int {
		ra, na := key(a)
		rb, nb := key(b)
		if ra > rb {
			return -1
		}
		if ra < rb {
			return 1
		}
		return strings.Compare(na, nb)
	})

	result := make([]V, 0, len(flat))
	for _, v := range flat {
		result = append(result, *v)
	}
	return result
}
