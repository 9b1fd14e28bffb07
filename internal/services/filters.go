package services

import (
	"sort"
	"strings"

	"stockboard-service/internal/catalog"
	"stockboard-service/internal/models"
)

// DefaultPageSize matches the dashboard's default rows-per-page.
const DefaultPageSize = 50

// SortDirection is either "asc" or "desc". Anything else reads as ascending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort selects one field and a direction. An empty field means input order.
type Sort struct {
	Field     string
	Direction SortDirection
}

// FilterState is the immutable filter/page selection applied to a view.
// It carries no behavior and holds no references into the dataset, so the
// derivation functions stay pure and re-entrant.
type FilterState struct {
	Search       string
	Tab          catalog.RegionKey
	OnlyLowStock bool
	Page         int
	PageSize     int
}

// matchesSearch reports whether any field contains the query,
// case-insensitively. An empty query matches everything.
func matchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FilterInventory applies the search, low-stock and region tab predicates,
// preserving input order.
func FilterInventory(records []models.StockRecord, f FilterState) []models.StockRecord {
	// an unknown tab key behaves like "all"
	var region catalog.Region
	scoped := false
	if f.Tab != "" && f.Tab != catalog.RegionAll {
		region, scoped = catalog.RegionByKey(f.Tab)
	}

	out := make([]models.StockRecord, 0, len(records))
	for _, rec := range records {
		if !matchesSearch(f.Search, rec.SKU, rec.ExternalID) {
			continue
		}
		if f.OnlyLowStock && rec.TotalQuantity >= LowStockThreshold {
			continue
		}
		if scoped && !hasStockInRegion(rec, region) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// hasStockInRegion reports whether at least one FC of the region holds stock.
func hasStockInRegion(rec models.StockRecord, region catalog.Region) bool {
	for _, fc := range region.FCs {
		if rec.FCQuantity(fc) > 0 {
			return true
		}
	}
	return false
}

// FilterQuality keeps records failing the quality bar that also match the
// search query.
func FilterQuality(records []models.StockRecord, search string) []models.StockRecord {
	out := make([]models.StockRecord, 0)
	for _, rec := range records {
		if !QualityFlag(rec) {
			continue
		}
		if !matchesSearch(search, rec.SKU, rec.ExternalID) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Paginate slices rows to the 1-based page window, clamped to the available
// length. A page past the end yields an empty slice, never an error.
// totalPages is ceil(total/size) with a minimum of 1.
func Paginate[T any](rows []T, page, size int) (paged []T, total, totalPages int) {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total = len(rows)
	totalPages = (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * size
	if start >= total {
		return []T{}, total, totalPages
	}
	end := start + size
	if end > total {
		end = total
	}
	return rows[start:end], total, totalPages
}

// stableSort orders rows by a three-way comparator, preserving input order
// for equal keys in both directions.
func stableSort[T any](rows []T, cmp func(a, b T) int, dir SortDirection) {
	if cmp == nil {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if dir == SortDesc {
			return cmp(rows[i], rows[j]) > 0
		}
		return cmp(rows[i], rows[j]) < 0
	})
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// recordComparator returns a comparator for a record-level sort field, or nil
// when the field is unknown. Numeric-semantic fields compare numerically.
func recordComparator(field string) func(a, b models.StockRecord) int {
	switch field {
	case "sku":
		return func(a, b models.StockRecord) int { return strings.Compare(a.SKU, b.SKU) }
	case "externalId":
		return func(a, b models.StockRecord) int { return strings.Compare(a.ExternalID, b.ExternalID) }
	case "date", "lastUpdated":
		return func(a, b models.StockRecord) int { return strings.Compare(a.LastUpdated, b.LastUpdated) }
	case "rating":
		return func(a, b models.StockRecord) int { return compareFloat(a.Rating, b.Rating) }
	case "reviewCount":
		return func(a, b models.StockRecord) int { return compareInt(a.ReviewCount, b.ReviewCount) }
	case "total", "totalQuantity":
		return func(a, b models.StockRecord) int { return compareInt(a.TotalQuantity, b.TotalQuantity) }
	default:
		return nil
	}
}

// SortRecords stable-sorts records in place by the selected field.
// Unknown fields and an empty field leave input order untouched.
func SortRecords(records []models.StockRecord, s Sort) {
	stableSort(records, recordComparator(s.Field), s.Direction)
}
