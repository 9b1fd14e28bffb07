// Package services implements the derivation layer: pure, stateless
// transformations from the stock snapshot to the view models served by the
// handlers. Everything here is safe to recompute on every request.
package services

import (
	"stockboard-service/internal/catalog"
	"stockboard-service/internal/models"
)

const (
	// LowStockThreshold flags a whole record whose total drops below it.
	LowStockThreshold = 50

	// lowStockCellMax flags a single FC cell when 0 < quantity < lowStockCellMax.
	// Deliberately a different scope than LowStockThreshold.
	lowStockCellMax = 10

	// quality bar
	minHealthyRating  = 4.0
	minHealthyReviews = 5
)

// Summary holds the global dashboard counters.
type Summary struct {
	ProductCount  int `json:"productCount"`
	TotalStock    int `json:"totalStock"`
	TotalIncoming int `json:"totalIncoming"`
	LowStockCount int `json:"lowStockCount"`
}

// FCIncomingTotal sums requested quantities of the record's shipments bound
// for one FC, excluding CLOSED/DELETED shipments.
func FCIncomingTotal(rec models.StockRecord, fc string) int {
	total := 0
	for _, s := range rec.InboundShipments {
		if s.DestinationFC == fc && s.Status.Incoming() {
			total += s.RequestedQuantity
		}
	}
	return total
}

// RegionIncomingTotal sums FCIncomingTotal over all FCs of a region.
func RegionIncomingTotal(rec models.StockRecord, region catalog.Region) int {
	total := 0
	for _, fc := range region.FCs {
		total += FCIncomingTotal(rec, fc)
	}
	return total
}

// RCIncoming is one receive-center destination with its pending quantity.
type RCIncoming struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// RCIncomingBreakdown lists pending quantities bound for receive centers,
// in shipment order. Used for the inventory row's RC annotation.
func RCIncomingBreakdown(rec models.StockRecord) []RCIncoming {
	var out []RCIncoming
	for _, s := range rec.InboundShipments {
		if catalog.IsReceiveCenter(s.DestinationFC) && s.Status.Incoming() {
			out = append(out, RCIncoming{Code: s.DestinationFC, Quantity: s.RequestedQuantity})
		}
	}
	return out
}

// RCIncomingTotal sums pending quantities bound for any receive center.
func RCIncomingTotal(rec models.StockRecord) int {
	total := 0
	for _, line := range RCIncomingBreakdown(rec) {
		total += line.Quantity
	}
	return total
}

// GlobalSummary computes the dashboard counters over the whole snapshot.
// TotalIncoming is unscoped: every non-closed/deleted shipment counts,
// whatever its destination.
func GlobalSummary(records []models.StockRecord) Summary {
	s := Summary{ProductCount: len(records)}
	for _, rec := range records {
		s.TotalStock += rec.TotalQuantity
		if rec.TotalQuantity < LowStockThreshold {
			s.LowStockCount++
		}
		for _, ship := range rec.InboundShipments {
			if ship.Status.Incoming() {
				s.TotalIncoming += ship.RequestedQuantity
			}
		}
	}
	return s
}

// RegionDistribution maps each region to the stock held across its FCs.
func RegionDistribution(records []models.StockRecord) map[catalog.RegionKey]int {
	dist := make(map[catalog.RegionKey]int, len(catalog.Regions))
	for _, r := range catalog.Regions {
		dist[r.Key] = 0
	}
	for _, rec := range records {
		for _, fc := range catalog.AllFCs() {
			if q := rec.FCQuantity(fc); q > 0 {
				if region, ok := catalog.RegionForFC(fc); ok {
					dist[region.Key] += q
				}
			}
		}
	}
	return dist
}

// FCDistribution maps every catalog FC to the stock held there. FCs with no
// stock keep an explicit 0 so analytics bars render at zero width instead of
// dropping the row.
func FCDistribution(records []models.StockRecord) map[string]int {
	dist := make(map[string]int, len(catalog.AllFCs()))
	for _, fc := range catalog.AllFCs() {
		dist[fc] = 0
	}
	for _, rec := range records {
		for _, fc := range catalog.AllFCs() {
			if q := rec.FCQuantity(fc); q > 0 {
				dist[fc] += q
			}
		}
	}
	return dist
}

// QualityFlag reports whether a record fails the quality bar: a sub-4.0
// rating or fewer than 5 reviews. A zero rating means "no rating data" and
// never triggers the rating clause on its own.
func QualityFlag(rec models.StockRecord) bool {
	if rec.Rating > 0 && rec.Rating < minHealthyRating {
		return true
	}
	return rec.ReviewCount < minHealthyReviews
}

// LowStockRecord reports whether the whole record is low on stock.
func LowStockRecord(rec models.StockRecord) bool {
	return rec.TotalQuantity < LowStockThreshold
}

// LowStockFC reports whether a single FC cell should be highlighted as low.
// Empty cells are not low, they are empty.
func LowStockFC(quantity int) bool {
	return quantity > 0 && quantity < lowStockCellMax
}
