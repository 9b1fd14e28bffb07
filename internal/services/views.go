package services

import (
	"strings"

	"stockboard-service/internal/catalog"
	"stockboard-service/internal/models"
)

// InventoryRow is one paginated inventory table row: the record plus its
// derived inbound annotations.
type InventoryRow struct {
	models.StockRecord
	FCIncoming  map[string]int `json:"fcIncoming"`
	RCIncoming  int            `json:"rcIncoming"`
	RCBreakdown []RCIncoming   `json:"rcBreakdown,omitempty"`
	LowStock    bool           `json:"lowStock"`
	LowStockFCs []string       `json:"lowStockFcs,omitempty"`
}

// InventoryView is the paginated, filtered, tab-scoped inventory table.
type InventoryView struct {
	Rows       []InventoryRow `json:"rows"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// InboundRow is one shipment flattened out of its parent record.
type InboundRow struct {
	models.InboundShipment
	SKU      string `json:"sku"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// InboundView lists every shipment across the snapshot, one row each.
type InboundView struct {
	Rows  []InboundRow `json:"rows"`
	Total int          `json:"total"`
}

// QualityRow is one record failing the quality bar.
type QualityRow struct {
	SKU           string  `json:"sku"`
	ExternalID    string  `json:"externalId"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"reviewCount"`
	TotalQuantity int     `json:"totalQuantity"`
}

// QualityView lists quality-flagged records.
type QualityView struct {
	Rows  []QualityRow `json:"rows"`
	Total int          `json:"total"`
}

// RegionStat is one region's aggregate stock for the analytics bars.
type RegionStat struct {
	Key      catalog.RegionKey `json:"key"`
	Label    string            `json:"label"`
	ColorTag string            `json:"colorTag"`
	Total    int               `json:"total"`
}

// FCStat is one FC's aggregate stock for the analytics bars. RegionKey ties
// the bar back to its region's color.
type FCStat struct {
	Code      string            `json:"code"`
	RegionKey catalog.RegionKey `json:"regionKey"`
	Total     int               `json:"total"`
}

// AnalyticsView carries both distributions in catalog order plus the maximum
// of each (minimum 1, so proportional bars never divide by zero).
type AnalyticsView struct {
	Regions   []RegionStat `json:"regions"`
	FCs       []FCStat     `json:"fcs"`
	MaxRegion int          `json:"maxRegion"`
	MaxFC     int          `json:"maxFc"`
}

// BuildInventoryView filters, sorts and paginates the snapshot into the
// inventory table rows, annotating each row with per-FC incoming quantities
// and the receive-center-bound total.
func BuildInventoryView(records []models.StockRecord, f FilterState, s Sort) InventoryView {
	filtered := FilterInventory(records, f)
	SortRecords(filtered, s)
	paged, total, totalPages := Paginate(filtered, f.Page, f.PageSize)

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = DefaultPageSize
	}

	rows := make([]InventoryRow, 0, len(paged))
	for _, rec := range paged {
		incoming := make(map[string]int, len(catalog.AllFCs()))
		var lowFCs []string
		for _, fc := range catalog.AllFCs() {
			if q := FCIncomingTotal(rec, fc); q > 0 {
				incoming[fc] = q
			}
			if LowStockFC(rec.FCQuantity(fc)) {
				lowFCs = append(lowFCs, fc)
			}
		}
		rows = append(rows, InventoryRow{
			StockRecord: rec,
			FCIncoming:  incoming,
			RCIncoming:  RCIncomingTotal(rec),
			RCBreakdown: RCIncomingBreakdown(rec),
			LowStock:    LowStockRecord(rec),
			LowStockFCs: lowFCs,
		})
	}

	return InventoryView{
		Rows:       rows,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}
}

// BuildInboundView flattens every shipment to one row carrying its parent
// SKU and image, filtered by search and sorted by any shipment field.
// The view is unpaginated; it owns its scroll region in the UI.
func BuildInboundView(records []models.StockRecord, search string, s Sort) InboundView {
	rows := make([]InboundRow, 0)
	for _, rec := range records {
		for _, ship := range rec.InboundShipments {
			row := InboundRow{InboundShipment: ship, SKU: rec.SKU, ImageURL: rec.ImageURL}
			if !matchesSearch(search, row.SKU, row.ShipmentID, row.PlanID, row.DestinationFC) {
				continue
			}
			rows = append(rows, row)
		}
	}
	stableSort(rows, inboundComparator(s.Field), s.Direction)
	return InboundView{Rows: rows, Total: len(rows)}
}

func inboundComparator(field string) func(a, b InboundRow) int {
	switch field {
	case "sku":
		return func(a, b InboundRow) int { return strings.Compare(a.SKU, b.SKU) }
	case "planId":
		return func(a, b InboundRow) int { return strings.Compare(a.PlanID, b.PlanID) }
	case "shipmentId":
		return func(a, b InboundRow) int { return strings.Compare(a.ShipmentID, b.ShipmentID) }
	case "createdDate":
		return func(a, b InboundRow) int { return strings.Compare(a.CreatedDate, b.CreatedDate) }
	case "destinationFc":
		return func(a, b InboundRow) int { return strings.Compare(a.DestinationFC, b.DestinationFC) }
	case "requestedQuantity":
		return func(a, b InboundRow) int { return compareInt(a.RequestedQuantity, b.RequestedQuantity) }
	case "receivedQuantity":
		return func(a, b InboundRow) int { return compareInt(a.ReceivedQuantity, b.ReceivedQuantity) }
	case "status":
		return func(a, b InboundRow) int { return strings.Compare(string(a.Status), string(b.Status)) }
	default:
		return nil
	}
}

// BuildQualityView keeps quality-flagged records matching the search query,
// sorted by the selected record field. The dashboard opens this view sorted
// by rating ascending; that default belongs to the caller.
func BuildQualityView(records []models.StockRecord, search string, s Sort) QualityView {
	flagged := FilterQuality(records, search)
	SortRecords(flagged, s)

	rows := make([]QualityRow, 0, len(flagged))
	for _, rec := range flagged {
		rows = append(rows, QualityRow{
			SKU:           rec.SKU,
			ExternalID:    rec.ExternalID,
			ImageURL:      rec.ImageURL,
			Rating:        rec.Rating,
			ReviewCount:   rec.ReviewCount,
			TotalQuantity: rec.TotalQuantity,
		})
	}
	return QualityView{Rows: rows, Total: len(rows)}
}

// BuildAnalyticsView renders both distributions in catalog order with their
// maxima clamped to at least 1.
func BuildAnalyticsView(records []models.StockRecord) AnalyticsView {
	regionDist := RegionDistribution(records)
	fcDist := FCDistribution(records)

	view := AnalyticsView{MaxRegion: 1, MaxFC: 1}
	for _, r := range catalog.Regions {
		total := regionDist[r.Key]
		view.Regions = append(view.Regions, RegionStat{
			Key:      r.Key,
			Label:    r.Label,
			ColorTag: r.ColorTag,
			Total:    total,
		})
		if total > view.MaxRegion {
			view.MaxRegion = total
		}
	}
	for _, fc := range catalog.AllFCs() {
		region, _ := catalog.RegionForFC(fc)
		total := fcDist[fc]
		view.FCs = append(view.FCs, FCStat{Code: fc, RegionKey: region.Key, Total: total})
		if total > view.MaxFC {
			view.MaxFC = total
		}
	}
	return view
}
