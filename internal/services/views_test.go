package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stockboard-service/internal/catalog"
	"stockboard-service/internal/models"
)

func TestBuildInventoryView(t *testing.T) {
	records := []models.StockRecord{
		record("A", 30, map[string]int{"BLR7": 5, "BOM4": 25},
			shipment("BLR7", 15, models.ShipmentStatusInTransit),
			shipment("DED3", 8, models.ShipmentStatusWorking),
			shipment("BLR7", 99, models.ShipmentStatusClosed),
		),
		record("B", 500, map[string]int{"HYD8": 500}),
	}

	view := BuildInventoryView(records, FilterState{Page: 1, PageSize: 50}, Sort{})
	require.Len(t, view.Rows, 2)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, 1, view.TotalPages)

	a := view.Rows[0]
	assert.Equal(t, "A", a.SKU)
	assert.Equal(t, 15, a.FCIncoming["BLR7"], "closed shipment excluded")
	assert.Equal(t, 8, a.RCIncoming)
	assert.Equal(t, []RCIncoming{{Code: "DED3", Quantity: 8}}, a.RCBreakdown)
	assert.True(t, a.LowStock)
	assert.Equal(t, []string{"BLR7"}, a.LowStockFCs, "5 units is a low cell, 25 is not")

	b := view.Rows[1]
	assert.False(t, b.LowStock)
	assert.Zero(t, b.RCIncoming)
	assert.Empty(t, b.FCIncoming)
}

func TestBuildInventoryViewPaginates(t *testing.T) {
	var records []models.StockRecord
	for i := 0; i < 120; i++ {
		records = append(records, record("SKU", 100, nil))
	}

	view := BuildInventoryView(records, FilterState{Page: 3, PageSize: 50}, Sort{})
	assert.Len(t, view.Rows, 20)
	assert.Equal(t, 120, view.Total)
	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, 3, view.Page)

	view = BuildInventoryView(records, FilterState{Page: 4, PageSize: 50}, Sort{})
	assert.Empty(t, view.Rows)
	assert.Equal(t, 120, view.Total)
}

func TestBuildInventoryViewDefaultsPageState(t *testing.T) {
	view := BuildInventoryView(nil, FilterState{}, Sort{})
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, DefaultPageSize, view.PageSize)
	assert.Equal(t, 1, view.TotalPages)
	assert.Empty(t, view.Rows)
}

func TestBuildInboundViewFlattensAndFilters(t *testing.T) {
	records := []models.StockRecord{
		{SKU: "ALPHA", ImageURL: "img-a", InboundShipments: []models.InboundShipment{
			shipment("BLR7", 10, models.ShipmentStatusInTransit),
			shipment("DED3", 5, models.ShipmentStatusClosed),
		}},
		{SKU: "BETA", InboundShipments: []models.InboundShipment{
			shipment("MAA4", 7, models.ShipmentStatusReceiving),
		}},
	}

	view := BuildInboundView(records, "", Sort{})
	assert.Equal(t, 3, view.Total, "closed shipments still appear in the listing")
	assert.Equal(t, "ALPHA", view.Rows[0].SKU)
	assert.Equal(t, "img-a", view.Rows[0].ImageURL)

	// search hits parent SKU, shipment id, plan id and destination
	assert.Equal(t, 1, BuildInboundView(records, "beta", Sort{}).Total)
	assert.Equal(t, 1, BuildInboundView(records, "maa4", Sort{}).Total)
	assert.Equal(t, 1, BuildInboundView(records, "S-MAA4", Sort{}).Total)
	assert.Equal(t, 1, BuildInboundView(records, "P-MAA4", Sort{}).Total)
	assert.Equal(t, 0, BuildInboundView(records, "zzz", Sort{}).Total)
}

func TestBuildInboundViewSortsNumericallyByQuantity(t *testing.T) {
	records := []models.StockRecord{
		{SKU: "A", InboundShipments: []models.InboundShipment{
			shipment("BLR7", 100, models.ShipmentStatusInTransit),
			shipment("BLR8", 9, models.ShipmentStatusInTransit),
		}},
	}

	view := BuildInboundView(records, "", Sort{Field: "requestedQuantity", Direction: SortAsc})
	require.Len(t, view.Rows, 2)
	assert.Equal(t, 9, view.Rows[0].RequestedQuantity)
	assert.Equal(t, 100, view.Rows[1].RequestedQuantity)
}

func TestBuildQualityView(t *testing.T) {
	records := []models.StockRecord{
		{SKU: "BAD", ExternalID: "B1", Rating: 3.1, ReviewCount: 50, TotalQuantity: 10},
		{SKU: "FINE", ExternalID: "B2", Rating: 4.5, ReviewCount: 50, TotalQuantity: 10},
		{SKU: "FRESH", ExternalID: "B3", Rating: 0, ReviewCount: 1, TotalQuantity: 10},
	}

	view := BuildQualityView(records, "", Sort{Field: "rating", Direction: SortAsc})
	require.Equal(t, 2, view.Total)
	assert.Equal(t, "FRESH", view.Rows[0].SKU, "zero rating sorts first ascending")
	assert.Equal(t, "BAD", view.Rows[1].SKU)
}

func TestBuildAnalyticsView(t *testing.T) {
	records := []models.StockRecord{
		record("A", 0, map[string]int{"BLR7": 5, "BLR8": 3, "BOM4": 10}),
	}

	view := BuildAnalyticsView(records)
	require.Len(t, view.Regions, len(catalog.Regions))
	require.Len(t, view.FCs, len(catalog.AllFCs()))

	assert.Equal(t, catalog.RegionKarnataka, view.Regions[0].Key)
	assert.Equal(t, 8, view.Regions[0].Total)
	assert.Equal(t, 10, view.MaxRegion)
	assert.Equal(t, 10, view.MaxFC)

	// zero-stock FCs keep their rows
	last := view.FCs[len(view.FCs)-1]
	assert.Equal(t, "CCX2", last.Code)
	assert.Equal(t, 0, last.Total)
	assert.Equal(t, catalog.RegionWestBengal, last.RegionKey)
}

func TestBuildAnalyticsViewEmptySnapshotAvoidsZeroMaxima(t *testing.T) {
	view := BuildAnalyticsView(nil)
	assert.Equal(t, 1, view.MaxRegion)
	assert.Equal(t, 1, view.MaxFC)
	assert.Len(t, view.FCs, len(catalog.AllFCs()))
}
