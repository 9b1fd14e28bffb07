package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"stockboard-service/internal/catalog"
	"stockboard-service/internal/models"
)

func record(sku string, total int, fcs map[string]int, ships ...models.InboundShipment) models.StockRecord {
	if fcs == nil {
		fcs = map[string]int{}
	}
	return models.StockRecord{
		SKU:              sku,
		ExternalID:       "X-" + sku,
		QuantityByFC:     fcs,
		TotalQuantity:    total,
		InboundShipments: ships,
	}
}

func shipment(dest string, qty int, status models.ShipmentStatus) models.InboundShipment {
	return models.InboundShipment{
		PlanID:            "P-" + dest,
		ShipmentID:        "S-" + dest,
		DestinationFC:     dest,
		RequestedQuantity: qty,
		Status:            status,
	}
}

func TestFCIncomingTotalExcludesClosedAndDeleted(t *testing.T) {
	rec := record("A", 10, nil,
		shipment("BLR7", 5, models.ShipmentStatusClosed),
		shipment("BLR7", 3, models.ShipmentStatusInTransit),
		shipment("BLR7", 7, models.ShipmentStatusDeleted),
		shipment("BLR8", 9, models.ShipmentStatusInTransit),
	)

	assert.Equal(t, 3, FCIncomingTotal(rec, "BLR7"))
	assert.Equal(t, 9, FCIncomingTotal(rec, "BLR8"))
	assert.Equal(t, 0, FCIncomingTotal(rec, "MAA4"))
}

func TestRegionIncomingTotal(t *testing.T) {
	rec := record("A", 10, nil,
		shipment("BLR7", 3, models.ShipmentStatusInTransit),
		shipment("BLR8", 4, models.ShipmentStatusReceiving),
		shipment("BOM4", 100, models.ShipmentStatusInTransit),
	)

	ka, _ := catalog.RegionByKey(catalog.RegionKarnataka)
	assert.Equal(t, 7, RegionIncomingTotal(rec, ka))

	tn, _ := catalog.RegionByKey(catalog.RegionTamilNadu)
	assert.Equal(t, 0, RegionIncomingTotal(rec, tn))
}

func TestRCIncoming(t *testing.T) {
	rec := record("A", 10, nil,
		shipment("DED3", 12, models.ShipmentStatusInTransit),
		shipment("BLR4", 8, models.ShipmentStatusWorking),
		shipment("DED5", 6, models.ShipmentStatusClosed), // excluded
		shipment("BLR7", 50, models.ShipmentStatusInTransit), // FC, not RC
	)

	assert.Equal(t, 20, RCIncomingTotal(rec))
	assert.Equal(t, []RCIncoming{{Code: "DED3", Quantity: 12}, {Code: "BLR4", Quantity: 8}}, RCIncomingBreakdown(rec))
}

func TestGlobalSummary(t *testing.T) {
	records := []models.StockRecord{
		record("A", 120, nil,
			shipment("BLR7", 30, models.ShipmentStatusInTransit),
			shipment("DED3", 10, models.ShipmentStatusInTransit), // unscoped: RC-bound counts too
			shipment("BOM4", 99, models.ShipmentStatusDeleted),
		),
		record("B", 49, nil),
		record("C", 0, nil),
	}

	s := GlobalSummary(records)
	assert.Equal(t, 3, s.ProductCount)
	assert.Equal(t, 169, s.TotalStock)
	assert.Equal(t, 40, s.TotalIncoming)
	assert.Equal(t, 2, s.LowStockCount, "records B and C are under the threshold")
}

func TestGlobalSummaryEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, GlobalSummary(nil))
}

func TestRegionDistribution(t *testing.T) {
	records := []models.StockRecord{
		record("A", 0, map[string]int{"BLR7": 5, "BOM4": 7}),
		record("B", 0, map[string]int{"BLR8": 2, "MAA4": 0}),
	}

	dist := RegionDistribution(records)
	assert.Equal(t, 7, dist[catalog.RegionKarnataka])
	assert.Equal(t, 7, dist[catalog.RegionMaharashtra])
	assert.Equal(t, 0, dist[catalog.RegionTamilNadu])
	assert.Len(t, dist, len(catalog.Regions), "every region present, zeros retained")
}

func TestFCDistributionKeepsZeroRows(t *testing.T) {
	records := []models.StockRecord{
		record("A", 0, map[string]int{"BLR7": 5}),
		record("B", 0, map[string]int{"BLR7": 3, "HYD8": 4}),
	}

	dist := FCDistribution(records)
	assert.Equal(t, 8, dist["BLR7"])
	assert.Equal(t, 4, dist["HYD8"])
	assert.Contains(t, dist, "CCX2")
	assert.Equal(t, 0, dist["CCX2"])
	assert.Len(t, dist, len(catalog.AllFCs()))
}

func TestQualityFlag(t *testing.T) {
	tests := []struct {
		name    string
		rating  float64
		reviews int
		want    bool
	}{
		{"no rating, few reviews", 0, 3, true},
		{"no rating, enough reviews", 0, 10, false},
		{"bad rating", 3.9, 10, true},
		{"boundary rating excluded", 4.0, 10, false},
		{"good rating, few reviews", 4.8, 4, true},
		{"boundary reviews excluded", 4.8, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.StockRecord{Rating: tt.rating, ReviewCount: tt.reviews}
			assert.Equal(t, tt.want, QualityFlag(rec))
		})
	}
}

func TestLowStockFC(t *testing.T) {
	assert.False(t, LowStockFC(0), "empty cells are not low")
	assert.True(t, LowStockFC(1))
	assert.True(t, LowStockFC(9))
	assert.False(t, LowStockFC(10))
}

func TestLowStockRecordThresholdIsDistinctFromCellThreshold(t *testing.T) {
	assert.True(t, LowStockRecord(models.StockRecord{TotalQuantity: 49}))
	assert.False(t, LowStockRecord(models.StockRecord{TotalQuantity: 50}))
	// a cell quantity of 20 is fine, a record total of 20 is not
	assert.False(t, LowStockFC(20))
	assert.True(t, LowStockRecord(models.StockRecord{TotalQuantity: 20}))
}
