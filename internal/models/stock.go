package models

// ShipmentStatus represents the lifecycle status of an inbound shipment.
type ShipmentStatus string

const (
	ShipmentStatusInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusReceiving ShipmentStatus = "RECEIVING"
	ShipmentStatusWorking   ShipmentStatus = "WORKING"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusClosed    ShipmentStatus = "CLOSED"
	ShipmentStatusDeleted   ShipmentStatus = "DELETED"
)

// Incoming reports whether the shipment still counts toward pending inbound
// totals. Only CLOSED and DELETED are excluded; unrecognized statuses count.
func (s ShipmentStatus) Incoming() bool {
	return s != ShipmentStatusClosed && s != ShipmentStatusDeleted
}

// InboundShipment is one shipment/plan destined for a single FC.
// IDs are for display and sorting, not guaranteed unique dataset-wide.
type InboundShipment struct {
	PlanID            string         `json:"planId"`
	ShipmentID        string         `json:"shipmentId"`
	CreatedDate       string         `json:"createdDate,omitempty"`
	DestinationFC     string         `json:"destinationFc"`
	RequestedQuantity int            `json:"requestedQuantity"`
	ReceivedQuantity  int            `json:"receivedQuantity"`
	Status            ShipmentStatus `json:"status"`
}

// StockRecord is one SKU's inventory snapshot. Quantities are normalized
// non-negative integers; TotalQuantity is supplied by the source and treated
// as authoritative even when it disagrees with the per-FC sum.
type StockRecord struct {
	SKU              string            `json:"sku"`
	ExternalID       string            `json:"externalId"`
	LastUpdated      string            `json:"lastUpdated,omitempty"`
	QuantityByFC     map[string]int    `json:"quantityByFc"`
	TotalQuantity    int               `json:"totalQuantity"`
	ImageURL         string            `json:"imageUrl,omitempty"`
	Rating           float64           `json:"rating"`
	ReviewCount      int               `json:"reviewCount"`
	InboundShipments []InboundShipment `json:"inboundShipments,omitempty"`
}

// FCQuantity returns the normalized on-hand quantity at one FC.
// Absent codes read as 0.
func (r StockRecord) FCQuantity(fc string) int {
	return r.QuantityByFC[fc]
}
