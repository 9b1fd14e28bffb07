package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"stockboard-service/internal/catalog"
)

// The upstream feed is loosely typed: quantities, ratings and counts arrive
// as numbers, numeric strings, empty strings, or not at all. Coercion never
// fails; malformed input normalizes to 0 and negatives clamp to 0.

// FlexInt is a non-negative integer decoded tolerantly from mixed JSON shapes.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt(CoerceQuantity(string(data)))
	return nil
}

// FlexFloat is a rating value decoded tolerantly and clamped to [0, 5].
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(CoerceRating(string(data)))
	return nil
}

// CoerceQuantity parses a raw field value into a non-negative integer.
// Fractional input truncates toward zero, matching integer parsing of the
// upstream producers.
func CoerceQuantity(raw string) int {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
	if s == "" || s == "null" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 {
			return 0
		}
		return int(v)
	}
	return 0
}

// CoerceRating parses a raw field value into a rating in [0, 5].
func CoerceRating(raw string) float64 {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"`))
	if s == "" || s == "null" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

// RawInboundPlan is the upstream wire shape of one inbound shipment.
type RawInboundPlan struct {
	PlanID       string  `json:"PlanId"`
	ShipmentID   string  `json:"ShipmentId"`
	CreatedDate  string  `json:"CreatedDate"`
	Status       string  `json:"Status"`
	Destination  string  `json:"Destination"`
	ItemQuantity FlexInt `json:"ItemQuantity"`
	ItemReceived FlexInt `json:"ItemReceived"`
}

// RawStockItem is the upstream wire shape of one stock record. Per-FC
// quantities arrive as one dynamic top-level field per FC code; decoding
// collects them keyed by the closed catalog so the catalog stays the single
// source of truth for FC columns.
type RawStockItem struct {
	MSKU         string
	ASIN         string
	Date         string
	Total        FlexInt
	Image        string
	Rating       FlexFloat
	Reviews      FlexInt
	ReviewsCount FlexInt
	InboundPlans []RawInboundPlan
	FCQuantities map[string]FlexInt
}

func (r *RawStockItem) UnmarshalJSON(data []byte) error {
	type named struct {
		MSKU         string           `json:"MSKU"`
		ASIN         string           `json:"ASIN"`
		Date         string           `json:"Date"`
		Total        FlexInt          `json:"Total"`
		Image        string           `json:"Image"`
		Rating       FlexFloat        `json:"Rating"`
		Reviews      FlexInt          `json:"Reviews"`
		ReviewsCount FlexInt          `json:"ReviewsCount"`
		InboundPlans []RawInboundPlan `json:"InboundPlans"`
	}

	var n named
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	fcs := make(map[string]FlexInt)
	for _, fc := range catalog.AllFCs() {
		raw, ok := fields[fc]
		if !ok {
			continue
		}
		var q FlexInt
		// FlexInt decoding cannot fail
		_ = q.UnmarshalJSON(raw)
		fcs[fc] = q
	}

	r.MSKU = n.MSKU
	r.ASIN = n.ASIN
	r.Date = n.Date
	r.Total = n.Total
	r.Image = n.Image
	r.Rating = n.Rating
	r.Reviews = n.Reviews
	r.ReviewsCount = n.ReviewsCount
	r.InboundPlans = n.InboundPlans
	r.FCQuantities = fcs
	return nil
}

// Normalize converts the raw wire item into the canonical StockRecord.
// The two review-count aliases merge here, once: ReviewsCount wins when
// populated, otherwise Reviews.
func (r RawStockItem) Normalize() StockRecord {
	quantities := make(map[string]int, len(r.FCQuantities))
	for fc, q := range r.FCQuantities {
		quantities[fc] = int(q)
	}

	reviews := int(r.ReviewsCount)
	if reviews == 0 {
		reviews = int(r.Reviews)
	}

	shipments := make([]InboundShipment, 0, len(r.InboundPlans))
	for _, p := range r.InboundPlans {
		shipments = append(shipments, InboundShipment{
			PlanID:            p.PlanID,
			ShipmentID:        p.ShipmentID,
			CreatedDate:       p.CreatedDate,
			DestinationFC:     p.Destination,
			RequestedQuantity: int(p.ItemQuantity),
			ReceivedQuantity:  int(p.ItemReceived),
			Status:            ShipmentStatus(p.Status),
		})
	}

	return StockRecord{
		SKU:              r.MSKU,
		ExternalID:       r.ASIN,
		LastUpdated:      r.Date,
		QuantityByFC:     quantities,
		TotalQuantity:    int(r.Total),
		ImageURL:         r.Image,
		Rating:           float64(r.Rating),
		ReviewCount:      reviews,
		InboundShipments: shipments,
	}
}
