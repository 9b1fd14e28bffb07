// Package catalog holds the static fulfillment network topology: regions,
// their member fulfillment centers, and the receive-center transit hubs.
// The catalog is immutable process-wide configuration.
package catalog

// RegionKey identifies a region tab. "all" is the unscoped pseudo-region
// accepted by filters but never present in the catalog itself.
type RegionKey string

const (
	RegionAll          RegionKey = "all"
	RegionKarnataka    RegionKey = "karnataka"
	RegionMaharashtra  RegionKey = "maharashtra"
	RegionTamilNadu    RegionKey = "tamilnadu"
	RegionTelangana    RegionKey = "telangana"
	RegionUttarPradesh RegionKey = "uttarpradesh"
	RegionWestBengal   RegionKey = "westbengal"
)

// Region groups fulfillment centers by geography for tab filtering and
// aggregate display.
type Region struct {
	Key      RegionKey `json:"key"`
	Label    string    `json:"label"`
	Short    string    `json:"short"`
	FCs      []string  `json:"fcs"`
	ColorTag string    `json:"colorTag"`
}

// Regions is the full catalog in display order. FC order within a region is
// fixed and drives column/export ordering.
var Regions = []Region{
	{Key: RegionKarnataka, Label: "Karnataka", Short: "KA", FCs: []string{"BLR7", "BLR8"}, ColorTag: "violet"},
	{Key: RegionMaharashtra, Label: "Maharashtra", Short: "MH", FCs: []string{"BOM4", "BOM5", "BOM7", "PNQ3", "NAX1", "SBOB"}, ColorTag: "pink"},
	{Key: RegionTamilNadu, Label: "Tamil Nadu", Short: "TN", FCs: []string{"MAA4", "CJBT"}, ColorTag: "teal"},
	{Key: RegionTelangana, Label: "Telangana", Short: "TS", FCs: []string{"HYD8", "HYD3"}, ColorTag: "amber"},
	{Key: RegionUttarPradesh, Label: "UP", Short: "UP", FCs: []string{"LKO1", "UP1"}, ColorTag: "indigo"},
	{Key: RegionWestBengal, Label: "West Bengal", Short: "WB", FCs: []string{"CCX1", "CCX2"}, ColorTag: "cyan"},
}

// ReceiveCenters maps receive-center (transit hub) codes to their state.
// These are outside the region catalog and only tracked for inbound display.
var ReceiveCenters = map[string]string{
	"DED3": "Haryana",
	"DED5": "Haryana",
	"ISK3": "Maharashtra",
	"BLR4": "Karnataka",
}

var (
	allFCs     []string
	regionByFC map[string]Region
	regionIdx  map[RegionKey]Region
)

func init() {
	regionByFC = make(map[string]Region)
	regionIdx = make(map[RegionKey]Region, len(Regions))
	for _, r := range Regions {
		regionIdx[r.Key] = r
		for _, fc := range r.FCs {
			allFCs = append(allFCs, fc)
			regionByFC[fc] = r
		}
	}
}

// AllFCs returns every fulfillment center code in catalog order.
// The returned slice must not be mutated.
func AllFCs() []string {
	return allFCs
}

// RegionByKey looks up a region by its key. RegionAll is not a catalog entry.
func RegionByKey(key RegionKey) (Region, bool) {
	r, ok := regionIdx[key]
	return r, ok
}

// RegionForFC returns the region an FC belongs to. Codes outside the catalog
// (receive centers, unknown upstream codes) report ok=false; they are
// tolerated but excluded from regional aggregation.
func RegionForFC(fc string) (Region, bool) {
	r, ok := regionByFC[fc]
	return r, ok
}

// IsKnownFC reports whether the code belongs to the closed FC catalog.
func IsKnownFC(fc string) bool {
	_, ok := regionByFC[fc]
	return ok
}

// IsReceiveCenter reports whether the code is a receive-center transit hub.
func IsReceiveCenter(code string) bool {
	_, ok := ReceiveCenters[code]
	return ok
}
