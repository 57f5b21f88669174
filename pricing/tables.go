package pricing

import (
	"sort"

	"github.com/raushankrgupta/closetly/models"
)

// Tables holds the static lookup data behind every price estimate (INR)
type Tables struct {
	BrandRanges         map[string]models.PriceRange
	FallbackRange       models.PriceRange
	CategoryMultipliers map[string]float64
	RetailerMultipliers map[string]float64
	MaterialMultipliers map[string]float64
	Seasons             []string
	ComparisonRetailers []string
	ComparisonDiscounts []int
}

// DefaultTables is the Indian market dataset
var DefaultTables = &Tables{
	BrandRanges: map[string]models.PriceRange{
		// Premium Indian
		"Van Heusen":     {Min: 800, Max: 2500},
		"Allen Solly":    {Min: 900, Max: 2800},
		"Louis Philippe": {Min: 1000, Max: 3500},
		"Peter England":  {Min: 600, Max: 2000},
		"Raymond":        {Min: 1200, Max: 5000},
		"AND":            {Min: 800, Max: 3000},
		"W for Woman":    {Min: 700, Max: 2500},
		"Forever New":    {Min: 1200, Max: 4000},
		"Vero Moda":      {Min: 1000, Max: 3500},
		"Only":           {Min: 800, Max: 2800},
		// Luxury
		"Zara":            {Min: 1500, Max: 6000},
		"Marks & Spencer": {Min: 1500, Max: 5500},
		"Tommy Hilfiger":  {Min: 2000, Max: 8000},
		"Calvin Klein":    {Min: 1800, Max: 7000},
		// Affordable
		"Flying Machine": {Min: 500, Max: 1500},
		"Roadster":       {Min: 400, Max: 1200},
		"Wrogn":          {Min: 600, Max: 1800},
		"Mast & Harbour": {Min: 400, Max: 1300},
		"Athena":         {Min: 500, Max: 1500},
		"HRX":            {Min: 600, Max: 1800},
		"Being Human":    {Min: 700, Max: 2000},
		"Breakbounce":    {Min: 800, Max: 2200},
		// International
		"Levi's":       {Min: 1500, Max: 4000},
		"Nike":         {Min: 1200, Max: 5000},
		"Adidas":       {Min: 1000, Max: 4500},
		"Puma":         {Min: 900, Max: 3500},
		"H&M":          {Min: 500, Max: 2000},
		"US Polo Assn": {Min: 800, Max: 2500},
	},
	FallbackRange: models.PriceRange{Min: 500, Max: 2000},
	CategoryMultipliers: map[string]float64{
		"Jeans": 1.0, "Dress": 1.2, "Shirt": 0.8, "Blazer": 1.6, "T-Shirt": 0.4,
		"Jacket": 1.5, "Sweater": 0.9, "Pants": 0.9, "Skirt": 0.8, "Suits": 3.0,
		"Coat": 2.0, "Hoodie": 0.7, "Polo": 0.6, "Chinos": 0.9,
	},
	RetailerMultipliers: map[string]float64{
		"Shoppers Stop": 1.2, "Lifestyle": 1.15, "Westside": 1.1,
		"Myntra": 1.0, "Ajio": 0.98, "Flipkart": 0.95,
		"Amazon India": 0.95, "Reliance Trends": 0.9, "Max Fashion": 0.85,
	},
	MaterialMultipliers: map[string]float64{
		"Silk": 1.3, "Leather": 1.5, "Wool": 1.2,
		"Cotton": 1.0, "Polyester": 0.9, "Denim": 1.0,
		"Linen": 1.1, "Synthetic": 0.8, "Viscose": 0.9, "Blend": 0.95,
	},
	Seasons:             []string{"Spring", "Summer", "Monsoon", "Winter", "All-Season"},
	ComparisonRetailers: []string{"Myntra", "Flipkart", "Amazon India", "Ajio", "Lifestyle", "Westside"},
	ComparisonDiscounts: []int{0, 10, 15, 20, 25, 30, 40},
}

// BrandRange returns the base price range of a brand, or the fallback range
func (t *Tables) BrandRange(brand string) models.PriceRange {
	if r, ok := t.BrandRanges[brand]; ok {
		return r
	}
	return t.FallbackRange
}

// CategoryMultiplier defaults to 1.0 for unknown categories
func (t *Tables) CategoryMultiplier(category string) float64 {
	if m, ok := t.CategoryMultipliers[category]; ok {
		return m
	}
	return 1.0
}

// RetailerMultiplier defaults to 1.0 for unknown retailers
func (t *Tables) RetailerMultiplier(retailer string) float64 {
	if m, ok := t.RetailerMultipliers[retailer]; ok {
		return m
	}
	return 1.0
}

// MaterialMultiplier defaults to 1.0 for unknown materials
func (t *Tables) MaterialMultiplier(material string) float64 {
	if m, ok := t.MaterialMultipliers[material]; ok {
		return m
	}
	return 1.0
}

func (t *Tables) Brands() []string     { return sortedKeys(t.BrandRanges) }
func (t *Tables) Categories() []string { return sortedKeys(t.CategoryMultipliers) }
func (t *Tables) Retailers() []string  { return sortedKeys(t.RetailerMultipliers) }
func (t *Tables) Materials() []string  { return sortedKeys(t.MaterialMultipliers) }

// Options lists the vocabulary accepted by the estimators
func (t *Tables) Options() map[string][]string {
	return map[string][]string{
		"brands":     t.Brands(),
		"categories": t.Categories(),
		"materials":  t.Materials(),
		"retailers":  t.Retailers(),
		"seasons":    append([]string(nil), t.Seasons...),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
