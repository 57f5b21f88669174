package learned

import (
	"math"
	"math/rand/v2"

	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/pricing"
)

// Sample is one synthetic training row
type Sample struct {
	Brand           string
	Category        string
	Material        string
	Retailer        string
	Season          string
	Rating          float64
	DiscountPercent float64
	OriginalPrice   float64
	CurrentPrice    float64
}

func (s Sample) categorical() map[string]string {
	return map[string]string{
		"brand":    s.Brand,
		"category": s.Category,
		"material": s.Material,
		"retailer": s.Retailer,
		"season":   s.Season,
	}
}

var (
	luxuryBrands  = map[string]bool{"Zara": true, "Marks & Spencer": true, "Tommy Hilfiger": true, "Calvin Klein": true, "Raymond": true}
	premiumBrands = map[string]bool{"Van Heusen": true, "Allen Solly": true, "Louis Philippe": true, "Levi's": true}

	discountChoices = []float64{0, 10, 15, 20, 25, 30, 40, 50, 60, 70}
	discountWeights = []float64{0.1, 0.1, 0.15, 0.15, 0.15, 0.15, 0.1, 0.05, 0.03, 0.02}
)

// GenerateSynthetic draws n rows of Indian-market fashion prices from the tables
func GenerateSynthetic(n int, t *pricing.Tables, r *rand.Rand) []Sample {
	brands := t.Brands()
	categories := t.Categories()
	materials := t.Materials()
	retailerNames := t.Retailers()

	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		s := Sample{
			Brand:    brands[r.IntN(len(brands))],
			Category: categories[r.IntN(len(categories))],
			Material: materials[r.IntN(len(materials))],
			Retailer: retailerNames[r.IntN(len(retailerNames))],
			Season:   t.Seasons[r.IntN(len(t.Seasons))],
		}

		br := t.BrandRange(s.Brand)
		price := uniform(r, br.Min, br.Max) *
			t.CategoryMultiplier(s.Category) *
			t.MaterialMultiplier(s.Material) *
			t.RetailerMultiplier(s.Retailer) *
			uniform(r, 0.9, 1.1)

		baseRating := 3.8
		switch {
		case luxuryBrands[s.Brand]:
			baseRating = 4.5
		case premiumBrands[s.Brand]:
			baseRating = 4.3
		}
		s.Rating = roundTo(min(5.0, baseRating+uniform(r, -0.4, 0.4)), 1)

		s.DiscountPercent = weightedChoice(r, discountChoices, discountWeights)
		if s.DiscountPercent > 0 {
			s.OriginalPrice = pricing.Round2(price / (1 - s.DiscountPercent/100))
		} else {
			s.OriginalPrice = pricing.Round2(price)
		}
		s.CurrentPrice = pricing.Round2(price)
		samples = append(samples, s)
	}
	return samples
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

func weightedChoice(r *rand.Rand, choices, weights []float64) float64 {
	x := r.Float64()
	for i, w := range weights {
		if x < w {
			return choices[i]
		}
		x -= w
	}
	return choices[len(choices)-1]
}

func (s Sample) item(rating *float64) models.ItemDescriptor {
	return models.ItemDescriptor{
		Brand:           s.Brand,
		Category:        s.Category,
		Material:        s.Material,
		Retailer:        s.Retailer,
		Season:          s.Season,
		Rating:          rating,
		DiscountPercent: s.DiscountPercent,
	}
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
