package pricing

import (
	"sort"
	"strings"

	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/retailers"
)

// Compare prices one product across the comparison retailers. All retailers
// share one base draw; jitter and discount are drawn per retailer.
func (e *Estimator) Compare(productName, brand, category string) models.RetailerComparison {
	brand = strings.TrimSpace(brand)
	category = strings.TrimSpace(category)
	if brand == "" {
		brand = "Generic"
	}
	if category == "" {
		category = "Shirt"
	}

	br := e.Tables.BrandRange(brand)
	base := e.uniform(br.Min, br.Max) * e.Tables.CategoryMultiplier(category)

	quotes := make([]models.RetailerQuote, 0, len(e.Tables.ComparisonRetailers))
	for _, retailer := range e.Tables.ComparisonRetailers {
		price := base * e.Tables.RetailerMultiplier(retailer) * e.uniform(JitterMin, JitterMax)
		discounts := e.Tables.ComparisonDiscounts
		quotes = append(quotes, models.RetailerQuote{
			Retailer:       retailer,
			PredictedPrice: Round2(price),
			Discount:       discounts[e.Rand.IntN(len(discounts))],
			SearchURL:      retailers.SearchURL(retailer, productName),
		})
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].PredictedPrice < quotes[j].PredictedPrice
	})

	result := models.RetailerComparison{
		Product:     productName,
		Brand:       brand,
		Category:    category,
		Comparisons: quotes,
		Currency:    Currency,
	}
	if len(quotes) == 0 {
		return result
	}

	var total float64
	for _, q := range quotes {
		total += q.PredictedPrice
	}
	result.BestDeal = quotes[0]
	result.WorstDeal = quotes[len(quotes)-1]
	result.Savings = Round2(result.WorstDeal.PredictedPrice - result.BestDeal.PredictedPrice)
	result.AveragePrice = Round2(total / float64(len(quotes)))
	return result
}
