package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSortedWithDeals(t *testing.T) {
	e := NewEstimator(seeded(), 0)

	for i := 0; i < 200; i++ {
		got := e.Compare("Blue Jeans", "Levi's", "Jeans")
		require.Len(t, got.Comparisons, 6)

		for j := 1; j < len(got.Comparisons); j++ {
			require.LessOrEqual(t, got.Comparisons[j-1].PredictedPrice, got.Comparisons[j].PredictedPrice)
		}
		first := got.Comparisons[0]
		last := got.Comparisons[len(got.Comparisons)-1]
		assert.Equal(t, first, got.BestDeal)
		assert.Equal(t, last, got.WorstDeal)
		assert.InDelta(t, last.PredictedPrice-first.PredictedPrice, got.Savings, 0.005)
		assert.Contains(t, DefaultTables.ComparisonDiscounts, first.Discount)
	}
}

func TestCompareExactValues(t *testing.T) {
	r := &fixedRand{
		// base, then one jitter per retailer
		floats: []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		ints:   []int{0, 1, 2, 3, 4, 5},
	}
	e := NewEstimator(r, 0)

	got := e.Compare("Blue Jeans", "Levi's", "Jeans")

	// base 2750; Flipkart and Amazon India tie at 0.95 and keep input order
	wantOrder := []string{"Flipkart", "Amazon India", "Ajio", "Myntra", "Westside", "Lifestyle"}
	for i, q := range got.Comparisons {
		assert.Equal(t, wantOrder[i], q.Retailer)
	}
	assert.Equal(t, 2612.5, got.BestDeal.PredictedPrice)
	assert.Equal(t, 3162.5, got.WorstDeal.PredictedPrice)
	assert.Equal(t, 550.0, got.Savings)
	assert.Equal(t, "https://www.flipkart.com/search?q=Blue+Jeans", got.BestDeal.SearchURL)
	assert.Equal(t, "https://www.myntra.com/blue-jeans", got.Comparisons[3].SearchURL)
	assert.Equal(t, 0, got.Comparisons[3].Discount)
}

func TestCompareEmptyProductName(t *testing.T) {
	e := NewEstimator(seeded(), 0)
	got := e.Compare("", "", "")

	assert.Equal(t, "Generic", got.Brand)
	assert.Equal(t, "Shirt", got.Category)
	for _, q := range got.Comparisons {
		assert.NotEmpty(t, q.SearchURL)
	}
}
