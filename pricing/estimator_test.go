package pricing

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/raushankrgupta/closetly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand replays a scripted sequence of draws
type fixedRand struct {
	floats []float64
	ints   []int
}

func (f *fixedRand) Float64() float64 {
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func (f *fixedRand) IntN(n int) int {
	v := f.ints[0] % n
	f.ints = f.ints[1:]
	return v
}

func seeded() *rand.Rand { return rand.New(rand.NewPCG(42, 7)) }

func TestEstimateExactValues(t *testing.T) {
	e := NewEstimator(&fixedRand{floats: []float64{0.5, 0.5}}, 0)

	got, err := e.Estimate(models.ItemDescriptor{Brand: "Van Heusen", Category: "Shirt", Retailer: "Myntra"})
	require.NoError(t, err)

	assert.Equal(t, 1320.0, got.CurrentPrice)
	assert.Equal(t, 1716.0, got.OriginalPrice)
	assert.Equal(t, models.PriceRange{Min: 1122, Max: 1518}, got.PriceRange)
	assert.Equal(t, "INR", got.Currency)
}

func TestEstimateWithDiscount(t *testing.T) {
	e := NewEstimator(&fixedRand{floats: []float64{0, 0.5}}, 0)

	got, err := e.Estimate(models.ItemDescriptor{Brand: "Levi's", Category: "Jeans", Retailer: "Flipkart", DiscountPercent: 25})
	require.NoError(t, err)

	// 1500 * 1.0 * 0.95 * 1.0
	assert.Equal(t, 1425.0, got.CurrentPrice)
	assert.Equal(t, 1900.0, got.OriginalPrice)
	assert.Equal(t, 25.0, got.DiscountPercent)
}

func TestEstimateConfigurableMarkup(t *testing.T) {
	e := NewEstimator(&fixedRand{floats: []float64{0, 0.5}}, 1.5)

	got, err := e.Estimate(models.ItemDescriptor{Brand: "H&M", Category: "Jeans"})
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.CurrentPrice)
	assert.Equal(t, 750.0, got.OriginalPrice)
}

func TestEstimateUnknownValuesFallBack(t *testing.T) {
	e := NewEstimator(&fixedRand{floats: []float64{1, 0.5}}, 0)

	got, err := e.Estimate(models.ItemDescriptor{Brand: "Nobody", Category: "Cape", Retailer: "Corner Shop"})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, got.CurrentPrice)
}

func TestEstimateValidation(t *testing.T) {
	e := NewEstimator(seeded(), 0)

	_, err := e.Estimate(models.ItemDescriptor{Category: "Shirt"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = e.Estimate(models.ItemDescriptor{Brand: "Zara"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = e.Estimate(models.ItemDescriptor{Brand: "Zara", Category: "Dress", DiscountPercent: 100})
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = e.Estimate(models.ItemDescriptor{Brand: "Zara", Category: "Dress", DiscountPercent: -5})
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestEstimateRangeIsExactBand(t *testing.T) {
	e := NewEstimator(seeded(), 0)
	for i := 0; i < 1000; i++ {
		got, err := e.Estimate(models.ItemDescriptor{Brand: "Zara", Category: "Blazer", Retailer: "Ajio"})
		require.NoError(t, err)
		assert.Equal(t, Round2(got.CurrentPrice*0.85), got.PriceRange.Min)
		assert.Equal(t, Round2(got.CurrentPrice*1.15), got.PriceRange.Max)
	}
}

func TestEstimateVanHeusenEnvelope(t *testing.T) {
	e := NewEstimator(seeded(), 0)
	item := models.ItemDescriptor{Brand: "Van Heusen", Category: "Shirt", Retailer: "Myntra"}

	lo := 800 * 0.8 * 1.0 * 0.9025
	hi := 2500 * 0.8 * 1.0 * 1.1025
	for i := 0; i < 10000; i++ {
		got, err := e.Estimate(item)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.CurrentPrice, Round2(lo))
		require.LessOrEqual(t, got.CurrentPrice, Round2(hi))
	}
}

func TestEstimateKnownBrandsEnvelope(t *testing.T) {
	e := NewEstimator(seeded(), 0)
	tbl := DefaultTables

	minCat, maxCat := minMax(tbl.CategoryMultipliers)
	minRet, maxRet := minMax(tbl.RetailerMultipliers)
	categories := tbl.Categories()
	retailerNames := tbl.Retailers()

	for brand, br := range tbl.BrandRanges {
		lo := Round2(br.Min * minCat * minRet * 0.95 * 0.95)
		hi := Round2(br.Max * maxCat * maxRet * 1.05 * 1.05)
		for i := 0; i < 200; i++ {
			item := models.ItemDescriptor{
				Brand:    brand,
				Category: categories[i%len(categories)],
				Retailer: retailerNames[i%len(retailerNames)],
			}
			got, err := e.Estimate(item)
			require.NoError(t, err)
			require.GreaterOrEqual(t, got.CurrentPrice, lo, brand)
			require.LessOrEqual(t, got.CurrentPrice, hi, brand)
		}
	}
}

func TestEstimateIsNotDeterministic(t *testing.T) {
	e := NewEstimator(seeded(), 0)
	item := models.ItemDescriptor{Brand: "Nike", Category: "Jacket"}

	first, err := e.Estimate(item)
	require.NoError(t, err)
	second, err := e.Estimate(item)
	require.NoError(t, err)
	assert.NotEqual(t, first.CurrentPrice, second.CurrentPrice)
}

func TestEstimateBatchIsolatesFailures(t *testing.T) {
	e := NewEstimator(seeded(), 0)
	items := []json.RawMessage{
		json.RawMessage(`{"brand":"Zara","category":"Dress"}`),
		json.RawMessage(`{"category":"Dress"}`),
		json.RawMessage(`{"brand":"Nike","category":"Hoodie","retailer":"Ajio"}`),
		json.RawMessage(`{"brand":"Puma","category":"T-Shirt","discount_percent":20}`),
	}

	got, err := EstimateBatch(e, items)
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalItems)
	assert.Equal(t, 3, got.Successful)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Predictions, 4)
	assert.False(t, got.Predictions[1].Success)
	assert.Contains(t, got.Predictions[1].Error, "brand")
	for _, i := range []int{0, 2, 3} {
		assert.True(t, got.Predictions[i].Success)
		assert.NotNil(t, got.Predictions[i].Prediction)
		assert.Equal(t, i, got.Predictions[i].Index)
	}
}

func TestEstimateBatchMalformedJSONItem(t *testing.T) {
	e := NewEstimator(seeded(), 0)
	items := []json.RawMessage{
		json.RawMessage(`"not an object"`),
		json.RawMessage(`{"brand":"Zara","category":"Dress"}`),
	}

	got, err := EstimateBatch(e, items)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalItems)
	assert.Equal(t, 1, got.Failed)
	assert.Contains(t, got.Predictions[0].Error, "invalid item")
}

func TestEstimateBatchEmpty(t *testing.T) {
	_, err := EstimateBatch(NewEstimator(seeded(), 0), nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = EstimateMany(NewEstimator(seeded(), 0), []models.ItemDescriptor{})
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func minMax(m map[string]float64) (float64, float64) {
	lo, hi := 1e18, -1e18
	for _, v := range m {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

type panicky struct{ on string }

func (p panicky) Estimate(item models.ItemDescriptor) (models.PriceEstimate, error) {
	if item.Brand == p.on {
		panic("boom")
	}
	return models.PriceEstimate{CurrentPrice: 100}, nil
}

func TestEstimateManyRecoversPanics(t *testing.T) {
	got, err := EstimateMany(panicky{on: "Zara"}, []models.ItemDescriptor{
		{Brand: "H&M", Category: "Shirt"},
		{Brand: "Zara", Category: "Shirt"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Successful)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, "prediction failed: boom", got.Predictions[1].Error)
	assert.Nil(t, got.Predictions[1].Prediction)
}
