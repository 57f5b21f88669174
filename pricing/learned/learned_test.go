package learned

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallOptions() TrainOptions {
	return TrainOptions{
		Samples: 400,
		Seed:    7,
		Candidates: []Candidate{
			{Name: "random_forest", Kind: KindForest, Trees: 8, MaxDepth: 8, MinLeaf: 2},
			{Name: "gradient_boosting", Kind: KindBoosting, Trees: 30, MaxDepth: 3, MinLeaf: 5, LearningRate: 0.1, Subsample: 1},
			{Name: "xgboost", Kind: KindBoosting, Trees: 30, MaxDepth: 4, MinLeaf: 3, LearningRate: 0.1, Subsample: 0.8},
		},
	}
}

func TestEncoderUnknownMapsToZero(t *testing.T) {
	enc := FitEncoder([]map[string]string{
		{"brand": "Zara", "category": "Dress", "material": "Silk", "retailer": "Myntra", "season": "Summer"},
		{"brand": "Adidas", "category": "Jeans", "material": "Cotton", "retailer": "Ajio", "season": "Winter"},
	})

	assert.Equal(t, []string{"Adidas", "Zara"}, enc.Vocab["brand"])
	assert.Equal(t, 1, enc.Encode("brand", "Zara"))
	assert.Equal(t, 0, enc.Encode("brand", "Adidas"))
	assert.Equal(t, 0, enc.Encode("brand", "Gucci"))
	assert.Equal(t, 0, enc.Encode("retailer", "Nordstrom"))
	assert.Equal(t, 0, enc.Encode("nonexistent", "x"))
}

func TestFeatureOrder(t *testing.T) {
	m := &Model{
		Encoder: FitEncoder([]map[string]string{
			{"brand": "Zara", "category": "Dress", "material": "Silk", "retailer": "Myntra", "season": "Summer"},
			{"brand": "Adidas", "category": "Jeans", "material": "Cotton", "retailer": "Ajio", "season": "Winter"},
		}),
		BrandPopularity: map[string]float64{"Zara": 12},
	}
	rating := 4.5
	got := m.Features(models.ItemDescriptor{
		Brand: "Zara", Category: "Jeans", Material: "Silk", Retailer: "Nordstrom", Season: "Fall",
		Rating: &rating, DiscountPercent: 20,
	})
	assert.Equal(t, []float64{1, 1, 1, 0, 0, 4.5, 20, 12}, got)

	got = m.Features(models.ItemDescriptor{Brand: "Gucci", Category: "Dress"})
	assert.Equal(t, []float64{0, 0, 0, 0, 0, DefaultRating, 0, 0}, got)
}

func TestEnsemblePredict(t *testing.T) {
	stump := &Node{Feature: 0, Threshold: 1.5, Left: &Node{Value: 100}, Right: &Node{Value: 300}}

	forest := &Ensemble{Kind: KindForest, Trees: []*Node{stump, {Value: 200}}}
	assert.Equal(t, 150.0, forest.Predict([]float64{1}))
	assert.Equal(t, 250.0, forest.Predict([]float64{2}))

	boost := &Ensemble{Kind: KindBoosting, Base: 1000, LearningRate: 0.5, Trees: []*Node{stump, stump}}
	assert.Equal(t, 1100.0, boost.Predict([]float64{0}))
	assert.Equal(t, 1300.0, boost.Predict([]float64{5}))
}

func TestGrowTreeSeparatesGroups(t *testing.T) {
	X := [][]float64{{0}, {0}, {0}, {1}, {1}, {1}}
	y := []float64{10, 10, 10, 50, 50, 50}
	tree := growTree(X, y, []int{0, 1, 2, 3, 4, 5}, 0, treeParams{maxDepth: 3, minLeaf: 1})

	assert.Equal(t, 10.0, tree.predict([]float64{0}))
	assert.Equal(t, 50.0, tree.predict([]float64{1}))
}

func TestGenerateSyntheticWithinTables(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	tbl := pricing.DefaultTables
	for _, s := range GenerateSynthetic(500, tbl, r) {
		br := tbl.BrandRange(s.Brand)
		lo := br.Min * 0.4 * 0.8 * 0.85 * 0.9
		hi := br.Max * 3.0 * 1.5 * 1.2 * 1.1
		require.GreaterOrEqual(t, s.CurrentPrice, pricing.Round2(lo))
		require.LessOrEqual(t, s.CurrentPrice, pricing.Round2(hi))
		require.LessOrEqual(t, s.Rating, 5.0)
		require.GreaterOrEqual(t, s.OriginalPrice, s.CurrentPrice)
	}
}

func TestTrainSelectsLowestMAE(t *testing.T) {
	m, err := Train(smallOptions())
	require.NoError(t, err)

	require.Len(t, m.Candidates, 3)
	for name, metrics := range m.Candidates {
		assert.LessOrEqual(t, m.Metrics.MAE, metrics.MAE, name)
	}
	assert.Equal(t, m.Name, m.CandidateNames()[0])
	assert.Greater(t, m.Metrics.R2, 0.0)
}

func TestModelEstimateBand(t *testing.T) {
	m, err := Train(smallOptions())
	require.NoError(t, err)

	got, err := m.Estimate(models.ItemDescriptor{Brand: "Zara", Category: "Blazer", Material: "Wool", Retailer: "Myntra"})
	require.NoError(t, err)
	assert.Greater(t, got.CurrentPrice, 0.0)
	assert.Equal(t, pricing.Round2(got.CurrentPrice*0.85), got.PriceRange.Min)
	assert.Equal(t, pricing.Round2(got.CurrentPrice*1.15), got.PriceRange.Max)
	assert.Equal(t, "INR", got.Currency)

	again, err := m.Estimate(models.ItemDescriptor{Brand: "Zara", Category: "Blazer", Material: "Wool", Retailer: "Myntra"})
	require.NoError(t, err)
	assert.Equal(t, got, again)

	_, err = m.Estimate(models.ItemDescriptor{Category: "Blazer"})
	assert.ErrorIs(t, err, pricing.ErrMissingField)
}

func TestLoadOrTrainBootstrapsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	first, err := LoadOrTrain(path, smallOptions())
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	second, err := LoadOrTrain(path, TrainOptions{Samples: 1})
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.TrainedAt, second.TrainedAt)

	item := models.ItemDescriptor{Brand: "Nike", Category: "Jacket", Retailer: "Ajio"}
	a, err := first.Estimate(item)
	require.NoError(t, err)
	b, err := second.Estimate(item)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoadRejectsCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x"}`), 0o644))

	_, err := LoadOrTrain(path, smallOptions())
	assert.Error(t, err)
}
