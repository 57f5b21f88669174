package learned

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/raushankrgupta/closetly/pricing"
)

// Candidate is one regressor configuration competing in training
type Candidate struct {
	Name         string
	Kind         string
	Trees        int
	MaxDepth     int
	MinLeaf      int
	LearningRate float64
	Subsample    float64
}

// DefaultCandidates are the three regressors compared by holdout MAE
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "random_forest", Kind: KindForest, Trees: 60, MaxDepth: 12, MinLeaf: 2},
		{Name: "gradient_boosting", Kind: KindBoosting, Trees: 150, MaxDepth: 4, MinLeaf: 5, LearningRate: 0.1, Subsample: 1},
		{Name: "xgboost", Kind: KindBoosting, Trees: 150, MaxDepth: 6, MinLeaf: 3, LearningRate: 0.1, Subsample: 0.8},
	}
}

// TrainOptions control the offline training pipeline
type TrainOptions struct {
	Samples    int
	TestRatio  float64
	Seed       uint64
	Tables     *pricing.Tables
	Candidates []Candidate
}

func (o *TrainOptions) defaults() {
	if o.Samples <= 0 {
		o.Samples = 2000
	}
	if o.TestRatio <= 0 || o.TestRatio >= 1 {
		o.TestRatio = 0.2
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	if o.Tables == nil {
		o.Tables = pricing.DefaultTables
	}
	if len(o.Candidates) == 0 {
		o.Candidates = DefaultCandidates()
	}
}

// Train synthesizes data, fits every candidate and keeps the one with the
// lowest mean absolute error on the holdout split
func Train(opts TrainOptions) (*Model, error) {
	opts.defaults()
	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	samples := GenerateSynthetic(opts.Samples, opts.Tables, r)
	return Fit(samples, opts, r)
}

// Fit preprocesses samples and selects the best candidate
func Fit(samples []Sample, opts TrainOptions, r *rand.Rand) (*Model, error) {
	opts.defaults()
	if len(samples) < 10 {
		return nil, errors.New("not enough samples to train")
	}

	rows := make([]map[string]string, len(samples))
	popularity := map[string]float64{}
	for i, s := range samples {
		rows[i] = s.categorical()
		popularity[s.Brand]++
	}

	m := &Model{
		Encoder:         FitEncoder(rows),
		BrandPopularity: popularity,
		Candidates:      map[string]Metrics{},
	}

	X := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		rating := s.Rating
		X[i] = m.Features(s.item(&rating))
		y[i] = s.CurrentPrice
	}

	perm := r.Perm(len(samples))
	nTest := max(1, int(float64(len(samples))*opts.TestRatio))
	testIdx, trainIdx := perm[:nTest], perm[nTest:]
	Xtr, ytr := pick(X, y, trainIdx)
	Xte, yte := pick(X, y, testIdx)

	bestMAE := math.Inf(1)
	for _, c := range opts.Candidates {
		p := treeParams{maxDepth: c.MaxDepth, minLeaf: max(1, c.MinLeaf)}
		var ens *Ensemble
		switch c.Kind {
		case KindForest:
			ens = fitForest(Xtr, ytr, c.Trees, p, r)
		case KindBoosting:
			ens = fitBoosting(Xtr, ytr, c.Trees, c.LearningRate, c.Subsample, p, r)
		default:
			return nil, fmt.Errorf("unknown regressor kind %q", c.Kind)
		}
		metrics := evaluate(ens, Xte, yte)
		m.Candidates[c.Name] = metrics
		if metrics.MAE < bestMAE {
			bestMAE = metrics.MAE
			m.Name = c.Name
			m.Ensemble = ens
			m.Metrics = metrics
		}
	}
	m.TrainedAt = time.Now().UTC()
	return m, nil
}

// CandidateNames lists candidate names sorted by holdout MAE
func (m *Model) CandidateNames() []string {
	names := make([]string, 0, len(m.Candidates))
	for n := range m.Candidates {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return m.Candidates[names[i]].MAE < m.Candidates[names[j]].MAE
	})
	return names
}

func evaluate(ens *Ensemble, X [][]float64, y []float64) Metrics {
	var absSum, sqSum, pctSum, mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var totalSS float64
	for i, x := range X {
		diff := y[i] - ens.Predict(x)
		absSum += math.Abs(diff)
		sqSum += diff * diff
		if y[i] != 0 {
			pctSum += math.Abs(diff / y[i])
		}
		totalSS += (y[i] - mean) * (y[i] - mean)
	}
	n := float64(len(y))
	r2 := 0.0
	if totalSS > 0 {
		r2 = 1 - sqSum/totalSS
	}
	return Metrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		R2:   r2,
		MAPE: pctSum / n * 100,
	}
}

func pick(X [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	xs := make([][]float64, len(idx))
	ys := make([]float64, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}
