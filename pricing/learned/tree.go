package learned

import (
	"math/rand/v2"
	"sort"
)

// Node is a regression tree node. Leaves have no children.
type Node struct {
	Feature   int     `json:"f,omitempty"`
	Threshold float64 `json:"t,omitempty"`
	Value     float64 `json:"v"`
	Left      *Node   `json:"l,omitempty"`
	Right     *Node   `json:"r,omitempty"`
}

func (n *Node) predict(x []float64) float64 {
	for n.Left != nil {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

const (
	KindForest   = "forest"
	KindBoosting = "boosting"
)

// Ensemble is either an averaged forest or an additive boosted sequence
type Ensemble struct {
	Kind         string  `json:"kind"`
	Base         float64 `json:"base,omitempty"`
	LearningRate float64 `json:"learning_rate,omitempty"`
	Trees        []*Node `json:"trees"`
}

// Predict runs a single forward pass over a feature vector
func (e *Ensemble) Predict(x []float64) float64 {
	if len(e.Trees) == 0 {
		return e.Base
	}
	var sum float64
	for _, t := range e.Trees {
		sum += t.predict(x)
	}
	if e.Kind == KindForest {
		return sum / float64(len(e.Trees))
	}
	return e.Base + e.LearningRate*sum
}

type treeParams struct {
	maxDepth int
	minLeaf  int
}

// growTree fits a variance-reduction regression tree on the rows in idx
func growTree(X [][]float64, y []float64, idx []int, depth int, p treeParams) *Node {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	node := &Node{Value: sum / float64(len(idx))}
	if depth >= p.maxDepth || len(idx) < 2*p.minLeaf {
		return node
	}

	feature, threshold, ok := bestSplit(X, y, idx, p.minLeaf)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	node.Feature = feature
	node.Threshold = threshold
	node.Left = growTree(X, y, left, depth+1, p)
	node.Right = growTree(X, y, right, depth+1, p)
	return node
}

func bestSplit(X [][]float64, y []float64, idx []int, minLeaf int) (int, float64, bool) {
	n := len(idx)
	var total, totalSq float64
	for _, i := range idx {
		total += y[i]
		totalSq += y[i] * y[i]
	}
	parentSSE := totalSq - total*total/float64(n)

	bestSSE := parentSSE
	bestFeature, bestThreshold, found := 0, 0.0, false

	sorted := make([]int, n)
	for f := range X[idx[0]] {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

		var leftSum, leftSq float64
		for k := 1; k < n; k++ {
			v := y[sorted[k-1]]
			leftSum += v
			leftSq += v * v
			if k < minLeaf || n-k < minLeaf {
				continue
			}
			lo, hi := X[sorted[k-1]][f], X[sorted[k]][f]
			if lo == hi {
				continue
			}
			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/float64(k)) +
				(rightSq - rightSum*rightSum/float64(n-k))
			if sse < bestSSE-1e-9 {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (lo + hi) / 2
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

// fitForest averages trees grown on bootstrap resamples
func fitForest(X [][]float64, y []float64, trees int, p treeParams, r *rand.Rand) *Ensemble {
	ens := &Ensemble{Kind: KindForest}
	n := len(y)
	for t := 0; t < trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = r.IntN(n)
		}
		ens.Trees = append(ens.Trees, growTree(X, y, idx, 0, p))
	}
	return ens
}

// fitBoosting fits shrunken trees to the running residuals. subsample < 1
// grows each tree on a random fraction of the rows.
func fitBoosting(X [][]float64, y []float64, trees int, lr, subsample float64, p treeParams, r *rand.Rand) *Ensemble {
	n := len(y)
	var base float64
	for _, v := range y {
		base += v
	}
	base /= float64(n)

	ens := &Ensemble{Kind: KindBoosting, Base: base, LearningRate: lr}
	pred := make([]float64, n)
	for i := range pred {
		pred[i] = base
	}
	residual := make([]float64, n)

	rows := n
	if subsample > 0 && subsample < 1 {
		rows = max(int(float64(n)*subsample), 2*p.minLeaf)
	}
	for t := 0; t < trees; t++ {
		for i := range residual {
			residual[i] = y[i] - pred[i]
		}
		idx := r.Perm(n)[:rows]
		tree := growTree(X, residual, idx, 0, p)
		ens.Trees = append(ens.Trees, tree)
		for i := range pred {
			pred[i] += lr * tree.predict(X[i])
		}
	}
	return ens
}
