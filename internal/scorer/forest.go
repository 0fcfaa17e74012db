package scorer

import "math/rand"

// Small regression random forest used only to derive feature importances
// for the learned weight mode. CART trees over bootstrap samples with a
// random feature subset per split; importance is the variance reduction
// attributed to each feature, summed over all splits.
type forest struct {
	nTrees      int
	maxDepth    int
	minLeaf     int
	importances []float64
	rng         *rand.Rand
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

func newForest(nTrees int, seed int64) *forest {
	return &forest{
		nTrees:   nTrees,
		maxDepth: 6,
		minLeaf:  2,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// fit trains the ensemble on rows X with targets y and accumulates
// importances. X is row-major with one slice per sample.
func (f *forest) fit(X [][]float64, y []float64) {
	nFeatures := len(X[0])
	f.importances = make([]float64, nFeatures)

	mtry := nFeatures / 3
	if mtry < 1 {
		mtry = 1
	}

	for t := 0; t < f.nTrees; t++ {
		idx := make([]int, len(X))
		for i := range idx {
			idx[i] = f.rng.Intn(len(X))
		}
		f.grow(X, y, idx, 0, mtry)
	}
}

// normalizedImportances returns importances scaled to sum to one. A fit
// with no informative splits falls back to uniform weights.
func (f *forest) normalizedImportances() []float64 {
	total := 0.0
	for _, v := range f.importances {
		total += v
	}
	out := make([]float64, len(f.importances))
	if total == 0 {
		for i := range out {
			out[i] = 1.0 / float64(len(out))
		}
		return out
	}
	for i, v := range f.importances {
		out[i] = v / total
	}
	return out
}

func (f *forest) grow(X [][]float64, y []float64, idx []int, depth, mtry int) *treeNode {
	if depth >= f.maxDepth || len(idx) < 2*f.minLeaf {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	baseSSE := sseAt(y, idx)
	if baseSSE == 0 {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	bestFeature, bestThreshold := -1, 0.0
	bestGain := 0.0
	var bestLeft, bestRight []int

	features := f.sampleFeatures(len(X[0]), mtry)
	for _, feat := range features {
		thresholds := candidateThresholds(X, idx, feat, f.rng)
		for _, th := range thresholds {
			var left, right []int
			for _, i := range idx {
				if X[i][feat] <= th {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}
			if len(left) < f.minLeaf || len(right) < f.minLeaf {
				continue
			}
			gain := baseSSE - sseAt(y, left) - sseAt(y, right)
			if gain > bestGain {
				bestGain = gain
				bestFeature = feat
				bestThreshold = th
				bestLeft, bestRight = left, right
			}
		}
	}

	if bestFeature < 0 {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	f.importances[bestFeature] += bestGain

	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      f.grow(X, y, bestLeft, depth+1, mtry),
		right:     f.grow(X, y, bestRight, depth+1, mtry),
	}
}

func (f *forest) sampleFeatures(nFeatures, mtry int) []int {
	perm := f.rng.Perm(nFeatures)
	return perm[:mtry]
}

// candidateThresholds picks up to eight split points between random pairs
// of observed values for the feature.
func candidateThresholds(X [][]float64, idx []int, feat int, rng *rand.Rand) []float64 {
	n := 8
	if len(idx) < n {
		n = len(idx)
	}
	out := make([]float64, 0, n)
	for k := 0; k < n; k++ {
		a := X[idx[rng.Intn(len(idx))]][feat]
		b := X[idx[rng.Intn(len(idx))]][feat]
		out = append(out, (a+b)/2)
	}
	return out
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sseAt(y []float64, idx []int) float64 {
	m := meanAt(y, idx)
	sse := 0.0
	for _, i := range idx {
		d := y[i] - m
		sse += d * d
	}
	return sse
}
