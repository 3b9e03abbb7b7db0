// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engine

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//Following constants have the supported regression model names
const (
	//RegModelLin is an ordinary least squares fit
	RegModelLin = "lin"
	//RegModelGAM is an additive model of per feature smoothers
	RegModelGAM = "gam"
	//RegModelGBM is a gradient boosted ensemble of regression stumps
	RegModelGBM = "gbm"
	//RegModelETR is an ensemble of extremely randomized regression trees
	RegModelETR = "etr"
)

//RegModels has the supported regression model names
var RegModels = []string{RegModelLin, RegModelGAM, RegModelGBM, RegModelETR}

//IsRegModel returns true if the name is one of the supported regression models
func IsRegModel(name string) bool {
	for _, m := range RegModels {
		if m == name {
			return true
		}
	}
	return false
}

//regressor relates the reference weather features to the plant energy
type regressor interface {
	//fit fits the model on the given samples
	fit(X [][]float64, y []float64) error
	//predict returns the model output for one feature row
	predict(x []float64) float64
}

//newRegressor returns the regression model of the given kind.
//The random source drives the stochastic models
func newRegressor(kind string, rng *rand.Rand) regressor {
	switch kind {
	case RegModelGAM:
		return &gamRegressor{}
	case RegModelGBM:
		return &gbmRegressor{rng: rng}
	case RegModelETR:
		return &etrRegressor{rng: rng}
	default:
		return &linRegressor{}
	}
}

//linRegressor is an ordinary least squares fit with an intercept
type linRegressor struct {
	coef []float64
}

//fit solves the least squares system through a qr factorization
func (l *linRegressor) fit(X [][]float64, y []float64) error {
	n := len(X)
	p := len(X[0]) + 1
	a := mat.NewDense(n, p, nil)
	for i, row := range X {
		a.Set(i, 0, 1)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
	}
	var qr mat.QR
	qr.Factorize(a)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, mat.NewVecDense(n, y)); err != nil {
		return err
	}
	l.coef = make([]float64, p)
	for i := range l.coef {
		l.coef[i] = sol.AtVec(i)
	}
	return nil
}

//predict returns the fitted linear combination of the features
func (l *linRegressor) predict(x []float64) float64 {
	out := l.coef[0]
	for j, v := range x {
		out += l.coef[j+1] * v
	}
	return out
}

//smootherBins is the number of bins of one additive smoother
const smootherBins = 10

//binSmoother is a piecewise linear curve over equal width bins of one feature
type binSmoother struct {
	centers []float64
	values  []float64
}

//fitSmoother bins one feature and averages the target within each bin
func fitSmoother(xs, target []float64) *binSmoother {
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	s := &binSmoother{}
	if hi <= lo {
		s.centers = []float64{lo}
		s.values = []float64{stat.Mean(target, nil)}
		return s
	}
	width := (hi - lo) / smootherBins
	sums := make([]float64, smootherBins)
	counts := make([]int, smootherBins)
	for i, x := range xs {
		b := int((x - lo) / width)
		if b >= smootherBins {
			b = smootherBins - 1
		}
		sums[b] += target[i]
		counts[b]++
	}
	for b := 0; b < smootherBins; b++ {
		if counts[b] == 0 {
			continue
		}
		s.centers = append(s.centers, lo+(float64(b)+0.5)*width)
		s.values = append(s.values, sums[b]/float64(counts[b]))
	}
	return s
}

//eval interpolates the smoother at x clamping outside the fitted range
func (s *binSmoother) eval(x float64) float64 {
	last := len(s.centers) - 1
	if last == 0 || x <= s.centers[0] {
		return s.values[0]
	}
	if x >= s.centers[last] {
		return s.values[last]
	}
	for i := 1; i <= last; i++ {
		if x <= s.centers[i] {
			t := (x - s.centers[i-1]) / (s.centers[i] - s.centers[i-1])
			return s.values[i-1] + t*(s.values[i]-s.values[i-1])
		}
	}
	return s.values[last]
}

//gamSweeps is the number of backfitting passes over the smoothers
const gamSweeps = 3

//gamRegressor is an additive model of per feature piecewise linear smoothers
type gamRegressor struct {
	mean      float64
	smoothers []*binSmoother
}

//fit backfits one smoother per feature against the running residual
func (g *gamRegressor) fit(X [][]float64, y []float64) error {
	n := len(X)
	p := len(X[0])
	g.mean = stat.Mean(y, nil)
	g.smoothers = make([]*binSmoother, p)
	contrib := make([][]float64, p)
	for f := range contrib {
		contrib[f] = make([]float64, n)
	}
	resid := make([]float64, n)
	for i := range y {
		resid[i] = y[i] - g.mean
	}
	target := make([]float64, n)
	xs := make([]float64, n)
	for sweep := 0; sweep < gamSweeps; sweep++ {
		for f := 0; f < p; f++ {
			for i := 0; i < n; i++ {
				target[i] = resid[i] + contrib[f][i]
				xs[i] = X[i][f]
			}
			s := fitSmoother(xs, target)
			g.smoothers[f] = s
			for i := 0; i < n; i++ {
				v := s.eval(xs[i])
				resid[i] = target[i] - v
				contrib[f][i] = v
			}
		}
	}
	return nil
}

//predict sums the smoother outputs over the features
func (g *gamRegressor) predict(x []float64) float64 {
	out := g.mean
	for f, s := range g.smoothers {
		out += s.eval(x[f])
	}
	return out
}

//Following constants shape the boosted stump ensemble
const (
	gbmRounds       = 50
	gbmLearningRate = 0.1
)

//gbmStump is one regression stump of the boosted ensemble
type gbmStump struct {
	feature   int
	threshold float64
	left      float64
	right     float64
}

//eval returns the stump output for one feature row
func (s gbmStump) eval(x []float64) float64 {
	if x[s.feature] <= s.threshold {
		return s.left
	}
	return s.right
}

//gbmRegressor is a gradient boosted ensemble of regression stumps
type gbmRegressor struct {
	rng    *rand.Rand
	mean   float64
	stumps []gbmStump
}

//fit boosts stumps against the running residual picking a random feature each round
func (g *gbmRegressor) fit(X [][]float64, y []float64) error {
	n := len(X)
	p := len(X[0])
	g.mean = stat.Mean(y, nil)
	resid := make([]float64, n)
	for i := range y {
		resid[i] = y[i] - g.mean
	}
	for round := 0; round < gbmRounds; round++ {
		stump, ok := fitStump(X, resid, g.rng.Intn(p))
		if !ok {
			continue
		}
		stump.left *= gbmLearningRate
		stump.right *= gbmLearningRate
		g.stumps = append(g.stumps, stump)
		for i := range resid {
			resid[i] -= stump.eval(X[i])
		}
	}
	return nil
}

//fitStump finds the threshold of the feature that best splits the residuals.
//Prefix sums over the sorted order make every candidate split a constant time check
func fitStump(X [][]float64, resid []float64, feature int) (gbmStump, bool) {
	xs := make([]float64, len(X))
	for i := range X {
		xs[i] = X[i][feature]
	}
	order := argsort(xs)
	prefix := make([]float64, len(order)+1)
	for k, idx := range order {
		prefix[k+1] = prefix[k] + resid[idx]
	}
	total := prefix[len(order)]
	best := gbmStump{feature: feature}
	bestScore := math.Inf(-1)
	found := false
	for k := 1; k < len(order); k++ {
		lo, hi := xs[order[k-1]], xs[order[k]]
		if hi <= lo {
			continue
		}
		leftN, rightN := float64(k), float64(len(order)-k)
		leftMean := prefix[k] / leftN
		rightMean := (total - prefix[k]) / rightN
		score := leftN*leftMean*leftMean + rightN*rightMean*rightMean
		if score > bestScore {
			bestScore = score
			best.threshold = (lo + hi) / 2
			best.left = leftMean
			best.right = rightMean
			found = true
		}
	}
	return best, found
}

//predict sums the stump outputs over the ensemble
func (g *gbmRegressor) predict(x []float64) float64 {
	out := g.mean
	for _, s := range g.stumps {
		out += s.eval(x)
	}
	return out
}

//Following constants shape the extra trees ensemble
const (
	etrTrees   = 20
	etrDepth   = 3
	etrMinLeaf = 2
)

//etrNode is one node of an extra tree
type etrNode struct {
	feature   int
	threshold float64
	left      *etrNode
	right     *etrNode
	value     float64
	leaf      bool
}

//etrRegressor is an ensemble of extremely randomized regression trees
type etrRegressor struct {
	rng   *rand.Rand
	trees []*etrNode
}

//fit grows the trees over the full sample set
func (t *etrRegressor) fit(X [][]float64, y []float64) error {
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	for k := 0; k < etrTrees; k++ {
		t.trees = append(t.trees, t.grow(X, y, idx, etrDepth))
	}
	return nil
}

//grow builds one tree splitting on a random feature at a random threshold
func (t *etrRegressor) grow(X [][]float64, y []float64, idx []int, depth int) *etrNode {
	if depth == 0 || len(idx) < 2*etrMinLeaf {
		return &etrNode{leaf: true, value: meanAt(y, idx)}
	}
	f := t.rng.Intn(len(X[0]))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, i := range idx {
		v := X[i][f]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return &etrNode{leaf: true, value: meanAt(y, idx)}
	}
	thr := lo + t.rng.Float64()*(hi-lo)
	var left, right []int
	for _, i := range idx {
		if X[i][f] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < etrMinLeaf || len(right) < etrMinLeaf {
		return &etrNode{leaf: true, value: meanAt(y, idx)}
	}
	return &etrNode{
		feature:   f,
		threshold: thr,
		left:      t.grow(X, y, left, depth-1),
		right:     t.grow(X, y, right, depth-1),
	}
}

//predict averages the tree outputs over the ensemble
func (t *etrRegressor) predict(x []float64) float64 {
	var out float64
	for _, tree := range t.trees {
		node := tree
		for !node.leaf {
			if x[node.feature] <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		out += node.value
	}
	return out / float64(len(t.trees))
}

//meanAt returns the mean of the values at the given indices
func meanAt(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}
