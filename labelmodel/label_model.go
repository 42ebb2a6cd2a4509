// Package labelmodel fits a noise-aware generative model over the votes of
// heuristic labeling functions. Each function's vote is modeled as drawn
// from an unknown class-conditional distribution given the hidden true
// label; dependency edges between functions get additional joint
// parameters. Fitting matches the empirical overlap statistics of the label
// matrix against the statistics implied by the parameters, without ever
// seeing gold labels, and inference converts the fitted conditionals into
// calibrated per-class probabilities.
package labelmodel

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/sfpugh/snorkel-tutorials-share/core/model"
	"github.com/sfpugh/snorkel-tutorials-share/dependency"
	"github.com/sfpugh/snorkel-tutorials-share/pkg/errors"
	"github.com/sfpugh/snorkel-tutorials-share/pkg/log"
)

// Abstain is the sentinel vote meaning "no vote". It matches
// dependency.Abstain.
const Abstain = -1

// paramEps bounds every conditional-probability parameter away from 0 and 1
// so log-space inference stays finite.
const paramEps = 1e-6

// LabelModel is the dependency-aware generative label model.
//
// An instance owns its parameters exclusively: it is not safe to call Fit
// concurrently with PredictProba on the same instance. Callers running
// concurrent sweeps must use separate instances.
type LabelModel struct {
	state *model.StateManager

	// Hyperparameters
	cardinality  int
	seed         int64
	learningRate float64
	nEpochs      int
	logFrequency int
	balance      []float64
	logger       log.Logger

	// Learned parameters. mu_ holds one k-column block per source: first
	// the m singleton function blocks (k rows each, row i*k+c is
	// P(function i votes c | Y=y)), then one k*k-row joint block per
	// dependency edge (row vi*k+vj is P(i votes vi, j votes vj | Y=y)).
	mu_         *mat.Dense
	edges_      []dependency.Edge
	forest_     []int
	nFunctions_ int

	rng *rand.Rand
}

// NewLabelModel creates a LabelModel for the given number of classes.
// Defaults: seed 42, learning rate 0.01, 100 epochs, log every 10 epochs,
// uniform class balance.
func NewLabelModel(cardinality int, opts ...Option) *LabelModel {
	lm := &LabelModel{
		state:        model.NewStateManager("LabelModel"),
		cardinality:  cardinality,
		seed:         42,
		learningRate: 0.01,
		nEpochs:      100,
		logFrequency: 10,
	}
	for _, opt := range opts {
		opt(lm)
	}
	if lm.logger == nil {
		lm.logger = log.GetLoggerWithName("labelmodel")
	}
	return lm
}

// Cardinality returns the fixed number of target classes.
func (lm *LabelModel) Cardinality() int {
	return lm.cardinality
}

// IsFitted returns whether the model has been fitted.
func (lm *LabelModel) IsFitted() bool {
	return lm.state.IsFitted()
}

// Fit estimates the model parameters from the label matrix L and the
// dependency edge set. Gold labels are never an input.
//
// Refitting discards all previous parameters. If the optimization produces
// non-finite values, Fit returns a NumericalInstabilityError and leaves the
// model unfitted.
func (lm *LabelModel) Fit(L mat.Matrix, edges dependency.EdgeSet) error {
	lm.state.Reset()

	if err := lm.validateFitInputs(L, edges); err != nil {
		return err
	}
	n, m := L.Dims()
	k := lm.cardinality

	lm.rng = rand.New(rand.NewSource(lm.seed))
	lm.nFunctions_ = m
	if edges == nil {
		lm.edges_ = nil
	} else {
		lm.edges_ = edges.Slice()
	}
	lm.forest_ = spanningForest(lm.edges_, m)

	balance := lm.classBalance()

	logger := lm.logger.With(
		log.ModelNameKey, "LabelModel",
		log.OperationKey, "fit",
	)
	logger.Info("fitting label model",
		log.SamplesKey, n,
		log.FunctionsKey, m,
		log.CardinalityKey, k,
		log.EdgesKey, len(lm.edges_),
		log.SeedKey, lm.seed,
		log.LearningRateKey, lm.learningRate,
	)

	// Augmented indicator matrix and its empirical overlap statistics.
	psi := lm.augment(L)
	d := psi.RawMatrix().Cols

	o := mat.NewDense(d, d, nil)
	o.Mul(psi.T(), psi)
	o.Scale(1/float64(n), o)

	mask := lm.buildMask(d)

	mu := lm.initParams(o, d)
	p := mat.NewDiagDense(k, balance)

	// Full-batch gradient descent for exactly nEpochs steps on
	// || mask .* (O - mu P mu^T) ||^2 plus the squared first-moment
	// residuals of the joint blocks. D is symmetric, so the cross-moment
	// gradient is 4 D mu P.
	muP := mat.NewDense(d, k, nil)
	sigma := mat.NewDense(d, d, nil)
	diff := mat.NewDense(d, d, nil)
	grad := mat.NewDense(d, k, nil)
	edgeRes := make([]float64, len(lm.edges_)*k*k)

	for epoch := 1; epoch <= lm.nEpochs; epoch++ {
		muP.Mul(mu, p)
		sigma.Mul(muP, mu.T())

		loss := 0.0
		for a := 0; a < d; a++ {
			for b := 0; b < d; b++ {
				if !mask[a][b] {
					diff.Set(a, b, 0)
					continue
				}
				v := sigma.At(a, b) - o.At(a, b)
				diff.Set(a, b, v)
				loss += v * v
			}
		}

		// The joint blocks sit outside the masked cross moments; each
		// joint indicator's observed firing rate, the diagonal of O,
		// anchors it instead.
		for i := range edgeRes {
			a := m*k + i
			res := -o.At(a, a)
			for y := 0; y < k; y++ {
				res += muP.At(a, y)
			}
			edgeRes[i] = res
			loss += res * res
		}

		if err := errors.CheckScalar("loss_calculation", loss, epoch); err != nil {
			return err
		}

		grad.Mul(diff, muP)
		grad.Scale(4, grad)
		for i, res := range edgeRes {
			a := m*k + i
			for y := 0; y < k; y++ {
				grad.Set(a, y, grad.At(a, y)+2*res*balance[y])
			}
		}

		raw := mu.RawMatrix()
		g := grad.RawMatrix()
		for idx := range raw.Data {
			raw.Data[idx] = errors.ClipValue(raw.Data[idx]-lm.learningRate*g.Data[idx], paramEps, 1-paramEps)
		}
		if err := errors.CheckMatrix("gradient_update", mu, d, k, epoch); err != nil {
			return err
		}

		if lm.logFrequency > 0 && epoch%lm.logFrequency == 0 {
			logger.Debug("optimization progress",
				log.EpochKey, epoch,
				log.LossKey, loss,
			)
		}
	}

	lm.mu_ = mu
	lm.state.SetDimensions(m, n)
	lm.state.SetFitted()

	logger.Info("label model fitted",
		log.FunctionsKey, m,
		log.EdgesKey, len(lm.edges_),
	)
	return nil
}

func (lm *LabelModel) validateFitInputs(L mat.Matrix, edges dependency.EdgeSet) error {
	if lm.cardinality < 2 {
		return errors.NewValidationError("cardinality", "must be at least 2", lm.cardinality)
	}
	if lm.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", lm.learningRate)
	}
	if lm.nEpochs < 1 {
		return errors.NewValidationError("n_epochs", "must be at least 1", lm.nEpochs)
	}
	if lm.balance != nil {
		if len(lm.balance) != lm.cardinality {
			return errors.NewDimensionError("Fit", lm.cardinality, len(lm.balance), 1)
		}
		sum := 0.0
		for _, b := range lm.balance {
			if b <= 0 {
				return errors.NewValidationError("class_balance", "entries must be positive", b)
			}
			sum += b
		}
		if math.Abs(sum-1) > 1e-6 {
			return errors.NewValidationError("class_balance", "must sum to 1", sum)
		}
	}

	if L == nil {
		return errors.NewValidationError("L", "label matrix is required", nil)
	}
	n, m := L.Dims()
	if n < 1 || m < 1 {
		return errors.NewValidationError("L", "label matrix must be non-empty", []int{n, m})
	}
	for r := 0; r < n; r++ {
		for c := 0; c < m; c++ {
			v := L.At(r, c)
			if v != math.Trunc(v) || (v != Abstain && (v < 0 || v >= float64(lm.cardinality))) {
				return errors.NewValidationError("L", "votes must be the abstain sentinel or a class index below the cardinality", v)
			}
		}
	}

	if edges != nil && edges.MaxIndex() >= m {
		return errors.NewValidationError("edges", "edge references a column beyond the label matrix", edges.MaxIndex())
	}
	return nil
}

func (lm *LabelModel) classBalance() []float64 {
	if lm.balance != nil {
		return lm.balance
	}
	k := lm.cardinality
	balance := make([]float64, k)
	for i := range balance {
		balance[i] = 1 / float64(k)
	}
	return balance
}

// augment builds the indicator matrix over all sources: one column per
// (function, class) plus one column per (edge, vote pair). An edge column
// fires only on rows where both member functions vote.
func (lm *LabelModel) augment(L mat.Matrix) *mat.Dense {
	n, m := L.Dims()
	k := lm.cardinality
	d := m*k + len(lm.edges_)*k*k

	psi := mat.NewDense(n, d, nil)
	for r := 0; r < n; r++ {
		for i := 0; i < m; i++ {
			if v := L.At(r, i); v != Abstain {
				psi.Set(r, i*k+int(v), 1)
			}
		}
		for e, edge := range lm.edges_ {
			vi, vj := L.At(r, edge.I), L.At(r, edge.J)
			if vi == Abstain || vj == Abstain {
				continue
			}
			psi.Set(r, m*k+e*k*k+int(vi)*k+int(vj), 1)
		}
	}
	return psi
}

// buildMask marks the overlap entries that act as moment constraints:
// entries coupling two sources with no function in common. Diagonal blocks,
// blocks between overlapping sources (a function and an edge containing it,
// or two edges sharing a function), and the block between the two functions
// of a dependency edge carry no independent information and are excluded
// from the loss.
func (lm *LabelModel) buildMask(d int) [][]bool {
	k := lm.cardinality
	m := lm.nFunctions_

	type source struct {
		start, size int
		members     []int
	}
	sources := make([]source, 0, m+len(lm.edges_))
	for i := 0; i < m; i++ {
		sources = append(sources, source{start: i * k, size: k, members: []int{i}})
	}
	for e, edge := range lm.edges_ {
		sources = append(sources, source{start: m*k + e*k*k, size: k * k, members: []int{edge.I, edge.J}})
	}

	linked := make(map[dependency.Edge]struct{}, len(lm.edges_))
	for _, edge := range lm.edges_ {
		linked[edge] = struct{}{}
	}

	overlap := func(a, b source) bool {
		for _, x := range a.members {
			for _, y := range b.members {
				if x == y {
					return true
				}
			}
		}
		if len(a.members) == 1 && len(b.members) == 1 {
			_, dependent := linked[dependency.NewEdge(a.members[0], b.members[0])]
			return dependent
		}
		return false
	}

	mask := make([][]bool, d)
	for i := range mask {
		mask[i] = make([]bool, d)
	}
	for si, s := range sources {
		for ti, t := range sources {
			if si == ti || overlap(s, t) {
				continue
			}
			for a := s.start; a < s.start+s.size; a++ {
				for b := t.start; b < t.start+t.size; b++ {
					mask[a][b] = true
				}
			}
		}
	}
	return mask
}

// spanningForest returns the indices of a maximal acyclic subset of the
// sorted edges. Joint corrections at inference follow only these: applying
// them around a cycle would discount the member functions' evidence more
// than once.
func spanningForest(edges []dependency.Edge, m int) []int {
	parent := make([]int, m)
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	var keep []int
	for e, edge := range edges {
		ri, rj := find(edge.I), find(edge.J)
		if ri == rj {
			continue
		}
		parent[ri] = rj
		keep = append(keep, e)
	}
	return keep
}

// initParams seeds the conditional-probability parameters from the observed
// vote frequencies (the diagonal of O is each indicator's firing rate),
// tilted toward a better-than-random accuracy prior. The moment-matching
// loss is invariant under permuting the hidden classes; the tilt anchors
// the permutation in which each function votes its own class most often.
// Small seeded noise breaks the remaining ties.
func (lm *LabelModel) initParams(o *mat.Dense, d int) *mat.Dense {
	k := lm.cardinality
	m := lm.nFunctions_
	mu := mat.NewDense(d, k, nil)

	set := func(row int, matches, members, y int) {
		freq := o.At(row, row)
		tilt := 0.5 + float64(matches)/float64(members)
		noise := (lm.rng.Float64() - 0.5) * 0.02
		mu.Set(row, y, errors.ClipValue(freq*tilt+noise, paramEps, 1-paramEps))
	}

	for i := 0; i < m; i++ {
		for c := 0; c < k; c++ {
			for y := 0; y < k; y++ {
				matches := 0
				if c == y {
					matches = 1
				}
				set(i*k+c, matches, 1, y)
			}
		}
	}
	for e := range lm.edges_ {
		for ci := 0; ci < k; ci++ {
			for cj := 0; cj < k; cj++ {
				for y := 0; y < k; y++ {
					matches := 0
					if ci == y {
						matches++
					}
					if cj == y {
						matches++
					}
					set(m*k+e*k*k+ci*k+cj, matches, 2, y)
				}
			}
		}
	}
	return mu
}
