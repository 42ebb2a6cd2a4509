package labelmodel

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sfpugh/snorkel-tutorials-share/metrics"
	"github.com/sfpugh/snorkel-tutorials-share/pkg/errors"
)

// PredictProba returns P(true label = c | row of L) for every row, as an
// (n x cardinality) matrix with non-negative rows summing to 1.
//
// The read-out multiplies the fitted class-conditional vote probabilities
// of every voting function in log space; along a spanning forest of the
// dependency graph, an edge whose two functions both vote contributes its
// joint conditional in place of the product of the two singletons. Rows
// where every function abstains fall back to the class balance. Inference
// is deterministic.
func (lm *LabelModel) PredictProba(L mat.Matrix) (*mat.Dense, error) {
	if err := lm.state.RequireFitted("PredictProba"); err != nil {
		return nil, err
	}
	if L == nil {
		return nil, errors.NewValidationError("L", "label matrix is required", nil)
	}
	n, m := L.Dims()
	if m != lm.nFunctions_ {
		return nil, errors.NewDimensionError("PredictProba", lm.nFunctions_, m, 1)
	}
	if err := lm.validateVotes(L); err != nil {
		return nil, err
	}

	k := lm.cardinality
	balance := lm.classBalance()
	probs := mat.NewDense(n, k, nil)
	logPost := make([]float64, k)

	for r := 0; r < n; r++ {
		for y := 0; y < k; y++ {
			logPost[y] = errors.StabilizeLog(balance[y])
		}

		for i := 0; i < m; i++ {
			v := L.At(r, i)
			if v == Abstain {
				continue
			}
			for y := 0; y < k; y++ {
				logPost[y] += errors.StabilizeLog(lm.singletonParam(i, int(v), y))
			}
		}

		// Edge corrections: swap the independent product of the two member
		// functions for their fitted joint conditional, once per forest
		// edge.
		for _, e := range lm.forest_ {
			edge := lm.edges_[e]
			vi, vj := L.At(r, edge.I), L.At(r, edge.J)
			if vi == Abstain || vj == Abstain {
				continue
			}
			for y := 0; y < k; y++ {
				logPost[y] += errors.StabilizeLog(lm.jointParam(e, int(vi), int(vj), y)) -
					errors.StabilizeLog(lm.singletonParam(edge.I, int(vi), y)) -
					errors.StabilizeLog(lm.singletonParam(edge.J, int(vj), y))
			}
		}

		norm := errors.LogSumExp(logPost)
		for y := 0; y < k; y++ {
			probs.Set(r, y, errors.StabilizeExp(logPost[y]-norm))
		}
	}
	return probs, nil
}

// Predict returns the hard class prediction per row: the argmax of
// PredictProba, with ties broken toward the lowest class index.
func (lm *LabelModel) Predict(L mat.Matrix) ([]int, error) {
	probs, err := lm.PredictProba(L)
	if err != nil {
		return nil, err
	}
	n, k := probs.Dims()
	preds := make([]int, n)
	for r := 0; r < n; r++ {
		best, bestProb := 0, probs.At(r, 0)
		for y := 1; y < k; y++ {
			if p := probs.At(r, y); p > bestProb {
				best, bestProb = y, p
			}
		}
		preds[r] = best
	}
	return preds, nil
}

// Score converts probabilities to hard predictions and compares them to the
// gold labels Y under the requested metric: "accuracy" or "f1_macro".
func (lm *LabelModel) Score(L mat.Matrix, Y []int, metric string) (float64, error) {
	if err := lm.state.RequireFitted("Score"); err != nil {
		return 0, err
	}
	if L == nil {
		return 0, errors.NewValidationError("L", "label matrix is required", nil)
	}
	n, _ := L.Dims()
	if len(Y) != n {
		return 0, errors.NewDimensionError("Score", n, len(Y), 0)
	}

	preds, err := lm.Predict(L)
	if err != nil {
		return 0, err
	}

	yTrue := mat.NewVecDense(n, nil)
	yPred := mat.NewVecDense(n, nil)
	for r := 0; r < n; r++ {
		yTrue.SetVec(r, float64(Y[r]))
		yPred.SetVec(r, float64(preds[r]))
	}

	switch metric {
	case "accuracy":
		return metrics.Accuracy(yTrue, yPred)
	case "f1_macro":
		return metrics.MacroF1(yTrue, yPred, lm.cardinality)
	default:
		return 0, errors.NewValidationError("metric", "must be one of 'accuracy', 'f1_macro'", metric)
	}
}

func (lm *LabelModel) validateVotes(L mat.Matrix) error {
	n, m := L.Dims()
	for r := 0; r < n; r++ {
		for c := 0; c < m; c++ {
			v := L.At(r, c)
			if v != math.Trunc(v) || (v != Abstain && (v < 0 || v >= float64(lm.cardinality))) {
				return errors.NewValidationError("L", "votes must be the abstain sentinel or a class index below the cardinality", v)
			}
		}
	}
	return nil
}

// singletonParam is P(function i votes c | Y = y) from the fitted block.
func (lm *LabelModel) singletonParam(i, c, y int) float64 {
	return lm.mu_.At(i*lm.cardinality+c, y)
}

// jointParam is P(functions of edge e vote (ci, cj) | Y = y).
func (lm *LabelModel) jointParam(e, ci, cj, y int) float64 {
	k := lm.cardinality
	return lm.mu_.At(lm.nFunctions_*k+e*k*k+ci*k+cj, y)
}
