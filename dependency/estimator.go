package dependency

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sfpugh/snorkel-tutorials-share/pkg/errors"
	"github.com/sfpugh/snorkel-tutorials-share/pkg/log"
)

// PairStat is the dependency statistic computed for one pair of labeling
// functions. Returned by EstimateEdgesWithStats for debugging; an edge is
// declared when Statistic exceeds the significance threshold.
type PairStat struct {
	Edge      Edge
	Statistic float64
}

// EstimateEdges computes the dependency edge set of the label matrix L
// under the given policy.
//
// L holds one labeling function per column; entries are Abstain or a class
// index in [0, k). Y are gold labels, required only by gold-informed
// policies and validated whenever provided. threshold is the significance
// level: a pair becomes an edge when its statistic exceeds it, so raising
// the threshold never adds edges. The function is pure and deterministic.
func EstimateEdges(L mat.Matrix, Y []int, k int, threshold float64, policy Policy) (EdgeSet, error) {
	edges, _, err := EstimateEdgesWithStats(L, Y, k, threshold, policy)
	return edges, err
}

// EstimateEdgesWithStats is EstimateEdges with a diagnostics channel: it
// additionally returns the statistic of every pair, sorted by (I, J).
// PolicyEmpty computes no statistics and returns a nil slice.
func EstimateEdgesWithStats(L mat.Matrix, Y []int, k int, threshold float64, policy Policy) (EdgeSet, []PairStat, error) {
	if err := validateEstimateInputs(L, Y, k, threshold, policy); err != nil {
		return nil, nil, err
	}

	edges := NewEdgeSet()
	if policy == PolicyEmpty {
		return edges, nil, nil
	}

	_, m := L.Dims()
	stats := make([]PairStat, 0, m*(m-1)/2)
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			var s float64
			switch policy {
			case PolicyCovariance:
				s = covarianceStat(L, i, j, k)
			case PolicyGoldCovariance:
				s = goldCovarianceStat(L, Y, i, j, k)
			case PolicyEntropy:
				s = entropyStat(L, i, j, k)
			}
			stats = append(stats, PairStat{Edge: Edge{I: i, J: j}, Statistic: s})
			if s > threshold {
				edges.Add(i, j)
			}
		}
	}

	log.GetLoggerWithName("dependency").Debug("estimated dependency structure",
		log.OperationKey, "estimate_edges",
		log.PolicyKey, policy.String(),
		log.FunctionsKey, m,
		log.EdgesKey, edges.Len(),
	)

	return edges, stats, nil
}

func validateEstimateInputs(L mat.Matrix, Y []int, k int, threshold float64, policy Policy) error {
	if L == nil {
		return errors.NewValidationError("L", "label matrix is required", nil)
	}
	n, m := L.Dims()
	if m < 2 {
		return errors.NewValidationError("L", "label matrix must have at least 2 columns", m)
	}
	if k <= 1 {
		return errors.NewValidationError("k", "cardinality must be at least 2", k)
	}
	// PolicyEmpty accepts any threshold: it never consults it.
	if policy != PolicyEmpty && (threshold < 0 || threshold >= 1) {
		return errors.NewValidationError("threshold", "must be in [0, 1)", threshold)
	}

	for r := 0; r < n; r++ {
		for c := 0; c < m; c++ {
			v := L.At(r, c)
			if v != math.Trunc(v) || (v != Abstain && (v < 0 || v >= float64(k))) {
				return errors.NewValidationError("L", "votes must be the abstain sentinel or a class index below the cardinality", v)
			}
		}
	}

	if policy.RequiresGold() && Y == nil {
		return errors.NewValidationError("Y", "gold labels are required for this policy", policy.String())
	}
	if Y != nil {
		if len(Y) != n {
			return errors.NewDimensionError("EstimateEdges", n, len(Y), 0)
		}
		for _, y := range Y {
			if y < 0 || y >= k {
				return errors.NewValidationError("Y", "gold labels must be class indices below the cardinality", y)
			}
		}
	}
	return nil
}

// covoted returns the votes of columns i and j restricted to rows where
// neither abstains. Abstention means "no vote": the row contributes nothing
// to the pair's statistic.
func covoted(L mat.Matrix, i, j int) (vi, vj []float64) {
	n, _ := L.Dims()
	for r := 0; r < n; r++ {
		a, b := L.At(r, i), L.At(r, j)
		if a == Abstain || b == Abstain {
			continue
		}
		vi = append(vi, a)
		vj = append(vj, b)
	}
	return vi, vj
}

// covarianceStat is the largest magnitude, over classes, of the sample
// covariance between the two columns' per-class vote indicators on
// co-voted rows.
func covarianceStat(L mat.Matrix, i, j, k int) float64 {
	vi, vj := covoted(L, i, j)
	return indicatorCovariance(vi, vj, k)
}

// goldCovarianceStat computes the indicator covariance separately within
// each gold class and takes the maximum. Conditioning on the gold label
// removes the correlation that flows through the true label, leaving only
// genuine inter-function dependence.
func goldCovarianceStat(L mat.Matrix, Y []int, i, j, k int) float64 {
	n, _ := L.Dims()
	best := 0.0
	for y := 0; y < k; y++ {
		var vi, vj []float64
		for r := 0; r < n; r++ {
			if Y[r] != y {
				continue
			}
			a, b := L.At(r, i), L.At(r, j)
			if a == Abstain || b == Abstain {
				continue
			}
			vi = append(vi, a)
			vj = append(vj, b)
		}
		if s := indicatorCovariance(vi, vj, k); s > best {
			best = s
		}
	}
	return best
}

func indicatorCovariance(vi, vj []float64, k int) float64 {
	if len(vi) < 2 {
		return 0
	}
	x := make([]float64, len(vi))
	y := make([]float64, len(vj))
	best := 0.0
	for c := 0; c < k; c++ {
		for r := range vi {
			x[r], y[r] = 0, 0
			if vi[r] == float64(c) {
				x[r] = 1
			}
			if vj[r] == float64(c) {
				y[r] = 1
			}
		}
		if s := math.Abs(stat.Covariance(x, y, nil)); s > best {
			best = s
		}
	}
	return best
}

// entropyStat is an information coefficient in [0, 1]:
// 1 - H(Lj | Li)/log(k), symmetrized by taking the larger direction.
// It is 1 when one column determines the other on co-voted rows and 0 when
// the conditional is uniform.
func entropyStat(L mat.Matrix, i, j, k int) float64 {
	vi, vj := covoted(L, i, j)
	if len(vi) == 0 {
		return 0
	}

	counts := make([][]float64, k)
	for c := range counts {
		counts[c] = make([]float64, k)
	}
	for r := range vi {
		counts[int(vi[r])][int(vj[r])]++
	}

	forward := 1 - conditionalEntropy(counts, float64(len(vi)))/math.Log(float64(k))
	backward := 1 - conditionalEntropy(transpose(counts), float64(len(vi)))/math.Log(float64(k))

	return errors.ClipValue(math.Max(forward, backward), 0, 1)
}

// conditionalEntropy computes H(col | row) from a contingency table of
// counts with the given total.
func conditionalEntropy(counts [][]float64, total float64) float64 {
	h := 0.0
	for _, row := range counts {
		rowSum := 0.0
		for _, c := range row {
			rowSum += c
		}
		if rowSum == 0 {
			continue
		}
		for _, c := range row {
			if c == 0 {
				continue
			}
			p := c / rowSum
			h -= (rowSum / total) * p * math.Log(p)
		}
	}
	return h
}

func transpose(counts [][]float64) [][]float64 {
	k := len(counts)
	out := make([][]float64, k)
	for i := range out {
		out[i] = make([]float64, k)
		for j := range out[i] {
			out[i][j] = counts[j][i]
		}
	}
	return out
}
