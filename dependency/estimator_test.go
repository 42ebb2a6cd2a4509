package dependency

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/sfpugh/snorkel-tutorials-share/pkg/errors"
)

const a = Abstain // shorthand for test fixtures

// agreeingPairMatrix has columns 0 and 1 agreeing on every row where both
// vote, while column 2 votes independently of them.
func agreeingPairMatrix() *mat.Dense {
	return mat.NewDense(8, 3, []float64{
		0, 0, 2,
		1, 1, 0,
		0, 0, 1,
		2, 2, 0,
		1, 1, 2,
		0, 0, 0,
		2, 2, 1,
		1, 1, a,
	})
}

func TestEstimateEdgesEmptyPolicy(t *testing.T) {
	L := agreeingPairMatrix()

	// Empty policy ignores Y and threshold entirely, including thresholds
	// outside the other policies' domain.
	for _, threshold := range []float64{-5, 0, 0.5, 100} {
		edges, err := EstimateEdges(L, nil, 3, threshold, PolicyEmpty)
		if err != nil {
			t.Fatalf("EstimateEdges() error = %v", err)
		}
		if edges.Len() != 0 {
			t.Errorf("empty policy returned %d edges at threshold %v, want 0", edges.Len(), threshold)
		}
	}
}

func TestEstimateEdgesCovarianceFlagsAgreeingPair(t *testing.T) {
	L := agreeingPairMatrix()

	edges, err := EstimateEdges(L, nil, 3, 0.1, PolicyCovariance)
	if err != nil {
		t.Fatalf("EstimateEdges() error = %v", err)
	}
	if !edges.Contains(0, 1) {
		t.Error("always-agreeing pair (0,1) must be flagged as dependent")
	}
}

func TestEstimateEdgesNoSelfOrDuplicatePairs(t *testing.T) {
	L := agreeingPairMatrix()

	edges, err := EstimateEdges(L, nil, 3, 0.0, PolicyCovariance)
	if err != nil {
		t.Fatalf("EstimateEdges() error = %v", err)
	}
	seen := map[Edge]bool{}
	for _, e := range edges.Slice() {
		if e.I == e.J {
			t.Errorf("self-edge returned: %v", e)
		}
		if e.I > e.J {
			t.Errorf("edge not in canonical form: %v", e)
		}
		if seen[e] {
			t.Errorf("duplicate edge returned: %v", e)
		}
		seen[e] = true
	}
}

func TestEstimateEdgesThresholdMonotonicity(t *testing.T) {
	L := agreeingPairMatrix()

	prev := -1
	for _, threshold := range []float64{0, 0.05, 0.1, 0.2, 0.5, 0.9} {
		edges, err := EstimateEdges(L, nil, 3, threshold, PolicyCovariance)
		if err != nil {
			t.Fatalf("EstimateEdges(threshold=%v) error = %v", threshold, err)
		}
		if prev >= 0 && edges.Len() > prev {
			t.Errorf("edge count rose from %d to %d as threshold increased to %v", prev, edges.Len(), threshold)
		}
		prev = edges.Len()
	}
}

func TestEstimateEdgesDeterminism(t *testing.T) {
	L := agreeingPairMatrix()

	first, stats1, err := EstimateEdgesWithStats(L, nil, 3, 0.05, PolicyCovariance)
	if err != nil {
		t.Fatalf("EstimateEdgesWithStats() error = %v", err)
	}
	second, stats2, err := EstimateEdgesWithStats(L, nil, 3, 0.05, PolicyCovariance)
	if err != nil {
		t.Fatalf("EstimateEdgesWithStats() error = %v", err)
	}

	if first.Len() != second.Len() {
		t.Fatalf("edge counts differ across identical calls: %d vs %d", first.Len(), second.Len())
	}
	for i := range stats1 {
		if stats1[i] != stats2[i] {
			t.Errorf("stat %d differs across identical calls: %+v vs %+v", i, stats1[i], stats2[i])
		}
	}
}

func TestEstimateEdgesWithStatsCoversAllPairs(t *testing.T) {
	L := agreeingPairMatrix()

	_, stats, err := EstimateEdgesWithStats(L, nil, 3, 0.1, PolicyCovariance)
	if err != nil {
		t.Fatalf("EstimateEdgesWithStats() error = %v", err)
	}
	if len(stats) != 3 { // C(3, 2)
		t.Fatalf("got %d pair statistics, want 3", len(stats))
	}
	want := []Edge{{0, 1}, {0, 2}, {1, 2}}
	for i, ps := range stats {
		if ps.Edge != want[i] {
			t.Errorf("stats[%d].Edge = %v, want %v", i, ps.Edge, want[i])
		}
	}
}

func TestEstimateEdgesEntropyPolicy(t *testing.T) {
	L := agreeingPairMatrix()

	edges, err := EstimateEdges(L, nil, 3, 0.5, PolicyEntropy)
	if err != nil {
		t.Fatalf("EstimateEdges() error = %v", err)
	}
	// Column 0 determines column 1 exactly, so the information coefficient
	// for the pair is 1.
	if !edges.Contains(0, 1) {
		t.Error("deterministic pair (0,1) must be flagged by the entropy policy")
	}
}

func TestEstimateEdgesGoldPolicy(t *testing.T) {
	// Columns 0 and 1 agree perfectly even within each gold class, so
	// conditioning on the gold label does not explain their correlation.
	L := mat.NewDense(8, 3, []float64{
		0, 0, 1,
		1, 1, 1,
		0, 0, 0,
		1, 1, 2,
		0, 0, 2,
		1, 1, 0,
		0, 0, 1,
		1, 1, 0,
	})
	Y := []int{0, 0, 0, 0, 1, 1, 1, 1}

	edges, err := EstimateEdges(L, Y, 3, 0.1, PolicyGoldCovariance)
	if err != nil {
		t.Fatalf("EstimateEdges() error = %v", err)
	}
	if !edges.Contains(0, 1) {
		t.Error("pair correlated within gold classes must be flagged")
	}
}

func TestEstimateEdgesAbstentionsAreNotVotes(t *testing.T) {
	// Columns 0 and 1 abstain on complementary rows: they never co-vote,
	// so no statistic can link them.
	L := mat.NewDense(6, 2, []float64{
		0, a,
		a, 0,
		1, a,
		a, 1,
		2, a,
		a, 2,
	})

	edges, err := EstimateEdges(L, nil, 3, 0.0, PolicyCovariance)
	if err != nil {
		t.Fatalf("EstimateEdges() error = %v", err)
	}
	if edges.Contains(0, 1) {
		t.Error("columns that never co-vote must not be linked")
	}
}

func TestEstimateEdgesValidation(t *testing.T) {
	valid := agreeingPairMatrix()

	tests := []struct {
		name      string
		L         mat.Matrix
		Y         []int
		k         int
		threshold float64
		policy    Policy
	}{
		{name: "nil matrix", L: nil, k: 3, threshold: 0.1, policy: PolicyCovariance},
		{name: "single column", L: mat.NewDense(4, 1, []float64{0, 1, 2, a}), k: 3, threshold: 0.1, policy: PolicyCovariance},
		{name: "cardinality too small", L: valid, k: 1, threshold: 0.1, policy: PolicyCovariance},
		{name: "negative threshold", L: valid, k: 3, threshold: -0.1, policy: PolicyCovariance},
		{name: "threshold at one", L: valid, k: 3, threshold: 1.0, policy: PolicyCovariance},
		{name: "gold policy without gold labels", L: valid, Y: nil, k: 3, threshold: 0.1, policy: PolicyGoldCovariance},
		{name: "vote above cardinality", L: mat.NewDense(2, 2, []float64{0, 3, 1, 2}), k: 3, threshold: 0.1, policy: PolicyCovariance},
		{name: "non-integer vote", L: mat.NewDense(2, 2, []float64{0, 0.5, 1, 2}), k: 3, threshold: 0.1, policy: PolicyCovariance},
		{name: "gold label out of range", L: valid, Y: []int{0, 1, 2, 3, 0, 1, 2, 0}, k: 3, threshold: 0.1, policy: PolicyGoldCovariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateEdges(tt.L, tt.Y, tt.k, tt.threshold, tt.policy)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var valErr *errors.ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("error should be a *ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestEstimateEdgesGoldLengthMismatch(t *testing.T) {
	L := agreeingPairMatrix()
	Y := []int{0, 1} // matrix has 8 rows

	_, err := EstimateEdges(L, Y, 3, 0.1, PolicyGoldCovariance)
	if err == nil {
		t.Fatal("expected a dimension error")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("error should be a *DimensionError, got %T: %v", err, err)
	}
	if dimErr.Expected != 8 || dimErr.Got != 2 {
		t.Errorf("unexpected dimensions in error: %+v", dimErr)
	}
}
