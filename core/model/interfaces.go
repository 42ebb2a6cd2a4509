package model

import (
	"gonum.org/v1/gonum/mat"
)

// Predictor is the interface for models that produce hard class predictions
// from a label matrix.
type Predictor interface {
	// Predict returns one class index per row of L.
	Predict(L mat.Matrix) ([]int, error)
}

// ProbabilisticPredictor is the interface for models that produce class
// probabilities.
type ProbabilisticPredictor interface {
	// PredictProba returns a row-stochastic (n x cardinality) matrix of
	// P(true label = c | row of L).
	PredictProba(L mat.Matrix) (*mat.Dense, error)
}

// Scorer is the interface for models that evaluate their predictions
// against gold labels under a named metric.
type Scorer interface {
	// Score compares hard predictions on L against Y under the metric
	// ("accuracy", "f1_macro", ...).
	Score(L mat.Matrix, Y []int, metric string) (float64, error)
}

// ProbabilisticClassifier combines the full inference surface of a fitted
// generative label model.
type ProbabilisticClassifier interface {
	Predictor
	ProbabilisticPredictor
	Scorer

	// Cardinality returns the fixed number of target classes.
	Cardinality() int
}
