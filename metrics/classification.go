// Package metrics provides the classification metrics consumed by the
// label-model scoring surface: accuracy and F1.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sfpugh/snorkel-tutorials-share/pkg/errors"
)

// Accuracy computes the fraction of predictions equal to the gold labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// F1Score computes the F1 score of one class treated as the positive class.
//
// When the class is never predicted or never occurs, the corresponding
// precision or recall is ill-defined; the convention is 0, reported through
// the warning channel.
func F1Score(yTrue, yPred *mat.VecDense, class int) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("F1Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("F1Score", n, yPred.Len(), 0)
	}

	c := float64(class)
	var tp, fp, fn float64
	for i := 0; i < n; i++ {
		switch {
		case yPred.AtVec(i) == c && yTrue.AtVec(i) == c:
			tp++
		case yPred.AtVec(i) == c:
			fp++
		case yTrue.AtVec(i) == c:
			fn++
		}
	}

	if tp+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted samples for class", 0))
	}
	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no true samples for class", 0))
	}

	precision := errors.SafeDivide(tp, tp+fp)
	recall := errors.SafeDivide(tp, tp+fn)

	// F1 = 2PR / (P + R)
	return errors.SafeDivide(2*precision*recall, precision+recall), nil
}

// MacroF1 computes the unweighted mean of the per-class F1 scores over
// classes 0..k-1.
func MacroF1(yTrue, yPred *mat.VecDense, k int) (float64, error) {
	if k < 2 {
		return 0, errors.NewValidationError("k", "cardinality must be at least 2", k)
	}

	sum := 0.0
	for class := 0; class < k; class++ {
		f1, err := F1Score(yTrue, yPred, class)
		if err != nil {
			return 0, err
		}
		sum += f1
	}
	return sum / float64(k), nil
}
