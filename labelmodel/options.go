package labelmodel

import (
	"github.com/sfpugh/snorkel-tutorials-share/pkg/log"
)

// Option is a functional option for LabelModel.
type Option func(*LabelModel)

// WithSeed sets the random seed for parameter initialization. Two fits with
// the same seed, data and hyperparameters produce identical parameters.
func WithSeed(seed int64) Option {
	return func(lm *LabelModel) {
		lm.seed = seed
	}
}

// WithLearningRate sets the gradient-descent step size. Must be positive.
func WithLearningRate(lr float64) Option {
	return func(lm *LabelModel) {
		lm.learningRate = lr
	}
}

// WithNEpochs sets the number of optimization steps. Fit runs exactly this
// many epochs; there is no convergence-based early stop.
func WithNEpochs(n int) Option {
	return func(lm *LabelModel) {
		lm.nEpochs = n
	}
}

// WithLogFrequency sets how often (in epochs) fit progress is logged.
// Zero or negative disables per-epoch logging. Logging never affects the
// fitted parameters.
func WithLogFrequency(every int) Option {
	return func(lm *LabelModel) {
		lm.logFrequency = every
	}
}

// WithClassBalance sets the prior over true classes. Must have one entry
// per class, all positive, summing to 1. The default is uniform.
func WithClassBalance(balance []float64) Option {
	return func(lm *LabelModel) {
		lm.balance = append([]float64(nil), balance...)
	}
}

// WithLogger sets the logger used for fit progress.
func WithLogger(logger log.Logger) Option {
	return func(lm *LabelModel) {
		lm.logger = logger
	}
}
