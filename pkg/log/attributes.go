package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "LabelModel".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict_proba", "score", "estimate_edges".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation,
	// e.g. "labelmodel", "dependency", "metrics".
	ComponentKey = "ml.component"
)

// Label-matrix shape and structure.
const (
	// SamplesKey is the number of examples (rows of the label matrix).
	SamplesKey = "data.samples"

	// FunctionsKey is the number of labeling functions (columns).
	FunctionsKey = "data.functions"

	// CardinalityKey is the number of target classes.
	CardinalityKey = "data.cardinality"

	// EdgesKey is the number of dependency edges in use.
	EdgesKey = "deps.edges"

	// PolicyKey is the dependency-estimation policy name.
	PolicyKey = "deps.policy"
)

// Optimization progress.
const (
	// EpochKey is the current optimization epoch.
	EpochKey = "training.epoch"

	// LossKey is the current moment-matching loss value.
	LossKey = "metrics.loss"

	// SeedKey is the random seed used for parameter initialization.
	SeedKey = "training.seed"

	// LearningRateKey is the gradient-descent step size.
	LearningRateKey = "training.learning_rate"
)

// Error context.
const (
	// ErrAttrKey is the attribute key under which errors are attached.
	ErrAttrKey = "error"
)
