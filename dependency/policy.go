package dependency

import (
	"github.com/sfpugh/snorkel-tutorials-share/pkg/errors"
)

// Policy selects the pairwise dependency statistic.
type Policy int

const (
	// PolicyEmpty declares no dependencies: the classic conditionally
	// independent voter baseline.
	PolicyEmpty Policy = iota

	// PolicyCovariance flags a pair when the covariance of their per-class
	// vote indicators, over rows where both vote, exceeds the threshold.
	PolicyCovariance

	// PolicyGoldCovariance is PolicyCovariance computed within each gold
	// class (requires gold labels); correlation explained by the true label
	// is thereby removed from the statistic.
	PolicyGoldCovariance

	// PolicyEntropy flags a pair when an information coefficient derived
	// from the conditional entropy of one column given the other exceeds
	// the threshold.
	PolicyEntropy
)

// String returns the policy name used in configuration and logging.
func (p Policy) String() string {
	switch p {
	case PolicyEmpty:
		return "empty"
	case PolicyCovariance:
		return "covariance"
	case PolicyGoldCovariance:
		return "gold-covariance"
	case PolicyEntropy:
		return "entropy"
	default:
		return "unknown"
	}
}

// RequiresGold reports whether the policy needs gold labels.
func (p Policy) RequiresGold() bool {
	return p == PolicyGoldCovariance
}

// ParsePolicy converts a policy name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "empty":
		return PolicyEmpty, nil
	case "covariance":
		return PolicyCovariance, nil
	case "gold-covariance":
		return PolicyGoldCovariance, nil
	case "entropy":
		return PolicyEntropy, nil
	default:
		return 0, errors.NewValidationError("policy", "unknown policy name", name)
	}
}
