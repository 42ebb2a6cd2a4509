// Package model provides lifecycle management shared by the estimators in
// this repository: the Unfitted/Fitted state machine and the interfaces a
// label-model estimator satisfies.
package model

import (
	"sync"

	"github.com/sfpugh/snorkel-tutorials-share/pkg/errors"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
// Estimators hold it by composition rather than embedding.
type StateManager struct {
	fitted bool
	mu     sync.RWMutex

	// Fit-time dimensions of the label matrix.
	nFunctions int
	nSamples   int

	modelName string
}

// NewStateManager creates a StateManager for the named model. The name is
// used in NotFittedError messages.
func NewStateManager(modelName string) *StateManager {
	return &StateManager{modelName: modelName}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset returns the model to the unfitted state, clearing recorded
// dimensions. Fit calls this first so a failed refit never leaves stale
// fitted state behind.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFunctions = 0
	s.nSamples = 0
}

// SetDimensions records the label-matrix shape seen during fitting.
func (s *StateManager) SetDimensions(nFunctions, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFunctions = nFunctions
	s.nSamples = nSamples
}

// GetDimensions returns the label-matrix shape seen during fitting.
func (s *StateManager) GetDimensions() (nFunctions, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFunctions, s.nSamples
}

// RequireFitted returns a NotFittedError naming the calling method if the
// model has not been fitted.
func (s *StateManager) RequireFitted(method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(s.modelName, method)
	}
	return nil
}
