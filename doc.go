// Package weaksup provides a weak-supervision pipeline core for the
// visual-relationship classification task: predicting which of three
// relation labels (RIDE, CARRY, OTHER) holds between a subject and an
// object bounding box.
//
// Instead of hand-labeled training data, the pipeline starts from a set of
// heuristic labeling functions whose noisy, possibly-abstaining votes are
// collected into a label matrix. A dependency estimator decides which
// labeling functions are too correlated to treat as independent voters, and
// a generative label model combines the votes, honoring those dependencies,
// into calibrated probabilistic labels.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/sfpugh/snorkel-tutorials-share/dependency"
//	    "github.com/sfpugh/snorkel-tutorials-share/labelmodel"
//	    "github.com/sfpugh/snorkel-tutorials-share/vrd"
//	)
//
//	func main() {
//	    train := loadExamples() // []vrd.Example, labels unknown
//	    L := vrd.ApplyLFs(vrd.DefaultLFs(), train)
//
//	    edges, err := dependency.EstimateEdges(L, nil, vrd.NumClasses, 0.1, dependency.PolicyCovariance)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    model := labelmodel.NewLabelModel(vrd.NumClasses, labelmodel.WithSeed(42))
//	    if err := model.Fit(L, edges); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    probs, err := model.PredictProba(L)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = probs // n x 3 row-stochastic training labels
//	}
//
// # Packages
//
//   - labelmodel: the dependency-aware generative label model
//   - dependency: pairwise dependency-structure estimation over labeling functions
//   - vrd: relation examples, bounding-box heuristics, label-matrix construction
//   - metrics: classification accuracy and F1
//   - core/model: estimator lifecycle management
//   - pkg/errors: structured error types and numerical-stability helpers
//   - pkg/log: structured logging for fit progress
package weaksup
