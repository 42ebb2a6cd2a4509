// Package vrd carries the visual-relationship classification task the
// label model is trained on: relation examples between a subject and an
// object bounding box, the heuristic labeling functions that vote on them,
// and the construction of the label matrix from those votes.
//
// The geometry here is deliberately shallow. Bounding boxes exist only to
// feed heuristic signals (areas, centers, vertical gaps); there is no image
// processing.
package vrd

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Relation classes.
const (
	Ride  = 0
	Carry = 1
	Other = 2

	// NumClasses is the task cardinality.
	NumClasses = 3

	// Abstain is a labeling function's explicit non-vote.
	Abstain = -1

	// Unlabeled marks an example without a gold label (the train split).
	Unlabeled = -1
)

// BBox is an axis-aligned bounding box in image coordinates, stored in the
// dataset's (ymin, ymax, xmin, xmax) order. The y axis grows downward, so a
// smaller YMin is higher in the image.
type BBox struct {
	YMin, YMax, XMin, XMax float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.YMax - b.YMin
}

// Area returns the area of the box.
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the box center as (x, y).
func (b BBox) Center() (x, y float64) {
	return (b.XMin + b.XMax) / 2, (b.YMin + b.YMax) / 2
}

// Contains reports whether box o lies entirely inside b.
func (b BBox) Contains(o BBox) bool {
	return o.YMin >= b.YMin && o.YMax <= b.YMax &&
		o.XMin >= b.XMin && o.XMax <= b.XMax
}

// CenterDistance returns the Euclidean distance between the centers of two
// boxes.
func CenterDistance(a, b BBox) float64 {
	ax, ay := a.Center()
	bx, by := b.Center()
	return math.Hypot(ax-bx, ay-by)
}

// VerticalGap returns how far box a's bottom edge sits above box b's top
// edge. Positive means the boxes are vertically disjoint with a on top.
func VerticalGap(a, b BBox) float64 {
	return b.YMin - a.YMax
}

// Example is one subject-object relation candidate.
type Example struct {
	// Label is the gold class index, or Unlabeled on the train split.
	Label int

	SubjectBBox     BBox
	SubjectCategory string

	ObjectBBox     BBox
	ObjectCategory string

	// Source identifies the image the candidate was extracted from.
	Source string
}

// LabelingFunction maps one example to a class vote or Abstain.
type LabelingFunction func(Example) int

// ApplyLFs applies the ordered labeling functions to every example and
// returns the label matrix: one row per example, one column per function.
func ApplyLFs(lfs []LabelingFunction, examples []Example) *mat.Dense {
	L := mat.NewDense(len(examples), len(lfs), nil)
	for r, ex := range examples {
		for c, lf := range lfs {
			L.Set(r, c, float64(lf(ex)))
		}
	}
	return L
}

// GoldLabels extracts the gold label of every example, aligned by row with
// the matrix ApplyLFs builds.
func GoldLabels(examples []Example) []int {
	Y := make([]int, len(examples))
	for i, ex := range examples {
		Y[i] = ex.Label
	}
	return Y
}
