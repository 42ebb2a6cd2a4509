package vrd

// The hand-written heuristics. Each encodes one weak signal about the
// RIDE/CARRY/OTHER relation; none is reliable alone, and several fire on
// overlapping evidence, which is exactly what the dependency estimator is
// for.

var rideableObjects = map[string]bool{
	"bike":       true,
	"bicycle":    true,
	"motorcycle": true,
	"horse":      true,
	"elephant":   true,
	"skateboard": true,
	"snowboard":  true,
	"surfboard":  true,
}

var carriableObjects = map[string]bool{
	"bag":      true,
	"umbrella": true,
	"phone":    true,
	"bottle":   true,
	"skis":     true,
	"laptop":   true,
}

// LFRideObject votes RIDE when a person relates to a rideable object.
func LFRideObject(ex Example) int {
	if ex.SubjectCategory == "person" && rideableObjects[ex.ObjectCategory] {
		return Ride
	}
	return Abstain
}

// LFCarryObject votes CARRY when a person relates to a typically carried
// object.
func LFCarryObject(ex Example) int {
	if ex.SubjectCategory == "person" && carriableObjects[ex.ObjectCategory] {
		return Carry
	}
	return Abstain
}

// LFCarrySubject votes CARRY when the object is a person holding the
// subject: something carriable whose box sits inside the person's.
func LFCarrySubject(ex Example) int {
	if ex.ObjectCategory != "person" || !ex.ObjectBBox.Contains(ex.SubjectBBox) {
		return Abstain
	}
	switch ex.SubjectCategory {
	case "bag", "child", "dog", "cat":
		return Carry
	}
	return Abstain
}

// LFNotPerson votes OTHER when no person is involved: ride and carry both
// presuppose a person on one side.
func LFNotPerson(ex Example) int {
	if ex.SubjectCategory != "person" && ex.ObjectCategory != "person" {
		return Other
	}
	return Abstain
}

// LFYDist votes OTHER when the boxes are vertically far apart: riders and
// carriers overlap their object vertically.
func LFYDist(ex Example) int {
	if VerticalGap(ex.SubjectBBox, ex.ObjectBBox) > 50 ||
		VerticalGap(ex.ObjectBBox, ex.SubjectBBox) > 50 {
		return Other
	}
	return Abstain
}

// LFDist votes OTHER when the box centers are far apart.
func LFDist(ex Example) int {
	if CenterDistance(ex.SubjectBBox, ex.ObjectBBox) > 250 {
		return Other
	}
	return Abstain
}

// LFArea votes CARRY when the object is small relative to the person
// holding it.
func LFArea(ex Example) int {
	subArea := ex.SubjectBBox.Area()
	if subArea <= 0 {
		return Abstain
	}
	if ex.ObjectBBox.Area()/subArea < 0.25 {
		return Carry
	}
	return Abstain
}

// DefaultLFs returns the seven heuristics in their canonical column order.
func DefaultLFs() []LabelingFunction {
	return []LabelingFunction{
		LFRideObject,
		LFCarryObject,
		LFCarrySubject,
		LFNotPerson,
		LFYDist,
		LFDist,
		LFArea,
	}
}
