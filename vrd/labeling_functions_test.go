package vrd

import (
	"testing"
)

// personOnHorse is a canonical RIDE candidate: overlapping boxes, person
// above a rideable object.
func personOnHorse() Example {
	return Example{
		Label:           Ride,
		SubjectBBox:     BBox{YMin: 0, YMax: 200, XMin: 0, XMax: 100},
		SubjectCategory: "person",
		ObjectBBox:      BBox{YMin: 150, YMax: 400, XMin: 0, XMax: 120},
		ObjectCategory:  "horse",
		Source:          "img-001",
	}
}

// personWithBag is a canonical CARRY candidate: a small object held inside
// the person's box.
func personWithBag() Example {
	return Example{
		Label:           Carry,
		SubjectBBox:     BBox{YMin: 0, YMax: 300, XMin: 0, XMax: 100},
		SubjectCategory: "person",
		ObjectBBox:      BBox{YMin: 150, YMax: 230, XMin: 80, XMax: 130},
		ObjectCategory:  "bag",
		Source:          "img-002",
	}
}

// tableAndLamp is a canonical OTHER candidate: no person, distant boxes.
func tableAndLamp() Example {
	return Example{
		Label:           Other,
		SubjectBBox:     BBox{YMin: 500, YMax: 600, XMin: 400, XMax: 500},
		SubjectCategory: "table",
		ObjectBBox:      BBox{YMin: 0, YMax: 80, XMin: 0, XMax: 60},
		ObjectCategory:  "lamp",
		Source:          "img-003",
	}
}

func TestLabelingFunctions(t *testing.T) {
	ride := personOnHorse()
	carry := personWithBag()
	other := tableAndLamp()

	tests := []struct {
		name string
		lf   LabelingFunction
		ex   Example
		want int
	}{
		{name: "ride object fires on person+horse", lf: LFRideObject, ex: ride, want: Ride},
		{name: "ride object abstains on bag", lf: LFRideObject, ex: carry, want: Abstain},
		{name: "carry object fires on person+bag", lf: LFCarryObject, ex: carry, want: Carry},
		{name: "carry object abstains on horse", lf: LFCarryObject, ex: ride, want: Abstain},
		{name: "carry subject abstains without person object", lf: LFCarrySubject, ex: ride, want: Abstain},
		{name: "not person fires without people", lf: LFNotPerson, ex: other, want: Other},
		{name: "not person abstains with a person subject", lf: LFNotPerson, ex: ride, want: Abstain},
		{name: "ydist fires on vertically distant boxes", lf: LFYDist, ex: other, want: Other},
		{name: "ydist abstains on overlapping boxes", lf: LFYDist, ex: ride, want: Abstain},
		{name: "dist fires on distant centers", lf: LFDist, ex: other, want: Other},
		{name: "dist abstains on close centers", lf: LFDist, ex: carry, want: Abstain},
		{name: "area fires on a small carried object", lf: LFArea, ex: carry, want: Carry},
		{name: "area abstains on a large object", lf: LFArea, ex: ride, want: Abstain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lf(tt.ex); got != tt.want {
				t.Errorf("vote = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLFCarrySubject(t *testing.T) {
	ex := Example{
		SubjectBBox:     BBox{YMin: 100, YMax: 200, XMin: 0, XMax: 60},
		SubjectCategory: "dog",
		ObjectBBox:      BBox{YMin: 0, YMax: 300, XMin: 0, XMax: 120},
		ObjectCategory:  "person",
	}
	if got := LFCarrySubject(ex); got != Carry {
		t.Errorf("vote = %d, want %d", got, Carry)
	}

	// A dog outside the person's box is not being carried.
	ex.SubjectBBox = BBox{YMin: 100, YMax: 200, XMin: 200, XMax: 260}
	if got := LFCarrySubject(ex); got != Abstain {
		t.Errorf("vote = %d, want abstain", got)
	}
}

func TestBBoxGeometry(t *testing.T) {
	b := BBox{YMin: 10, YMax: 30, XMin: 0, XMax: 40}

	if got := b.Width(); got != 40 {
		t.Errorf("Width() = %v, want 40", got)
	}
	if got := b.Height(); got != 20 {
		t.Errorf("Height() = %v, want 20", got)
	}
	if got := b.Area(); got != 800 {
		t.Errorf("Area() = %v, want 800", got)
	}
	x, y := b.Center()
	if x != 20 || y != 20 {
		t.Errorf("Center() = (%v, %v), want (20, 20)", x, y)
	}

	inner := BBox{YMin: 15, YMax: 25, XMin: 10, XMax: 30}
	if !b.Contains(inner) {
		t.Error("Contains() = false for an enclosed box")
	}
	if b.Contains(BBox{YMin: 15, YMax: 35, XMin: 10, XMax: 30}) {
		t.Error("Contains() = true for a box crossing the bottom edge")
	}

	top := BBox{YMin: 0, YMax: 50, XMin: 0, XMax: 10}
	bottom := BBox{YMin: 120, YMax: 200, XMin: 0, XMax: 10}
	if got := VerticalGap(top, bottom); got != 70 {
		t.Errorf("VerticalGap() = %v, want 70", got)
	}
	if got := VerticalGap(bottom, top); got != -200 {
		t.Errorf("VerticalGap() reversed = %v, want -200", got)
	}
}

func TestApplyLFs(t *testing.T) {
	examples := []Example{personOnHorse(), personWithBag(), tableAndLamp()}
	L := ApplyLFs(DefaultLFs(), examples)

	rows, cols := L.Dims()
	if rows != 3 || cols != 7 {
		t.Fatalf("matrix is %dx%d, want 3x7", rows, cols)
	}

	// Row 0 (ride): only the ride-object heuristic votes.
	if got := L.At(0, 0); got != float64(Ride) {
		t.Errorf("L[0,0] = %v, want %v", got, Ride)
	}
	for c := 1; c < cols; c++ {
		if got := L.At(0, c); got != float64(Abstain) {
			t.Errorf("L[0,%d] = %v, want abstain", c, got)
		}
	}

	// Row 1 (carry): carry-object and area vote CARRY.
	if got := L.At(1, 1); got != float64(Carry) {
		t.Errorf("L[1,1] = %v, want %v", got, Carry)
	}
	if got := L.At(1, 6); got != float64(Carry) {
		t.Errorf("L[1,6] = %v, want %v", got, Carry)
	}

	// Row 2 (other): the three no-person/distance heuristics vote OTHER.
	for _, c := range []int{3, 4, 5} {
		if got := L.At(2, c); got != float64(Other) {
			t.Errorf("L[2,%d] = %v, want %v", c, got, Other)
		}
	}
}

func TestGoldLabels(t *testing.T) {
	examples := []Example{personOnHorse(), personWithBag(), tableAndLamp()}
	Y := GoldLabels(examples)

	want := []int{Ride, Carry, Other}
	for i := range want {
		if Y[i] != want[i] {
			t.Errorf("Y[%d] = %d, want %d", i, Y[i], want[i])
		}
	}
}
