package annotation

import (
	"testing"

	"organ-annotator/internal/domain"
)

func TestSelectorFromBox(t *testing.T) {
	box := []float64{120.5, 88, 640.25, 912}
	sel := SelectorFromBox(box, 2000, 3000)

	if sel.Type != domain.SelectorType {
		t.Fatalf("Type = %q, want %q", sel.Type, domain.SelectorType)
	}
	if sel.ConformsTo != domain.SelectorConformsTo {
		t.Fatalf("ConformsTo = %q, want %q", sel.ConformsTo, domain.SelectorConformsTo)
	}
	if len(sel.BoundingBox) != len(box) {
		t.Fatalf("len(BoundingBox) = %d, want %d", len(sel.BoundingBox), len(box))
	}
	for i, v := range box {
		if sel.BoundingBox[i] != v {
			t.Fatalf("BoundingBox[%d] = %v, want %v", i, sel.BoundingBox[i], v)
		}
	}
	if sel.ImageWidth != 2000 || sel.ImageHeight != 3000 {
		t.Fatalf("dimensions = %dx%d, want 2000x3000", sel.ImageWidth, sel.ImageHeight)
	}
}

func TestSelectorFromBoxKeepsOutOfRangeValues(t *testing.T) {
	box := []float64{-50, -10, 99999, 123456.5}
	sel := SelectorFromBox(box, 100, 100)
	for i, v := range box {
		if sel.BoundingBox[i] != v {
			t.Fatalf("BoundingBox[%d] = %v, want %v", i, sel.BoundingBox[i], v)
		}
	}
}

func TestFullImageSelector(t *testing.T) {
	sel := FullImageSelector(1920, 1080)
	want := []float64{0, 0, 1920, 1080}
	if len(sel.BoundingBox) != 4 {
		t.Fatalf("len(BoundingBox) = %d, want 4", len(sel.BoundingBox))
	}
	for i, v := range want {
		if sel.BoundingBox[i] != v {
			t.Fatalf("BoundingBox[%d] = %v, want %v", i, sel.BoundingBox[i], v)
		}
	}
	if sel.ImageWidth != 1920 || sel.ImageHeight != 1080 {
		t.Fatalf("dimensions = %dx%d, want 1920x1080", sel.ImageWidth, sel.ImageHeight)
	}
}
