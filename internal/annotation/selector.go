package annotation

import "organ-annotator/internal/domain"

// SelectorFromBox wraps a detection's bounding box in a fragment selector,
// keeping the coordinates exactly as supplied next to the dimensions of the
// image they refer to. Boxes that fall outside the image bounds pass through
// unchanged; downstream consumers receive the model's raw values.
func SelectorFromBox(box []float64, imageWidth, imageHeight int) domain.FragmentSelector {
	return domain.FragmentSelector{
		Type:        domain.SelectorType,
		ConformsTo:  domain.SelectorConformsTo,
		BoundingBox: box,
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
	}
}

// FullImageSelector returns a selector spanning the whole frame, used for
// comment annotations that apply to the entire image.
func FullImageSelector(imageWidth, imageHeight int) domain.FragmentSelector {
	return domain.FragmentSelector{
		Type:        domain.SelectorType,
		ConformsTo:  domain.SelectorConformsTo,
		BoundingBox: []float64{0, 0, float64(imageWidth), float64(imageHeight)},
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
	}
}
