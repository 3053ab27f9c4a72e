package snakesvg

import (
	"math"
	"strconv"
)

// Only the first taperSegments segments shrink towards the tail.
const taperSegments = 4

// ShapeDescriptor is the static rect drawn for one segment, centred in its
// cell. Offset applies on both axes.
type ShapeDescriptor struct {
	ID           string
	Size         float64
	CornerRadius float64
	Offset       float64
}

// SegmentID is the element id of segment i ("s0" is the head).
func SegmentID(i int) string {
	return "s" + strconv.Itoa(i)
}

// SegmentProfile sizes segment i of a body of length segments.
//
// The head is 0.9 cells wide and the size eases quadratically down to 0.8
// dots over the first four segments (fewer for a shorter body); from there
// on every segment has the tail size.
func SegmentProfile(i, length int, sizeDot, sizeCell float64) ShapeDescriptor {
	if length <= 0 {
		return ShapeDescriptor{}
	}

	dMin := sizeDot * 0.8
	dMax := sizeCell * 0.9
	iMax := min(taperSegments, length)
	f := 1 - float64(min(i, iMax))/float64(iMax)
	u := f * f
	size := Lerp(u, dMin, dMax)

	return ShapeDescriptor{
		ID:           SegmentID(i),
		Size:         size,
		CornerRadius: round2(math.Min(4.5, 4*size/sizeDot)),
		Offset:       (sizeCell - size) / 2,
	}
}

// Element renders the segment as an SVG rect.
func (s ShapeDescriptor) Element() string {
	pos := formatNumber(s.Offset)
	size := formatNumber(s.Size)
	r := strconv.FormatFloat(s.CornerRadius, 'f', 2, 64)
	return `<rect class="s" id="` + s.ID + `" x="` + pos + `" y="` + pos +
		`" width="` + size + `" height="` + size + `" rx="` + r + `" ry="` + r + `"/>`
}
