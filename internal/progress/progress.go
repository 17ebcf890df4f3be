// Package progress estimates how far the skill charge bar has filled from
// a captured window frame.
package progress

import (
	"errors"
	"fmt"
	"image"

	"github.com/1broseidon/chargehold/internal/config"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

// ErrDegenerateROI means the calibration does not yield a usable region for
// the frame size, so the bar cannot be measured.
var ErrDegenerateROI = errors.New("degenerate progress region")

// Edges are the untruncated region edges computed from the calibration.
type Edges struct {
	X1, Y1, X2, Y2 float64
}

// Rect truncates the edges toward zero. The result is not canonicalized:
// Max may lie before Min for a degenerate fit.
func (e Edges) Rect() image.Rectangle {
	return image.Rectangle{
		Min: image.Point{X: int(e.X1), Y: int(e.Y1)},
		Max: image.Point{X: int(e.X2), Y: int(e.Y2)},
	}
}

// Estimator measures the bar fill inside the calibrated region.
type Estimator struct {
	cal    config.Calibration
	cutoff uint8
}

// New creates an estimator. Pixels with luminance strictly above cutoff
// count as lit.
func New(cal config.Calibration, cutoff int) *Estimator {
	return &Estimator{cal: cal, cutoff: uint8(cutoff)}
}

// EdgesFor evaluates the calibration for a frame size.
func (e *Estimator) EdgesFor(width, height int) Edges {
	return Edges{
		X1: e.cal.Left.Eval(width, height),
		Y1: e.cal.Top.Eval(width, height),
		X2: e.cal.Right.Eval(width, height),
		Y2: e.cal.Bottom.Eval(width, height),
	}
}

// Region returns the region of interest for a frame of the given size, or
// ErrDegenerateROI if it is empty, inverted or outside the frame.
func (e *Estimator) Region(width, height int) (image.Rectangle, error) {
	r := e.EdgesFor(width, height).Rect()
	if r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y {
		return r, fmt.Errorf("%w: %v is empty for a %dx%d frame", ErrDegenerateROI, r, width, height)
	}
	if !r.In(image.Rect(0, 0, width, height)) {
		return r, fmt.Errorf("%w: %v lies outside a %dx%d frame", ErrDegenerateROI, r, width, height)
	}
	return r, nil
}

// Estimate returns the fill percentage in [0,100]: the x offset of the first
// lit pixel of the binarized region in row-major order, scaled by the
// region width. A region without lit pixels reads as 0.
func (e *Estimator) Estimate(frame *xgraphics.Image) (int, error) {
	bounds := frame.Bounds()
	roi, err := e.Region(bounds.Dx(), bounds.Dy())
	if err != nil {
		return 0, err
	}
	roi = roi.Add(bounds.Min)

	for y := roi.Min.Y; y < roi.Max.Y; y++ {
		row := frame.Pix[(y-bounds.Min.Y)*frame.Stride:]
		for x := roi.Min.X; x < roi.Max.X; x++ {
			i := (x - bounds.Min.X) * 4
			if Luma(row[i], row[i+1], row[i+2]) > e.cutoff {
				return 100 * (x - roi.Min.X) / roi.Dx(), nil
			}
		}
	}
	return 0, nil
}

// Luma converts a BGR pixel to 8 bit luminance with the BT.601 weights in
// 14 bit fixed point, rounding to nearest.
func Luma(b, g, r uint8) uint8 {
	const (
		wr    = 4899
		wg    = 9617
		wb    = 1868
		shift = 14
	)
	return uint8((uint32(r)*wr + uint32(g)*wg + uint32(b)*wb + 1<<(shift-1)) >> shift)
}
