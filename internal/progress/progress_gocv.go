//go:build gocv

package progress

import (
	"fmt"

	"github.com/1broseidon/chargehold/internal/config"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"gocv.io/x/gocv"
)

// CVEstimator runs the measurement through OpenCV: crop, gray conversion,
// binary threshold and MinMaxLoc. It shares the region guards of Estimator.
type CVEstimator struct {
	*Estimator
}

// NewCV creates an OpenCV-backed estimator.
func NewCV(cal config.Calibration, cutoff int) *CVEstimator {
	return &CVEstimator{Estimator: New(cal, cutoff)}
}

// Estimate implements the same contract as Estimator.Estimate.
func (e *CVEstimator) Estimate(frame *xgraphics.Image) (int, error) {
	bounds := frame.Bounds()
	roi, err := e.Region(bounds.Dx(), bounds.Dy())
	if err != nil {
		return 0, err
	}
	if frame.Stride != 4*bounds.Dx() {
		return 0, fmt.Errorf("frame stride %d does not match width %d", frame.Stride, bounds.Dx())
	}

	mat, err := gocv.NewMatFromBytes(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC4, frame.Pix)
	if err != nil {
		return 0, fmt.Errorf("failed to wrap frame: %w", err)
	}
	defer mat.Close()

	crop := mat.Region(roi)
	defer crop.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(crop, &gray, gocv.ColorBGRAToGray)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, float32(e.cutoff), 255, gocv.ThresholdBinary)

	_, _, _, maxLoc := gocv.MinMaxLoc(binary)
	return 100 * maxLoc.X / roi.Dx(), nil
}
