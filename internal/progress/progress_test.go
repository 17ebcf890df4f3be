package progress

import (
	"errors"
	"image"
	"testing"

	"github.com/1broseidon/chargehold/internal/config"
	"github.com/1broseidon/chargehold/internal/platform"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

func newTestEstimator(t *testing.T) *Estimator {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	return New(cfg.Calibration, cfg.LumaCutoff)
}

func newFrame(width, height int, b, g, r uint8) *xgraphics.Image {
	img := platform.NewFrame(width, height)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = b
		img.Pix[i+1] = g
		img.Pix[i+2] = r
		img.Pix[i+3] = 0xFF
	}
	return img
}

func paintColumn(img *xgraphics.Image, x, y0, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		i := y*img.Stride + x*4
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = v, v, v
	}
}

func TestEdgesFor_1920x1080(t *testing.T) {
	e := newTestEstimator(t)
	edges := e.EdgesFor(1920, 1080)
	want := Edges{
		X1: 911.7834394904459,
		Y1: 857.0234113712374,
		X2: 1044.904458598726,
		Y2: 840.5497237569061,
	}
	if edges != want {
		t.Fatalf("expected %+v, got %+v", want, edges)
	}

	r := edges.Rect()
	if r.Min.X != 911 || r.Min.Y != 857 || r.Max.X != 1044 || r.Max.Y != 840 {
		t.Fatalf("expected truncated corners (911,857)-(1044,840), got %v", r)
	}
}

func TestRegion_DegenerateAt1080(t *testing.T) {
	e := newTestEstimator(t)
	// y2 < y1 at this height: the fit only works for shorter windows.
	_, err := e.Region(1920, 1080)
	if !errors.Is(err, ErrDegenerateROI) {
		t.Fatalf("expected ErrDegenerateROI, got %v", err)
	}
}

func TestRegion_1600x900(t *testing.T) {
	e := newTestEstimator(t)
	r, err := e.Region(1600, 900)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := image.Rect(737, 679, 886, 735)
	if r != want {
		t.Fatalf("expected %v, got %v", want, r)
	}
}

func TestRegion_OutsideFrame(t *testing.T) {
	e := newTestEstimator(t)
	// At 300x300 the bottom edge falls below the frame.
	_, err := e.Region(300, 300)
	if !errors.Is(err, ErrDegenerateROI) {
		t.Fatalf("expected ErrDegenerateROI, got %v", err)
	}
}

func TestEstimate_DarkFrameIsZero(t *testing.T) {
	e := newTestEstimator(t)
	frame := newFrame(1600, 900, 10, 10, 10)
	got, err := e.Estimate(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestEstimate_StripeFraction(t *testing.T) {
	e := newTestEstimator(t)
	roi := image.Rect(737, 679, 886, 735)
	width := roi.Dx()

	for _, offset := range []int{0, 1, 37, 74, 100, 148} {
		frame := newFrame(1600, 900, 20, 20, 20)
		paintColumn(frame, roi.Min.X+offset, roi.Min.Y, roi.Max.Y, 255)

		got, err := e.Estimate(frame)
		if err != nil {
			t.Fatalf("offset %d: unexpected error: %v", offset, err)
		}
		want := 100 * offset / width
		if got != want {
			t.Fatalf("offset %d: expected %d, got %d", offset, want, got)
		}
		if got < 0 || got > 100 {
			t.Fatalf("offset %d: %d out of range", offset, got)
		}
	}
}

func TestEstimate_IgnoresPixelsOutsideRegion(t *testing.T) {
	e := newTestEstimator(t)
	frame := newFrame(1600, 900, 0, 0, 0)
	// Bright column just left of the region and a bright row just above it.
	paintColumn(frame, 736, 0, 900, 255)
	for x := 0; x < 1600; x++ {
		i := 678*frame.Stride + x*4
		frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2] = 255, 255, 255
	}
	got, err := e.Estimate(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestEstimate_FirstLitPixelInRasterOrder(t *testing.T) {
	e := newTestEstimator(t)
	frame := newFrame(1600, 900, 0, 0, 0)
	// A lower row lit further left must lose to an upper row lit further right.
	paintColumn(frame, 737+100, 680, 681, 255)
	paintColumn(frame, 737+10, 700, 701, 255)

	got, err := e.Estimate(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 100 * 100 / 149; got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestEstimate_CutoffIsStrict(t *testing.T) {
	e := newTestEstimator(t)
	frame := newFrame(1600, 900, 0, 0, 0)
	paintColumn(frame, 737+50, 679, 735, 180)

	got, err := e.Estimate(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected luminance 180 to stay dark, got %d", got)
	}

	paintColumn(frame, 737+50, 679, 735, 181)
	got, err = e.Estimate(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 100 * 50 / 149; got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	e := newTestEstimator(t)
	frame := newFrame(1600, 900, 30, 60, 90)
	paintColumn(frame, 800, 679, 735, 240)

	first, err := e.Estimate(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := e.Estimate(frame)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != first {
			t.Fatalf("expected %d on every run, got %d", first, got)
		}
	}
}

func TestEstimate_DegenerateFrame(t *testing.T) {
	e := newTestEstimator(t)
	_, err := e.Estimate(newFrame(1920, 1080, 0, 0, 0))
	if !errors.Is(err, ErrDegenerateROI) {
		t.Fatalf("expected ErrDegenerateROI, got %v", err)
	}
}

func TestLuma(t *testing.T) {
	tests := []struct {
		b, g, r uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{180, 180, 180, 180},
		{0, 0, 255, 76},
		{0, 255, 0, 150},
		{255, 0, 0, 29},
	}
	for _, tt := range tests {
		if got := Luma(tt.b, tt.g, tt.r); got != tt.want {
			t.Fatalf("Luma(%d,%d,%d): expected %d, got %d", tt.b, tt.g, tt.r, tt.want, got)
		}
	}
}
