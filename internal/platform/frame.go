package platform

import (
	"image"

	"github.com/BurntSushi/xgbutil/xgraphics"
)

// NewFrame allocates a reusable BGRA frame of width*height*4 bytes with no
// row padding, the layout a 24/32 bit ZPixmap capture copies into. The frame
// is not bound to any X connection.
func NewFrame(width, height int) *xgraphics.Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &xgraphics.Image{
		Pix:    make([]uint8, 4*width*height),
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
}
