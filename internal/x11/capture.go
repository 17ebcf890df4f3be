package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

const allPlanes = 0xFFFFFFFF

// CaptureInto copies the current contents of a window into dst. The image
// is requested at the window origin with the size of dst, whose buffer is
// overwritten in place.
func (c *Connection) CaptureInto(windowID xproto.Window, dst *xgraphics.Image) error {
	bounds := dst.Bounds()
	reply, err := xproto.GetImage(
		c.XUtil.Conn(),
		xproto.ImageFormatZPixmap,
		xproto.Drawable(windowID),
		0, 0,
		uint16(bounds.Dx()), uint16(bounds.Dy()),
		allPlanes,
	).Reply()
	if err != nil {
		return fmt.Errorf("failed to get image of window %d: %w", windowID, err)
	}
	return copyZPixmap(dst, reply.Data, reply.Depth)
}

// copyZPixmap copies raw ZPixmap bytes into dst. Only unpadded 32 bits per
// pixel data (depth 24 or 32) matches the BGRA layout of dst.
func copyZPixmap(dst *xgraphics.Image, data []byte, depth byte) error {
	want := len(dst.Pix)
	if len(data) != want {
		return fmt.Errorf("unexpected image size: got %d bytes at depth %d, want %d", len(data), depth, want)
	}
	copy(dst.Pix, data)
	return nil
}
