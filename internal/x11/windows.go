package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// WindowTitles returns the titles a window advertises: _NET_WM_NAME first,
// then the legacy WM_NAME. Either may be empty or missing.
func (c *Connection) WindowTitles(windowID xproto.Window) []string {
	var titles []string
	if name, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && name != "" {
		titles = append(titles, name)
	}
	if name, err := icccm.WmNameGet(c.XUtil, windowID); err == nil && name != "" {
		titles = append(titles, name)
	}
	return titles
}

// Children returns the direct children of a window in stacking order.
func (c *Connection) Children(windowID xproto.Window) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query tree of window %d: %w", windowID, err)
	}
	return tree.Children, nil
}

// WindowSize returns the inner width and height of a window.
func (c *Connection) WindowSize(windowID xproto.Window) (width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get geometry of window %d: %w", windowID, err)
	}
	return int(geom.Width), int(geom.Height), nil
}
