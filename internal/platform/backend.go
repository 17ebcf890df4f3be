package platform

import (
	"errors"

	"github.com/BurntSushi/xgbutil/xgraphics"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

var (
	// ErrUnavailable marks failures of the display environment: no
	// connection, missing window, failed capture or key synthesis.
	ErrUnavailable = errors.New("environment unavailable")

	// ErrWindowNotFound means no window in the tree carries the title.
	ErrWindowNotFound = errors.New("window not found")
)

// WindowTree exposes the parts of a window hierarchy needed to search it.
type WindowTree interface {
	// HasTitle reports whether the window advertises exactly this title.
	HasTitle(id WindowID, title string) bool
	Children(id WindowID) ([]WindowID, error)
}

// Backend abstracts the window-system operations of the hold/release cycle.
type Backend interface {
	FindWindow(title string) (WindowID, error)
	WindowSize(id WindowID) (width, height int, err error)
	Capture(id WindowID, dst *xgraphics.Image) error
	SetKey(key string, down bool) error
	IsPressed(key string) (bool, error)
}
