//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/chargehold/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var (
	_ Backend    = (*LinuxBackend)(nil)
	_ WindowTree = (*LinuxBackend)(nil)
)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to X11: %v", ErrUnavailable, err)
	}
	return NewLinuxBackend(conn), nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// HasTitle implements WindowTree.
func (b *LinuxBackend) HasTitle(id WindowID, title string) bool {
	for _, t := range b.conn.WindowTitles(xproto.Window(id)) {
		if t == title {
			return true
		}
	}
	return false
}

// Children implements WindowTree.
func (b *LinuxBackend) Children(id WindowID) ([]WindowID, error) {
	children, err := b.conn.Children(xproto.Window(id))
	if err != nil {
		return nil, err
	}
	ids := make([]WindowID, len(children))
	for i, c := range children {
		ids[i] = WindowID(c)
	}
	return ids, nil
}

// FindWindow searches the whole window tree from the root for a title.
func (b *LinuxBackend) FindWindow(title string) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	id, ok := FindWindow(b, WindowID(conn.Root), title)
	if !ok {
		return 0, fmt.Errorf("%w: %w: %q", ErrUnavailable, ErrWindowNotFound, title)
	}
	return id, nil
}

// WindowSize returns the window's width and height.
func (b *LinuxBackend) WindowSize(id WindowID) (int, int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, 0, err
	}
	w, h, err := conn.WindowSize(xproto.Window(id))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return w, h, nil
}

// Capture copies the window contents into dst.
func (b *LinuxBackend) Capture(id WindowID, dst *xgraphics.Image) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if err := conn.CaptureInto(xproto.Window(id), dst); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// SetKey presses or releases a key by keysym name.
func (b *LinuxBackend) SetKey(key string, down bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if err := conn.FakeKey(key, down); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// IsPressed reports whether a key is currently held.
func (b *LinuxBackend) IsPressed(key string) (bool, error) {
	conn, err := b.connection()
	if err != nil {
		return false, err
	}
	pressed, err := conn.KeyPressed(key)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return pressed, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("%w: x11 backend connection is nil", ErrUnavailable)
	}
	return b.conn, nil
}
