package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Keycode resolves a keysym name such as "2", "s" or "Control_L".
func (c *Connection) Keycode(keysym string) (xproto.Keycode, error) {
	codes := keybind.StrToKeycodes(c.XUtil, keysym)
	if len(codes) == 0 {
		return 0, fmt.Errorf("no keycode for keysym %q", keysym)
	}
	return codes[0], nil
}

// FakeKey synthesizes a key press or release through XTEST. The request is
// checked, so it has reached the server when FakeKey returns.
func (c *Connection) FakeKey(keysym string, down bool) error {
	code, err := c.Keycode(keysym)
	if err != nil {
		return err
	}

	eventType := byte(xproto.KeyRelease)
	if down {
		eventType = xproto.KeyPress
	}

	err = xtest.FakeInputChecked(
		c.XUtil.Conn(),
		eventType,
		byte(code),
		0, // CurrentTime
		c.Root,
		0, 0,
		0,
	).Check()
	if err != nil {
		return fmt.Errorf("failed to send %s for %q: %w", eventName(down), keysym, err)
	}
	return nil
}

// KeyPressed reports whether a key is currently held, from the server's
// keymap vector.
func (c *Connection) KeyPressed(keysym string) (bool, error) {
	code, err := c.Keycode(keysym)
	if err != nil {
		return false, err
	}
	reply, err := xproto.QueryKeymap(c.XUtil.Conn()).Reply()
	if err != nil {
		return false, fmt.Errorf("failed to query keymap: %w", err)
	}
	return keymapHas(reply.Keys, code), nil
}

// keymapHas tests the bit for a keycode in a 256 bit keymap vector.
func keymapHas(keys []byte, code xproto.Keycode) bool {
	idx := int(code) >> 3
	if idx >= len(keys) {
		return false
	}
	return keys[idx]&(1<<(code&7)) != 0
}

func eventName(down bool) string {
	if down {
		return "key press"
	}
	return "key release"
}
