//go:build linux

package platform

import (
	"errors"
	"testing"
)

func TestNewLinuxBackendFromDisplay_NoDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")

	b, err := NewLinuxBackendFromDisplay()
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if b != nil {
		t.Fatalf("expected no backend, got %+v", b)
	}
}

func TestLinuxBackend_NilConnectionUnavailable(t *testing.T) {
	b := NewLinuxBackend(nil)

	if _, err := b.FindWindow("Game"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("FindWindow: expected ErrUnavailable, got %v", err)
	}
	if _, _, err := b.WindowSize(1); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("WindowSize: expected ErrUnavailable, got %v", err)
	}
	if err := b.Capture(1, NewFrame(2, 2)); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Capture: expected ErrUnavailable, got %v", err)
	}
	if err := b.SetKey("2", true); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("SetKey: expected ErrUnavailable, got %v", err)
	}
	if _, err := b.IsPressed("s"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("IsPressed: expected ErrUnavailable, got %v", err)
	}
	b.Disconnect()
}
