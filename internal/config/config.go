package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Edge is one side of the region of interest expressed as an affine
// function of the captured frame size.
type Edge struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"`
}

// Eval returns the edge coordinate for a frame of the given size.
func (e Edge) Eval(width, height int) float64 {
	// Explicit conversions keep the products rounded, so no architecture
	// fuses them into FMA and shifts a truncated edge by one pixel.
	return float64(e.Width*float64(width)) + float64(e.Height*float64(height)) + e.Offset
}

// Calibration locates the progress bar inside a frame. It is only valid
// for the UI layout it was fitted against.
type Calibration struct {
	Name   string `yaml:"name"`
	Left   Edge   `yaml:"left"`
	Top    Edge   `yaml:"top"`
	Right  Edge   `yaml:"right"`
	Bottom Edge   `yaml:"bottom"`
}

// Config holds the fixed runtime parameters of the hold/release cycle.
type Config struct {
	WindowTitle    string        `yaml:"window_title"`
	HoldKey        string        `yaml:"hold_key"`
	StopChord      string        `yaml:"stop_chord"`
	Cooldown       time.Duration `yaml:"cooldown"`
	CooldownPoll   time.Duration `yaml:"cooldown_poll"`
	ReportInterval time.Duration `yaml:"report_interval"`
	LumaCutoff     int           `yaml:"luma_cutoff"`
	Calibration    Calibration   `yaml:"calibration"`

	// Threshold is the progress percentage that triggers a release.
	// It is supplied on the command line, never by the defaults table.
	Threshold int `yaml:"-"`
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Default decodes the built-in defaults table.
func Default() (*Config, error) {
	return Parse(defaultsYAML)
}

// Parse decodes a defaults table and validates it. Unknown keys are rejected
// so a typo in a calibration edge cannot silently zero a coefficient.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fixed parameters. The threshold is validated
// separately by ParseThreshold.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.WindowTitle) == "" {
		return &ValidationError{Path: "window_title", Err: fmt.Errorf("window_title is required")}
	}
	if strings.TrimSpace(c.HoldKey) == "" {
		return &ValidationError{Path: "hold_key", Err: fmt.Errorf("hold_key is required")}
	}
	if strings.TrimSpace(c.StopChord) == "" {
		return &ValidationError{Path: "stop_chord", Err: fmt.Errorf("stop_chord is required")}
	}
	if c.Cooldown < 0 {
		return &ValidationError{Path: "cooldown", Err: fmt.Errorf("cooldown must be >= 0")}
	}
	if c.CooldownPoll <= 0 {
		return &ValidationError{Path: "cooldown_poll", Err: fmt.Errorf("cooldown_poll must be > 0")}
	}
	if c.ReportInterval <= 0 {
		return &ValidationError{Path: "report_interval", Err: fmt.Errorf("report_interval must be > 0")}
	}
	if c.LumaCutoff < 0 || c.LumaCutoff > 255 {
		return &ValidationError{Path: "luma_cutoff", Err: fmt.Errorf("luma_cutoff must be between 0 and 255")}
	}
	if c.Calibration.Left == (Edge{}) || c.Calibration.Top == (Edge{}) ||
		c.Calibration.Right == (Edge{}) || c.Calibration.Bottom == (Edge{}) {
		return &ValidationError{Path: "calibration", Err: fmt.Errorf("all four calibration edges are required")}
	}
	return nil
}
