// Package charge drives the hold/release cycle: it holds a key while the
// progress bar fills, releases it at the threshold, waits out a cooldown
// and presses it again until the stop chord is held.
package charge

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/chargehold/internal/hotkeys"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

// Capturer refreshes a frame with the current window contents.
type Capturer interface {
	Capture(dst *xgraphics.Image) error
}

// Estimator turns a frame into a fill percentage.
type Estimator interface {
	Estimate(frame *xgraphics.Image) (int, error)
}

// Keyboard synthesizes key transitions and reads live key state.
type Keyboard interface {
	SetKey(key string, down bool) error
	IsPressed(key string) (bool, error)
}

// Config holds the parameters of one cycle run.
type Config struct {
	Threshold      int
	HoldKey        string
	StopChord      hotkeys.Chord
	Cooldown       time.Duration
	CooldownPoll   time.Duration
	ReportInterval time.Duration
	Logger         *slog.Logger
}

// Controller runs the cycle. It owns the frame buffer, which is overwritten
// on every poll. A Controller is not safe for concurrent use.
type Controller struct {
	cfg       Config
	frame     *xgraphics.Image
	capturer  Capturer
	estimator Estimator
	keys      Keyboard
	logger    *slog.Logger
	now       func() time.Time

	state       State
	frames      int
	windowStart time.Time
}

// NewController creates a controller in StateIdle.
func NewController(cfg Config, frame *xgraphics.Image, capturer Capturer, estimator Estimator, keys Keyboard) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.CooldownPoll <= 0 {
		cfg.CooldownPoll = 50 * time.Millisecond
	}
	if cfg.ReportInterval <= 0 {
		cfg.ReportInterval = time.Second
	}

	return &Controller{
		cfg:       cfg,
		frame:     frame,
		capturer:  capturer,
		estimator: estimator,
		keys:      keys,
		logger:    logger,
		now:       time.Now,
		state:     StateIdle,
	}
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// Run presses the hold key and polls until the stop chord is held (nil),
// the context ends (ctx.Err()) or a dependency fails. The key is up
// whenever Run returns.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.press(); err != nil {
		c.state = StateStopped
		return err
	}
	c.resetReport()

	for {
		if err := ctx.Err(); err != nil {
			return c.fail(err)
		}

		if err := c.capturer.Capture(c.frame); err != nil {
			return c.fail(err)
		}
		progress, err := c.estimator.Estimate(c.frame)
		if err != nil {
			return c.fail(err)
		}
		c.frames++

		if progress >= c.cfg.Threshold {
			c.logger.Info("threshold reached, releasing", "progress", progress, "threshold", c.cfg.Threshold)
			if err := c.release(); err != nil {
				return c.fail(err)
			}

			stopped, err := c.cooldown(ctx)
			if err != nil {
				return c.fail(err)
			}
			if stopped {
				c.logger.Info("stop chord pressed during cooldown, stopping", "chord", c.cfg.StopChord.String())
				c.state = StateStopped
				return nil
			}

			c.logger.Info("cooldown over, pressing", "key", c.cfg.HoldKey)
			if err := c.press(); err != nil {
				return c.fail(err)
			}
			c.resetReport()
			continue
		}

		pressed, err := c.cfg.StopChord.Pressed(c.keys)
		if err != nil {
			return c.fail(err)
		}
		if pressed {
			c.logger.Info("stop chord pressed, stopping", "chord", c.cfg.StopChord.String())
			if err := c.release(); err != nil {
				return c.fail(err)
			}
			c.state = StateStopped
			return nil
		}

		c.report(progress)
	}
}

// cooldown waits with the key released. It ends early when the context is
// done or the stop chord is seen on one of its polls.
func (c *Controller) cooldown(ctx context.Context) (stopped bool, err error) {
	timer := time.NewTimer(c.cfg.Cooldown)
	defer timer.Stop()
	poll := time.NewTicker(c.cfg.CooldownPoll)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
			return false, nil
		case <-poll.C:
			pressed, err := c.cfg.StopChord.Pressed(c.keys)
			if err != nil {
				return false, err
			}
			if pressed {
				return true, nil
			}
		}
	}
}

// report logs frame count and progress once per report interval.
func (c *Controller) report(progress int) {
	now := c.now()
	if now.Sub(c.windowStart) <= c.cfg.ReportInterval {
		return
	}
	c.logger.Info("report", "frames", c.frames, "progress", progress)
	c.windowStart = now
	c.frames = 0
}

func (c *Controller) resetReport() {
	c.windowStart = c.now()
	c.frames = 0
}

func (c *Controller) press() error {
	if err := c.keys.SetKey(c.cfg.HoldKey, true); err != nil {
		return err
	}
	c.state = StateHeld
	return nil
}

func (c *Controller) release() error {
	if err := c.keys.SetKey(c.cfg.HoldKey, false); err != nil {
		return err
	}
	c.state = StateReleased
	return nil
}

// fail stops the cycle after err, releasing the key first if it is held.
func (c *Controller) fail(err error) error {
	if c.state == StateHeld {
		if relErr := c.keys.SetKey(c.cfg.HoldKey, false); relErr != nil {
			c.logger.Warn("failed to release key", "key", c.cfg.HoldKey, "error", relErr)
		}
	}
	c.state = StateStopped
	return err
}
