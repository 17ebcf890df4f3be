package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/chargehold/internal/charge"
	"github.com/1broseidon/chargehold/internal/config"
	"github.com/1broseidon/chargehold/internal/hotkeys"
	"github.com/1broseidon/chargehold/internal/platform"
	"github.com/1broseidon/chargehold/internal/progress"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

// Exit codes beyond the argument errors of config.ParseThreshold.
const (
	exitOK          = 0
	exitEnvironment = 4
	exitCalibration = 5
)

// estimator is a progress estimator that can also vet a frame size up front.
type estimator interface {
	charge.Estimator
	Region(width, height int) (image.Rectangle, error)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chargehold <percent>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Holds the skill key in the game window and releases it once the")
	fmt.Fprintln(w, "charge bar reaches <percent> (0-99), then presses it again after")
	fmt.Fprintln(w, "a cooldown. Hold Control_L+s to stop.")
}

func run(args []string, stdout, stderr io.Writer) int {
	threshold, err := config.ParseThreshold(args)
	if err != nil {
		var argErr *config.ArgError
		if errors.As(err, &argErr) {
			fmt.Fprintf(stderr, "%s!\n\n", argErr.Msg)
			printUsage(stderr)
			return argErr.Code
		}
		fmt.Fprintln(stderr, err)
		return config.ExitInvalidArg
	}

	cfg, err := config.Default()
	if err != nil {
		fmt.Fprintf(stderr, "invalid built-in defaults: %v\n", err)
		return exitCalibration
	}
	cfg.Threshold = threshold

	chord, err := hotkeys.ParseChord(cfg.StopChord)
	if err != nil {
		fmt.Fprintf(stderr, "invalid stop chord: %v\n", err)
		return exitCalibration
	}

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitEnvironment
	}
	defer backend.Disconnect()

	logger := slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return exitCode(watch(ctx, cfg, chord, backend, newEstimator(cfg), logger), stderr)
}

// watch locates the game window, checks the calibration against its size
// and runs the cycle until it stops.
func watch(ctx context.Context, cfg *config.Config, chord hotkeys.Chord, backend platform.Backend, est estimator, logger *slog.Logger) error {
	win, err := backend.FindWindow(cfg.WindowTitle)
	if err != nil {
		return err
	}
	width, height, err := backend.WindowSize(win)
	if err != nil {
		return err
	}
	roi, err := est.Region(width, height)
	if err != nil {
		return fmt.Errorf("calibration %q does not fit window: %w", cfg.Calibration.Name, err)
	}

	logger.Info("watching window",
		"title", cfg.WindowTitle,
		"window_id", win,
		"width", width,
		"height", height,
		"roi", roi,
		"threshold", cfg.Threshold)

	ctrl := charge.NewController(charge.Config{
		Threshold:      cfg.Threshold,
		HoldKey:        cfg.HoldKey,
		StopChord:      chord,
		Cooldown:       cfg.Cooldown,
		CooldownPoll:   cfg.CooldownPoll,
		ReportInterval: cfg.ReportInterval,
		Logger:         logger,
	}, platform.NewFrame(width, height), windowCapturer{backend: backend, window: win}, est, backend)

	return ctrl.Run(ctx)
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "interrupted, key released")
		return exitOK
	case errors.Is(err, progress.ErrDegenerateROI):
		fmt.Fprintln(stderr, err)
		return exitCalibration
	default:
		fmt.Fprintln(stderr, err)
		return exitEnvironment
	}
}

// windowCapturer binds a backend to the watched window.
type windowCapturer struct {
	backend platform.Backend
	window  platform.WindowID
}

func (c windowCapturer) Capture(dst *xgraphics.Image) error {
	return c.backend.Capture(c.window, dst)
}
