//go:build gocv

package main

import (
	"github.com/1broseidon/chargehold/internal/config"
	"github.com/1broseidon/chargehold/internal/progress"
)

func newEstimator(cfg *config.Config) estimator {
	return progress.NewCV(cfg.Calibration, cfg.LumaCutoff)
}
