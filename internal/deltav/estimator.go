package deltav

import (
	"log/slog"
	"sync/atomic"

	"github.com/san-kum/rcsaid/internal/vessel"
)

// Estimator owns the published estimate. Update must be called from a single
// goroutine; Latest is safe from any goroutine.
type Estimator struct {
	mode    atomic.Int64
	enabled atomic.Bool
	slot    atomic.Pointer[Estimate]
	logger  *slog.Logger

	lastSane       bool
	lastDegenerate bool
}

func NewEstimator(mode Mode, logger *slog.Logger) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Estimator{logger: logger, lastSane: true}
	e.mode.Store(int64(mode))
	e.enabled.Store(true)
	e.slot.Store(&Estimate{Mode: mode, Sane: true})
	return e
}

func (e *Estimator) Mode() Mode { return Mode(e.mode.Load()) }

func (e *Estimator) SetMode(m Mode) { e.mode.Store(int64(m)) }

// SetEnabled switches the estimator off without clearing what it published.
func (e *Estimator) SetEnabled(on bool) { e.enabled.Store(on) }

func (e *Estimator) Enabled() bool { return e.enabled.Load() }

// Update runs one tick: aggregate, derive, then publish. A disabled estimator
// returns the previous estimate untouched.
func (e *Estimator) Update(snap vessel.Snapshot) Estimate {
	if !e.enabled.Load() {
		return e.Latest()
	}

	est := Compute(e.Mode(), snap)
	e.report(est)
	e.slot.Store(&est)
	return est
}

func (e *Estimator) Latest() Estimate {
	return *e.slot.Load()
}

// report logs transitions only; Update runs every tick.
func (e *Estimator) report(est Estimate) {
	if est.Sane != e.lastSane {
		if est.Sane {
			e.logger.Info("resource pooling restored", "mode", est.Mode.String())
		} else {
			e.logger.Warn("resource cannot be pooled across the vessel, estimate is unreliable",
				"mode", est.Mode.String(), "resource_mass", est.ResourceMass)
		}
		e.lastSane = est.Sane
	}
	if est.Degenerate != e.lastDegenerate {
		if est.Degenerate {
			e.logger.Warn("propellant mass not below vessel mass, delta-v clamped to zero",
				"resource_mass", est.ResourceMass)
		} else {
			e.logger.Info("vessel mass above propellant mass again", "mode", est.Mode.String())
		}
		e.lastDegenerate = est.Degenerate
	}
}
