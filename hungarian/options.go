// SPDX-License-Identifier: MIT

package hungarian

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// DefaultEpsilon is the slack below which a rebuilt slack value is clamped to
// exactly zero after an incremental update.
const DefaultEpsilon = 1e-15

// Options configures a Solver.
//   - Epsilon: rounding-noise threshold for the slack rebuild (default 1e-15).
//     The right value depends on cost magnitudes; 1e-15 suits costs near 1.
//   - Logger:  receives debug-level phase diagnostics (default no-op).
type Options struct {
	Epsilon float64
	Logger  *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the zero-config Options.
func DefaultOptions() Options {
	return Options{
		Epsilon: DefaultEpsilon,
		Logger:  zap.NewNop(),
	}
}

// WithEpsilon sets the slack clamp threshold.
// Panics on negative or NaN eps (programmer error).
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("hungarian: WithEpsilon(%v): epsilon must be finite and >= 0", eps))
	}

	return func(o *Options) { o.Epsilon = eps }
}

// WithLogger routes phase diagnostics to l. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
