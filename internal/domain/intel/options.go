package intel

import "github.com/okian/wrapbrain/pkg/logger"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSlotSeconds overrides the synthetic slot length used for cuts that
// arrive without timing.
func WithSlotSeconds(seconds float64) Option {
	return func(e *Engine) {
		if seconds > 0 {
			e.slotSeconds = seconds
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
