package matcher

import "errors"

// Error kinds returned by the matcher and follower (§7). The matcher is
// fail-fast: these are returned, never panicked through layers.
// ErrInvariantViolated names a fatal internal consistency failure the
// caller should abort on; no function in this module returns it.
var (
	ErrScoreEmpty        = errors.New("matcher: score is empty")
	ErrTimeGoesBackwards = errors.New("matcher: performance time went backwards")
	ErrPitchOutOfRange   = errors.New("matcher: pitch out of MIDI range 0..127")
	ErrStrategyUnknown   = errors.New("matcher: unknown strategy")
	ErrInvariantViolated = errors.New("matcher: internal invariant violated")
)
