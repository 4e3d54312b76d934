// Package follower orchestrates package matcher's windowed DP engine
// against a live or replayed stream of performance notes: it owns the
// epsilon-grouping decision that drives static-strategy swaps, the swap
// hint for dynamic strategy, and the running match history.
package follower

import (
	"log"

	"scorefollow/internal/matcher"
	"scorefollow/internal/score"
)

// SwapLead is how far ahead of the current best row the dynamic strategy
// centers its next window (§4.3: "the current best row plus a small lead").
const SwapLead = 2

// ScoreFollower feeds performance notes against a fixed score and reports
// each match as it is found.
type ScoreFollower struct {
	ces    []*score.CompoundEvent
	params matcher.Params
	m      *matcher.Matrix

	lastNoteTime float64
	haveLastNote bool

	epsilonAt score.EpsilonAt

	inputCount int
	reports    []matcher.MatchReport

	debug matcher.DebugSink
}

// New builds a ScoreFollower over ces with the given parameters and
// starting strategy.
func New(ces []*score.CompoundEvent, params matcher.Params, strategy matcher.Strategy) *ScoreFollower {
	return &ScoreFollower{
		ces:       ces,
		params:    params,
		m:         matcher.NewMatrix(ces, params, strategy),
		epsilonAt: func(float64) float64 { return params.Epsilon },
	}
}

// SetDebugSink attaches (or, with nil, detaches) the diagnostic record
// sink. Attaching a sink never changes the sequence of MatchReports (§8 P5).
func (f *ScoreFollower) SetDebugSink(sink matcher.DebugSink) {
	f.debug = sink
	f.m.SetDebugSink(sink)
}

// SetEpsilonAt overrides the epsilon-grouping function used to decide
// static-strategy swap boundaries, e.g. from score.EpsilonFromLabels.
func (f *ScoreFollower) SetEpsilonAt(fn score.EpsilonAt) {
	if fn == nil {
		fn = func(float64) float64 { return f.params.Epsilon }
	}
	f.epsilonAt = fn
}

// SetStrategy switches strategies mid-session, reinitializing the matrix's
// columns while preserving its window (§4.5).
func (f *ScoreFollower) SetStrategy(s matcher.Strategy) {
	f.m.SetStrategy(s)
	f.haveLastNote = false
}

// Strategy reports the active recurrence.
func (f *ScoreFollower) Strategy() matcher.Strategy { return f.m.Strategy() }

// Reset returns the follower to its just-constructed state: same score and
// params, window re-centered, no match history.
func (f *ScoreFollower) Reset() {
	f.m = matcher.NewMatrix(f.ces, f.params, f.m.Strategy())
	f.m.SetDebugSink(f.debug)
	f.haveLastNote = false
	f.inputCount = 0
	f.reports = nil
}

// Reports returns every MatchReport emitted so far, in arrival order.
func (f *ScoreFollower) Reports() []matcher.MatchReport {
	out := make([]matcher.MatchReport, len(f.reports))
	copy(out, f.reports)
	return out
}

// InputCount is the number of notes fed so far.
func (f *ScoreFollower) InputCount() int { return f.inputCount }

// ScoreLength is the number of compound events in the score being followed.
func (f *ScoreFollower) ScoreLength() int { return len(f.ces) }

// TopScore and TopRow mirror the underlying matrix's best alignment state.
func (f *ScoreFollower) TopScore() int { return f.m.TopScore() }
func (f *ScoreFollower) TopRow() int   { return f.m.TopRow() }

// Feed advances the follower by one performance note (pitch, time in
// seconds). perf_time must be non-decreasing across calls
// (ErrTimeGoesBackwards), and the score must be non-empty (ErrScoreEmpty).
func (f *ScoreFollower) Feed(pitch int, perfTime float64) (*matcher.MatchReport, error) {
	if len(f.ces) == 0 {
		return nil, matcher.ErrScoreEmpty
	}
	if pitch < 0 || pitch > 127 {
		return nil, matcher.ErrPitchOutOfRange
	}
	if f.haveLastNote && perfTime < f.lastNoteTime {
		return nil, matcher.ErrTimeGoesBackwards
	}

	f.swapIfNeeded(perfTime)

	report, err := f.m.ProcessNote(pitch, perfTime)
	if err != nil {
		return nil, err
	}

	f.lastNoteTime = perfTime
	f.haveLastNote = true
	f.inputCount++

	if report != nil {
		f.reports = append(f.reports, *report)
		log.Printf("[FOLLOWER] matched pitch=%d row=%d score=%d perf_time=%.3f", pitch, report.Row, report.Score, perfTime)
	}
	return report, nil
}

func (f *ScoreFollower) swapIfNeeded(perfTime float64) {
	switch f.m.Strategy() {
	case matcher.StrategyDynamic:
		f.m.SwapToNewColumn(f.m.TopRow() + SwapLead)
	case matcher.StrategyStatic:
		if !f.haveLastNote {
			return
		}
		eps := f.epsilonAt(f.lastNoteTime)
		if perfTime-f.lastNoteTime > eps {
			f.m.SwapToNewColumn(0)
		}
	}
}
