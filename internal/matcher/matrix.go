package matcher

import "scorefollow/internal/score"

// MatchReport is emitted when a performance note is judged to land on a
// score row (§4.4.3, §6).
type MatchReport struct {
	Row      int
	Pitch    int
	PerfTime float64
	Score    int
}

// Matrix is the windowed DP engine (§2 "THE HARD PART"). It holds exactly
// two column vectors at any time and allocates no column storage on the
// per-note path: cur/prev are reused buffers whose references are
// exchanged on swap (§4.3), not copied.
type Matrix struct {
	ces    []*score.CompoundEvent
	length int
	params Params

	strategy Strategy

	winCenter int
	winStart  int
	winEnd    int

	cur  *column
	prev *column

	topScore int
	topRow   int

	hasMatchThisColumn bool
	matchRowThisColumn int

	debug DebugSink
}

// NewMatrix builds a Matrix over ces with the given params and starting
// strategy. The window starts centered at win_half_len+1 (§4.3 Init).
func NewMatrix(ces []*score.CompoundEvent, params Params, strategy Strategy) *Matrix {
	capacity := 2*params.WinHalfLen + 1
	m := &Matrix{
		ces:      ces,
		length:   len(ces),
		params:   params,
		strategy: strategy,
		cur:      newColumn(capacity),
		prev:     newColumn(capacity),
		topScore: NegInf,
		topRow:   0,
	}
	m.winCenter = m.clampCenter(params.WinHalfLen + 1)
	m.winStart, m.winEnd = m.computeBounds(m.winCenter)
	m.cur.reset(m.winStart, m.winEnd, 0, m.ces)
	m.prev.reset(m.winStart, m.winEnd, NegInf, m.ces)
	return m
}

// SetStrategy switches the active recurrence, reinitializing both columns
// to the new strategy's zero state while preserving win_center (§4.5).
func (m *Matrix) SetStrategy(s Strategy) {
	m.strategy = s
	m.cur.reset(m.winStart, m.winEnd, 0, m.ces)
	m.prev.reset(m.winStart, m.winEnd, NegInf, m.ces)
	m.hasMatchThisColumn = false
}

// SetDebugSink attaches (or, with nil, detaches) the diagnostic record
// sink consulted by emit (§6). Never changes the sequence of MatchReports.
func (m *Matrix) SetDebugSink(sink DebugSink) { m.debug = sink }

// Strategy reports the active recurrence.
func (m *Matrix) Strategy() Strategy { return m.strategy }

// Length is the number of score rows (CompoundEvents) the matrix spans.
func (m *Matrix) Length() int { return m.length }

// TopScore and TopRow report the best alignment state reached so far,
// consulted by callers choosing the dynamic-strategy swap hint (§4.3).
func (m *Matrix) TopScore() int { return m.topScore }
func (m *Matrix) TopRow() int   { return m.topRow }

// HasMatchThisColumn reports whether ProcessNote emitted a MatchReport on
// the current column, the condition the static strategy's swap rule
// branches on (§4.3).
func (m *Matrix) HasMatchThisColumn() bool { return m.hasMatchThisColumn }

// MatchRowThisColumn is the row of the most recent match emitted on the
// current column (valid only if HasMatchThisColumn is true).
func (m *Matrix) MatchRowThisColumn() int { return m.matchRowThisColumn }

// WindowBounds reports the current half-open row range [start, end).
func (m *Matrix) WindowBounds() (start, end int) { return m.winStart, m.winEnd }

func (m *Matrix) clampCenter(center int) int {
	lo := m.params.StartPoint + m.params.WinHalfLen
	hi := m.length - m.params.WinHalfLen
	if lo > hi {
		// Score shorter than the window: let the requested center stand:
		// computeBounds already clips [win_start, win_end) to [1, length+1).
		return center
	}
	if center < lo {
		center = lo
	}
	if center > hi {
		center = hi
	}
	return center
}

// computeBounds turns a center into the half-open active row range
// [start, end). The window is meant to span rows [center-half_len,
// center+half_len] inclusive on both ends (2*half_len+1 rows, matching P1
// exactly when unclamped), so the exclusive end is center+half_len+1, not
// center+half_len — reading §4.3's "win_end = min(length, win_center+
// win_half_len)" at face value drops both the window's rightmost row and,
// at the score's tail, the final row itself, which the worked match
// scenarios rule out (a re-centered window must still be able to look
// half_len rows ahead of the row it just matched).
func (m *Matrix) computeBounds(center int) (start, end int) {
	start = center - m.params.WinHalfLen
	if start < 1 {
		start = 1
	}
	end = center + m.params.WinHalfLen + 1
	if end > m.length+1 {
		end = m.length + 1
	}
	if end < start {
		end = start
	}
	return start, end
}

// SwapToNewColumn advances the window one column (§4.3). nextCenterHint is
// consulted only under the dynamic strategy; the static strategy derives
// its own next center from whether the outgoing column produced a match.
func (m *Matrix) SwapToNewColumn(nextCenterHint int) {
	m.cur, m.prev = m.prev, m.cur

	switch m.strategy {
	case StrategyStatic:
		if m.hasMatchThisColumn {
			m.winCenter = m.matchRowThisColumn
		} else {
			m.winCenter++
		}
	case StrategyDynamic:
		m.winCenter = nextCenterHint
	}
	m.winCenter = m.clampCenter(m.winCenter)
	m.winStart, m.winEnd = m.computeBounds(m.winCenter)

	m.cur.reset(m.winStart, m.winEnd, NegInf, m.ces)
	m.hasMatchThisColumn = false
}

func (m *Matrix) row(r int) *score.CompoundEvent { return m.ces[r-1] }

// ProcessNote feeds one performance note through the current column,
// ascending row by row (§4.4), then applies the match-emission rule
// (§4.4.3): the winning row must come from a rewarding chord/trill hit and
// strictly beat top_score-confidence_slack.
//
// Whether this call also advances the window is the caller's decision
// (internal/follower): static batches several notes against one column
// before swapping, dynamic swaps before every note.
func (m *Matrix) ProcessNote(pitch int, t float64) (*MatchReport, error) {
	if pitch < 0 || pitch > 127 {
		return nil, ErrPitchOutOfRange
	}
	if m.length == 0 {
		return nil, ErrScoreEmpty
	}
	m.emit(DebugRecord{Kind: DebugInput, Pitch: pitch, PerfTime: t})

	if m.winEnd <= m.winStart {
		m.emit(DebugRecord{Kind: DebugNoMatch, Pitch: pitch, PerfTime: t})
		return nil, nil
	}

	bestRow := m.winStart
	bestValue := NegInf
	bestIsCandidate := false
	first := true
	for r := m.winStart; r < m.winEnd; r++ {
		var value int
		var isCandidate bool
		switch m.strategy {
		case StrategyStatic:
			value, isCandidate = m.computeStatic(r, pitch, t)
		case StrategyDynamic:
			value, isCandidate = m.computeDynamic(r, pitch, t)
		}
		// On an exact tie, a fresh candidate hit outranks a row merely
		// carrying forward an earlier score (e.g. a skip cost of 0):
		// otherwise a stale high-water row could permanently shadow a
		// genuine later match landing on the same value (§8 S3).
		promote := value == bestValue && isCandidate && !bestIsCandidate
		if first || value > bestValue || promote {
			bestValue = value
			bestRow = r
			bestIsCandidate = isCandidate
			first = false
		}
	}

	isCandidate := bestIsCandidate
	m.emit(DebugRecord{Kind: DebugDP, Row: bestRow, NewValue: bestValue})
	if isCandidate && bestValue > m.topScore-m.params.ConfidenceSlack {
		m.topScore = bestValue
		m.topRow = bestRow
		m.hasMatchThisColumn = true
		m.matchRowThisColumn = bestRow
		m.emit(DebugRecord{Kind: DebugMatch, Row: bestRow, Pitch: pitch, PerfTime: t, Score: bestValue})
		return &MatchReport{Row: bestRow, Pitch: pitch, PerfTime: t, Score: bestValue}, nil
	}
	m.emit(DebugRecord{Kind: DebugNoMatch, Pitch: pitch, PerfTime: t})
	return nil, nil
}

func max(vs ...int) int {
	out := vs[0]
	for _, v := range vs[1:] {
		if v > out {
			out = v
		}
	}
	return out
}
