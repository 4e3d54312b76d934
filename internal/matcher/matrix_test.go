package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scorefollow/internal/matcher"
	"scorefollow/internal/score"
)

func ce(t *testing.T, tm, span float64, chord, trill, grace []int) *score.CompoundEvent {
	t.Helper()
	c, err := score.New(tm, span, chord, trill, grace, nil)
	require.NoError(t, err)
	return c
}

// S1: trivial match, static.
func TestScenarioS1TrivialMatch(t *testing.T) {
	ces := []*score.CompoundEvent{
		ce(t, 0, 0, []int{60}, nil, nil),
		ce(t, 1, 0, []int{62}, nil, nil),
	}
	p := matcher.DefaultParams()
	p.WinHalfLen = 1
	m := matcher.NewMatrix(ces, p, matcher.StrategyStatic)

	r1, err := m.ProcessNote(60, 0.0)
	require.NoError(t, err)
	require.NotNil(t, r1)
	require.Equal(t, matcher.MatchReport{Row: 1, Pitch: 60, PerfTime: 0.0, Score: 1}, *r1)

	m.SwapToNewColumn(0)
	r2, err := m.ProcessNote(62, 1.0)
	require.NoError(t, err)
	require.NotNil(t, r2)
	require.Equal(t, matcher.MatchReport{Row: 2, Pitch: 62, PerfTime: 1.0, Score: 2}, *r2)
}

// S2: extra, unmatched note between two real matches, static.
func TestScenarioS2ExtraNote(t *testing.T) {
	ces := []*score.CompoundEvent{
		ce(t, 0, 0, []int{60}, nil, nil),
		ce(t, 1, 0, []int{62}, nil, nil),
	}
	p := matcher.DefaultParams()
	p.WinHalfLen = 1
	m := matcher.NewMatrix(ces, p, matcher.StrategyStatic)

	r1, err := m.ProcessNote(60, 0.0)
	require.NoError(t, err)
	require.Equal(t, matcher.MatchReport{Row: 1, Pitch: 60, PerfTime: 0.0, Score: 1}, *r1)

	// Every gap here (0.5s) exceeds the default epsilon (0.075s), so each
	// note starts its own performance CE and its own column (§4.4.1).
	m.SwapToNewColumn(0)
	r2, err := m.ProcessNote(61, 0.5)
	require.NoError(t, err)
	require.Nil(t, r2)

	m.SwapToNewColumn(0)
	r3, err := m.ProcessNote(62, 1.0)
	require.NoError(t, err)
	require.Equal(t, matcher.MatchReport{Row: 2, Pitch: 62, PerfTime: 1.0, Score: 2}, *r3)
}

// S3: missing note, static — the second note's best row is row 3, reached
// by skipping row 2, which is never hit.
func TestScenarioS3MissingNote(t *testing.T) {
	ces := []*score.CompoundEvent{
		ce(t, 0, 0, []int{60}, nil, nil),
		ce(t, 1, 0, []int{62}, nil, nil),
		ce(t, 2, 0, []int{64}, nil, nil),
	}
	p := matcher.DefaultParams()
	p.WinHalfLen = 2
	m := matcher.NewMatrix(ces, p, matcher.StrategyStatic)

	r1, err := m.ProcessNote(60, 0.0)
	require.NoError(t, err)
	require.NotNil(t, r1)
	require.Equal(t, 1, r1.Row)

	m.SwapToNewColumn(0)
	// Row 3's diagonal hit recovers to exactly the same value row 1 left
	// behind (skipping row 2 costs scm=1, the chord hit on row 3 rewards 1),
	// so under confidence_slack=0 this never beats top_score strictly and
	// emits no second report.
	r2, err := m.ProcessNote(64, 2.0)
	require.NoError(t, err)
	require.Nil(t, r2)
}

// S4: trill, dynamic. First chord hit and first trill hit report; repeats
// of either, while still within trill_max_ioi, earn no further credit.
func TestScenarioS4Trill(t *testing.T) {
	ces := []*score.CompoundEvent{
		ce(t, 0, 0, []int{72}, []int{74}, nil),
	}
	p := matcher.DefaultParams()
	p.WinHalfLen = 2
	m := matcher.NewMatrix(ces, p, matcher.StrategyDynamic)

	notes := []struct {
		pitch int
		t     float64
	}{
		{72, 0.0},
		{74, 0.05},
		{72, 0.10},
		{74, 0.15},
	}
	var reports []*matcher.MatchReport
	for _, n := range notes {
		m.SwapToNewColumn(m.TopRow() + 1)
		r, err := m.ProcessNote(n.pitch, n.t)
		require.NoError(t, err)
		reports = append(reports, r)
	}

	require.NotNil(t, reports[0])
	require.Equal(t, 72, reports[0].Pitch)
	require.NotNil(t, reports[1])
	require.Equal(t, 74, reports[1].Pitch)
	require.Nil(t, reports[2])
	require.Nil(t, reports[3])
}

// S5: grace then chord, dynamic. Grace earns reward internally but never
// a report; the chord note that follows does report.
func TestScenarioS5GraceThenChord(t *testing.T) {
	ces := []*score.CompoundEvent{
		ce(t, 0, 0, []int{60}, nil, []int{59}),
	}
	p := matcher.DefaultParams()
	p.WinHalfLen = 2
	m := matcher.NewMatrix(ces, p, matcher.StrategyDynamic)

	m.SwapToNewColumn(m.TopRow() + 1)
	r1, err := m.ProcessNote(59, 0.0)
	require.NoError(t, err)
	require.Nil(t, r1)

	m.SwapToNewColumn(m.TopRow() + 1)
	r2, err := m.ProcessNote(60, 0.05)
	require.NoError(t, err)
	require.NotNil(t, r2)
	require.Equal(t, 1, r2.Row)
	require.Equal(t, 60, r2.Pitch)
}

// S6: timing violation, dynamic. A repeat of the same pitch far outside
// the timing window produces no second report.
func TestScenarioS6TimingViolation(t *testing.T) {
	ces := []*score.CompoundEvent{
		ce(t, 0, 0, []int{60}, nil, nil),
	}
	p := matcher.DefaultParams()
	p.WinHalfLen = 2
	m := matcher.NewMatrix(ces, p, matcher.StrategyDynamic)

	m.SwapToNewColumn(m.TopRow() + 1)
	r1, err := m.ProcessNote(60, 0.0)
	require.NoError(t, err)
	require.NotNil(t, r1)
	require.Equal(t, 1, r1.Row)

	m.SwapToNewColumn(m.TopRow() + 1)
	r2, err := m.ProcessNote(60, 10.0)
	require.NoError(t, err)
	require.Nil(t, r2)
}

// P8: single-CE score, single matching note -> one report at row 1.
func TestInvariantP8SingleCESingleNote(t *testing.T) {
	ces := []*score.CompoundEvent{ce(t, 0, 0, []int{60}, nil, nil)}
	m := matcher.NewMatrix(ces, matcher.DefaultParams(), matcher.StrategyDynamic)
	m.SwapToNewColumn(m.TopRow() + 1)
	r, err := m.ProcessNote(60, 0.0)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, 1, r.Row)
}

// P1: window bounds stay within the score at every step.
func TestInvariantP1WindowBounds(t *testing.T) {
	ces := make([]*score.CompoundEvent, 0, 40)
	for i := 0; i < 40; i++ {
		ces = append(ces, ce(t, float64(i)*0.05, 0, []int{60 + i%12}, nil, nil))
	}
	p := matcher.DefaultParams()
	m := matcher.NewMatrix(ces, p, matcher.StrategyDynamic)
	for i := 0; i < 40; i++ {
		m.SwapToNewColumn(m.TopRow() + 2)
		_, err := m.ProcessNote(60+i%12, float64(i)*0.05)
		require.NoError(t, err)
		start, end := m.WindowBounds()
		require.GreaterOrEqual(t, start, 1)
		require.LessOrEqual(t, end, m.Length()+1) // end is exclusive; length+1 admits the final row
		require.LessOrEqual(t, end-start, 2*p.WinHalfLen+1)
	}
}

func TestErrPitchOutOfRange(t *testing.T) {
	ces := []*score.CompoundEvent{ce(t, 0, 0, []int{60}, nil, nil)}
	m := matcher.NewMatrix(ces, matcher.DefaultParams(), matcher.StrategyDynamic)
	_, err := m.ProcessNote(200, 0)
	require.ErrorIs(t, err, matcher.ErrPitchOutOfRange)
}

func TestErrScoreEmpty(t *testing.T) {
	m := matcher.NewMatrix(nil, matcher.DefaultParams(), matcher.StrategyDynamic)
	_, err := m.ProcessNote(60, 0)
	require.ErrorIs(t, err, matcher.ErrScoreEmpty)
}

type recordingSink struct {
	recs []matcher.DebugRecord
}

func (s *recordingSink) Emit(r matcher.DebugRecord) { s.recs = append(s.recs, r) }

func (s *recordingSink) kinds() map[string]bool {
	out := make(map[string]bool)
	for _, r := range s.recs {
		out[r.Kind] = true
	}
	return out
}

// §6 commits to every one of these kinds appearing in the per-column log.
// The kinds both recurrences produce are required under both strategies;
// VRULE, TIMING and DECISION come only from the dynamic recurrence.
func TestDebugSinkEmitsEveryRecordKind(t *testing.T) {
	ces := []*score.CompoundEvent{
		ce(t, 0, 0, []int{60}, nil, nil),
		ce(t, 1, 0, []int{62}, nil, nil),
	}

	for _, strategy := range []matcher.Strategy{matcher.StrategyStatic, matcher.StrategyDynamic} {
		sink := &recordingSink{}
		p := matcher.DefaultParams()
		p.WinHalfLen = 1
		m := matcher.NewMatrix(ces, p, strategy)
		m.SetDebugSink(sink)

		_, err := m.ProcessNote(60, 0.0)
		require.NoError(t, err)
		m.SwapToNewColumn(m.TopRow() + 1)
		_, err = m.ProcessNote(62, 1.0)
		require.NoError(t, err)
		_, err = m.ProcessNote(99, 1.1)
		require.NoError(t, err)

		kinds := sink.kinds()
		require.True(t, kinds[matcher.DebugInput], "strategy %v: missing INPUT", strategy)
		require.True(t, kinds[matcher.DebugCEvent], "strategy %v: missing CEVENT", strategy)
		require.True(t, kinds[matcher.DebugCell], "strategy %v: missing CELL", strategy)
		require.True(t, kinds[matcher.DebugHRule], "strategy %v: missing HRULE", strategy)
		require.True(t, kinds[matcher.DebugDP], "strategy %v: missing DP", strategy)
		require.True(t, kinds[matcher.DebugMatch], "strategy %v: missing MATCH", strategy)
		require.True(t, kinds[matcher.DebugNoMatch], "strategy %v: missing NO_MATCH", strategy)
		if strategy == matcher.StrategyDynamic {
			require.True(t, kinds[matcher.DebugVRule], "missing VRULE")
			require.True(t, kinds[matcher.DebugTiming], "missing TIMING")
			require.True(t, kinds[matcher.DebugDecision], "missing DECISION")
		}
	}
}

func TestDebugSinkCellRecordCarriesRowState(t *testing.T) {
	ces := []*score.CompoundEvent{ce(t, 0, 0, []int{60}, nil, nil)}
	sink := &recordingSink{}
	m := matcher.NewMatrix(ces, matcher.DefaultParams(), matcher.StrategyStatic)
	m.SetDebugSink(sink)

	_, err := m.ProcessNote(60, 0.25)
	require.NoError(t, err)

	var cell *matcher.DebugRecord
	for i := range sink.recs {
		if sink.recs[i].Kind == matcher.DebugCell && sink.recs[i].Row == 1 {
			cell = &sink.recs[i]
		}
	}
	require.NotNil(t, cell)
	require.Equal(t, 1, cell.Value)
	require.Equal(t, 0.25, cell.Time)
	// The static recurrence never tracks which chord pitches were used
	// (§4.4.1 has no Used-dependent term), so Used is always empty and
	// UnusedCount always equals the row's full expected count.
	require.Equal(t, []int{}, cell.Used)
	require.Equal(t, 1, cell.UnusedCount)
	require.Equal(t, 1, cell.Expected)
}
