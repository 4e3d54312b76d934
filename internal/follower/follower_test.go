package follower_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scorefollow/internal/follower"
	"scorefollow/internal/matcher"
	"scorefollow/internal/score"
)

func mustCE(t *testing.T, tm float64, chord []int) *score.CompoundEvent {
	t.Helper()
	ce, err := score.New(tm, 0, chord, nil, nil, nil)
	require.NoError(t, err)
	return ce
}

func TestFeedRejectsEmptyScore(t *testing.T) {
	f := follower.New(nil, matcher.DefaultParams(), matcher.StrategyDynamic)
	_, err := f.Feed(60, 0)
	require.ErrorIs(t, err, matcher.ErrScoreEmpty)
}

func TestFeedRejectsOutOfRangePitch(t *testing.T) {
	ces := []*score.CompoundEvent{mustCE(t, 0, []int{60})}
	f := follower.New(ces, matcher.DefaultParams(), matcher.StrategyDynamic)
	_, err := f.Feed(128, 0)
	require.ErrorIs(t, err, matcher.ErrPitchOutOfRange)
}

func TestFeedRejectsTimeGoingBackwards(t *testing.T) {
	ces := []*score.CompoundEvent{
		mustCE(t, 0, []int{60}),
		mustCE(t, 1, []int{62}),
	}
	f := follower.New(ces, matcher.DefaultParams(), matcher.StrategyDynamic)
	_, err := f.Feed(60, 1.0)
	require.NoError(t, err)
	_, err = f.Feed(62, 0.5)
	require.ErrorIs(t, err, matcher.ErrTimeGoesBackwards)
}

func TestDynamicMatchesAscendingChordRun(t *testing.T) {
	// Notes spaced well inside grace_max_ioi so each fresh row's tight
	// first-hit timing gate (§4.4.2) stays satisfied note after note.
	ces := make([]*score.CompoundEvent, 0, 20)
	for i := 0; i < 20; i++ {
		ces = append(ces, mustCE(t, float64(i)*0.05, []int{60 + i}))
	}
	f := follower.New(ces, matcher.DefaultParams(), matcher.StrategyDynamic)

	var matched int
	for i := 0; i < 20; i++ {
		report, err := f.Feed(60+i, float64(i)*0.05)
		require.NoError(t, err)
		if report != nil {
			matched++
			require.Equal(t, i+1, report.Row)
		}
	}
	require.Greater(t, matched, 0)
	require.Equal(t, 20, f.InputCount())
}

func TestStaticBatchesWithinEpsilonAgainstOneColumn(t *testing.T) {
	ces := []*score.CompoundEvent{
		mustCE(t, 0, []int{60, 64, 67}),
		mustCE(t, 1, []int{62}),
	}
	f := follower.New(ces, matcher.DefaultParams(), matcher.StrategyStatic)

	_, err := f.Feed(60, 0.0)
	require.NoError(t, err)
	_, err = f.Feed(64, 0.01)
	require.NoError(t, err)
	report, err := f.Feed(67, 0.02)
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Equal(t, 1, report.Row)
}

func TestResetClearsHistoryAndTopScore(t *testing.T) {
	ces := []*score.CompoundEvent{mustCE(t, 0, []int{60})}
	f := follower.New(ces, matcher.DefaultParams(), matcher.StrategyDynamic)
	_, err := f.Feed(60, 0)
	require.NoError(t, err)
	require.Equal(t, 1, f.InputCount())

	f.Reset()
	require.Equal(t, 0, f.InputCount())
	require.Empty(t, f.Reports())
	require.Equal(t, matcher.NegInf, f.TopScore())
}

func TestSetStrategyReinitializesWithoutLosingWindow(t *testing.T) {
	ces := make([]*score.CompoundEvent, 0, 25)
	for i := 0; i < 25; i++ {
		ces = append(ces, mustCE(t, float64(i), []int{60 + (i % 12)}))
	}
	f := follower.New(ces, matcher.DefaultParams(), matcher.StrategyDynamic)
	_, err := f.Feed(60, 0)
	require.NoError(t, err)

	f.SetStrategy(matcher.StrategyStatic)
	require.Equal(t, matcher.StrategyStatic, f.Strategy())

	_, err = f.Feed(61, 1)
	require.NoError(t, err)
}
