package pitchset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasics(t *testing.T) {
	s := Of(60, 64, 67)
	require.True(t, s.Has(60))
	require.True(t, s.Has(67))
	require.False(t, s.Has(61))
	require.Equal(t, 3, s.Len())
}

func TestSetHighPitches(t *testing.T) {
	s := Of(0, 63, 64, 127)
	require.True(t, s.Has(63))
	require.True(t, s.Has(64))
	require.True(t, s.Has(127))
	require.Equal(t, 4, s.Len())
}

func TestSetOutOfRangeIgnored(t *testing.T) {
	s := Of(-1, 128, 200)
	require.True(t, s.Empty())
	require.False(t, s.Has(-1))
	require.False(t, s.Has(128))
}

func TestSetOps(t *testing.T) {
	a := Of(60, 62, 64)
	b := Of(62, 64, 66)

	require.Equal(t, []int{62, 64}, a.Intersect(b).Pitches())
	require.Equal(t, []int{60, 62, 64, 66}, a.Union(b).Pitches())
	require.Equal(t, []int{60}, a.Without(b).Pitches())
}

func TestAddIsImmutable(t *testing.T) {
	a := Of(60)
	b := a.Add(61)
	require.False(t, a.Has(61))
	require.True(t, b.Has(61))
}
