package matcher

import (
	"scorefollow/internal/pitchset"
	"scorefollow/internal/score"
)

// NegInf is the sentinel "negative infinity" cell value (§3, §4.3). It is
// kept well away from int overflow so that repeated subtraction along a
// DP path never wraps around.
const NegInf = -(1 << 30)

// Cell is a per-row DP state: an alignment score, the time of the most
// recent match on this path, the set of pitches already consumed from the
// row's CompoundEvent, and the count of still-expected pitches (§3).
//
// GracePos is not part of the §3 data model proper: grace pitches are an
// ordered sequence, not a set (§9), so advancing through them needs a
// pointer distinct from Used. It travels with the cell the same way Used
// does and is reset whenever the path lands on a new row.
type Cell struct {
	Value       int
	Time        float64
	Used        pitchset.Set
	UnusedCount int
	GracePos    int
}

// newCell returns a fresh Cell for row with the given starting value: no
// pitches used, no match time, and unused_count equal to the row's full
// expected count.
func newCell(value int, row *score.CompoundEvent) Cell {
	return Cell{Value: value, Time: -1, UnusedCount: row.Expected}
}

// clonePath copies value, time, and used, then recomputes unused_count
// from the row's Expected and the effective (rewardable) portion of used,
// per §4.2.
func (c Cell) clonePath(row *score.CompoundEvent) Cell {
	nc := c
	nc.UnusedCount = row.Expected - c.Used.Intersect(row.RewardablePitches()).Len()
	return nc
}

// negInfCell is the virtual cell returned for out-of-window reads (§4.3,
// §9): its value guarantees no recurrence will ever prefer it.
func negInfCell() Cell {
	return Cell{Value: NegInf, Time: -1}
}
