// Package score builds the ordered sequence of CompoundEvents the matcher
// aligns against: grouping raw score notes by onset proximity (§4.1) and
// applying ornament labels (trills, grace notes, ignore pitches) on top.
package score

import (
	"fmt"

	"scorefollow/internal/pitchset"
)

// DefaultEpsilon is the default onset-grouping tolerance in seconds (§4.1).
const DefaultEpsilon = 0.075

// CompoundEvent is a chord-like alignment unit of the score. It is
// immutable once returned by GroupAndResolve/New.
type CompoundEvent struct {
	Time          float64
	TimeSpan      float64
	ChordPitches  pitchset.Set
	TrillPitches  pitchset.Set
	GracePitches  []int
	IgnorePitches pitchset.Set
	Expected      int
}

// New constructs a CompoundEvent, validating the invariants of §3: pitches
// within MIDI range, time_span >= 0. expected is derived, not supplied.
func New(time, timeSpan float64, chord, trill []int, grace []int, ignore []int) (*CompoundEvent, error) {
	if timeSpan < 0 {
		return nil, fmt.Errorf("score: time_span must be >= 0, got %v", timeSpan)
	}
	for _, p := range append(append(append([]int{}, chord...), trill...), grace...) {
		if p < 0 || p > 127 {
			return nil, fmt.Errorf("score: pitch %d out of MIDI range 0..127", p)
		}
	}
	for _, p := range ignore {
		if p < 0 || p > 127 {
			return nil, fmt.Errorf("score: pitch %d out of MIDI range 0..127", p)
		}
	}

	chordSet := pitchset.Of(chord...)
	trillSet := pitchset.Of(trill...)
	ignoreSet := pitchset.Of(ignore...)
	graceOrdered := append([]int{}, grace...)

	ce := &CompoundEvent{
		Time:          time,
		TimeSpan:      timeSpan,
		ChordPitches:  chordSet,
		TrillPitches:  trillSet,
		GracePitches:  graceOrdered,
		IgnorePitches: ignoreSet,
		Expected:      chordSet.Without(ignoreSet).Len() + trillSet.Without(ignoreSet).Len(),
	}
	return ce, nil
}

// RewardablePitches returns the set of pitches that count toward Expected:
// chord and trill pitches minus any ignored ones.
func (ce *CompoundEvent) RewardablePitches() pitchset.Set {
	return ce.ChordPitches.Union(ce.TrillPitches).Without(ce.IgnorePitches)
}

// ScoreNote is one raw note event from the score's accompanied channel,
// the input to the epsilon-grouping pass (§4.1).
type ScoreNote struct {
	Pitch int
	Time  float64
}

// rawEvent is the pre-ornament grouping of score notes into a chord; it
// becomes a CompoundEvent once OrnamentResolver applies any labels.
type rawEvent struct {
	Time     float64
	TimeSpan float64
	Chord    []int
}

// EpsilonAt resolves the grouping tolerance in effect at a given score
// time, honoring "epsilon v" labels that mutate the parameter for
// subsequent grouping in their covered range; outside any such range the
// default supplied to GroupNotes applies.
type EpsilonAt func(t float64) float64

// GroupNotes performs the left-to-right grouping pass of §4.1: the first
// note starts a CompoundEvent candidate; each subsequent note joins the
// current one if note.time - ce.time <= epsilon (the epsilon in effect at
// the CE's own start time), else it starts a new one. time_span is the
// last joined note's time minus the CE's start time.
func GroupNotes(notes []ScoreNote, epsilonAt EpsilonAt) []*rawEvent {
	if epsilonAt == nil {
		epsilonAt = func(float64) float64 { return DefaultEpsilon }
	}

	var groups []*rawEvent
	for i := 0; i < len(notes); i++ {
		n := notes[i]
		if len(groups) == 0 {
			groups = append(groups, &rawEvent{Time: n.Time, TimeSpan: 0, Chord: []int{n.Pitch}})
			continue
		}
		cur := groups[len(groups)-1]
		eps := epsilonAt(cur.Time)
		if n.Time-cur.Time <= eps {
			cur.Chord = append(cur.Chord, n.Pitch)
			cur.TimeSpan = n.Time - cur.Time
			continue
		}
		groups = append(groups, &rawEvent{Time: n.Time, TimeSpan: 0, Chord: []int{n.Pitch}})
	}
	return groups
}
