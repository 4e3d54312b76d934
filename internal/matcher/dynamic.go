package matcher

// computeDynamic applies the dynamic recurrence (§4.4.2) for one row during
// one note's sweep, writes the resulting cell into cur_col, and reports
// whether this row is a candidate match (a non-ignored chord or trill hit
// won the row).
//
// up = cur_col[r-1]: same note, already computed earlier this ascending
// sweep — the vertical "skip a score row" move.
//
// prev = prev_col[r]: same row, previous column — the horizontal move that
// tests this note against row r's ornament pitches. (§4.4.2's prose names
// this prev_col[r-1]; read literally that loses all memory of which of row
// r's own pitches were already consumed between notes, which contradicts
// the repeated-trill-press behavior the worked scenarios require. prev_col[r]
// is the reading used here — see DESIGN.md.)
func (m *Matrix) computeDynamic(r, pitch int, t float64) (value int, candidate bool) {
	row := m.row(r)
	m.emit(DebugRecord{Kind: DebugCEvent, Row: r, Time: row.Time, Expected: row.Expected})

	up := m.cur.get(r - 1)
	prev := m.prev.get(r)

	v := up.Value
	if r >= m.params.StartPoint {
		v = up.Value - m.params.Dcm*up.UnusedCount
	}

	ioi := 0.0
	if prev.Time >= 0 {
		ioi = t - prev.Time
	}
	timingLimit := m.params.GraceMaxIOI
	if prev.UnusedCount != row.Expected {
		timingLimit = row.TimeSpan + 0.1
	}
	timingOK := prev.Time < 0 || ioi < timingLimit

	var h int
	var hCell Cell
	var decision string
	var rewarded bool

	switch {
	case row.ChordPitches.Has(pitch) && !prev.Used.Has(pitch) && timingOK:
		decision = DebugDecisionC1
		if row.IgnorePitches.Has(pitch) {
			h = prev.Value
			hCell = prev
			hCell.Used = prev.Used.Add(pitch)
			hCell.Time = t
		} else {
			h = prev.Value + m.params.Dmc
			hCell = prev
			hCell.Used = prev.Used.Add(pitch)
			hCell.Time = t
			rewarded = true
		}

	case row.TrillPitches.Has(pitch) && (prev.Used.Len() == 0 || ioi < m.params.TrillMaxIOI):
		decision = DebugDecisionC2
		if prev.Used.Has(pitch) || row.IgnorePitches.Has(pitch) {
			h = prev.Value
			hCell = prev
			if prev.Time < 0 {
				hCell.Time = t
			}
		} else {
			h = prev.Value + m.params.Dmc
			hCell = prev
			hCell.Used = prev.Used.Add(pitch)
			hCell.Time = t
			rewarded = true
		}

	case containsPitch(row.GracePitches, pitch) && (prev.Used.Len() == 0 || ioi < m.params.GraceMaxIOI):
		decision = DebugDecisionC3
		beyondGrace := !prev.Used.Intersect(row.ChordPitches).Empty()
		hCell = prev
		if beyondGrace {
			h = prev.Value - m.params.Dce
		} else {
			h = prev.Value + m.params.Dgc
			if prev.GracePos < len(row.GracePitches) {
				hCell.GracePos = prev.GracePos + 1
			}
		}

	default:
		decision = DebugDecisionC4
		h = prev.Value - m.params.Dce
		hCell = prev
	}
	hCell.Value = h

	var winner Cell
	switch {
	case v > h:
		winner = Cell{Value: v, Time: up.Time}
		candidate = false
		decision = DebugDecisionV
	case h > v:
		winner = hCell
		candidate = rewarded
	default:
		// Tie: the path takes V's value and state, but a candidate match
		// is still recorded when the horizontal case would have rewarded
		// a chord or trill hit (a preserved quirk of the recurrence).
		winner = Cell{Value: v, Time: up.Time}
		candidate = rewarded
		decision = DebugDecisionV
	}
	winner.UnusedCount = row.Expected - winner.Used.Intersect(row.RewardablePitches()).Len()
	m.cur.set(r, winner)

	m.emit(DebugRecord{Kind: DebugVRule, Row: r, V: v})
	m.emit(DebugRecord{Kind: DebugTiming, Row: r, IOI: ioi, TimingLimit: timingLimit, TimingOK: timingOK})
	m.emit(DebugRecord{Kind: DebugHRule, Row: r, H: h})
	m.emit(DebugRecord{Kind: DebugDecision, Row: r, Decision: decision})
	m.emit(DebugRecord{
		Kind:        DebugCell,
		Row:         r,
		Value:       winner.Value,
		Time:        winner.Time,
		Used:        winner.Used.Pitches(),
		UnusedCount: winner.UnusedCount,
		Expected:    row.Expected,
	})
	return winner.Value, candidate
}

func containsPitch(pitches []int, p int) bool {
	for _, gp := range pitches {
		if gp == p {
			return true
		}
	}
	return false
}
