package matcher

// computeStatic applies the static recurrence (§4.4.1) for one row during
// one note's sweep, writes the resulting cell into cur_col, and reports
// whether this row is a candidate match (the diagonal step won and the
// note's pitch is in the row's chord).
//
// up = cur_col[r-1] (same note, already computed earlier this sweep).
// left = prev_col[r] (same row, previous column: skip-performance-note).
// diag = prev_col[r-1] (previous row, previous column: the chord step).
func (m *Matrix) computeStatic(r, pitch int, t float64) (value int, candidate bool) {
	row := m.row(r)
	m.emit(DebugRecord{Kind: DebugCEvent, Row: r, Time: row.Time, Expected: row.Expected})

	up := m.cur.get(r - 1)
	left := m.prev.get(r)
	diag := m.prev.get(r - 1)

	v := up.Value - m.params.Scm
	h := left.Value - m.params.Sce

	isChordHit := row.ChordPitches.Has(pitch)
	var d int
	if isChordHit {
		d = diag.Value + 1
	} else {
		d = diag.Value - m.params.Scw
	}

	value = max(v, h, d)
	candidate = isChordHit && d == value

	cell := Cell{Value: value, Time: diag.Time, UnusedCount: row.Expected}
	switch {
	case value == d:
		cell.Time = t
	case value == v:
		cell.Time = up.Time
	default:
		cell.Time = left.Time
	}
	m.cur.set(r, cell)

	m.emit(DebugRecord{Kind: DebugHRule, Row: r, V: v, H: h})
	m.emit(DebugRecord{
		Kind:        DebugCell,
		Row:         r,
		Value:       cell.Value,
		Time:        cell.Time,
		Used:        cell.Used.Pitches(),
		UnusedCount: cell.UnusedCount,
		Expected:    row.Expected,
	})
	return value, candidate
}
