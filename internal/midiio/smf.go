package midiio

import (
	"fmt"
	"log"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"scorefollow/internal/score"
)

// ScoreFromSMF loads a Standard MIDI File and builds a score.CompoundEvent
// sequence from it: every note-on across every track becomes a
// score.ScoreNote, ticks are converted to seconds against the file's first
// tempo change (or 120 BPM if none is present), and the resulting note
// stream is grouped and ornament-resolved exactly as §4.1 describes — this
// is the "external MIDI loader" §6 leaves out of scope for the core.
func ScoreFromSMF(path string, labels []score.Label, baseEpsilon float64) ([]*score.CompoundEvent, error) {
	notes, err := readSMFNotes(path)
	if err != nil {
		return nil, err
	}
	return score.GroupAndResolve(notes, labels, baseEpsilon)
}

// PerformanceFromSMF reads a Standard MIDI File as a replayed performance
// stream rather than a score: the same note-on extraction as ScoreFromSMF,
// but returned as raw NoteEvents for feeding straight into
// follower.ScoreFollower.Feed, without the grouping/ornament pass a score
// load requires.
func PerformanceFromSMF(path string) ([]NoteEvent, error) {
	notes, err := readSMFNotes(path)
	if err != nil {
		return nil, err
	}
	events := make([]NoteEvent, len(notes))
	for i, n := range notes {
		events[i] = NoteEvent{Pitch: n.Pitch, Time: n.Time}
	}
	return events, nil
}

func readSMFNotes(path string) ([]score.ScoreNote, error) {
	rd, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("midiio: reading %s: %w", path, err)
	}

	ticksPerQuarter, ok := rd.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("midiio: %s: only metric-tick SMF files are supported", path)
	}

	bpm := 120.0
	if changes := rd.TempoChanges(); len(changes) > 0 {
		bpm = changes[0].BPM
	}
	secondsPerTick := 60.0 / (bpm * float64(ticksPerQuarter))

	var notes []score.ScoreNote
	for trackIdx, track := range rd.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			var channel, key, velocity uint8
			if ev.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
				notes = append(notes, score.ScoreNote{
					Pitch: int(key),
					Time:  float64(tick) * secondsPerTick,
				})
			}
		}
		log.Printf("[MIDIIO] track %d: %d events scanned", trackIdx, len(track))
	}
	if len(notes) == 0 {
		return nil, ErrNoNoteEvents
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].Time < notes[j].Time })

	log.Printf("[MIDIIO] loaded %s: %d note events, bpm=%.1f", path, len(notes), bpm)
	return notes, nil
}
