// Package pitchname renders MIDI pitch numbers as note names for
// diagnostic and report output, adapted from the teacher's fixed-width
// tracker-cell note naming to plain scientific-pitch notation.
package pitchname

import "fmt"

var names = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Name converts a MIDI note number (0-127) to scientific pitch notation,
// e.g. 60 -> "C4", 61 -> "C#4", 21 -> "A0". Note 60 is C4 (middle C),
// matching the teacher's octave convention (MIDI note 12 = C0).
func Name(midiNote int) string {
	if midiNote < 0 || midiNote > 127 {
		return "?"
	}
	octave := midiNote/12 - 1
	return fmt.Sprintf("%s%d", names[midiNote%12], octave)
}
