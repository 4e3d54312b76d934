package midiio

// NoteEvent is one performance note-on, either replayed from a Standard
// MIDI File (PerformanceFromSMF) or captured live (PerformanceSource.Listen)
// — the perf_time §4 feeds to the matcher. Platform-independent: both the
// live listener (!windows) and the SMF reader (every GOOS) construct these.
type NoteEvent struct {
	Pitch int
	Time  float64
}
