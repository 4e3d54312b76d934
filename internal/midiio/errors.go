package midiio

import "errors"

// ErrNoNoteEvents is returned by ScoreFromSMF when a Standard MIDI File
// contains no note-on events to build a score from.
var ErrNoNoteEvents = errors.New("midiio: SMF contains no note-on events")

// ErrPortNotFound is returned when no MIDI input port matches a requested
// name.
var ErrPortNotFound = errors.New("midiio: no MIDI input port matches name")
