//go:build windows

package main

import (
	"fmt"

	"scorefollow/internal/midiio"
)

// captureLive is unavailable on Windows: the live MIDI driver this module
// uses (gitlab.com/gomidi/midi/v2/drivers/rtmididrv) is only wired for
// !windows builds here, matching the teacher's midiconnector package,
// which likewise ships no Windows build.
func captureLive(portName string) ([]midiio.NoteEvent, error) {
	return nil, fmt.Errorf("live MIDI input is not supported on windows builds")
}
