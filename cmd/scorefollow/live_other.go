//go:build !windows

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scorefollow/internal/midiio"
)

// captureLive records note-on events from a live MIDI input port until the
// process is interrupted, mirroring the teacher's setupCleanupOnExit
// signal-channel pattern in main.go.
func captureLive(portName string) ([]midiio.NoteEvent, error) {
	src, err := midiio.NewPerformanceSource(portName)
	if err != nil {
		return nil, err
	}

	var notes []midiio.NoteEvent
	if err := src.Listen(func(n midiio.NoteEvent) {
		notes = append(notes, n)
	}); err != nil {
		return nil, err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	log.Printf("listening on %s, press Ctrl+C to stop", portName)
	<-c

	if err := src.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", portName, err)
	}
	return notes, nil
}
