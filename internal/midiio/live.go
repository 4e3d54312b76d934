//go:build !windows

package midiio

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// PerformanceSource reads live note-on events from a MIDI input port, the
// "live performance input" half of the §6 external interface, adapted from
// the Device Open/Close pattern used for MIDI output.
type PerformanceSource struct {
	mu     sync.Mutex
	name   string
	in     drivers.In
	opened bool
	start  time.Time
	stopFn func()
}

// InPorts lists the names of every available MIDI input port.
func InPorts() []string {
	var names []string
	for _, in := range midi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

func findInPort(name string) (drivers.In, error) {
	for _, in := range midi.GetInPorts() {
		if strings.EqualFold(in.String(), name) || strings.Contains(strings.ToLower(in.String()), strings.ToLower(name)) {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPortNotFound, name)
}

// NewPerformanceSource resolves a MIDI input port by (partial, case
// insensitive) name.
func NewPerformanceSource(name string) (*PerformanceSource, error) {
	in, err := findInPort(name)
	if err != nil {
		return nil, err
	}
	return &PerformanceSource{name: name, in: in}, nil
}

// Listen opens the port and delivers every note-on (velocity > 0) to
// onNote until Close is called. Time is seconds elapsed since Listen was
// called, matching the non-decreasing perf_time follower.Feed expects.
func (p *PerformanceSource) Listen(onNote func(NoteEvent)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opened {
		return fmt.Errorf("midiio: %s already listening", p.name)
	}
	if err := p.in.Open(); err != nil {
		return fmt.Errorf("midiio: opening input port %s: %w", p.name, err)
	}
	p.opened = true
	p.start = time.Now()

	stop, err := midi.ListenTo(p.in, func(msg midi.Message, _ int32) {
		var channel, key, velocity uint8
		if msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
			onNote(NoteEvent{
				Pitch: int(key),
				Time:  time.Since(p.start).Seconds(),
			})
		}
	})
	if err != nil {
		p.in.Close()
		p.opened = false
		return fmt.Errorf("midiio: listening on %s: %w", p.name, err)
	}
	p.stopFn = stop
	log.Printf("[MIDIIO] listening on %s", p.name)
	return nil
}

// Close stops listening and releases the input port.
func (p *PerformanceSource) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return nil
	}
	if p.stopFn != nil {
		p.stopFn()
	}
	err := p.in.Close()
	p.opened = false
	log.Printf("[MIDIIO] closed %s", p.name)
	return err
}
