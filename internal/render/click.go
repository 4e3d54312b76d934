package render

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"scorefollow/internal/matcher"
)

const (
	sampleRate  = 44100
	bitDepth    = 16
	numChannels = 1

	clickFreqHz   = 1000.0
	clickDuration = 0.02 // seconds
	tailSeconds   = 1.0  // padding after the last report
)

// RenderClickTrack writes a mono WAV file to path with a short sine-wave
// click at each report's perf_time, for offline review of a feed session.
// An empty reports slice still produces a valid, silent tailSeconds file.
func RenderClickTrack(path string, reports []matcher.MatchReport) error {
	end := tailSeconds
	for _, r := range reports {
		if r.PerfTime+tailSeconds > end {
			end = r.PerfTime + tailSeconds
		}
	}
	totalFrames := int(end * sampleRate)

	samples := make([]int, totalFrames)
	clickFrames := int(clickDuration * sampleRate)
	for _, r := range reports {
		start := int(r.PerfTime * sampleRate)
		for i := 0; i < clickFrames && start+i < totalFrames; i++ {
			// Linear decay envelope keeps the click from popping.
			envelope := 1.0 - float64(i)/float64(clickFrames)
			sample := math.Sin(2*math.Pi*clickFreqHz*float64(i)/sampleRate) * envelope
			samples[start+i] = int(sample * 0.8 * math.MaxInt16)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, numChannels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:   samples,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("render: writing %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render: closing %s: %w", path, err)
	}

	log.Printf("[RENDER] wrote click track %s: %d reports, %.2fs", path, len(reports), end)
	return nil
}
