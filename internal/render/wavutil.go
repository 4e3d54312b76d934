// Package render produces a WAV click track marking matched rows against
// performance time, for offline review of a feed session — the teacher
// never writes WAV files, only reads them to guess a sample's BPM, so
// this package keeps only the duration-measuring half of that reading
// (internal/getbpm.Length) and adds the writing half the spec needs.
package render

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// Length returns the duration of a WAV file in seconds, along with its
// sample rate and total frame count, trimmed from the teacher's
// getbpm.Length to the duration computation alone — dropping its
// filename-based BPM-guessing heuristics, which have no bearing on
// validating a rendered click track.
func Length(filename string) (seconds float64, sampleRate int64, totalFrames int64, err error) {
	f, openErr := os.Open(filename)
	if openErr != nil {
		return 0, 0, 0, fmt.Errorf("render: open %s: %w", filename, openErr)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0, 0, 0, fmt.Errorf("render: %s is not a valid WAV file", filename)
	}
	d.ReadInfo()

	const wavFormatPCM = 1
	const wavFormatExtensible = 65534
	if int(d.WavAudioFormat) != wavFormatPCM && int(d.WavAudioFormat) != wavFormatExtensible {
		var dur time.Duration
		dur, err = d.Duration()
		if err != nil {
			return 0, 0, 0, fmt.Errorf("render: duration (non-PCM) %s: %w", filename, err)
		}
		return dur.Seconds(), 0, 0, nil
	}

	if d.SampleRate == 0 {
		return 0, 0, 0, fmt.Errorf("render: %s: invalid sample rate 0", filename)
	}
	bytesPerSample := int64(d.BitDepth) / 8
	if bytesPerSample <= 0 {
		return 0, 0, 0, fmt.Errorf("render: %s: invalid bit depth %d", filename, d.BitDepth)
	}
	channels := int64(d.NumChans)
	if channels <= 0 {
		return 0, 0, 0, fmt.Errorf("render: %s: invalid channel count %d", filename, d.NumChans)
	}

	if !d.WasPCMAccessed() && d.PCMChunk == nil {
		if err := d.FwdToPCM(); err != nil {
			return 0, 0, 0, fmt.Errorf("render: %s: locate PCM: %w", filename, err)
		}
	}
	totalBytes := d.PCMLen()
	if totalBytes <= 0 {
		return 0, 0, 0, fmt.Errorf("render: %s: no PCM data", filename)
	}

	frameSize := bytesPerSample * channels
	totalFrames = totalBytes / frameSize
	sampleRate = int64(d.SampleRate)
	seconds = float64(totalFrames) / float64(sampleRate)
	return seconds, sampleRate, totalFrames, nil
}
