package main

import (
	"fmt"
	"os"

	"scorefollow/internal/follower"
	"scorefollow/internal/matcher"
	"scorefollow/internal/midiio"
	"scorefollow/internal/score"
)

// buildFollower loads the score and strategy shared by every subcommand,
// failing fast on a missing --score flag the way the teacher's flag-parsed
// main.go validates required inputs before wiring the rest of the program.
// --config, if set, loads matcher.Params from a JSON file instead of
// DefaultParams; --epsilon applies only when --config is absent, since a
// loaded config's own epsilon is the more specific source of truth.
func buildFollower(flags *rootFlags) (*follower.ScoreFollower, error) {
	if flags.scorePath == "" {
		return nil, fmt.Errorf("--score is required")
	}

	strategy, err := matcher.ParseStrategy(flags.strategy)
	if err != nil {
		return nil, err
	}

	var labels []score.Label
	if flags.labelsPath != "" {
		lf, err := os.Open(flags.labelsPath)
		if err != nil {
			return nil, fmt.Errorf("opening labels file %s: %w", flags.labelsPath, err)
		}
		defer lf.Close()
		labels, err = score.ParseLabels(lf)
		if err != nil {
			return nil, err
		}
	}

	params := matcher.DefaultParams()
	if flags.configPath != "" {
		params, err = matcher.LoadParams(flags.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		params.Epsilon = flags.epsilon
	}

	ces, err := midiio.ScoreFromSMF(flags.scorePath, labels, params.Epsilon)
	if err != nil {
		return nil, err
	}

	f := follower.New(ces, params, strategy)
	if len(labels) > 0 {
		f.SetEpsilonAt(score.EpsilonFromLabels(labels, params.Epsilon))
	}
	return f, nil
}

// performanceNotes resolves either a replayed --perf SMF file or a live
// --live MIDI input into a uniform slice of NoteEvents. Live capture blocks
// until the process receives an interrupt (Ctrl+C), at which point it
// returns whatever notes arrived.
func performanceNotes(flags *rootFlags) ([]midiio.NoteEvent, error) {
	switch {
	case flags.perfPath != "" && flags.livePort != "":
		return nil, fmt.Errorf("--perf and --live are mutually exclusive")
	case flags.perfPath != "":
		return midiio.PerformanceFromSMF(flags.perfPath)
	case flags.livePort != "":
		return captureLive(flags.livePort)
	default:
		return nil, fmt.Errorf("one of --perf or --live is required")
	}
}
