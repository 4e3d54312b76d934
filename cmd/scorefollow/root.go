package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags shared by every subcommand, grounded
// on the teacher's top-level flag.FlagSet in main.go (score file, label
// file, debug log) re-expressed as cobra persistent flags.
type rootFlags struct {
	scorePath  string
	labelsPath string
	perfPath   string
	livePort   string
	strategy   string
	epsilon    float64
	debugLog   string
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "scorefollow",
		Short: "Real-time score-following engine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.debugLog != "" {
				f, err := os.OpenFile(flags.debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
				if err != nil {
					log.Printf("could not open debug log %s: %v", flags.debugLog, err)
					return
				}
				log.SetOutput(f)
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.scorePath, "score", "", "Score SMF file (required)")
	cmd.PersistentFlags().StringVar(&flags.labelsPath, "labels", "", "Label stream file (trill/grace/ignore/epsilon)")
	cmd.PersistentFlags().StringVar(&flags.perfPath, "perf", "", "Performance SMF file to replay")
	cmd.PersistentFlags().StringVar(&flags.livePort, "live", "", "Live MIDI input port name (mutually exclusive with --perf)")
	cmd.PersistentFlags().StringVar(&flags.strategy, "strategy", "static", "Matching strategy: static or dynamic")
	cmd.PersistentFlags().Float64Var(&flags.epsilon, "epsilon", 0.075, "Score-note grouping tolerance (seconds)")
	cmd.PersistentFlags().StringVar(&flags.debugLog, "debug", "", "Write debug logs to this file; empty disables logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Load matcher.Params from this JSON file, overriding the defaults it names")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newTUICmd(flags))
	cmd.AddCommand(newRenderCmd(flags))

	return cmd
}
