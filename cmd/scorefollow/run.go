package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scorefollow/internal/broadcast"
	"scorefollow/internal/diagnostics"
	"scorefollow/internal/pitchname"
)

// runFlags configures the non-interactive feed: replay or live input,
// matched against the score, with optional OSC broadcast and a JSON-lines
// diagnostic log (the teacher's equivalent is its --debug flag feeding
// internal/storage's autosave, here feeding internal/diagnostics instead).
type runFlags struct {
	oscHost  string
	oscPort  int
	diagPath string
	noOSC    bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{oscHost: "127.0.0.1", oscPort: 57120}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Feed a performance against the score and print each match",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildFollower(root)
			if err != nil {
				return err
			}

			var diag *diagnostics.Writer
			if flags.diagPath != "" {
				diag, err = diagnostics.NewFileWriter(flags.diagPath)
				if err != nil {
					return err
				}
				defer diag.Close()
				f.SetDebugSink(diag)
			}

			var reporter *broadcast.OSCReporter
			if !flags.noOSC {
				reporter = broadcast.NewOSCReporter(flags.oscHost, flags.oscPort)
			}

			notes, err := performanceNotes(root)
			if err != nil {
				return err
			}

			for _, n := range notes {
				report, err := f.Feed(n.Pitch, n.Time)
				if err != nil {
					return fmt.Errorf("feeding pitch=%d t=%.3f: %w", n.Pitch, n.Time, err)
				}
				if report == nil {
					continue
				}
				fmt.Printf("row=%-4d pitch=%-4s t=%7.3fs score=%d\n",
					report.Row, pitchname.Name(report.Pitch), report.PerfTime, report.Score)
				if reporter != nil {
					reporter.Report(*report)
				}
			}

			fmt.Printf("done: %d notes fed, top row %d, top score %d\n", f.InputCount(), f.TopRow(), f.TopScore())
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.oscHost, "osc-host", "127.0.0.1", "OSC broadcast host")
	cmd.Flags().IntVar(&flags.oscPort, "osc-port", 57120, "OSC broadcast port")
	cmd.Flags().StringVar(&flags.diagPath, "diagnostics", "", "Write a gzipped JSON-lines diagnostic log to this path")
	cmd.Flags().BoolVar(&flags.noOSC, "no-osc", false, "Disable OSC broadcast")

	return cmd
}
