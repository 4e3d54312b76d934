package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scorefollow/internal/render"
)

func newRenderCmd(root *rootFlags) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Feed a performance against the score and render a click-track WAV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return fmt.Errorf("--out is required")
			}

			f, err := buildFollower(root)
			if err != nil {
				return err
			}

			notes, err := performanceNotes(root)
			if err != nil {
				return err
			}

			for _, n := range notes {
				if _, err := f.Feed(n.Pitch, n.Time); err != nil {
					return fmt.Errorf("feeding pitch=%d t=%.3f: %w", n.Pitch, n.Time, err)
				}
			}

			if err := render.RenderClickTrack(outPath, f.Reports()); err != nil {
				return err
			}
			fmt.Printf("wrote %s: %d matches\n", outPath, len(f.Reports()))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output WAV path (required)")
	return cmd
}
