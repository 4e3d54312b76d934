package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"scorefollow/internal/followertui"
)

func newTUICmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Feed a performance against the score with a live dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildFollower(root)
			if err != nil {
				return err
			}

			notes, err := performanceNotes(root)
			if err != nil {
				return err
			}

			m := followertui.New(f, f.ScoreLength())
			p := tea.NewProgram(m, tea.WithAltScreen())

			go func() {
				for _, n := range notes {
					p.Send(followertui.NoteMsg{Pitch: n.Pitch, PerfTime: n.Time})
					time.Sleep(5 * time.Millisecond)
				}
			}()

			_, err = p.Run()
			return err
		},
	}
	return cmd
}
