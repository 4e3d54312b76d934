// Package followertui is a live dashboard for a running score-follow
// session, grounded on the teacher's root TrackerModel (its bubbletea
// wiring in main.go) and views.ViewStyles (its lipgloss color palette).
// Unlike the teacher's many view modes keyed off a ViewMode enum, this
// dashboard has a single screen: the follower's state is always the
// thing worth looking at.
package followertui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scorefollow/internal/follower"
	"scorefollow/internal/matcher"
	"scorefollow/internal/pitchname"
)

// tickFPS follows the teacher's tickWaveform pattern at 15 redraws per
// second (the teacher ticks at 30): a steady UI refresh rate independent
// of when notes actually arrive.
const tickFPS = 15

// NoteMsg is sent into the program each time a performance note arrives,
// from either a live MIDI listener or a replayed SMF feed.
type NoteMsg struct {
	Pitch    int
	PerfTime float64
}

// tickMsg drives the periodic redraw.
type tickMsg struct{}

func tick() tea.Cmd {
	interval := time.Second / tickFPS
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{} })
}

// styles mirrors the teacher's ViewStyles: one struct of lipgloss.Style
// built once per render, not held across frames.
type styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Matched  lipgloss.Style
	Strategy lipgloss.Style
	Error    lipgloss.Style
	Row      lipgloss.Style
}

func getStyles() styles {
	return styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Matched:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Strategy: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Row:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
}

// Model is the bubbletea model for the live dashboard.
type Model struct {
	f        *follower.ScoreFollower
	progress progress.Model

	termWidth  int
	termHeight int

	lastErr     error
	lastMatch   *matcher.MatchReport
	scoreLength int
	quitting    bool
}

// New builds a dashboard model over an already-constructed follower.
// scoreLength is the number of compound events in the score, used to
// render the progress bar's fraction (top row / score length).
func New(f *follower.ScoreFollower, scoreLength int) *Model {
	p := progress.New(progress.WithDefaultGradient())
	p.Width = 40
	return &Model{f: f, scoreLength: scoreLength, progress: p}
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if w := msg.Width - 10; w > 0 {
			m.progress.Width = w
		}
		return m, nil

	case tickMsg:
		return m, tick()

	case NoteMsg:
		report, err := m.f.Feed(msg.Pitch, msg.PerfTime)
		m.lastErr = err
		if report != nil {
			m.lastMatch = report
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) View() string {
	s := getStyles()
	var b strings.Builder

	b.WriteString(s.Header.Render("score follower"))
	b.WriteString("\n\n")

	b.WriteString(s.Label.Render("strategy: "))
	b.WriteString(s.Strategy.Render(m.f.Strategy().String()))
	b.WriteString("\n")

	b.WriteString(s.Label.Render("notes fed: "))
	fmt.Fprintf(&b, "%d\n", m.f.InputCount())

	frac := 0.0
	if m.scoreLength > 0 {
		frac = float64(m.f.TopRow()) / float64(m.scoreLength)
		if frac > 1 {
			frac = 1
		}
	}

	b.WriteString(s.Label.Render("top row:   "))
	b.WriteString(renderConfidence(fmt.Sprintf("%d / %d", m.f.TopRow(), m.scoreLength), frac))
	b.WriteString("\n")

	b.WriteString(s.Label.Render("top score: "))
	fmt.Fprintf(&b, "%d\n", m.f.TopScore())

	if m.scoreLength > 0 {
		b.WriteString(m.progress.ViewAs(frac))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.lastMatch != nil {
		b.WriteString(s.Matched.Render(fmt.Sprintf(
			"last match: row %d, pitch %s, t=%.3fs, score=%d",
			m.lastMatch.Row, pitchname.Name(m.lastMatch.Pitch), m.lastMatch.PerfTime, m.lastMatch.Score,
		)))
		b.WriteString("\n")
	}
	if m.lastErr != nil {
		b.WriteString(s.Error.Render("error: " + m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Label.Render("q to quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
