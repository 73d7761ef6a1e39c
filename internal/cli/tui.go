package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	"github.com/matzehuels/gridlayout/pkg/pipeline"
	"github.com/matzehuels/gridlayout/pkg/render/gridtext"
)

// Watch styles
var (
	watchLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	watchBarStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	watchBestStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

const (
	watchBarWidth  = 30
	watchTableRows = 8
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// stepMsg carries one annealing step into the watch model.
type stepMsg anneal.Step

// doneMsg reports the end of the run.
type doneMsg struct {
	result *pipeline.Result
	err    error
}

// levelRow summarizes a finished temperature level.
type levelRow struct {
	level       int
	temperature float64
	current     int
	best        int
	accepted    int
}

// =============================================================================
// WatchModel - Live annealing view
// =============================================================================

// WatchModel is the bubbletea model for the live annealing view.
type WatchModel struct {
	Nodes      int
	Width      int
	Height     int
	Levels     int // expected number of temperature levels
	Iterations int // candidates per level

	Step     anneal.Step
	Rows     []levelRow
	Result   *pipeline.Result
	Err      error
	Done     bool
	Quitting bool
	IDs      bool

	accepted int
	cancel   context.CancelFunc
}

// NewWatchModel creates a watch model for a run with defaulted options.
func NewWatchModel(nodes int, opts pipeline.Options, cancel context.CancelFunc) WatchModel {
	return WatchModel{
		Nodes:      nodes,
		Width:      opts.Width,
		Height:     opts.Height,
		Levels:     opts.Anneal.Levels(),
		Iterations: opts.Anneal.Iterations,
		IDs:        opts.IDs,
		cancel:     cancel,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Stop the annealer; the program exits once it reports back.
			m.Quitting = true
			if m.cancel != nil {
				m.cancel()
			}
		}
	case stepMsg:
		s := anneal.Step(msg)
		m.Step = s
		if s.State != anneal.StateAnnealing {
			return m, nil
		}
		if s.Accepted {
			m.accepted++
		}
		if s.Iteration == m.Iterations {
			m.Rows = append(m.Rows, levelRow{
				level:       s.Level,
				temperature: s.Temperature,
				current:     s.Current,
				best:        s.Best,
				accepted:    m.accepted,
			})
			m.accepted = 0
		}
	case doneMsg:
		m.Done = true
		m.Result = msg.result
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Annealing"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d nodes on %dx%d", m.Nodes, m.Width, m.Height)))
	b.WriteString("\n\n")

	b.WriteString(watchLabelStyle.Render("State") + StyleValue.Render(m.Step.State.String()) + "\n")
	b.WriteString(watchLabelStyle.Render("Level") + m.progressBar() + "\n")
	b.WriteString(watchLabelStyle.Render("Temperature") + StyleNumber.Render(fmt.Sprintf("%.3f", m.Step.Temperature)) + "\n")
	b.WriteString(watchLabelStyle.Render("Current") + StyleValue.Render(strconv.Itoa(m.Step.Current)) + "\n")
	b.WriteString(watchLabelStyle.Render("Best") + watchBestStyle.Render(strconv.Itoa(m.Step.Best)) + "\n")
	if len(m.Rows) > 0 {
		b.WriteString(watchLabelStyle.Render("Best/level") + watchBarStyle.Render(sparkline(m.bestByLevel())) + "\n")
	}
	b.WriteString("\n")

	if len(m.Rows) > 0 {
		b.WriteString(m.levelTable())
		b.WriteString("\n")
	}

	if m.Done && m.Result != nil {
		b.WriteString("\n")
		b.WriteString(gridtext.Render(m.Result.Layout, gridtext.Options{IDs: m.IDs}))
	}

	switch {
	case m.Quitting:
		b.WriteString(StyleWarning.Render("stopping..."))
	case !m.Done:
		b.WriteString(StyleDim.Render("q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m WatchModel) progressBar() string {
	done := len(m.Rows)
	total := max(m.Levels, done, 1)
	filled := done * watchBarWidth / total
	bar := watchBarStyle.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", watchBarWidth-filled))
	return bar + StyleDim.Render(fmt.Sprintf(" %d/%d", done, total))
}

func (m WatchModel) bestByLevel() []int {
	out := make([]int, len(m.Rows))
	for i, r := range m.Rows {
		out[i] = r.best
	}
	return out
}

// levelTable shows the most recent levels.
func (m WatchModel) levelTable() string {
	start := max(0, len(m.Rows)-watchTableRows)
	rows := make([][]string, 0, len(m.Rows)-start)
	for _, r := range m.Rows[start:] {
		rate := 0.0
		if m.Iterations > 0 {
			rate = float64(r.accepted) / float64(m.Iterations) * 100
		}
		rows = append(rows, []string{
			strconv.Itoa(r.level),
			fmt.Sprintf("%.3f", r.temperature),
			strconv.Itoa(r.current),
			strconv.Itoa(r.best),
			fmt.Sprintf("%.0f%%", rate),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Level", "T", "Current", "Best", "Accepted").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	return t.Render()
}

// sparkline draws values as block characters scaled between their min and max.
func sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = (v - lo) * (len(sparkBlocks) - 1) / (hi - lo)
		}
		b.WriteRune(sparkBlocks[i])
	}
	return b.String()
}
