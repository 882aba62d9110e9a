package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"estlint/internal/driver"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	statusStyles = map[string]lipgloss.Style{
		"done":     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"error":    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"cached":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"loading":  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"decoding": lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"linting":  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
)

// fileRow is one line of the progress list.
type fileRow struct {
	path   string
	status string
	stage  driver.Stage
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	rowOf   map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file check
// progress. The initial file list may be empty: the driver announces every
// file with a queued event before the workers start, and unknown paths are
// appended as they appear.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rowOf:   make(map[string]int, len(files)),
		width:   80,
	}
	for _, file := range files {
		m.rowOf[file] = len(m.rows)
		m.rows = append(m.rows, fileRow{path: file, status: "queued"})
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.nextEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-16, 20)
	for _, row := range m.rows {
		style, ok := statusStyles[row.status]
		if !ok {
			style = defaultStyle
		}
		fmt.Fprintf(&b, "  %s %s\n",
			style.Render(fmt.Sprintf("%12s", row.status)),
			truncate(row.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) header() string {
	if m.done {
		return "done: " + m.title
	}
	return m.spinner.View() + " " + m.title
}

// nextEvent blocks on the driver channel; a closed channel ends the UI.
func (m *progressModel) nextEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	idx, ok := m.rowOf[ev.File]
	if !ok {
		idx = len(m.rows)
		m.rowOf[ev.File] = idx
		m.rows = append(m.rows, fileRow{path: ev.File, status: "queued"})
	}
	if label := statusLabel(ev.Stage, ev.Status); label != "" {
		m.rows[idx].status = label
		m.rows[idx].stage = ev.Stage
	}
	return m.bar.SetPercent(m.completion())
}

// completion считает долю готовности: завершённые файлы дают 1.0,
// остальные — вес своей стадии.
func (m *progressModel) completion() float64 {
	total := 0.0
	for _, row := range m.rows {
		switch row.status {
		case "done", "error", "cached":
			total += 1.0
		default:
			total += stageWeight(row.stage)
		}
	}
	return total / float64(len(m.rows))
}

func stageWeight(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageDecode:
		return 0.45
	case driver.StageLint:
		return 0.8
	}
	return 0
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusDone:
		return "done"
	case driver.StatusError:
		return "error"
	case driver.StatusCached:
		return "cached"
	case driver.StatusWorking:
		switch stage {
		case driver.StageLoad:
			return "loading"
		case driver.StageDecode:
			return "decoding"
		case driver.StageLint:
			return "linting"
		}
	}
	return ""
}

// truncate укорачивает путь до width колонок с учётом ширины рун.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
