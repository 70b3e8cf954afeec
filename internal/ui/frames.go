package ui

import (
	"fmt"
	"strings"

	"github.com/bnema/wlptr/internal/pointer"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg delivers a flushed pointer frame to the program
type FrameMsg pointer.Frame

// StatusMsg replaces the status line
type StatusMsg string

// DoneMsg reports that the event source stopped
type DoneMsg struct {
	Err error
}

// header, status, separator and controls
const chromeHeight = 5

// FramesModel shows the most recent pointer frames
type FramesModel struct {
	frames  []pointer.Frame
	history int
	total   uint64
	status  string
	err     error

	viewport viewport.Model
	spinner  spinner.Model
	width    int
	ready    bool
}

// NewFramesModel creates a model keeping at most history frames
func NewFramesModel(history int) *FramesModel {
	if history < 1 {
		history = 1
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &FramesModel{
		history:  history,
		status:   "Waiting for pointer frames",
		spinner:  s,
		viewport: viewport.New(80, 20),
		width:    80,
	}
}

// Frames returns the retained frames, oldest first
func (m *FramesModel) Frames() []pointer.Frame {
	return m.frames
}

// Total returns how many frames were received
func (m *FramesModel) Total() uint64 {
	return m.total
}

// Err returns the error reported by DoneMsg
func (m *FramesModel) Err() error {
	return m.err
}

func (m *FramesModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *FramesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.frames = nil
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.ready = true
		m.refresh()
		return m, nil

	case FrameMsg:
		m.total++
		m.frames = append(m.frames, pointer.Frame(msg))
		if len(m.frames) > m.history {
			m.frames = m.frames[len(m.frames)-m.history:]
		}
		m.refresh()
		return m, nil

	case StatusMsg:
		m.status = string(msg)
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *FramesModel) refresh() {
	lines := make([]string, len(m.frames))
	for i, f := range m.frames {
		lines[i] = FormatFrame(f)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m *FramesModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("wlptr"))
	b.WriteString(" ")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d frames", m.total)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
	} else if len(m.frames) == 0 {
		b.WriteString(m.spinner.View() + " " + SubtleStyle.Render(m.status))
	} else {
		b.WriteString(SubtleStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(CreateSeparator(m.width, "─"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(FormatControl("q", "quit") + "  " + FormatControl("c", "clear") + "  " + FormatControl("↑/↓", "scroll"))

	return b.String()
}
