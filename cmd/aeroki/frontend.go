package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	aruntime "github.com/gosuda/aeroki/runtime"
)

type model struct {
	cfg      appConfig
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	width    int
	height   int
	status   string
	running  bool
	events   <-chan any
	pending  *pendingInput
	history  []string
	tail     string
}

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
)

func newModel(cfg appConfig) model {
	ti := textinput.New()
	ti.CharLimit = 4096
	ti.SetValue("")
	return model{
		cfg:      cfg,
		viewport: viewport.New(80, 20),
		input:    ti,
		status:   "starting",
	}
}

func startVM(cfg appConfig) tea.Cmd {
	return func() tea.Msg {
		events := make(chan any, 256)
		go runVM(cfg, events)
		return vmStartedMsg{events: events}
	}
}

func waitVMEvent(events <-chan any) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (m model) Init() tea.Cmd {
	return startVM(m.cfg)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case vmStartedMsg:
		m.events = msg.events
		m.running = true
		m.status = "running"
		return m, waitVMEvent(m.events)

	case vmOutputMsg:
		m.appendOutput(msg.out)
		return m, waitVMEvent(m.events)

	case vmLogMsg:
		m.appendOutput(aruntime.Output{Text: logStyle.Render(msg.text), NewLine: true})
		return m, waitVMEvent(m.events)

	case vmPromptMsg:
		m.pending = &pendingInput{prompt: msg.prompt, source: msg.source, resp: msg.resp}
		m.input.Prompt = msg.prompt
		m.input.SetValue("")
		if msg.source {
			m.status = "ready"
		} else {
			m.status = "input wait"
		}
		m.layout()
		return m, m.input.Focus()

	case vmDoneMsg:
		m.running = false
		m.pending = nil
		m.input.Blur()
		m.layout()
		if msg.err != nil {
			m.status = "failed"
			m.appendOutput(aruntime.Output{Text: errStyle.Render("ข้อผิดพลาด: " + msg.err.Error()), NewLine: true})
		} else {
			m.status = "done"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			if m.pending != nil {
				m.pending.resp <- vmInputResp{}
				m.pending = nil
			}
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.pending != nil {
				return m.answer(vmInputResp{})
			}
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.pending != nil {
			if msg.Type == tea.KeyEnter {
				return m.answer(vmInputResp{value: m.input.Value(), ok: true})
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		if msg.String() == "q" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) answer(resp vmInputResp) (tea.Model, tea.Cmd) {
	m.pending.resp <- resp
	m.pending = nil
	m.input.Blur()
	m.input.SetValue("")
	m.status = "running"
	m.layout()
	m.viewport.GotoBottom()
	return m, waitVMEvent(m.events)
}

func (m model) bodyHeight() int {
	h := m.height - 2
	if m.pending != nil {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	title := "aeroki"
	if m.cfg.file != "" {
		title += " " + m.cfg.file
	}
	parts := []string{statusStyle.Render(title + " | " + m.status)}

	parts = append(parts, m.viewport.View())

	if m.pending != nil {
		parts = append(parts, inputStyle.Render(m.input.View()))
	}
	parts = append(parts, logStyle.Render("pgup/pgdn scroll, ctrl+d end of input, ctrl+c quit"))
	return strings.Join(parts, "\n")
}

// layout gives the scrollback whatever height the fixed rows leave.
func (m *model) layout() {
	follow := m.viewport.AtBottom()
	m.viewport.Width = m.width
	m.viewport.Height = m.bodyHeight()
	m.setContent(follow)
}

// refresh rewraps the scrollback. A view pinned to the bottom follows new
// output; a scrolled-back view stays where it is.
func (m *model) refresh() {
	m.setContent(m.viewport.AtBottom())
}

func (m *model) setContent(follow bool) {
	m.viewport.SetContent(strings.Join(wrapRows(m.lines(), m.width), "\n"))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *model) appendOutput(out aruntime.Output) {
	if out.NewLine {
		m.history = append(m.history, m.tail+out.Text)
		m.tail = ""
	} else {
		m.tail += out.Text
	}
	m.refresh()
}

func (m model) lines() []string {
	if m.tail == "" {
		return m.history
	}
	return append(append([]string(nil), m.history...), m.tail)
}

// wrapRows splits logical lines into screen rows by display width, so
// Thai combining marks and wide runes take the columns they occupy.
func wrapRows(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		if runewidth.StringWidth(line) <= width {
			rows = append(rows, line)
			continue
		}
		rows = append(rows, strings.Split(runewidth.Wrap(line, width), "\n")...)
	}
	return rows
}
