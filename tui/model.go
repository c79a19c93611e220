// Package tui is an interactive viewer for Quipper circuit files: the
// source on one side, re-parsed on every edit, and the wire diagram of the
// selected circuit on the other.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"qtermquip/diagram"
	"qtermquip/internal/config"
	"qtermquip/quipper"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusDiagram focus = iota
	focusSource
	focusPicker
)

// horizontal scroll step of the diagram panel, in characters
const scrollStep = 8

// Model represents the TUI application state.
type Model struct {
	path   string
	logger *zap.Logger

	parseOpts   []quipper.Option
	diagramOpts diagram.Options

	editor     textarea.Model
	focus      focus
	width      int
	height     int
	lastSource string
	statusMsg  string // transient status message (e.g. save confirmation)

	// program is the last source that parsed; err is the error of the
	// current source, if any. The diagram keeps showing program while the
	// source is broken.
	program *quipper.Program
	err     error

	selected  int // 0 is the main circuit, i > 0 is subroutine i-1
	scrollRow int
	scrollCol int

	pickerItem int
}

// New returns a model editing source, which is saved back to path.
func New(path, source string, cfg *config.Config, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "Quipper circuit..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.SetValue(source)

	opts := []quipper.Option{quipper.WithFilename(path)}
	if cfg.StrictCalls {
		opts = append(opts, quipper.WithStrictCalls())
	}

	m := Model{
		path:        path,
		logger:      logger,
		parseOpts:   opts,
		diagramOpts: diagram.Options{Color: cfg.Diagram.Color, MaxColumns: cfg.Diagram.MaxColumns},
		editor:      ta,
		focus:       focusDiagram,
	}
	m.reparse()
	return m
}

// Program returns the last successfully parsed program, or nil.
func (m Model) Program() *quipper.Program { return m.program }

// Err returns the error of the current source, or nil.
func (m Model) Err() error { return m.err }

// Selected returns the name of the circuit shown, "" for the main circuit.
func (m Model) Selected() string {
	if m.selected == 0 || m.program == nil {
		return ""
	}
	return m.program.Subroutines[m.selected-1].Name
}

func (m *Model) reparse() {
	text := m.editor.Value()
	if text == m.lastSource && (m.program != nil || m.err != nil) {
		return
	}
	m.lastSource = text

	p, err := quipper.Parse(text, m.parseOpts...)
	if err != nil {
		m.err = err
		m.logger.Debug("reparse failed", zap.String("file", m.path), zap.Error(err))
		return
	}
	m.program, m.err = p, nil
	if m.selected > len(p.Subroutines) {
		m.selected = len(p.Subroutines)
	}
	m.logger.Debug(
		"reparsed",
		zap.String("file", m.path),
		zap.Int("gates", len(p.Circuit.Gates)),
		zap.Int("subroutines", len(p.Subroutines)),
	)
}

// circuitCount is the number of circuits the picker offers.
func (m Model) circuitCount() int {
	if m.program == nil {
		return 0
	}
	return 1 + len(m.program.Subroutines)
}

func (m *Model) selectCircuit(i int) {
	n := m.circuitCount()
	if n == 0 {
		return
	}
	m.selected = (i%n + n) % n
	m.scrollRow, m.scrollCol = 0, 0
}

func (m *Model) save() {
	switch {
	case m.path == "":
		m.statusMsg = "Save error: no file name"
	case m.err != nil:
		m.statusMsg = "Save error: source does not parse"
	default:
		text := quipper.Render(m.program)
		if err := os.WriteFile(m.path, []byte(text), 0644); err != nil {
			m.statusMsg = fmt.Sprintf("Save error: %v", err)
			m.logger.Warn("save failed", zap.String("file", m.path), zap.Error(err))
			return
		}
		m.editor.SetValue(text)
		m.lastSource = text
		m.statusMsg = "Saved " + m.path
	}
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		sourceW := max(msg.Width/3-6, 20)
		m.editor.SetWidth(sourceW)
		ctrlH := 6
		panelH := msg.Height - ctrlH - 4
		m.editor.SetHeight(max(panelH-4, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusDiagram:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusSource
				cmds = append(cmds, m.editor.Focus())
			case "ctrl+s":
				m.save()
			case "]":
				m.selectCircuit(m.selected + 1)
			case "[":
				m.selectCircuit(m.selected - 1)
			case "c":
				if m.circuitCount() > 0 {
					m.focus = focusPicker
					m.pickerItem = m.selected
				}
			case "up", "k":
				if m.scrollRow > 0 {
					m.scrollRow--
				}
			case "down", "j":
				m.scrollRow++
			case "left", "h":
				m.scrollCol = max(m.scrollCol-scrollStep, 0)
			case "right", "l":
				m.scrollCol += scrollStep
			case "home":
				m.scrollRow, m.scrollCol = 0, 0
			}

		case focusPicker:
			switch key {
			case "esc":
				m.focus = focusDiagram
			case "up", "k":
				if m.pickerItem > 0 {
					m.pickerItem--
				}
			case "down", "j":
				if m.pickerItem < m.circuitCount()-1 {
					m.pickerItem++
				}
			case "enter":
				m.selectCircuit(m.pickerItem)
				m.focus = focusDiagram
			}

		case focusSource:
			switch key {
			case "tab":
				m.focus = focusDiagram
				m.editor.Blur()
			case "ctrl+s":
				m.reparse()
				m.save()
			default:
				var cmd tea.Cmd
				m.editor, cmd = m.editor.Update(msg)
				cmds = append(cmds, cmd)
				m.reparse()
			}
		}
	}

	return m, tea.Batch(cmds...)
}
