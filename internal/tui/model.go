// Package tui is the terminal surface of the Pomodoro timer, built on
// Bubble Tea. Engine ticks are delivered to the program as RunMsg values so
// every engine call happens on the Update loop.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/palette"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	eventBuffer = 16

	invalidInputNotice = "Invalid Input: Please enter a valid number greater than zero."
)

// Engine is the part of countdown.Engine the terminal drives.
type Engine interface {
	ToggleStart()
	SelectMode(mode model.Mode) error
	SetConfiguredDuration(mode model.Mode, raw string) (countdown.DurationUpdate, error)
	Snapshot() countdown.Snapshot
	Subscribe(buffer int) <-chan countdown.Event
}

// RunMsg carries a scheduled engine callback onto the Update loop.
type RunMsg func()

// Dispatch returns a scheduler dispatch function that sends callbacks to
// the program returned by program. The program is resolved lazily so the
// scheduler can be built before the program exists.
func Dispatch(program func() *tea.Program) func(func()) {
	return func(f func()) {
		if p := program(); p != nil {
			p.Send(RunMsg(f))
		}
	}
}

type eventMsg struct {
	event countdown.Event
}

type eventsClosedMsg struct{}

// Model is the Bubble Tea model of the timer.
type Model struct {
	engine   Engine
	events   <-chan countdown.Event
	logger   *zap.Logger
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	snapshot countdown.Snapshot

	editing  bool
	editMode model.Mode

	notice      string
	noticeIsErr bool

	width  int
	height int
}

// New creates the terminal model for engine.
func New(engine Engine, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := textinput.New()
	input.Placeholder = "minutes"
	input.CharLimit = 12
	input.Width = 12

	return Model{
		engine:   engine,
		events:   engine.Subscribe(eventBuffer),
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		snapshot: engine.Snapshot(),
	}
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan countdown.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: event}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RunMsg:
		msg()
		m.snapshot = m.engine.Snapshot()
		return m, nil
	case eventMsg:
		m.snapshot = m.engine.Snapshot()
		if msg.event.Type == countdown.EventIntervalCompleted {
			m.logger.Debug("interval completed", zap.String("mode", string(msg.event.Mode)))
		}
		return m, waitForEvent(m.events)
	case eventsClosedMsg:
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateTimer(msg)
	}
	return m, nil
}

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.engine.ToggleStart()
		m.notice = ""
	case key.Matches(msg, m.keys.Pomodoro):
		m.selectMode(model.ModePomodoro)
	case key.Matches(msg, m.keys.ShortBreak):
		m.selectMode(model.ModeShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.selectMode(model.ModeLongBreak)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Settings):
		m.editing = true
		m.notice = ""
		m.openEditor(m.snapshot.Mode)
		cmd := m.input.Focus()
		return m, cmd
	}
	m.snapshot = m.engine.Snapshot()
	return m, nil
}

func (m *Model) selectMode(mode model.Mode) {
	if err := m.engine.SelectMode(mode); err != nil {
		m.logger.Warn("select mode failed", zap.String("mode", string(mode)), zap.Error(err))
		return
	}
	m.notice = ""
}

func (m *Model) openEditor(mode model.Mode) {
	m.editMode = mode
	m.input.SetValue(strconv.Itoa(m.snapshot.Durations.Minutes(mode)))
	m.input.CursorEnd()
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor()
		return m, nil
	case key.Matches(msg, m.keys.NextMode):
		m.openEditor(nextMode(m.editMode))
		m.notice = ""
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	update, err := m.engine.SetConfiguredDuration(m.editMode, m.input.Value())
	m.snapshot = m.engine.Snapshot()
	if err != nil {
		m.logger.Info("duration rejected",
			zap.String("mode", string(m.editMode)),
			zap.String("input", m.input.Value()),
			zap.Error(err))
		m.noticeIsErr = true
		if errors.Is(err, model.ErrInvalidDuration) {
			m.notice = invalidInputNotice
		} else {
			m.notice = err.Error()
		}
		return m, nil
	}

	m.input.SetValue(strconv.Itoa(update.Minutes))
	m.noticeIsErr = false
	if update.Clamped {
		m.notice = fmt.Sprintf(
			"Maximum allowed time is %d minutes. Time has been set to %d minutes.",
			model.MaxMinutes, model.MaxMinutes,
		)
	} else {
		m.notice = fmt.Sprintf("%s set to %d minutes.", update.Mode.Label(), update.Minutes)
	}
	m.closeEditor()
	return m, nil
}

func (m *Model) closeEditor() {
	m.editing = false
	m.input.Blur()
}

func nextMode(mode model.Mode) model.Mode {
	modes := model.Modes()
	for i, candidate := range modes {
		if candidate == mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// View renders the timer.
func (m Model) View() string {
	styles := StylesFor(m.snapshot.Mode)

	tabs := make([]string, 0, len(model.Modes()))
	for _, mode := range model.Modes() {
		if mode == m.snapshot.Mode {
			tabs = append(tabs, styles.ActiveTab.Render(mode.Label()))
		} else {
			tabs = append(tabs, styles.Tab.Render(mode.Label()))
		}
	}

	state := "paused"
	if m.snapshot.Running {
		state = "running"
	}

	frame := styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		styles.Timer.Render(m.snapshot.Display),
		styles.State.Render(state),
	))

	sections := []string{frame}
	if m.editing {
		sections = append(sections, "",
			styles.InputLabel.Render(m.editMode.Label()+" minutes:")+" "+m.input.View())
	}
	if m.notice != "" {
		style := styles.Notice
		if m.noticeIsErr {
			style = styles.ErrNotice
		}
		sections = append(sections, "", style.Render(m.notice))
	}
	if m.editing {
		sections = append(sections, "", m.help.View(settingsHelp{keys: m.keys}))
	} else {
		sections = append(sections, "", m.help.View(m.keys))
	}

	content := styles.Root.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
			lipgloss.WithWhitespaceBackground(lipgloss.Color(palette.For(m.snapshot.Mode).Root)))
	}
	return strings.TrimRight(content, "\n")
}
