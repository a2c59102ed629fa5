// Package tui provides the Bubble Tea reading interface.
package tui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bheadmaster/fastread/internal/model"
	"github.com/bheadmaster/fastread/internal/pace"
	"github.com/bheadmaster/fastread/internal/window"
)

// tickMsg is an expired advance deadline. seq identifies the command
// generation the deadline was armed for; stale ticks are dropped.
type tickMsg struct {
	seq int
	at  time.Time
}

// InterruptMsg ends the session the same way a termination signal does.
type InterruptMsg struct{}

// StopReason says how a reading session ended.
type StopReason int

const (
	// StopQuit is a user-initiated quit.
	StopQuit StopReason = iota
	// StopInterrupt is Ctrl+C or a termination signal.
	StopInterrupt
)

// Outcome summarizes a finished session for the exit reporter and history.
type Outcome struct {
	Reason     StopReason
	StartedAt  time.Time
	EndedAt    time.Time
	StartIndex int
	LastIndex  int
	TotalWords int
	WordsRead  int
	SpeedWPM   int
}

// Model implements the Bubble Tea reading UI.
type Model struct {
	engine *pace.Engine
	win    *window.Window
	cfg    model.Config
	debug  *log.Logger

	width  int
	height int

	seq        int
	startedAt  time.Time
	startIndex int
	outcome    Outcome
	done       bool
}

// NewModel constructs a reading TUI model over the window and engine. The
// debug logger may be nil.
func NewModel(win *window.Window, engine *pace.Engine, cfg model.Config, debug *log.Logger) *Model {
	cursor, _ := win.Progress()
	return &Model{
		engine:     engine,
		win:        win,
		cfg:        cfg,
		debug:      debug,
		startedAt:  time.Now(),
		startIndex: cursor,
	}
}

// Outcome returns the session summary. Meaningful once the program has quit.
func (m *Model) Outcome() Outcome {
	return m.outcome
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cursor, total := m.win.Progress()
	m.debugf("session start: cursor=%d total=%d speed=%d chunk=%d", cursor, total, m.engine.Speed(), m.cfg.ChunkSize)
	return m.scheduleTick()
}

// scheduleTick arms the advance deadline for the current engine state.
// Paused and frozen arm nothing; the next key is the only wakeup.
func (m *Model) scheduleTick() tea.Cmd {
	timeout, ok := m.engine.PollTimeout()
	if !ok {
		return nil
	}
	seq := m.seq
	return tea.Tick(timeout, func(t time.Time) tea.Msg {
		return tickMsg{seq: seq, at: t}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.engine.Tick(msg.at)
		return m, m.scheduleTick()
	case InterruptMsg:
		return m.stop(StopInterrupt)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.stop(StopInterrupt)
	}

	// Any key interrupts the poll: bank the elapsed fraction of the interval
	// and restart the per-word clock, recognized command or not. Deadlines
	// armed before this moment are stale.
	now := time.Now()
	m.engine.Keystroke(now)
	m.seq++

	switch msg.String() {
	case "q":
		return m.stop(StopQuit)
	case " ", "p":
		m.engine.TogglePause(now)
		m.debugf("pause toggled: state=%s cursor=%d", stateText(m.engine.State()), m.cursor())
	case "up", "k", "+":
		m.engine.SpeedUp()
		m.debugf("speed: %d", m.engine.Speed())
	case "down", "j", "-":
		m.engine.SpeedDown()
		m.debugf("speed: %d", m.engine.Speed())
	case "right", "l":
		m.engine.StepForward()
	case "left", "h":
		m.engine.StepBackward()
	}
	return m, m.scheduleTick()
}

func (m *Model) stop(reason StopReason) (tea.Model, tea.Cmd) {
	if !m.done {
		m.done = true
		cursor, total := m.win.Progress()
		m.outcome = Outcome{
			Reason:     reason,
			StartedAt:  m.startedAt,
			EndedAt:    time.Now(),
			StartIndex: m.startIndex,
			LastIndex:  cursor,
			TotalWords: total,
			WordsRead:  m.win.Moves() + 1,
			SpeedWPM:   m.engine.Speed(),
		}
		m.debugf("session end: reason=%d cursor=%d words=%d", reason, cursor, m.outcome.WordsRead)
	}
	return m, tea.Quit
}

func (m *Model) cursor() int {
	cursor, _ := m.win.Progress()
	return cursor
}

func (m *Model) debugf(format string, args ...any) {
	if m.debug != nil {
		m.debug.Printf(format, args...)
	}
}
