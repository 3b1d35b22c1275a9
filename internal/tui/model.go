// Package tui is the terminal front end: a bubbletea program that owns
// the rendering side of a game session. It feeds raw key and mouse
// input into the dispatcher and publishes cell geometry into the
// spatial index, one batch per update.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pencilmark/pencilmark/internal/board"
	"github.com/pencilmark/pencilmark/internal/game"
	"github.com/pencilmark/pencilmark/internal/index"
	"github.com/pencilmark/pencilmark/internal/keymap"
	"github.com/pencilmark/pencilmark/internal/puzzle"
	"github.com/pencilmark/pencilmark/internal/store"
)

// Options configures a Model.
type Options struct {
	Dispatcher *game.Dispatcher
	Keymap     *keymap.Keymap
	Difficulty puzzle.Difficulty

	// Store and SessionID enable journaling and snapshots; both may be
	// zero for an ephemeral game.
	Store     *store.Store
	SessionID string

	// Seed drives new-puzzle generation. Successive new puzzles
	// increment it, so a fixed seed gives a reproducible run.
	Seed int64
}

// Model is the bubbletea model for a game session.
type Model struct {
	dispatcher *game.Dispatcher
	keymap     *keymap.Keymap
	theme      Theme

	st         *store.Store
	sessionID  string
	difficulty puzzle.Difficulty
	seed       int64

	width    int
	height   int
	dragging bool
	status   string
}

// New builds a model and seeds the spatial index with the initial
// layout.
func New(opts Options) (*Model, error) {
	if opts.Dispatcher == nil {
		return nil, fmt.Errorf("tui: dispatcher is required")
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.Default()
	}
	m := &Model{
		dispatcher: opts.Dispatcher,
		keymap:     km,
		theme:      DefaultTheme(),
		st:         opts.Store,
		sessionID:  opts.SessionID,
		difficulty: opts.Difficulty,
		seed:       opts.Seed,
	}
	if err := m.publishGeometry(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return m, nil
}

// publishGeometry pushes every cell's current box through the
// dispatcher. The layout is static in this front end, but routing it
// through the tick keeps index updates ordered with clicks.
func (m *Model) publishGeometry() error {
	for id := board.ID(0); id < board.Cells; id++ {
		m.dispatcher.Enqueue(game.Event{Type: game.EventTypeGeometry, Geometry: &game.GeometryEvent{
			Cell: id,
			Box:  cellBox(id),
		}})
	}
	return m.dispatcher.ProcessTick()
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "esc" {
		m.persist()
		return m, tea.Quit
	}

	cmd, ok := m.keymap.Resolve(key)
	if !ok {
		return m, nil
	}
	if cmd.Kind == keymap.KindNewPuzzle {
		m.newPuzzle()
		return m, nil
	}

	m.dispatcher.Enqueue(game.Event{Type: game.EventTypeCommand, Command: &cmd})
	m.tick()
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionMotion {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.enqueuePointer(msg, false)
		m.dragging = true
		m.tick()
	case tea.MouseActionMotion:
		if m.dragging {
			m.enqueuePointer(msg, true)
			m.tick()
		}
	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

func (m *Model) enqueuePointer(msg tea.MouseMsg, drag bool) {
	m.dispatcher.Enqueue(game.Event{Type: game.EventTypePointer, Pointer: &game.PointerEvent{
		Pos:   index.Point{X: float64(msg.X), Y: float64(msg.Y)},
		Multi: msg.Shift || msg.Ctrl,
		Drag:  drag,
	}})
}

// tick runs the pending batch and persists the result. Dispatch errors
// surface on the status line instead of crashing the UI.
func (m *Model) tick() {
	m.status = ""
	if err := m.dispatcher.ProcessTick(); err != nil {
		m.status = err.Error()
	}
	m.persist()
}

func (m *Model) persist() {
	if m.st == nil || m.sessionID == "" {
		return
	}
	err := m.st.SaveSnapshot(context.Background(), m.sessionID,
		m.dispatcher.State(), m.dispatcher.Clock().Current())
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	}
}

// newPuzzle deals a fresh board. This is the host-level half of the
// new-puzzle command: the dispatcher ignores it, because a new deal
// also means a new session and journal.
func (m *Model) newPuzzle() {
	m.seed++
	p, _, err := puzzle.Generate(context.Background(), m.seed, m.difficulty)
	if err != nil {
		m.status = fmt.Sprintf("generate failed: %v", err)
		return
	}
	if err := m.dispatcher.State().NewPuzzle(p.Clues, p.Solution); err != nil {
		m.status = fmt.Sprintf("deal failed: %v", err)
		return
	}

	// A fresh deal restarts the logical clock with its session.
	m.dispatcher = game.NewDispatcher(m.dispatcher.State())
	if m.st != nil {
		id, err := m.st.CreateSession(context.Background(), m.difficulty, p.Clues, p.Solution)
		if err != nil {
			m.status = fmt.Sprintf("new session failed: %v", err)
			m.sessionID = ""
			return
		}
		m.sessionID = id
		m.dispatcher.SetJournal(m.st.Journal(context.Background(), id))
	}
	if err := m.publishGeometry(); err != nil {
		m.status = fmt.Sprintf("layout failed: %v", err)
	}
	m.status = fmt.Sprintf("new %s puzzle", m.difficulty)
}

// SessionID returns the active session, if any.
func (m *Model) SessionID() string {
	return m.sessionID
}

// Run starts the program with mouse support enabled.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// DefaultSeed derives a seed for interactive runs.
func DefaultSeed() int64 {
	return time.Now().UnixNano()
}
