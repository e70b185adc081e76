package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-tetris/internal/game"
)

// stateUpdateMsg carries a new snapshot from the game loop.
type stateUpdateMsg Snapshot

// Model is the Bubbletea model for the terminal game.
type Model struct {
	loop     *game.Loop[lipgloss.Color]
	states   chan Snapshot
	state    *Snapshot
	quitting bool
}

// NewModel creates a model fed by loop. It installs the loop's OnTick
// callback, so it must be called before the loop runs.
func NewModel(loop *game.Loop[lipgloss.Color]) Model {
	states := make(chan Snapshot, 1)
	loop.OnTick(func(s Snapshot) {
		// Keep only the newest snapshot if the UI falls behind.
		select {
		case states <- s:
			return
		default:
		}
		select {
		case <-states:
		default:
		}
		select {
		case states <- s:
		default:
		}
	})

	initial := loop.Snapshot()
	return Model{
		loop:   loop,
		states: states,
		state:  &initial,
	}
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return waitForState(m.states)
}

// Update handles incoming messages (key presses, snapshots).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateUpdateMsg:
		state := Snapshot(msg)
		m.state = &state
		return m, waitForState(m.states)
	}

	return m, nil
}

// View renders the current game state.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		RenderBoard(m.state),
		"  ",
		RenderHUD(m.state),
	) + "\n"
}

// handleKey maps keyboard input onto loop commands.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "left", "a":
		m.loop.Enqueue(game.Move(game.AxisX, -1))
	case "right", "d":
		m.loop.Enqueue(game.Move(game.AxisX, 1))
	case "down", "s":
		m.loop.Enqueue(game.Move(game.AxisY, -1))
	case "up", "w":
		m.loop.Enqueue(game.Rotate(game.Clockwise))
	case "z":
		m.loop.Enqueue(game.Rotate(game.AntiClockwise))
	case "p":
		m.loop.Enqueue(game.TogglePause())
	}

	return m, nil
}

// waitForState returns a Cmd that waits for the next snapshot.
func waitForState(states <-chan Snapshot) tea.Cmd {
	return func() tea.Msg {
		return stateUpdateMsg(<-states)
	}
}
