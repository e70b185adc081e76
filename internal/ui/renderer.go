package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-tetris/internal/game"
)

// Snapshot is the engine state as seen by the terminal frontend, with
// lipgloss colors as cell markers.
type Snapshot = game.Snapshot[lipgloss.Color]

// DefaultPalette returns the piece colors in catalog order.
func DefaultPalette() game.Palette[lipgloss.Color] {
	return game.Palette[lipgloss.Color]{
		lipgloss.Color("#ffff00"), // Square, yellow
		lipgloss.Color("#00ffff"), // Straight, cyan
		lipgloss.Color("#0000ff"), // L, blue
		lipgloss.Color("#ff4500"), // Backwards L, orange red
		lipgloss.Color("#00ff00"), // S, lime
		lipgloss.Color("#ff0000"), // Z, red
		lipgloss.Color("#800080"), // T, purple
	}
}

const (
	blockGlyph = "██"
	flashGlyph = "▓▓"
	emptyGlyph = "  "
)

var (
	emptyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#000000"))

	flashStyles = [2]lipgloss.Style{
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#000000")),
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#ffffff")),
	}

	boardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#444466"))

	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44aaff")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// RenderBoard draws the board with the active piece on top. Row 0 is the
// bottom line of the output.
func RenderBoard(state *Snapshot) string {
	if state == nil || len(state.Board) == 0 {
		return "Waiting for game state..."
	}

	pieceCells := make(map[[2]int]lipgloss.Color, len(state.Piece.Offsets))
	for _, pos := range state.Piece.BlockPositions() {
		x, y := pos.Cell()
		pieceCells[[2]int{x, y}] = state.Piece.Marker
	}

	rows := make([]string, 0, len(state.Board))
	for y := len(state.Board) - 1; y >= 0; y-- {
		row := state.Board[y]
		if state.Clearing && row.IsFull() {
			rows = append(rows, renderFlash(len(row.Cells()), state.BreakFrame))
			continue
		}

		var b strings.Builder
		for x, cell := range row.Cells() {
			if color, ok := pieceCells[[2]int{x, y}]; ok {
				b.WriteString(renderBlock(color))
				continue
			}
			if cell.Filled {
				b.WriteString(renderBlock(cell.Marker))
				continue
			}
			b.WriteString(emptyStyle.Render(emptyGlyph))
		}
		rows = append(rows, b.String())
	}

	return boardBorderStyle.Render(strings.Join(rows, "\n"))
}

// renderFlash draws a full row in the color the countdown parity selects.
func renderFlash(width, breakFrame int) string {
	style := flashStyles[breakFrame%2]
	return style.Render(strings.Repeat(flashGlyph, width))
}

func renderBlock(color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Foreground(color).
		Background(color).
		Render(blockGlyph)
}

// RenderHUD renders the side panel with the piece, frame and status.
func RenderHUD(state *Snapshot) string {
	if state == nil {
		return ""
	}

	var parts []string
	parts = append(parts, titleStyle.Render("TETRIS"))
	parts = append(parts, "")

	switch {
	case state.Paused:
		parts = append(parts, statusStyle.Render("PAUSED"))
	case state.Clearing:
		parts = append(parts, statusStyle.Render(fmt.Sprintf("CLEARING %d", state.BreakFrame)))
	default:
		parts = append(parts, statusStyle.Render("PLAYING"))
	}
	parts = append(parts, "")
	parts = append(parts, fmt.Sprintf("Piece: %s", state.Piece.Name))
	parts = append(parts, fmt.Sprintf("Frame: %d", state.Time))
	parts = append(parts, "")
	parts = append(parts, helpStyle.Render("←/→: Move | ↑: Rotate | Z: Rotate back"))
	parts = append(parts, helpStyle.Render("↓: Drop one | P: Pause | Q: Quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}
