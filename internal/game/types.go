package game

import (
	"errors"
	"fmt"
)

// Axis selects the component of a piece's center that a move translates.
type Axis int

const (
	AxisX Axis = iota // Horizontal
	AxisY             // Vertical, positive is up
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Direction is a rotation sense.
type Direction int

const (
	Clockwise Direction = iota
	AntiClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case AntiClockwise:
		return "anticlockwise"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ActionType represents the type of player command.
type ActionType int

const (
	ActionMove ActionType = iota
	ActionRotate
	ActionTogglePause
)

// Action represents a discrete input command delivered to a Loop.
type Action struct {
	Type      ActionType
	Axis      Axis      // Only relevant for ActionMove
	Amount    float32   // Only relevant for ActionMove
	Direction Direction // Only relevant for ActionRotate
}

// Move returns an ActionMove command.
func Move(axis Axis, amount float32) Action {
	return Action{Type: ActionMove, Axis: axis, Amount: amount}
}

// Rotate returns an ActionRotate command.
func Rotate(dir Direction) Action {
	return Action{Type: ActionRotate, Direction: dir}
}

// TogglePause returns an ActionTogglePause command.
func TogglePause() Action {
	return Action{Type: ActionTogglePause}
}

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrInvalidSpeed      = errors.New("game speed must be positive")
	ErrInvalidBreak      = errors.New("break frames must be positive")
	ErrInvalidTickRate   = errors.New("tick rate must be positive")
	ErrSpawnOutOfBounds  = errors.New("piece spawns outside the board")
)

// Config holds the construction-time parameters of a game.
type Config struct {
	Width       int `json:"width" yaml:"width"`
	Height      int `json:"height" yaml:"height"`
	GameSpeed   int `json:"game_speed" yaml:"game_speed"`     // Ticks between automatic descents
	BreakFrames int `json:"break_frames" yaml:"break_frames"` // Length of the clear animation in ticks
	TickRate    int `json:"tick_rate" yaml:"tick_rate"`       // Ticks per second, used by Loop
}

// DefaultConfig returns the reference configuration: a 10x22 board that
// drops the piece every 22 ticks and flashes full rows for 30 ticks.
func DefaultConfig() Config {
	return Config{
		Width:       10,
		Height:      22,
		GameSpeed:   22,
		BreakFrames: 30,
		TickRate:    60,
	}
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.GameSpeed <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, c.GameSpeed)
	}
	if c.BreakFrames <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBreak, c.BreakFrames)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTickRate, c.TickRate)
	}
	return nil
}

// Observer receives notifications about engine progress. Implementations
// must not call back into the engine.
type Observer interface {
	PieceSettled(name string)
	RowsFlagged(count int)
	RowsCleared(count int)
	MoveRejected(kind string)
}

type nopObserver struct{}

func (nopObserver) PieceSettled(string) {}
func (nopObserver) RowsFlagged(int)     {}
func (nopObserver) RowsCleared(int)     {}
func (nopObserver) MoveRejected(string) {}
