package game

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Engine is the rules state machine: it owns the board, the active piece,
// gravity timing and the line-clear countdown. It is not safe for
// concurrent use; Loop adds the locking needed by a ticker goroutine.
type Engine[T any] struct {
	Config Config

	time         uint64
	pieces       []Piece[T]
	currentPiece Piece[T]
	board        Board[T]
	breakFrame   int
	clearing     bool
	rng          *rand.Rand
	observer     Observer
}

// NewEngine creates an engine with an empty board and a random first
// piece. A nil rng is replaced with one seeded from the clock.
func NewEngine[T any](config Config, palette Palette[T], rng *rand.Rand) (*Engine[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	e := &Engine[T]{
		Config:   config,
		pieces:   StandardPieces(palette),
		board:    NewBoard[T](config.Width, config.Height),
		rng:      rng,
		observer: nopObserver{},
	}

	// Spawning is never collision checked later, so every spawn must at
	// least land on the board.
	for _, p := range e.pieces {
		for _, pos := range p.BlockPositions() {
			x, y := pos.Cell()
			if !e.board.InBounds(x, y) {
				return nil, fmt.Errorf("%w: %s at (%d,%d) on %dx%d board",
					ErrSpawnOutOfBounds, p.Name, x, y, config.Width, config.Height)
			}
		}
	}

	e.currentPiece = e.randomPiece()
	return e, nil
}

// SetObserver installs o to receive progress notifications. A nil o
// restores the no-op observer.
func (e *Engine[T]) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// Width returns the board width.
func (e *Engine[T]) Width() int { return e.Config.Width }

// Height returns the board height.
func (e *Engine[T]) Height() int { return e.Config.Height }

// Time returns the number of ticks processed outside the clear animation.
func (e *Engine[T]) Time() uint64 { return e.time }

// CurrentPiece returns the active piece. The returned value shares offset
// storage with the engine and must not be retained across NextFrame.
func (e *Engine[T]) CurrentPiece() Piece[T] { return e.currentPiece }

// Board returns the live board. It must not be retained across NextFrame;
// use Snapshot for a copy.
func (e *Engine[T]) Board() Board[T] { return e.board }

// BreakFrame returns the remaining clear-animation ticks and whether an
// animation is running.
func (e *Engine[T]) BreakFrame() (int, bool) { return e.breakFrame, e.clearing }

// Pieces returns a copy of the piece catalog.
func (e *Engine[T]) Pieces() []Piece[T] {
	out := make([]Piece[T], len(e.pieces))
	for i, p := range e.pieces {
		out[i] = p.Clone()
	}
	return out
}

// pieceAt returns a fresh copy of catalog entry i.
func (e *Engine[T]) pieceAt(i int) Piece[T] {
	if i < 0 || i >= len(e.pieces) {
		panic(fmt.Sprintf("game: piece index %d outside catalog of %d", i, len(e.pieces)))
	}
	return e.pieces[i].Clone()
}

func (e *Engine[T]) randomPiece() Piece[T] {
	return e.pieceAt(e.rng.IntN(len(e.pieces)))
}

// doesIntersect reports whether any block of piece lies off the board or
// on a settled block.
func (e *Engine[T]) doesIntersect(piece Piece[T]) bool {
	for _, pos := range piece.BlockPositions() {
		x, y := pos.Cell()
		if !e.board.InBounds(x, y) || e.board.Occupied(x, y) {
			return true
		}
	}
	return false
}

// MoveCurrentPiece translates the active piece by amount along axis. The
// move is applied only if the destination is free; the result reports
// whether it was.
func (e *Engine[T]) MoveCurrentPiece(axis Axis, amount float32) bool {
	if !e.tryMove(axis, amount) {
		e.observer.MoveRejected("move_" + axis.String())
		return false
	}
	return true
}

func (e *Engine[T]) tryMove(axis Axis, amount float32) bool {
	candidate := e.currentPiece.Clone()
	switch axis {
	case AxisX:
		candidate.Center.X += amount
	case AxisY:
		candidate.Center.Y += amount
	default:
		panic(fmt.Sprintf("game: unknown axis %v", axis))
	}

	if e.doesIntersect(candidate) {
		return false
	}
	e.currentPiece = candidate
	return true
}

// RotateCurrentPiece rotates the active piece if the rotated shape is
// free. There are no wall kicks: a blocked rotation is dropped.
func (e *Engine[T]) RotateCurrentPiece(dir Direction) {
	candidate := e.currentPiece.Clone()
	candidate.Rotate(dir)
	if e.doesIntersect(candidate) {
		e.observer.MoveRejected("rotate_" + dir.String())
		return
	}
	e.currentPiece = candidate
}

// settle writes the active piece into the board and spawns the next one.
// The new piece is not collision checked.
func (e *Engine[T]) settle() {
	for _, pos := range e.currentPiece.BlockPositions() {
		x, y := pos.Cell()
		e.board.Set(x, y, e.currentPiece.Marker)
	}
	e.observer.PieceSettled(e.currentPiece.Name)
	e.currentPiece = e.randomPiece()
}

// NextFrame advances the game by one tick.
//
// While a clear animation is running the countdown is the only thing that
// changes; when it hits zero the full rows are removed. Otherwise gravity
// is applied every GameSpeed ticks, settling the piece if it cannot fall,
// and full rows start a new countdown.
func (e *Engine[T]) NextFrame() {
	if e.clearing {
		e.breakFrame--
		if e.breakFrame <= 0 {
			e.clearing = false
			e.breakFrame = 0
			if n := e.board.BreakRows(); n > 0 {
				e.observer.RowsCleared(n)
			}
		}
		return
	}

	if e.time%uint64(e.Config.GameSpeed) == 0 {
		if !e.tryMove(AxisY, -1) {
			e.settle()
		}
	}

	if n := e.board.CheckFullRows(); n > 0 {
		e.clearing = true
		e.breakFrame = e.Config.BreakFrames
		e.observer.RowsFlagged(n)
	}

	e.time++
}

// Snapshot is a deep copy of the engine state, safe to keep and to read
// from another goroutine.
type Snapshot[T any] struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Time       uint64   `json:"time"`
	Piece      Piece[T] `json:"piece"`
	Board      Board[T] `json:"-"`
	Clearing   bool     `json:"clearing"`
	BreakFrame int      `json:"break_frame"`
	Paused     bool     `json:"paused"`
}

// Snapshot returns a copy of the current state.
func (e *Engine[T]) Snapshot() Snapshot[T] {
	return Snapshot[T]{
		Width:      e.Config.Width,
		Height:     e.Config.Height,
		Time:       e.time,
		Piece:      e.currentPiece.Clone(),
		Board:      e.board.Clone(),
		Clearing:   e.clearing,
		BreakFrame: e.breakFrame,
	}
}
