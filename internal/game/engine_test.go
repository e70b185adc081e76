package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = Palette[string]{"yellow", "cyan", "blue", "orange", "lime", "red", "purple"}

func newTestEngine(t *testing.T) *Engine[string] {
	t.Helper()
	engine, err := NewEngine(DefaultConfig(), testPalette, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return engine
}

// spawn replaces the current piece with catalog entry i.
func spawn(e *Engine[string], i int) {
	e.currentPiece = e.pieceAt(i)
}

func cells(positions []Point) [][2]int {
	out := make([][2]int, len(positions))
	for i, p := range positions {
		x, y := p.Cell()
		out[i] = [2]int{x, y}
	}
	return out
}

type recordingObserver struct {
	settled  []string
	flagged  []int
	cleared  []int
	rejected []string
}

func (r *recordingObserver) PieceSettled(name string) { r.settled = append(r.settled, name) }
func (r *recordingObserver) RowsFlagged(n int)        { r.flagged = append(r.flagged, n) }
func (r *recordingObserver) RowsCleared(n int)        { r.cleared = append(r.cleared, n) }
func (r *recordingObserver) MoveRejected(kind string) { r.rejected = append(r.rejected, kind) }

func TestNewEngine(t *testing.T) {
	engine := newTestEngine(t)

	assert.Equal(t, 10, engine.Width())
	assert.Equal(t, 22, engine.Height())
	assert.Equal(t, uint64(0), engine.Time())
	assert.Len(t, engine.Board(), 22)
	for _, row := range engine.Board() {
		assert.Len(t, row.Cells(), 10)
		assert.False(t, row.IsFull())
	}

	_, clearing := engine.BreakFrame()
	assert.False(t, clearing)

	names := make([]string, 0, 7)
	for _, p := range engine.Pieces() {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, engine.CurrentPiece().Name)
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidDimensions},
		{"zero speed", func(c *Config) { c.GameSpeed = 0 }, ErrInvalidSpeed},
		{"zero break frames", func(c *Config) { c.BreakFrames = 0 }, ErrInvalidBreak},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, ErrInvalidTickRate},
		{"too short for spawn", func(c *Config) { c.Height = 10 }, ErrSpawnOutOfBounds},
		{"too narrow for spawn", func(c *Config) { c.Width = 5 }, ErrSpawnOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			engine, err := NewEngine(config, testPalette, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, engine)
		})
	}
}

func TestPieceAtOutOfCatalog(t *testing.T) {
	engine := newTestEngine(t)
	assert.Panics(t, func() { engine.pieceAt(7) })
	assert.Panics(t, func() { engine.pieceAt(-1) })
}

func TestDoesIntersect(t *testing.T) {
	engine := newTestEngine(t)

	single := func(x, y float32) Piece[string] {
		return Piece[string]{Name: "dot", Center: NewPoint(x, y), Offsets: []Point{NewPoint(0, 0)}}
	}

	assert.True(t, engine.doesIntersect(single(-1, 5)), "x < 0")
	assert.True(t, engine.doesIntersect(single(10, 5)), "x >= width")
	assert.True(t, engine.doesIntersect(single(3, -1)), "y < 0")
	assert.True(t, engine.doesIntersect(single(3, 22)), "y >= height")
	assert.False(t, engine.doesIntersect(single(0, 0)))
	assert.False(t, engine.doesIntersect(single(9, 21)))

	for _, p := range engine.Pieces() {
		assert.False(t, engine.doesIntersect(p), "%s should fit on an empty board", p.Name)
	}

	engine.board.Set(3, 5, "red")
	assert.True(t, engine.doesIntersect(single(3, 5)), "occupied cell")
}

func TestMoveCurrentPiece(t *testing.T) {
	engine := newTestEngine(t)
	spawn(engine, 2) // L: blocks (3,20) (4,20) (5,20) (5,21)

	assert.True(t, engine.MoveCurrentPiece(AxisX, -1))
	assert.True(t, engine.MoveCurrentPiece(AxisX, -1))
	assert.True(t, engine.MoveCurrentPiece(AxisX, -1))
	assert.Equal(t, NewPoint(1, 20), engine.CurrentPiece().Center)

	before := engine.CurrentPiece().Clone()
	assert.False(t, engine.MoveCurrentPiece(AxisX, -1), "left wall")
	assert.Equal(t, before, engine.CurrentPiece())

	assert.True(t, engine.MoveCurrentPiece(AxisY, -1))
	assert.Equal(t, NewPoint(1, 19), engine.CurrentPiece().Center)
}

func TestMoveBlockedBySettledBlock(t *testing.T) {
	engine := newTestEngine(t)
	spawn(engine, 2)
	engine.board.Set(6, 20, "red")

	before := engine.CurrentPiece().Clone()
	assert.False(t, engine.MoveCurrentPiece(AxisX, 1))
	assert.Equal(t, before, engine.CurrentPiece())

	assert.True(t, engine.MoveCurrentPiece(AxisX, -1))
	assert.Equal(t, [][2]int{{2, 20}, {3, 20}, {4, 20}, {4, 21}}, cells(engine.CurrentPiece().BlockPositions()))
}

func TestRotateCurrentPiece(t *testing.T) {
	engine := newTestEngine(t)
	spawn(engine, 6) // T

	engine.RotateCurrentPiece(Clockwise)
	assert.Equal(t, [][2]int{{4, 20}, {4, 21}, {4, 19}, {5, 20}}, cells(engine.CurrentPiece().BlockPositions()))

	engine.RotateCurrentPiece(AntiClockwise)
	assert.Equal(t, engine.pieceAt(6).Offsets, engine.CurrentPiece().Offsets)
}

func TestRotateRefusedWithoutWallKick(t *testing.T) {
	engine := newTestEngine(t)
	observer := &recordingObserver{}
	engine.SetObserver(observer)
	spawn(engine, 1) // Straight lies on row 20, rotating reaches row 22

	before := engine.CurrentPiece().Clone()
	engine.RotateCurrentPiece(Clockwise)
	assert.Equal(t, before, engine.CurrentPiece())
	assert.Equal(t, []string{"rotate_clockwise"}, observer.rejected)

	require.True(t, engine.MoveCurrentPiece(AxisY, -1))
	engine.RotateCurrentPiece(Clockwise)
	assert.Equal(t, [][2]int{{4, 21}, {4, 20}, {4, 19}, {4, 18}}, cells(engine.CurrentPiece().BlockPositions()))
}

func TestGravityCadence(t *testing.T) {
	engine := newTestEngine(t)
	spawn(engine, 2)

	engine.NextFrame()
	assert.Equal(t, NewPoint(4, 19), engine.CurrentPiece().Center, "first tick drops")

	for i := 1; i < engine.Config.GameSpeed; i++ {
		engine.NextFrame()
	}
	assert.Equal(t, NewPoint(4, 19), engine.CurrentPiece().Center)
	assert.Equal(t, uint64(22), engine.Time())

	engine.NextFrame()
	assert.Equal(t, NewPoint(4, 18), engine.CurrentPiece().Center)
}

func TestSettle(t *testing.T) {
	engine := newTestEngine(t)
	observer := &recordingObserver{}
	engine.SetObserver(observer)
	spawn(engine, 2)

	for engine.MoveCurrentPiece(AxisY, -1) {
	}
	assert.Equal(t, NewPoint(4, 0), engine.CurrentPiece().Center)

	engine.NextFrame()

	board := engine.Board()
	for _, c := range [][2]int{{3, 0}, {4, 0}, {5, 0}, {5, 1}} {
		cell := board[c[1]].Cells()[c[0]]
		assert.True(t, cell.Filled, "cell %v", c)
		assert.Equal(t, "blue", cell.Marker)
	}
	assert.False(t, board[0].Cells()[0].Filled)
	assert.Equal(t, []string{"L"}, observer.settled)

	// A fresh piece appears back at a spawn position.
	assert.GreaterOrEqual(t, engine.CurrentPiece().Center.Y, float32(20))
	assert.Equal(t, uint64(1), engine.Time())
}

func TestSettleByGravityOnly(t *testing.T) {
	engine := newTestEngine(t)
	spawn(engine, 0)

	settled := false
	for i := 0; i < 10000 && !settled; i++ {
		engine.NextFrame()
		settled = engine.Board().Occupied(4, 0)
	}
	require.True(t, settled, "square never reached the floor")
	assert.True(t, engine.Board().Occupied(5, 0))
	assert.True(t, engine.Board().Occupied(4, 1))
	assert.True(t, engine.Board().Occupied(5, 1))
}

func TestLineClear(t *testing.T) {
	engine := newTestEngine(t)
	observer := &recordingObserver{}
	engine.SetObserver(observer)
	spawn(engine, 2)

	for x := 0; x < engine.Width(); x++ {
		engine.board.Set(x, 0, "red")
	}
	engine.board.Set(0, 1, "lime")

	engine.NextFrame()
	frame, clearing := engine.BreakFrame()
	require.True(t, clearing)
	assert.Equal(t, 30, frame)
	assert.True(t, engine.Board()[0].IsFull())
	assert.Equal(t, []int{1}, observer.flagged)

	pieceCenter := engine.CurrentPiece().Center
	for i := 0; i < 29; i++ {
		engine.NextFrame()
	}
	frame, clearing = engine.BreakFrame()
	require.True(t, clearing)
	assert.Equal(t, 1, frame)
	assert.True(t, engine.Board()[0].Cells()[5].Filled, "row still present before the last tick")
	assert.Equal(t, pieceCenter, engine.CurrentPiece().Center, "gravity suspended while clearing")
	assert.Equal(t, uint64(1), engine.Time())

	engine.NextFrame()
	_, clearing = engine.BreakFrame()
	assert.False(t, clearing)
	assert.Equal(t, []int{1}, observer.cleared)

	board := engine.Board()
	assert.Equal(t, Cell[string]{Marker: "lime", Filled: true}, board[0].Cells()[0])
	assert.False(t, board[0].Cells()[1].Filled)
	assert.False(t, board[1].Cells()[0].Filled)
	for _, c := range board[engine.Height()-1].Cells() {
		assert.False(t, c.Filled)
	}
}

func TestMovesAcceptedWhileClearing(t *testing.T) {
	engine := newTestEngine(t)
	spawn(engine, 2)
	for x := 0; x < engine.Width(); x++ {
		engine.board.Set(x, 0, "red")
	}
	engine.NextFrame()

	assert.True(t, engine.MoveCurrentPiece(AxisX, 1))
	assert.Equal(t, NewPoint(5, 19), engine.CurrentPiece().Center)
}

func TestReadAccessorsAreIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	engine.board.Set(2, 3, "cyan")

	first := engine.Snapshot()
	second := engine.Snapshot()
	assert.Equal(t, first, second)
	assert.Equal(t, engine.Board(), engine.Board())
	assert.Equal(t, engine.CurrentPiece(), engine.CurrentPiece())
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	engine := newTestEngine(t)
	snap := engine.Snapshot()

	snap.Board.Set(0, 0, "red")
	snap.Piece.Offsets[0] = NewPoint(100, 100)

	assert.False(t, engine.Board().Occupied(0, 0))
	assert.NotEqual(t, NewPoint(100, 100), engine.CurrentPiece().Offsets[0])
}

func TestSeededEnginesAgree(t *testing.T) {
	a, err := NewEngine(DefaultConfig(), testPalette, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := NewEngine(DefaultConfig(), testPalette, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		a.NextFrame()
		b.NextFrame()
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}
