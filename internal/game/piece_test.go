package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointAdd(t *testing.T) {
	assert.Equal(t, NewPoint(5, 19.5), NewPoint(4.5, 20).Add(NewPoint(0.5, -0.5)))
}

func TestPointCell(t *testing.T) {
	x, y := NewPoint(3, 21).Cell()
	assert.Equal(t, 3, x)
	assert.Equal(t, 21, y)

	x, y = NewPoint(4.5, 20.5).Add(NewPoint(-0.5, -0.5)).Cell()
	assert.Equal(t, 4, x)
	assert.Equal(t, 20, y)

	assert.Panics(t, func() { NewPoint(4.5, 20).Cell() })
}

func TestStandardPieces(t *testing.T) {
	pieces := StandardPieces(testPalette)
	require.Len(t, pieces, 7)

	want := []struct {
		name   string
		center Point
		blocks [][2]int
	}{
		{"Square", NewPoint(4.5, 20.5), [][2]int{{4, 21}, {5, 21}, {4, 20}, {5, 20}}},
		{"Straight", NewPoint(4.5, 20.5), [][2]int{{3, 20}, {4, 20}, {5, 20}, {6, 20}}},
		{"L", NewPoint(4, 20), [][2]int{{3, 20}, {4, 20}, {5, 20}, {5, 21}}},
		{"Backwards L", NewPoint(4, 20), [][2]int{{3, 20}, {4, 20}, {5, 20}, {3, 21}}},
		{"S", NewPoint(4, 20), [][2]int{{3, 20}, {4, 20}, {4, 21}, {5, 21}}},
		{"Z", NewPoint(4, 20), [][2]int{{5, 20}, {4, 20}, {4, 21}, {3, 21}}},
		{"T", NewPoint(4, 20), [][2]int{{4, 20}, {3, 20}, {5, 20}, {4, 21}}},
	}

	for i, w := range want {
		p := pieces[i]
		assert.Equal(t, w.name, p.Name)
		assert.Equal(t, w.center, p.Center, p.Name)
		assert.Equal(t, testPalette[i], p.Marker, p.Name)
		assert.Len(t, p.BlockPositions(), 4, p.Name)
		assert.Equal(t, w.blocks, cells(p.BlockPositions()), p.Name)
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, dir := range []Direction{Clockwise, AntiClockwise} {
		for _, p := range StandardPieces(testPalette) {
			original := p.Clone()
			for i := 0; i < 4; i++ {
				p.Rotate(dir)
			}
			for i := range original.Offsets {
				assert.InDelta(t, original.Offsets[i].X, p.Offsets[i].X, 1e-6, "%s %s", p.Name, dir)
				assert.InDelta(t, original.Offsets[i].Y, p.Offsets[i].Y, 1e-6, "%s %s", p.Name, dir)
			}
			assert.Equal(t, original.Center, p.Center)
		}
	}
}

func TestRotateFormula(t *testing.T) {
	p := Piece[string]{Offsets: []Point{NewPoint(1, 2)}}

	cw := p.Clone()
	cw.Rotate(Clockwise)
	assert.Equal(t, NewPoint(2, -1), cw.Offsets[0])

	acw := p.Clone()
	acw.Rotate(AntiClockwise)
	assert.Equal(t, NewPoint(-2, 1), acw.Offsets[0])

	assert.Equal(t, NewPoint(1, 2), p.Offsets[0], "clones rotate independently")
}

func TestCloneDoesNotShareOffsets(t *testing.T) {
	p := StandardPieces(testPalette)[2]
	c := p.Clone()
	c.Offsets[0] = NewPoint(9, 9)
	assert.Equal(t, NewPoint(-1, 0), p.Offsets[0])
}
