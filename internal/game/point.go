package game

import (
	"fmt"
	"math"
)

// alignEpsilon is the tolerance used when snapping a Point to a board cell.
const alignEpsilon = 1e-3

// Point is a position or offset in board space. Row 0 is the bottom row.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// NewPoint returns the point (x, y).
func NewPoint(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of p and o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Cell returns the integer board cell p falls on. Block positions are
// always whole numbers; anything else means a piece was built with offsets
// that do not match its center, so Cell panics.
func (p Point) Cell() (x, y int) {
	return snap(p.X), snap(p.Y)
}

func snap(v float32) int {
	r := math.Round(float64(v))
	if math.Abs(float64(v)-r) > alignEpsilon {
		panic(fmt.Sprintf("game: coordinate %v is not aligned to the cell grid", v))
	}
	return int(r)
}
