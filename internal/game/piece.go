package game

import "fmt"

// Piece is a tetromino described by a rotation center and the offset of
// each block from that center.
//
// The marker is an opaque display handle chosen by the presentation layer
// (a color, a texture id). The engine copies it into board cells when the
// piece settles and never inspects it otherwise.
type Piece[T any] struct {
	Name    string  `json:"name"`
	Center  Point   `json:"center"`
	Offsets []Point `json:"offsets"`
	Marker  T       `json:"marker"`
}

// Palette supplies one marker per standard piece, in catalog order:
// Square, Straight, L, Backwards L, S, Z, T.
type Palette[T any] [7]T

// StandardPieces returns the seven standard pieces placed at their spawn
// position near the top of a 10-wide board.
func StandardPieces[T any](palette Palette[T]) []Piece[T] {
	return []Piece[T]{
		{
			Name:    "Square",
			Center:  NewPoint(4.5, 20.5),
			Offsets: points(-0.5, 0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5),
			Marker:  palette[0],
		},
		{
			Name:    "Straight",
			Center:  NewPoint(4.5, 20.5),
			Offsets: points(-1.5, -0.5, -0.5, -0.5, 0.5, -0.5, 1.5, -0.5),
			Marker:  palette[1],
		},
		{
			Name:    "L",
			Center:  NewPoint(4, 20),
			Offsets: points(-1, 0, 0, 0, 1, 0, 1, 1),
			Marker:  palette[2],
		},
		{
			Name:    "Backwards L",
			Center:  NewPoint(4, 20),
			Offsets: points(-1, 0, 0, 0, 1, 0, -1, 1),
			Marker:  palette[3],
		},
		{
			Name:    "S",
			Center:  NewPoint(4, 20),
			Offsets: points(-1, 0, 0, 0, 0, 1, 1, 1),
			Marker:  palette[4],
		},
		{
			Name:    "Z",
			Center:  NewPoint(4, 20),
			Offsets: points(1, 0, 0, 0, 0, 1, -1, 1),
			Marker:  palette[5],
		},
		{
			Name:    "T",
			Center:  NewPoint(4, 20),
			Offsets: points(0, 0, -1, 0, 1, 0, 0, 1),
			Marker:  palette[6],
		},
	}
}

// points builds a slice of Points from x,y pairs.
func points(xy ...float32) []Point {
	if len(xy)%2 != 0 {
		panic(fmt.Sprintf("game: odd coordinate count %d", len(xy)))
	}
	out := make([]Point, 0, len(xy)/2)
	for i := 0; i < len(xy); i += 2 {
		out = append(out, NewPoint(xy[i], xy[i+1]))
	}
	return out
}

// Clone returns a copy of p that shares no offset storage with it.
func (p Piece[T]) Clone() Piece[T] {
	offsets := make([]Point, len(p.Offsets))
	copy(offsets, p.Offsets)
	p.Offsets = offsets
	return p
}

// Rotate turns every offset 90 degrees about the center. It does not check
// the result against any board.
func (p *Piece[T]) Rotate(dir Direction) {
	rotated := make([]Point, len(p.Offsets))
	for i, o := range p.Offsets {
		switch dir {
		case Clockwise:
			rotated[i] = NewPoint(o.Y, -o.X)
		case AntiClockwise:
			rotated[i] = NewPoint(-o.Y, o.X)
		default:
			panic(fmt.Sprintf("game: unknown rotation %v", dir))
		}
	}
	p.Offsets = rotated
}

// BlockPositions returns center+offset for every block, in offset order.
func (p Piece[T]) BlockPositions() []Point {
	positions := make([]Point, len(p.Offsets))
	for i, o := range p.Offsets {
		positions[i] = p.Center.Add(o)
	}
	return positions
}
