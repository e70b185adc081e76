package game

// Cell is one square of the board. Marker is meaningful only when Filled.
type Cell[T any] struct {
	Marker T    `json:"marker"`
	Filled bool `json:"filled"`
}

// BoardRow is a single row of cells plus a cached "every cell is filled"
// flag. The flag is only refreshed by Board.CheckFullRows.
type BoardRow[T any] struct {
	full  bool
	cells []Cell[T]
}

// NewBoardRow returns an empty row of the given width.
func NewBoardRow[T any](width int) BoardRow[T] {
	return BoardRow[T]{cells: make([]Cell[T], width)}
}

// IsFull returns the cached full flag.
func (r BoardRow[T]) IsFull() bool {
	return r.full
}

// Cells returns the row's cells. Callers must not modify the slice.
func (r BoardRow[T]) Cells() []Cell[T] {
	return r.cells
}

func (r BoardRow[T]) clone() BoardRow[T] {
	cells := make([]Cell[T], len(r.cells))
	copy(cells, r.cells)
	return BoardRow[T]{full: r.full, cells: cells}
}

// Board is a stack of rows. Index 0 is the bottom row.
type Board[T any] []BoardRow[T]

// NewBoard returns an empty width x height board.
func NewBoard[T any](width, height int) Board[T] {
	board := make(Board[T], height)
	for y := range board {
		board[y] = NewBoardRow[T](width)
	}
	return board
}

// Width returns the number of columns.
func (b Board[T]) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0].cells)
}

// Height returns the number of rows.
func (b Board[T]) Height() int {
	return len(b)
}

// InBounds reports whether (x, y) is a cell of the board.
func (b Board[T]) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width() && y >= 0 && y < b.Height()
}

// Occupied reports whether (x, y) holds a settled block. Out of bounds
// cells are never occupied.
func (b Board[T]) Occupied(x, y int) bool {
	return b.InBounds(x, y) && b[y].cells[x].Filled
}

// Set writes marker into (x, y).
func (b Board[T]) Set(x, y int, marker T) {
	b[y].cells[x] = Cell[T]{Marker: marker, Filled: true}
}

// CheckFullRows refreshes every row's full flag and returns how many rows
// are full.
func (b Board[T]) CheckFullRows() int {
	count := 0
	for y := range b {
		full := true
		for _, c := range b[y].cells {
			if !c.Filled {
				full = false
				break
			}
		}
		b[y].full = full
		if full {
			count++
		}
	}
	return count
}

// BreakRows removes every row flagged full. Surviving rows keep their
// relative order and move down over the removed ones; the rows vacated at
// the top are replaced with empty rows. Returns the number removed.
func (b Board[T]) BreakRows() int {
	width := b.Width()
	write := 0
	for read := range b {
		if b[read].full {
			continue
		}
		if write != read {
			b[write] = b[read]
		}
		write++
	}
	removed := len(b) - write
	for y := write; y < len(b); y++ {
		b[y] = NewBoardRow[T](width)
	}
	return removed
}

// Clone returns a deep copy of b.
func (b Board[T]) Clone() Board[T] {
	out := make(Board[T], len(b))
	for y, row := range b {
		out[y] = row.clone()
	}
	return out
}
