package universe

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"gameoflife/src/timing"
)

//Cell is the state of one grid position
//the numeric values are the byte encoding read by external renderers
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//Toggle flips the cell between Dead and Alive
func (c *Cell) Toggle() {
	if *c == Alive {
		*c = Dead
	} else {
		*c = Alive
	}
}

//IsAlive reports whether the cell is Alive
func (c Cell) IsAlive() bool {
	return c == Alive
}

//Point is a (row, column) grid coordinate
type Point struct {
	Row    int
	Column int
}

//Stats describes the result of one Tick
type Stats struct {
	LiveCells int
	Changed   bool
	Elapsed   time.Duration
}

//default universe dimensions
const (
	DefWidth  = 128
	DefHeight = 128
)

//TickSpan is the timing label of one Tick
const TickSpan = "universe_tick"

//ErrInvalidDimension is returned when a width or height below 1 is requested
var ErrInvalidDimension = errors.New("universe: dimension must be at least 1")

//OutOfRangeError is the panic value for cell access outside the grid
type OutOfRangeError struct {
	Row    int
	Column int
	Width  int
	Height int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("universe: cell (%d, %d) is outside the %dx%d grid", e.Row, e.Column, e.Width, e.Height)
}

//Universe is a toroidal Game of Life grid
//cells are stored row-major: (row, column) lives at row*width + column
//a Universe is owned by a single caller and is not safe for concurrent use
type Universe struct {
	width  int
	height int
	cells  []Cell
	//next generation buffer, swapped with cells on every tick
	next []Cell
	sink timing.Sink
}

//New creates the default 128x128 universe seeded with DefaultSeed
func New() *Universe {
	u := &Universe{width: DefWidth, height: DefHeight, sink: timing.NopSink{}}
	u.cells = make([]Cell, DefWidth*DefHeight)
	u.Fill(DefaultSeed)
	return u
}

//NewSized creates an all-dead universe with the given dimensions
func NewSized(width int, height int) (*Universe, error) {
	if err := checkDimension("width", width); err != nil {
		return nil, err
	}
	if err := checkDimension("height", height); err != nil {
		return nil, err
	}
	return &Universe{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		sink:   timing.NopSink{},
	}, nil
}

//DefaultSeed is the deterministic pattern New starts from
//cell i is alive when i is even or divisible by 7
func DefaultSeed(i int) Cell {
	if i%2 == 0 || i%7 == 0 {
		return Alive
	}
	return Dead
}

//SetTimingSink replaces the sink receiving the tick timing spans
func (u *Universe) SetTimingSink(s timing.Sink) {
	if s == nil {
		s = timing.NopSink{}
	}
	u.sink = s
}

//Width returns the number of columns
func (u *Universe) Width() int {
	return u.width
}

//Height returns the number of rows
func (u *Universe) Height() int {
	return u.height
}

//SetWidth changes the width and resets every cell to Dead
func (u *Universe) SetWidth(width int) error {
	if err := checkDimension("width", width); err != nil {
		return err
	}
	u.width = width
	u.reset()
	return nil
}

//SetHeight changes the height and resets every cell to Dead
func (u *Universe) SetHeight(height int) error {
	if err := checkDimension("height", height); err != nil {
		return err
	}
	u.height = height
	u.reset()
	return nil
}

//Contains reports whether (row, column) is inside the grid
func (u *Universe) Contains(row int, column int) bool {
	return row >= 0 && column >= 0 && row < u.height && column < u.width
}

//Cell returns the state at (row, column)
func (u *Universe) Cell(row int, column int) Cell {
	return u.cells[u.checkedIndex(row, column)]
}

//ToggleCell flips the cell at (row, column), without wrapping
func (u *Universe) ToggleCell(row int, column int) {
	u.cells[u.checkedIndex(row, column)].Toggle()
}

//SetCells makes every listed point Alive, other cells are left as they are
//points are applied in order: a panic on a bad point keeps the earlier ones
func (u *Universe) SetCells(points []Point) {
	for _, p := range points {
		u.cells[u.checkedIndex(p.Row, p.Column)] = Alive
	}
}

//SettleTemplate places the template's points on the grid
func (u *Universe) SettleTemplate(t Template) {
	u.SetCells(t.Cells)
}

//GetCells returns the cell buffer in row-major order
//the slice shares memory with the universe and must be treated as read-only
//it is valid until the next Tick or resize
func (u *Universe) GetCells() []Cell {
	return u.cells
}

//Bytes returns the cell buffer as width*height bytes, 0 for Dead and 1 for Alive
//no copy is made: the view is valid until the next Tick or resize
func (u *Universe) Bytes() []byte {
	if len(u.cells) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&u.cells[0])), len(u.cells))
}

//Fill sets every cell from the per-index function f
func (u *Universe) Fill(f func(i int) Cell) {
	for i := range u.cells {
		u.cells[i] = f(i)
	}
}

//Clear kills all cells
func (u *Universe) Clear() {
	for i := range u.cells {
		u.cells[i] = Dead
	}
}

//LiveCells counts the alive cells
func (u *Universe) LiveCells() int {
	live := 0
	for _, c := range u.cells {
		live += int(c)
	}
	return live
}

//Tick computes the next generation
//every cell is evaluated against the previous generation only
func (u *Universe) Tick() (st Stats) {
	t := timing.Start(TickSpan, u.sink)
	defer func() {
		st.Elapsed = t.Stop()
	}()

	if len(u.next) != len(u.cells) {
		u.next = make([]Cell, len(u.cells))
	}
	for row := 0; row < u.height; row++ {
		for column := 0; column < u.width; column++ {
			idx := u.index(row, column)
			cell := u.cells[idx]
			next := nextState(cell, u.liveNeighborCount(row, column))
			if next == Alive {
				st.LiveCells++
			}
			st.Changed = st.Changed || next != cell
			u.next[idx] = next
		}
	}
	u.cells, u.next = u.next, u.cells
	return
}

//nextState applies the Game of Life rule to a cell with n live neighbours
func nextState(cell Cell, n int) Cell {
	switch {
	case cell == Alive && n < 2:
		return Dead
	case cell == Alive && (n == 2 || n == 3):
		return Alive
	case cell == Alive && n > 3:
		return Dead
	case cell == Dead && n == 3:
		return Alive
	}
	return cell
}

//liveNeighborCount counts the alive cells among the 8 wrapped neighbours
func (u *Universe) liveNeighborCount(row int, column int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			//skip my position
			if dr == 0 && dc == 0 {
				continue
			}
			nr := (row + dr + u.height) % u.height
			nc := (column + dc + u.width) % u.width
			count += int(u.cells[u.index(nr, nc)])
		}
	}
	return count
}

func (u *Universe) index(row int, column int) int {
	return row*u.width + column
}

func (u *Universe) checkedIndex(row int, column int) int {
	if !u.Contains(row, column) {
		panic(&OutOfRangeError{Row: row, Column: column, Width: u.width, Height: u.height})
	}
	return u.index(row, column)
}

//reset allocates a dead buffer for the current dimensions
func (u *Universe) reset() {
	u.cells = make([]Cell, u.width*u.height)
	u.next = nil
}

func checkDimension(name string, v int) error {
	if v < 1 {
		return fmt.Errorf("%w: %s %d", ErrInvalidDimension, name, v)
	}
	return nil
}
