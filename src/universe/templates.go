package universe

import "sort"

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name  string  //template name
	Descr string  //template descr
	Cells []Point //points to make alive
}

//Offset returns a copy of the template moved by (rows, columns)
func (t Template) Offset(rows int, columns int) Template {
	moved := Template{Name: t.Name, Descr: t.Descr, Cells: make([]Point, len(t.Cells))}
	for i, p := range t.Cells {
		moved.Cells[i] = Point{Row: p.Row + rows, Column: p.Column + columns}
	}
	return moved
}

//Bounds returns the number of rows and columns the template spans from the origin
func (t Template) Bounds() (rows int, columns int) {
	for _, p := range t.Cells {
		if p.Row+1 > rows {
			rows = p.Row + 1
		}
		if p.Column+1 > columns {
			columns = p.Column + 1
		}
	}
	return
}

var (
	Block = Template{
		Name:  "block",
		Descr: "2x2 still life",
		Cells: []Point{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
	}
	Blinker = Template{
		Name:  "blinker",
		Descr: "period 2 oscillator",
		Cells: []Point{{2, 1}, {2, 2}, {2, 3}},
	}
	Toad = Template{
		Name:  "toad",
		Descr: "period 2 oscillator",
		Cells: []Point{{2, 2}, {2, 3}, {2, 4}, {3, 1}, {3, 2}, {3, 3}},
	}
	Beacon = Template{
		Name:  "beacon",
		Descr: "period 2 oscillator",
		Cells: []Point{{1, 1}, {1, 2}, {2, 1}, {3, 4}, {4, 3}, {4, 4}},
	}
	Glider = Template{
		Name:  "glider",
		Descr: "moves one cell diagonally every 4 ticks",
		Cells: []Point{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}
	Sample = Template{
		Name:  "sample",
		Descr: "the test sample with 3 stable patterns",
		Cells: []Point{{1, 1}, {2, 1}, {1, 2}, {2, 2}, {3, 3}, {2, 4}, {3, 4}, {3, 5}},
	}
)

var builtins = map[string]Template{}

func init() {
	for _, t := range []Template{Block, Blinker, Toad, Beacon, Glider, Sample} {
		builtins[t.Name] = t
	}
}

//Builtin returns the built-in template with the given name
func Builtin(name string) (Template, bool) {
	t, ok := builtins[name]
	return t, ok
}

//Builtins returns all built-in templates sorted by name
func Builtins() []Template {
	names := make([]string, 0, len(builtins))
	for k := range builtins {
		names = append(names, k)
	}
	sort.Strings(names)
	tmpls := make([]Template, 0, len(names))
	for _, n := range names {
		tmpls = append(tmpls, builtins[n])
	}
	return tmpls
}
