package view

import (
	"strings"
	"testing"

	"gameoflife/src/simulation"
	"gameoflife/src/universe"
)

func snapshot(width int, height int, alive ...universe.Point) simulation.Snapshot {
	s := simulation.Snapshot{Width: width, Height: height, Cells: make([]universe.Cell, width*height)}
	for _, p := range alive {
		s.Cells[p.Row*width+p.Column] = universe.Alive
	}
	return s
}

func TestDrawField(t *testing.T) {
	s := snapshot(3, 2, universe.Point{Row: 0, Column: 1}, universe.Point{Row: 1, Column: 2})
	if got := drawField(s, 10, 10, "#", "."); got != ".#.\n..#" {
		t.Fatalf("drawField() = %q", got)
	}
}

func TestDrawFieldCrops(t *testing.T) {
	s := snapshot(6, 5, universe.Point{Row: 0, Column: 0})
	got := drawField(s, 4, 3, "#", ".")
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if lines[0] != "#..." || lines[1] != "...." {
		t.Fatalf("unexpected cropped lines %q", lines[:2])
	}
	if lines[2] != cropWarning {
		t.Fatalf("crop warning missing, got %q", lines[2])
	}
}

func TestHelpLine(t *testing.T) {
	ui := &ConsoleUI{}
	line := helpLine(ui.keyBindings())
	for _, want := range []string{"Next step", "Toggle the cell", "Next template"} {
		if !strings.Contains(line, want) {
			t.Fatalf("%q missing from %q", want, line)
		}
	}
}
