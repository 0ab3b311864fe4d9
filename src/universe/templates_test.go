package universe

import "testing"

func TestBuiltins(t *testing.T) {
	tmpls := Builtins()
	if len(tmpls) != 6 {
		t.Fatalf("expected 6 builtins, got %d", len(tmpls))
	}
	for i := 1; i < len(tmpls); i++ {
		if tmpls[i-1].Name >= tmpls[i].Name {
			t.Fatalf("builtins not sorted: %v before %v", tmpls[i-1].Name, tmpls[i].Name)
		}
	}
	if _, ok := Builtin("glider"); !ok {
		t.Fatal("glider missing")
	}
	if _, ok := Builtin("nope"); ok {
		t.Fatal("unknown template found")
	}
}

func TestPeriodTwoOscillators(t *testing.T) {
	for _, tmpl := range []Template{Blinker, Toad, Beacon} {
		t.Run(tmpl.Name, func(t *testing.T) {
			u := newSized(t, 8, 8)
			u.SettleTemplate(tmpl)
			u.Tick()
			if st := u.Tick(); !st.Changed {
				t.Fatal("oscillator did not change")
			}
			expectAlive(t, u, tmpl.Cells...)
		})
	}
}

func TestTemplateBounds(t *testing.T) {
	rows, columns := Glider.Offset(2, 3).Bounds()
	if rows != 5 || columns != 6 {
		t.Fatalf("Bounds() = %d, %d", rows, columns)
	}
	if len(Glider.Cells) != 5 || Glider.Cells[0] != (Point{0, 1}) {
		t.Fatal("Offset modified the original template")
	}
}
