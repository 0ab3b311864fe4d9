package universe

import "strings"

//glyphs used by Render
const (
	AliveGlyph = "◼"
	DeadGlyph  = "◻"
)

//Render draws the grid as height newline-terminated lines of width glyphs
func (u *Universe) Render() string {
	return u.RenderWith(AliveGlyph, DeadGlyph)
}

//String implements fmt.Stringer
func (u *Universe) String() string {
	return u.Render()
}

//RenderWith draws the grid using the given fillers for alive and dead cells
func (u *Universe) RenderWith(alive string, dead string) string {
	var b strings.Builder
	b.Grow(u.height * (u.width*len(dead) + 1))
	for row := 0; row < u.height; row++ {
		for _, c := range u.cells[row*u.width : (row+1)*u.width] {
			if c == Alive {
				b.WriteString(alive)
			} else {
				b.WriteString(dead)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
