package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/ignitiongo/ignition/internal/component"
	"golang.org/x/text/width"
)

// Presenter draws Drawables onto a terminal screen. Shapes are given in
// normalised device coordinates and rasterised into character cells.
type Presenter struct {
	screen tcell.Screen
	bg     tcell.Style
	status bool
}

func NewPresenter(screen tcell.Screen, background string, status bool) *Presenter {
	bg := tcell.StyleDefault.Background(tcell.GetColor(background))
	return &Presenter{screen: screen, bg: bg, status: status}
}

func (p *Presenter) Screen() tcell.Screen { return p.screen }

func (p *Presenter) Size() (int, int) { return p.screen.Size() }

// Begin clears the back buffer for a new frame.
func (p *Presenter) Begin() {
	p.screen.Fill(' ', p.bg)
}

// Show flushes the frame to the terminal.
func (p *Presenter) Show() {
	p.screen.Show()
}

// Resize repaints everything after the terminal changed size.
func (p *Presenter) Resize() {
	p.screen.Sync()
}

// DrawShape rasterises d and returns the number of cells it covered.
func (p *Presenter) DrawShape(d *component.Drawable) int {
	w, h := p.screen.Size()
	if p.status {
		h--
	}
	if w <= 0 || h <= 0 {
		return 0
	}
	style := p.bg.Foreground(tcell.GetColor(d.Color))
	glyph := d.Glyph
	if glyph == 0 {
		glyph = '█'
	}

	tris := Triangles(d)
	if len(tris) == 0 {
		n := 0
		for _, v := range d.Vertices {
			x, y := toCell(add(v, d.Offset), w, h)
			if x >= 0 && x < w && y >= 0 && y < h {
				p.screen.SetContent(x, y, glyph, nil, style)
				n++
			}
		}
		return n
	}

	n := 0
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := toNDC(col, row, w, h)
			for _, t := range tris {
				if contains(t, c) {
					p.screen.SetContent(col, row, glyph, nil, style)
					n++
					break
				}
			}
		}
	}
	return n
}

// DrawStatus writes text on the bottom row, accounting for wide runes.
func (p *Presenter) DrawStatus(text string) {
	if !p.status {
		return
	}
	w, h := p.screen.Size()
	if h <= 0 {
		return
	}
	style := p.bg.Foreground(tcell.ColorGray)
	x := 0
	for _, r := range text {
		cw := cellWidth(r)
		if x+cw > w {
			break
		}
		p.screen.SetContent(x, h-1, r, nil, style)
		x += cw
	}
}

// Triangles returns the shape's triangles with the offset applied: the
// index list when present, otherwise a fan around the first vertex.
func Triangles(d *component.Drawable) [][3]component.Vec2 {
	v := d.Vertices
	var out [][3]component.Vec2
	if len(d.Indices) > 0 {
		for i := 0; i+2 < len(d.Indices); i += 3 {
			a, b, c := int(d.Indices[i]), int(d.Indices[i+1]), int(d.Indices[i+2])
			if a >= len(v) || b >= len(v) || c >= len(v) {
				continue
			}
			out = append(out, [3]component.Vec2{add(v[a], d.Offset), add(v[b], d.Offset), add(v[c], d.Offset)})
		}
		return out
	}
	for i := 1; i+1 < len(v); i++ {
		out = append(out, [3]component.Vec2{add(v[0], d.Offset), add(v[i], d.Offset), add(v[i+1], d.Offset)})
	}
	return out
}

func cellWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

func add(a, b component.Vec2) component.Vec2 {
	return component.Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

// toNDC maps the centre of a cell to device coordinates.
func toNDC(col, row, w, h int) component.Vec2 {
	return component.Vec2{
		X: (float64(col)+0.5)/float64(w)*2 - 1,
		Y: 1 - (float64(row)+0.5)/float64(h)*2,
	}
}

func toCell(v component.Vec2, w, h int) (int, int) {
	x := int(math.Floor((v.X + 1) / 2 * float64(w)))
	y := int(math.Floor((1 - v.Y) / 2 * float64(h)))
	return x, y
}

func edge(a, b, c component.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// contains accepts either winding order.
func contains(t [3]component.Vec2, p component.Vec2) bool {
	if edge(t[0], t[1], t[2]) == 0 {
		return false
	}
	d1 := edge(t[0], t[1], p)
	d2 := edge(t[1], t[2], p)
	d3 := edge(t[2], t[0], p)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}
