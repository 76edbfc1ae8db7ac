package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/ignitiongo/ignition/internal/component"
	"gopkg.in/yaml.v3"
)

// ShapeEntry is one drawable template in shapes.yaml.
type ShapeEntry struct {
	Name     string       `yaml:"name"`
	Glyph    string       `yaml:"glyph"`
	Color    string       `yaml:"color"`
	Vertices [][2]float64 `yaml:"vertices"`
	Indices  []uint16     `yaml:"indices"`
}

// ShapeTable provides lookup of shape templates by name.
type ShapeTable struct {
	shapes map[string]*ShapeEntry
}

// LoadShapeTable loads shapes.yaml.
func LoadShapeTable(path string) (*ShapeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shape list: %w", err)
	}
	return ParseShapeTable(raw)
}

func ParseShapeTable(raw []byte) (*ShapeTable, error) {
	var entries []ShapeEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse shape list: %w", err)
	}
	t := &ShapeTable{
		shapes: make(map[string]*ShapeEntry, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("shape %d (%q): %w", i, e.Name, err)
		}
		if _, dup := t.shapes[e.Name]; dup {
			return nil, fmt.Errorf("shape %q defined twice", e.Name)
		}
		t.shapes[e.Name] = e
	}
	return t, nil
}

func (e *ShapeEntry) validate() error {
	if e.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(e.Vertices) == 0 {
		return fmt.Errorf("no vertices")
	}
	if len(e.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(e.Indices))
	}
	for _, idx := range e.Indices {
		if int(idx) >= len(e.Vertices) {
			return fmt.Errorf("index %d out of range (%d vertices)", idx, len(e.Vertices))
		}
	}
	return nil
}

// Get returns the shape with the given name, or nil if none.
func (t *ShapeTable) Get(name string) *ShapeEntry {
	return t.shapes[name]
}

// Count returns the total number of shapes loaded.
func (t *ShapeTable) Count() int {
	return len(t.shapes)
}

// Names returns every shape name, sorted.
func (t *ShapeTable) Names() []string {
	names := make([]string, 0, len(t.shapes))
	for n := range t.shapes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Drawable builds a fresh component from the template, shifted by offset.
// Vertex and index slices are copied so entities never share backing arrays.
func (e *ShapeEntry) Drawable(offset component.Vec2) component.Drawable {
	verts := make([]component.Vec2, len(e.Vertices))
	for i, v := range e.Vertices {
		verts[i] = component.Vec2{X: v[0], Y: v[1]}
	}
	glyph := '█'
	for _, r := range e.Glyph {
		glyph = r
		break
	}
	color := e.Color
	if color == "" {
		color = "white"
	}
	return component.Drawable{
		Shape:    e.Name,
		Glyph:    glyph,
		Color:    color,
		Vertices: verts,
		Indices:  append([]uint16(nil), e.Indices...),
		Offset:   offset,
	}
}
