// Package formats parses level files into engine seeds.
package formats

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

// Document is the decoded form shared by every level encoding.
type Document struct {
	Info DocInfo `toml:"info" yaml:"info" json:"info"`
	Map  DocMap  `toml:"map" yaml:"map" json:"map"`
}

// DocInfo holds level metadata.
type DocInfo struct {
	Title  string `toml:"title" yaml:"title" json:"title"`
	Author string `toml:"author" yaml:"author" json:"author,omitempty"`
}

// DocMap holds the drawn map and the scripted commands bound to its cubes.
type DocMap struct {
	Raw      string       `toml:"raw" yaml:"raw" json:"raw"`
	Commands []DocCommand `toml:"commands" yaml:"commands" json:"commands,omitempty"`
}

// DocCommand is a movement script bound to the cubes at the given cells.
type DocCommand struct {
	Content string   `toml:"content" yaml:"content" json:"content"`
	IsLoop  bool     `toml:"is_loop" yaml:"is_loop" json:"is_loop,omitempty"`
	Binding [][2]int `toml:"binding" yaml:"binding" json:"binding,omitempty"`
}

// Level is a parsed level ready for use.
type Level struct {
	Title  string
	Author string
	Seed   core.Seed
}

// Build checks the document and converts it into a level.
func (d Document) Build() (Level, error) {
	if strings.TrimSpace(d.Info.Title) == "" {
		return Level{}, ParseError{Code: CodeMissingField, Message: "missing field 'info.title'"}
	}
	if d.Map.Raw == "" {
		return Level{}, ParseError{Code: CodeMissingField, Message: "missing field 'map.raw'"}
	}

	b := newMapBuilder()
	for y, line := range strings.Split(strings.TrimSuffix(d.Map.Raw, "\n"), "\n") {
		if err := b.row(y, strings.TrimSuffix(line, "\r")); err != nil {
			return Level{}, err
		}
	}

	for i, c := range d.Map.Commands {
		cmd, err := ParseCommand(c.Content, c.IsLoop)
		if err != nil {
			if pe, ok := err.(ParseError); ok {
				pe.Line = i + 1
				err = pe
			}
			return Level{}, err
		}
		for _, at := range c.Binding {
			if err := b.bind(at[0], at[1], cmd); err != nil {
				return Level{}, err
			}
		}
	}

	seed := b.seed()
	seed.Info = core.Info{Title: d.Info.Title, Author: d.Info.Author}
	return Level{Title: d.Info.Title, Author: d.Info.Author, Seed: seed}, nil
}

// ParseCommand parses a movement script such as "L2U1" or "3R".
// Letters I, L, D, U and R add one tick of that movement, repeating the
// previous letter extends it, and a number extends the previous entry to that
// many ticks. A leading number is an idle pause. Zero-length entries are dropped.
func ParseCommand(content string, loop bool) (core.Command, error) {
	var steps []core.Step
	digits := ""
	flush := func() {
		if digits == "" {
			return
		}
		n, _ := strconv.Atoi(digits)
		digits = ""
		if len(steps) == 0 {
			steps = append(steps, core.Step{Movement: core.Idle, Count: n})
			return
		}
		steps[len(steps)-1].Count += n - 1
	}

	for i, r := range content {
		if r >= '0' && r <= '9' {
			digits += string(r)
			continue
		}
		m, ok := movementMarker(r)
		if !ok {
			return core.Command{}, errorAt(CodeInvalidMovement, 0, i+1, "expect movement string, but get '%c'", r)
		}
		flush()
		if n := len(steps); n > 0 && steps[n-1].Movement == m {
			steps[n-1].Count++
		} else {
			steps = append(steps, core.Step{Movement: m, Count: 1})
		}
	}
	flush()

	kept := steps[:0]
	for _, s := range steps {
		if s.Count > 0 {
			kept = append(kept, s)
		}
	}
	return core.Command{Loop: loop, Steps: kept}, nil
}

func movementMarker(r rune) (core.Movement, bool) {
	switch r {
	case 'I':
		return core.Idle, true
	case 'L':
		return core.Left, true
	case 'D':
		return core.Down, true
	case 'U':
		return core.Up, true
	case 'R':
		return core.Right, true
	}
	return core.Idle, false
}

// mapBuilder turns map markers into cubes. grid records, per drawn cell, the
// index of the cube occupying it or -1.
type mapBuilder struct {
	cubes        []core.CubeSeed
	destinations []core.Point
	grid         [][]int
	width        int
}

func newMapBuilder() *mapBuilder {
	return &mapBuilder{}
}

func (b *mapBuilder) at(x, y int) int {
	if y < 0 || y >= len(b.grid) || x < 0 || x >= len(b.grid[y]) {
		return -1
	}
	return b.grid[y][x]
}

func (b *mapBuilder) row(y int, line string) error {
	b.grid = append(b.grid, nil)
	x := 0
	for _, r := range line {
		p := core.P(x, y)
		cell := -1
		switch r {
		case 'W', 'R', 'B', 'G':
			kind, _ := core.ParseKind(string(r))
			cell = len(b.cubes)
			b.cubes = append(b.cubes, core.CubeSeed{Kind: kind, Body: []core.Point{p}})
		case 'x':
			b.destinations = append(b.destinations, p)
		case ' ':
		case '~':
			cell = b.at(x-1, y)
			if cell < 0 {
				return errorAt(CodeUncopiable, y+1, x+1, "expect copiable element at (%d, %d)", x-1, y)
			}
			b.extend(cell, p)
		case '|':
			cell = b.at(x, y-1)
			if cell < 0 {
				return errorAt(CodeUncopiable, y+1, x+1, "expect copiable element at (%d, %d)", x, y-1)
			}
			b.extend(cell, p)
		case '/':
			merged, err := b.join(x, y)
			if err != nil {
				return err
			}
			cell = merged
			b.extend(cell, p)
		default:
			return errorAt(CodeInvalidMarker, y+1, x+1, "expect map marker string, but get '%c'", r)
		}
		b.grid[y] = append(b.grid[y], cell)
		x++
	}
	b.width = max(b.width, x)
	return nil
}

func (b *mapBuilder) extend(cell int, p core.Point) {
	b.cubes[cell].Body = append(b.cubes[cell].Body, p)
}

// join merges the cubes above and to the left of (x, y) into the one with
// the lower index and returns it.
func (b *mapBuilder) join(x, y int) (int, error) {
	upper, left := b.at(x, y-1), b.at(x-1, y)
	if upper < 0 || left < 0 || b.cubes[upper].Kind != b.cubes[left].Kind {
		return -1, errorAt(CodeUnmergeable, y+1, x+1,
			"expect mergeable elements at (%d, %d) and (%d, %d)", x, y-1, x-1, y)
	}
	if upper == left {
		return upper, nil
	}

	keep, drop := min(upper, left), max(upper, left)
	for _, p := range b.cubes[drop].Body {
		b.grid[p.Y][p.X] = keep
	}
	b.cubes[keep].Body = append(b.cubes[keep].Body, b.cubes[drop].Body...)
	b.cubes[drop].Body = nil
	return keep, nil
}

func (b *mapBuilder) bind(x, y int, cmd core.Command) error {
	cell := b.at(x, y)
	if cell < 0 {
		return errorAt(CodeInvalidLocation, 0, 0, "expect a valid location, but get (%d, %d)", x, y)
	}
	c := cmd
	c.Steps = append([]core.Step(nil), cmd.Steps...)
	b.cubes[cell].Command = &c
	return nil
}

func (b *mapBuilder) seed() core.Seed {
	var cubes []core.CubeSeed
	for _, c := range b.cubes {
		if len(c.Body) > 0 {
			cubes = append(cubes, c)
		}
	}
	return core.Seed{
		Size:         core.Size{Width: b.width, Height: len(b.grid)},
		Cubes:        cubes,
		Destinations: b.destinations,
	}
}
