package core

// Info describes a level.
type Info struct {
	Title  string
	Author string
}

// Size is the grid size of a level.
type Size struct {
	Width  int
	Height int
}

// Command is the scripted motion of a cube.
type Command struct {
	Loop  bool
	Steps []Step
}

// CubeSeed is one cube of a level. A nil Command means the cube never moves
// on its own.
type CubeSeed struct {
	Kind    Kind
	Body    []Point
	Command *Command
}

// Seed is a parsed level, trusted to be geometrically well formed.
type Seed struct {
	Info         Info
	Size         Size
	Cubes        []CubeSeed
	Destinations []Point
}

// Motion returns the motion described by the cube's command.
func (c CubeSeed) Motion() Motion {
	if c.Command == nil {
		return Still()
	}
	return Script(c.Command.Loop, c.Command.Steps)
}
