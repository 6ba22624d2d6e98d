package cubes

import (
	"fmt"

	platformcore "github.com/vovakirdan/cube-arcade/internal/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
)

// Layout constants.
const (
	cellW     = 2 // terminal columns per grid cell
	hudHeight = 2 // status line and separator
)

var kindColors = map[core.Kind]platformcore.Color{
	core.White: platformcore.ColorWhite,
	core.Green: platformcore.ColorGreen,
	core.Blue:  platformcore.ColorBlue,
	core.Red:   platformcore.ColorRed,
}

// Covered destinations are drawn with the bright variant of the cube color.
var kindGoalColors = map[core.Kind]platformcore.Color{
	core.White: platformcore.ColorBrightWhite,
	core.Green: platformcore.ColorBrightGreen,
	core.Blue:  platformcore.ColorBrightBlue,
	core.Red:   platformcore.ColorBrightRed,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)
	g.renderControls(dst)

	if g.state == nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-1)
	boardW := g.state.Width()*cellW + 2
	boardH := g.state.Height() + 2
	if boardW > area.W || boardH > area.H {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH+hudHeight+1))
		return
	}

	board := area.Centered(boardW, boardH)
	dst.DrawBox(board, platformcore.ColorGray)
	g.renderBoard(dst, board.X+1, board.Y+1)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "All levels solved!", "R: play again | Q: quit")
	case g.solved:
		g.renderOverlay(dst, "Level solved!", "Enter: next level | R: replay")
	case g.paused:
		g.renderOverlay(dst, "Paused", "P: continue | Esc: levels")
	case g.stuck:
		g.renderOverlay(dst, "No cube left to steer", "Press R to restart")
	}
}

// renderBoard draws destinations, the frozen background and the cubes with
// the board's top-left cell at (ox, oy).
func (g *Game) renderBoard(dst *platformcore.Screen, ox, oy int) {
	goals := make(map[core.Point]bool)
	for _, goal := range g.state.Goals() {
		goals[goal.Point] = true
		if !goal.Covered {
			g.drawCell(dst, ox, oy, goal.Point, 'x', platformcore.ColorYellow)
		}
	}

	snap := g.state.Snapshot()
	active := len(snap.Active())
	for i, u := range snap.Units() {
		if i >= active {
			g.drawCell(dst, ox, oy, u.Position, '█', platformcore.ColorGray)
			continue
		}

		color := kindColors[u.Kind]
		if goals[u.Position] {
			color = kindGoalColors[u.Kind]
		}
		g.drawCell(dst, ox, oy, u.Position, unitRune(u), color)
	}
}

// unitRune shows bumped units with a lighter block.
func unitRune(u core.Unit) rune {
	if u.Constraint == core.Free {
		return '█'
	}
	return '▓'
}

func (g *Game) drawCell(dst *platformcore.Screen, ox, oy int, p core.Point, r rune, c platformcore.Color) {
	for dx := 0; dx < cellW; dx++ {
		dst.SetWithColor(ox+p.X*cellW+dx, oy+p.Y, r, c)
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Cubes"
	if lvl, ok := g.Level(); ok && g.state != nil {
		covered, total := g.state.Progress()
		hud = fmt.Sprintf(" Cubes | %s | Level %d/%d | Goals %d/%d | Tick %d | Moves %d",
			lvl.Title, g.index+1, len(g.levels), covered, total, g.ticks, g.moves)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
	}
}

func (g *Game) renderControls(dst *platformcore.Screen) {
	dst.DrawTextWithColor(0, dst.Height()-1,
		" ←↑↓→/WASD: Move | R: Restart | P: Pause | Q: Quit", platformcore.ColorGray)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).Centered(width, 5)

	dst.DrawRect(box, platformcore.Cell{Rune: ' '})
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
