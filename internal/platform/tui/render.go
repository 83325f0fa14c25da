package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// hudStyle is applied to the status line below the world.
var hudStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57"))

// Glyphs used for scene elements.
const (
	glyphBody     = '█'
	glyphObstacle = '▓'
	glyphOutside  = '·'
)

// RenderScreen converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(renderRow(s, y))
	}
	return sb.String()
}

func renderRow(s *core.Screen, y int) string {
	var sb strings.Builder
	x := 0
	for x < s.Width() {
		color := s.GetCell(x, y).Color

		var run strings.Builder
		for ; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
		}

		style, ok := colorStyles[color]
		if !ok {
			style = colorStyles[core.ColorDefault]
		}
		sb.WriteString(style.Render(run.String()))
	}
	return sb.String()
}

// Viewport returns the part of the world visible on a screen of the given
// size, leaving the last row for the HUD.
func Viewport(w *sim.World, screenW, screenH int) core.Rect {
	cam := sim.Camera{W: screenW, H: core.Max(screenH-1, 0)}
	target := w.Bounds
	if p := w.PlayerBody(); p != nil {
		target = p.Bounds()
	}
	return cam.Follow(target, w.Bounds)
}

// DrawWorld draws the visible part of the world into dst. The view origin
// maps to screen (0, 0).
func DrawWorld(dst *core.Screen, f sim.Frame, view core.Rect) {
	w := f.World

	for sy := 0; sy < view.H; sy++ {
		for sx := 0; sx < view.W; sx++ {
			if !w.Bounds.Contains(view.X+sx, view.Y+sy) {
				dst.SetCell(sx, sy, glyphOutside, core.ColorOutside)
			}
		}
	}

	for _, o := range w.Obstacles {
		drawShape(dst, o, view, glyphObstacle, core.ColorObstacle)
	}

	for i, b := range w.Bodies {
		color := core.ColorBody
		if i == w.Player {
			color = core.ColorPlayer
		}
		if i < len(f.Moves) && (f.Moves[i].BlockedX || f.Moves[i].BlockedY) {
			color = core.ColorBlocked
		}
		drawShape(dst, b.Shape(), view, glyphBody, color)
	}
}

// drawShape draws s translated by the view origin.
func drawShape(dst *core.Screen, s core.Shape, view core.Rect, fill rune, color core.Color) {
	switch v := s.(type) {
	case core.Rect:
		dst.DrawRect(core.NewRect(v.X-view.X, v.Y-view.Y, v.W, v.H), fill, color)
	case core.Circle:
		dst.DrawCircle(core.NewCircle(v.X-view.X, v.Y-view.Y, v.R), fill, color)
	case core.Silhouette:
		for _, box := range v.Boxes() {
			dst.DrawRect(core.NewRect(box.X-view.X, box.Y-view.Y, box.W, box.H), fill, color)
		}
	}
}

// HUDText returns the status line for a frame.
func HUDText(f sim.Frame) string {
	parts := []string{f.World.Title}

	if p := f.World.PlayerBody(); p != nil {
		x, y := p.Position()
		vx, vy := p.Velocity()
		parts = append(parts,
			fmt.Sprintf("pos %d,%d", x, y),
			fmt.Sprintf("vel %+d,%+d", vx, vy),
		)
	}

	parts = append(parts, formatRunTime(f.RunTime))
	if f.Capped {
		parts = append(parts, fmt.Sprintf("%d fps", f.FPS))
	} else {
		parts = append(parts, "uncapped")
	}
	if avg, ok := averageFPS(f); ok {
		parts = append(parts, fmt.Sprintf("avg %.1f fps", avg))
	}
	if f.Paused {
		parts = append(parts, "PAUSED")
	}
	parts = append(parts, fmt.Sprintf("frame %d", f.Number))

	return " " + strings.Join(parts, " | ")
}

// averageFPS is the measured frame rate so far. Not defined before any run
// time has passed.
func averageFPS(f sim.Frame) (float64, bool) {
	secs := f.RunTime.Seconds()
	if secs <= 0 {
		return 0, false
	}
	return float64(f.Number) / secs, true
}

func formatRunTime(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// RenderFrame draws a frame onto dst and returns the styled output,
// world rows followed by the HUD.
func RenderFrame(dst *core.Screen, f sim.Frame) string {
	dst.Clear()
	view := Viewport(f.World, dst.Width(), dst.Height())
	DrawWorld(dst, f, view)

	hud := HUDText(f)
	if n := len([]rune(hud)); n < dst.Width() {
		hud += strings.Repeat(" ", dst.Width()-n)
	} else {
		hud = string([]rune(hud)[:dst.Width()])
	}
	dst.DrawText(0, view.H, hud)

	var sb strings.Builder
	for y := range view.H {
		sb.WriteString(renderRow(dst, y))
		sb.WriteRune('\n')
	}
	sb.WriteString(hudStyle.Render(hud))
	return sb.String()
}
