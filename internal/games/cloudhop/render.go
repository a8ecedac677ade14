package cloudhop

import (
	"fmt"

	"github.com/vovakirdan/cloudhop/internal/core"
)

// Visual characters for rendering
const (
	CloudChar      = '▒'
	StartCloudChar = '▓'
	WallChar       = '│'
)

// viewport maps world coordinates into terminal cells.
type viewport struct {
	scaleX, scaleY float64
	offX, offY     float64
	cameraY        float64
}

// newViewport fits the world into the screen below a one-row HUD.
// Terminal cells are about twice as tall as wide, so x gets double scale.
func newViewport(worldW, worldH float64, screenW, screenH int, cameraY float64) viewport {
	rows := float64(max(1, screenH-1))
	scaleY := rows / worldH
	scaleX := scaleY * 2
	if worldW*scaleX > float64(screenW) {
		scaleX = float64(screenW) / worldW
		scaleY = scaleX / 2
	}
	return viewport{
		scaleX:  scaleX,
		scaleY:  scaleY,
		offX:    (float64(screenW) - worldW*scaleX) / 2,
		offY:    1,
		cameraY: cameraY,
	}
}

// project maps a world box, shifted by the camera, into cells.
func (v viewport) project(b core.Box) core.Rect {
	b.Y += v.cameraY
	return b.Project(v.scaleX, v.scaleY, v.offX, v.offY)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w := g.cfg.World
	v := newViewport(w.Width, w.Height, dst.Width(), dst.Height(), g.camera.Y)

	// Draw side walls around the play field
	left := int(v.offX) - 1
	right := int(v.offX + w.Width*v.scaleX)
	for y := 1; y < dst.Height(); y++ {
		dst.SetColored(left, y, WallChar, core.ColorGray)
		dst.SetColored(right, y, WallChar, core.ColorGray)
	}

	dst.FillRect(v.project(g.start), StartCloudChar, core.ColorGray)

	for _, p := range g.platforms {
		if p.Active {
			dst.FillRect(v.project(p.Box), CloudChar, core.ColorBrightWhite)
		}
	}

	g.drawPlayer(dst, v.project(g.player.Box))

	// Draw HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.score), core.ColorBrightWhite)
	best := fmt.Sprintf(" Best: %d ", g.best)
	dst.DrawTextColored(dst.Width()-len(best)-2, 0, best, core.ColorYellow)

	switch {
	case g.phase == PhaseWaiting:
		dst.DrawTextCentered(dst.Height()-2, "Press SPACE to start")
	case g.phase == PhaseGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  Best: %d  |  R to restart", g.score, g.best))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawPlayer fills the hitbox with the skin and puts its glyph in the middle.
func (g *Game) drawPlayer(dst *core.Screen, r core.Rect) {
	dst.FillRect(r, g.skin.Fill, g.skin.Color)
	dst.SetColored(r.X+r.W/2, r.Y+r.H/2, g.skin.Glyph, g.skin.Color)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
