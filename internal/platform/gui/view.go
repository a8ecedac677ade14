package gui

import (
	"image/color"

	"github.com/vovakirdan/cloudhop/internal/core"
)

// palette maps terminal colors onto RGBA for the window.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {0xdd, 0xdd, 0xdd, 0xff},
	core.ColorRed:           {0xcd, 0x31, 0x31, 0xff},
	core.ColorGreen:         {0x0d, 0xbc, 0x79, 0xff},
	core.ColorYellow:        {0xe5, 0xe5, 0x10, 0xff},
	core.ColorBlue:          {0x24, 0x72, 0xc8, 0xff},
	core.ColorMagenta:       {0xbc, 0x3f, 0xbc, 0xff},
	core.ColorCyan:          {0x11, 0xa8, 0xcd, 0xff},
	core.ColorWhite:         {0xe5, 0xe5, 0xe5, 0xff},
	core.ColorBrightRed:     {0xf1, 0x4c, 0x4c, 0xff},
	core.ColorBrightGreen:   {0x23, 0xd1, 0x8b, 0xff},
	core.ColorBrightYellow:  {0xf5, 0xf5, 0x43, 0xff},
	core.ColorBrightBlue:    {0x3b, 0x8e, 0xea, 0xff},
	core.ColorBrightMagenta: {0xd6, 0x70, 0xd6, 0xff},
	core.ColorBrightCyan:    {0x29, 0xb8, 0xdb, 0xff},
	core.ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:        {0xff, 0x8c, 0x00, 0xff},
	core.ColorGray:          {0x80, 0x80, 0x80, 0xff},
}

var (
	skyColor      = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	cloudColor    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	startColor    = color.RGBA{0xc8, 0xc8, 0xc8, 0xff}
	overlayColor  = color.RGBA{0x00, 0x00, 0x00, 0x99}
	fallbackColor = palette[core.ColorBrightBlue]
)

// rgba returns the window color for c.
func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return fallbackColor
}

// rect is a box in window pixels.
type rect struct {
	X, Y, W, H float32
}

// project shifts a world box by the camera offset and scales it to pixels.
// The logical screen is the world size times scale, so no letterboxing applies.
func project(b core.Box, cameraY, scale float64) rect {
	return rect{
		X: float32(b.X * scale),
		Y: float32((b.Y + cameraY) * scale),
		W: float32(b.W * scale),
		H: float32(b.H * scale),
	}
}

// visible reports whether r overlaps a screen of the given height.
func (r rect) visible(height int) bool {
	return r.Y+r.H >= 0 && r.Y <= float32(height)
}

// keyState reports whether a key was pressed this frame.
type keyState func(k key) bool

// key is a window key the game reacts to.
type key int

const (
	keySpace key = iota
	keyUp
	keyW
	keyR
	keyEnter
	keyP
	keyEscape
	keyQ
)

// readFrame turns this frame's fresh key presses into an input frame.
// It reports quit separately since quitting never reaches the game.
func readFrame(pressed keyState) (core.InputFrame, bool) {
	frame := core.NewInputFrame()
	if pressed(keyEscape) || pressed(keyQ) {
		return frame, true
	}
	if pressed(keySpace) || pressed(keyUp) || pressed(keyW) {
		frame.Set(core.ActionJump)
	}
	if pressed(keyR) || pressed(keyEnter) {
		frame.Set(core.ActionRestart)
	}
	if pressed(keyP) {
		frame.Set(core.ActionPause)
	}
	return frame, false
}
