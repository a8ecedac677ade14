// Package core provides fundamental types and utilities shared by the simulation
// and its front ends. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

import "math"

// Rect is an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is a world-space axis-aligned box. Y grows downward.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// Overlaps reports strict overlap; boxes that only touch do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && b.Right() > o.X && b.Y < o.Bottom() && b.Bottom() > o.Y
}

// Project maps the box into screen cells using per-axis scale and offsets.
// Non-empty boxes always cover at least one cell.
func (b Box) Project(scaleX, scaleY, offX, offY float64) Rect {
	x := int(math.Floor(b.X*scaleX + offX))
	y := int(math.Floor(b.Y*scaleY + offY))
	w := int(math.Round(b.W * scaleX))
	h := int(math.Round(b.H * scaleY))
	if b.W > 0 && w < 1 {
		w = 1
	}
	if b.H > 0 && h < 1 {
		h = 1
	}
	return NewRect(x, y, w, h)
}
