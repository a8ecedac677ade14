package cloudhop

// Camera is the vertical scroll offset added to world y when drawing.
type Camera struct {
	Y         float64
	TargetY   float64
	Smoothing float64 // Fraction of the remaining distance covered per tick
}

// Update moves the offset toward target by the smoothing fraction.
// It never snaps and never overshoots for smoothing in (0,1).
func (c *Camera) Update(target float64) {
	c.TargetY = target
	c.Y += (c.TargetY - c.Y) * c.Smoothing
}

// Reset zeroes the offset and target.
func (c *Camera) Reset() {
	c.Y = 0
	c.TargetY = 0
}

// cameraTarget keeps the view one level below the occupied platform.
func cameraTarget(levelHeight float64, level int, onMoving bool) float64 {
	if !onMoving {
		return 0
	}
	return levelHeight * float64(max(0, level-1))
}
