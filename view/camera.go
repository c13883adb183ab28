package view

// Camera is a pinhole camera on the +z axis looking toward -z, y up.
// Screen coordinates grow right and down.
type Camera struct {
	Width, Height float64 // Screen size
	CenterX       float64 // World point shown at screen center
	CenterY       float64
	Distance      float64 // Camera distance from the z=0 plane
	Zoom          float64 // Pixels per world unit at z=0
}

// MinZoom bounds zooming out
const MinZoom = 1.0

// nearPlane is the closest depth still drawn
const nearPlane = 0.5

// Project maps a world point to screen space. scale is the pixel size of
// one world unit at that depth. ok is false behind the near plane.
func (c *Camera) Project(x, y, z float64) (sx, sy, scale float64, ok bool) {
	depth := c.Distance - z
	if depth < nearPlane {
		return 0, 0, 0, false
	}
	scale = c.Zoom * c.Distance / depth
	sx = c.Width/2 + (x-c.CenterX)*scale
	sy = c.Height/2 - (y-c.CenterY)*scale
	return sx, sy, scale, true
}

// Unproject returns the point on the z=0 plane under screen position (sx, sy).
func (c *Camera) Unproject(sx, sy float64) (x, y float64) {
	x = c.CenterX + (sx-c.Width/2)/c.Zoom
	y = c.CenterY - (sy-c.Height/2)/c.Zoom
	return x, y
}

// Pan moves the view by a screen-space drag.
func (c *Camera) Pan(dx, dy float64) {
	c.CenterX -= dx / c.Zoom
	c.CenterY += dy / c.Zoom
}

// ZoomBy adjusts zoom, keeping it above MinZoom.
func (c *Camera) ZoomBy(delta float64) {
	c.Zoom += delta
	if c.Zoom < MinZoom {
		c.Zoom = MinZoom
	}
}

// Visible reports whether a circle of radius r at (sx, sy) touches the screen.
func (c *Camera) Visible(sx, sy, r float64) bool {
	return sx >= -r && sx <= c.Width+r && sy >= -r && sy <= c.Height+r
}
