package raster

import "math"

// near is the closest view depth a point may have and still be drawn.
const near = 0.1

// Camera sits on the +Z axis at Distance, looking at the origin with +Y up.
type Camera struct {
	Distance      float64
	FOVDeg        float64 // vertical field of view
	Width, Height int
}

func (c Camera) focal() float64 {
	return float64(c.Height) * 0.5 / math.Tan(c.FOVDeg*math.Pi/360)
}

// Project maps a world point to pixel coordinates. ok is false for points
// behind the near plane.
func (c Camera) Project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	depth = c.Distance - z
	if depth < near {
		return 0, 0, depth, false
	}
	f := c.focal() / depth
	sx = float64(c.Width)*0.5 + x*f
	sy = float64(c.Height)*0.5 - y*f
	return sx, sy, depth, true
}

// PointPixels is the on-screen size of a point of world size `size` at depth,
// attenuated the way WebGL point sprites are: size * (height/2) / depth.
func (c Camera) PointPixels(size, depth float64) int {
	px := int(math.Round(size * float64(c.Height) * 0.5 / depth))
	if px < 1 {
		return 1
	}
	return px
}
