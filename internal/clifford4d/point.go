package clifford4d

// Point4 represents a point in 4-dimensional space.
type Point4 struct {
	X, Y, Z, W Real
}

// Norm2 returns the squared Euclidean distance from the origin.
func (p Point4) Norm2() Real {
	return p.X*p.X + p.Y*p.Y + p.Z*p.Z + p.W*p.W
}

// TorusPoint is a source point on the Clifford torus together with the two
// generating angles: X=cos U, Y=sin U, Z=cos V, W=sin V.
type TorusPoint struct {
	Point4
	U, V Real
}
