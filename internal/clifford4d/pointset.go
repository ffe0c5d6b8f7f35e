package clifford4d

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// PointSet is an immutable sample of the Clifford torus with one static color
// per point. It may be read concurrently by any number of projections.
type PointSet struct {
	Points []TorusPoint
	Colors []RGB
	Scheme ColorScheme
}

// Len returns the number of points.
func (ps *PointSet) Len() int { return len(ps.Points) }

// ColorBuffer writes the colors as interleaved RGB, point i at offset 3i.
func (ps *PointSet) ColorBuffer(out []Real) error {
	if len(out) != 3*len(ps.Colors) {
		return fmt.Errorf("%w: color buffer has %d values, want %d", ErrInvalidArgument, len(out), 3*len(ps.Colors))
	}
	for i, c := range ps.Colors {
		out[3*i+ChR] = c.R
		out[3*i+ChG] = c.G
		out[3*i+ChB] = c.B
	}
	return nil
}

// NewColorBuffer allocates and fills an interleaved RGB buffer.
func (ps *PointSet) NewColorBuffer() []Real {
	out := make([]Real, 3*len(ps.Colors))
	_ = ps.ColorBuffer(out)
	return out
}

// GeneratePointSet samples n points on the torus x=cos u, y=sin u, z=cos v,
// w=sin v with u, v uniform in [0, 2π). Points may coincide; there is no
// spacing guarantee. Colors interpolate the scheme endpoints by (cos u + 1)/2.
// A nil rng uses a time-seeded source.
func GeneratePointSet(n int, scheme ColorScheme, rng *rand.Rand) (*PointSet, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: particle count must be > 0, got %d", ErrInvalidArgument, n)
	}
	ca, cb, err := scheme.Endpoints()
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ps := &PointSet{
		Points: make([]TorusPoint, n),
		Colors: make([]RGB, n),
		Scheme: scheme,
	}
	for i := 0; i < n; i++ {
		u := rng.Float64() * 2 * math.Pi
		v := rng.Float64() * 2 * math.Pi
		su, cu := math.Sincos(u)
		sv, cv := math.Sincos(v)
		ps.Points[i] = TorusPoint{Point4: Point4{cu, su, cv, sv}, U: u, V: v}
		ps.Colors[i] = ca.Lerp(cb, (cu+1)/2).clamp01()
	}
	return ps, nil
}
