package clifford4d

import (
	"fmt"
	"math"
	"sync"
)

// Stereographic projects p from the pole (0,0,0,r) onto the hyperplane w=0,
// scaled by r so that points with w=0 keep their position: (x,y,z) * r/(r-w).
// When |r-w| < PoleEpsilon the denominator is replaced by PoleEpsilon, which
// caps the scale factor at r/PoleEpsilon.
func Stereographic(p Point4, r Real) (x, y, z Real) {
	denom := r - p.W
	if math.Abs(denom) < PoleEpsilon {
		denom = PoleEpsilon
	}
	f := r / denom
	return p.X * f, p.Y * f, p.Z * f
}

// Project rotates every source point by the XW/YZ frame rotation at elapsed and
// writes its stereographic image into out (x,y,z of point i at 3i). out must
// hold exactly 3*ps.Len() values; on error nothing is written.
func Project(ps *PointSet, elapsed, xwSpeed, yzSpeed, distance Real, out []Real) error {
	return ProjectRotated(ps, PlaneRotation(elapsed, xwSpeed, yzSpeed), distance, out)
}

// ProjectParallel is Project split across workers goroutines. The result is
// identical to Project for any worker count.
func ProjectParallel(ps *PointSet, elapsed, xwSpeed, yzSpeed, distance Real, out []Real, workers int) error {
	R := PlaneRotation(elapsed, xwSpeed, yzSpeed)
	if err := checkProjection(ps, R, distance, out); err != nil {
		return err
	}
	n := ps.Len()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		projectRange(ps.Points, R, distance, out)
		return nil
	}

	// Distribute points across workers (evenly, with remainder spread).
	per, rem := n/workers, n%workers
	var wg sync.WaitGroup
	start := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < rem {
			cnt++
		}
		lo, hi := start, start+cnt
		start = hi
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			projectRange(ps.Points[lo:hi], R, distance, out[3*lo:3*hi])
		}(lo, hi)
	}
	wg.Wait()
	return nil
}

// ProjectRotated applies an arbitrary 4D rotation R before projecting.
func ProjectRotated(ps *PointSet, R Mat4, distance Real, out []Real) error {
	if err := checkProjection(ps, R, distance, out); err != nil {
		return err
	}
	projectRange(ps.Points, R, distance, out)
	return nil
}

// checkProjection rejects every input that could leave a non-finite value in
// out. A non-finite time or speed shows up as a non-finite rotation entry.
func checkProjection(ps *PointSet, R Mat4, distance Real, out []Real) error {
	if ps == nil {
		return fmt.Errorf("%w: nil point set", ErrInvalidArgument)
	}
	if want := 3 * ps.Len(); len(out) != want {
		return fmt.Errorf("%w: output buffer has %d values, want %d", ErrInvalidArgument, len(out), want)
	}
	if !isFinite(distance) {
		return fmt.Errorf("%w: projection distance %v is not finite", ErrInvalidArgument, distance)
	}
	if !R.isFinite() {
		return fmt.Errorf("%w: rotation is not finite (check time and speeds)", ErrInvalidArgument)
	}
	return nil
}

func projectRange(points []TorusPoint, R Mat4, r Real, out []Real) {
	for i := range points {
		q := R.MulPoint(points[i].Point4)
		x, y, z := Stereographic(q, r)
		o := out[3*i : 3*i+3 : 3*i+3]
		o[0], o[1], o[2] = x, y, z
	}
}
