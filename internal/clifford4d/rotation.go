package clifford4d

import "math"

// Coordinate axes, in Point4 field order.
const (
	axisX = iota
	axisY
	axisZ
	axisW
)

// turn writes a rotation by a radians in the (i, j) plane into R, taking axis i
// towards axis j. R must be the identity on rows and columns i and j.
func turn(R *Mat4, i, j int, a Real) {
	s, c := math.Sincos(a)
	R.M[i][i], R.M[i][j] = c, -s
	R.M[j][i], R.M[j][j] = s, c
}

// PlaneRotation returns the frame rotation at time t: the XW plane turns at
// xwSpeed and the YZ plane at yzSpeed (radians per unit time). The two planes
// share no axis, so both turns live in one matrix and commute. The angle is a
// direct function of t, so rewinding t rewinds the rotation.
func PlaneRotation(t, xwSpeed, yzSpeed Real) Mat4 {
	R := I4()
	turn(&R, axisX, axisW, t*xwSpeed)
	turn(&R, axisY, axisZ, t*yzSpeed)
	return R
}
