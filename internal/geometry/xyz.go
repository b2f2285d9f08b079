package geometry

import "math"

// XYZ is a point or vector in model space (feet).
type XYZ [3]float64

func (a XYZ) Add(b XYZ) XYZ {
	return XYZ{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a XYZ) Sub(b XYZ) XYZ {
	return XYZ{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a XYZ) Dot(b XYZ) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a XYZ) Cross(b XYZ) XYZ {
	return XYZ{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v XYZ) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsAlmostEqualTo compares with the host's short-curve tolerance.
func (a XYZ) IsAlmostEqualTo(b XYZ) bool {
	return a.Sub(b).Len() < Tolerance
}

// Tolerance is the shortest distance the host treats as distinct (1/256 ft).
const Tolerance = 1.0 / 256

// polygonNormal returns the Newell normal of a loop; its length is twice the area.
func polygonNormal(loop []XYZ) XYZ {
	var n XYZ
	for i := range loop {
		cur, next := loop[i], loop[(i+1)%len(loop)]
		n[0] += (cur[1] - next[1]) * (cur[2] + next[2])
		n[1] += (cur[2] - next[2]) * (cur[0] + next[0])
		n[2] += (cur[0] - next[0]) * (cur[1] + next[1])
	}
	return n
}
