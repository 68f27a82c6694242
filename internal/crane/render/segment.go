package render

import (
	"math"

	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/stress"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// RadialSegments is the tessellation of every pipe cylinder.
const RadialSegments = 16

// Quaternion is a unit rotation in the render host's x, y, z, w order.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

func fromQuat(q quat.Number) Quaternion {
	return Quaternion{X: q.Imag, Y: q.Jmag, Z: q.Kmag, W: q.Real}
}

func (q Quaternion) Rotation() r3.Rotation {
	return r3.Rotation(quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z})
}

// Primitive describes one cylinder: centred on Position, long axis along the
// local +Y axis rotated by Orientation.
type Primitive struct {
	MemberID       string         `json:"member_id,omitempty"`
	From           geometry.Point `json:"from"`
	To             geometry.Point `json:"to"`
	Position       geometry.Point `json:"position"`
	Orientation    Quaternion     `json:"orientation"`
	Radius         float64        `json:"radius"`
	Height         float64        `json:"height"`
	RadialSegments int            `json:"radial_segments"`
	Color          stress.Color   `json:"color"`
	Hex            string         `json:"hex"`
	Stress         *float64       `json:"stress,omitempty"`
}

var (
	defaultUp = r3.Vec{Y: 1}
	// cylinders are built along +Y, lookAt aims +Z
	cylinderAxis = quat.Number(r3.NewRotation(math.Pi/2, r3.Vec{X: 1}))
)

// Segment returns the cylinder spanning p1-p2 with the pipe's outer diameter.
// Coincident endpoints produce no primitive.
func Segment(p1, p2 geometry.Point, od float64, c stress.Color) (Primitive, bool) {
	if p1 == p2 {
		return Primitive{}, false
	}
	a, b := p1.Vec(), p2.Vec()
	mid := r3.Scale(0.5, r3.Add(a, b))
	q := quat.Mul(lookAt(b, mid, defaultUp), cylinderAxis)

	return Primitive{
		From:           p1,
		To:             p2,
		Position:       geometry.FromVec(mid),
		Orientation:    fromQuat(q),
		Radius:         od / 2,
		Height:         r3.Norm(r3.Sub(b, a)),
		RadialSegments: RadialSegments,
		Color:          c,
		Hex:            c.Hex(),
	}, true
}

// lookAt returns the rotation whose local +Z points from origin towards eye.
// Degenerate cases are nudged the same way the render host does it, so both
// sides agree on the roll of pipes parallel to up.
func lookAt(eye, origin, up r3.Vec) quat.Number {
	z := r3.Sub(eye, origin)
	if r3.Norm2(z) == 0 {
		z.Z = 1
	}
	z = r3.Unit(z)

	x := r3.Cross(up, z)
	if r3.Norm2(x) == 0 {
		if math.Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = r3.Unit(z)
		x = r3.Cross(up, z)
	}
	x = r3.Unit(x)
	y := r3.Cross(z, x)

	return fromBasis(x, y, z)
}

// fromBasis converts the rotation matrix with columns x, y, z to a quaternion.
func fromBasis(x, y, z r3.Vec) quat.Number {
	m11, m12, m13 := x.X, y.X, z.X
	m21, m22, m23 := x.Y, y.Y, z.Y
	m31, m32, m33 := x.Z, y.Z, z.Z

	var q quat.Number
	switch trace := m11 + m22 + m33; {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = quat.Number{Real: 0.25 / s, Imag: (m32 - m23) * s, Jmag: (m13 - m31) * s, Kmag: (m21 - m12) * s}
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		q = quat.Number{Real: (m32 - m23) / s, Imag: 0.25 * s, Jmag: (m12 + m21) / s, Kmag: (m13 + m31) / s}
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		q = quat.Number{Real: (m13 - m31) / s, Imag: (m12 + m21) / s, Jmag: 0.25 * s, Kmag: (m23 + m32) / s}
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		q = quat.Number{Real: (m21 - m12) / s, Imag: (m13 + m31) / s, Jmag: (m23 + m32) / s, Kmag: 0.25 * s}
	}
	return q
}
