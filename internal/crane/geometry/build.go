package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Build computes the undeformed joint coordinates. Base pipes rest tangent to
// the ground, so every base node sits at z0 = pipe_od/2. Mast heights are taken
// as given; an inverted order simply yields an inverted mast.
func Build(p ParameterSet) NodeSet {
	z0 := p.PipeOD / 2
	hl := p.BaseLen / 2
	hw := p.BaseWid / 2

	nodes := make(NodeSet, numNodes)
	nodes[FL] = Point{-hl, -hw, z0}
	nodes[FR] = Point{hl, -hw, z0}
	nodes[RR] = Point{hl, hw, z0}
	nodes[RL] = Point{-hl, hw, z0}

	nodes[Fmid] = Point{0, -hw, z0}
	nodes[Rmid] = Point{0, hw, z0}
	nodes[Lmid] = Point{-hl, 0, z0}
	nodes[RmidX0] = Point{hl, 0, z0}

	nodes[MBrace] = Point{-hl, 0, z0 + p.BraceMastHeight}
	nodes[MAttach] = Point{-hl, 0, z0 + p.TripodAttachHeight}
	nodes[MTop] = Point{-hl, 0, z0 + p.ArmPivotHeight}

	top := nodes[MTop].Vec()
	dir := ArmDirection(p.ArmAngle)
	nodes[ATip] = FromVec(r3.Add(top, r3.Scale(p.ArmLen, dir)))
	nodes[ABrace] = FromVec(r3.Add(top, r3.Scale(p.ArmLen*0.5, dir)))

	return nodes
}

// ArmDirection is the horizontal unit vector for an arm angle in degrees,
// 0 along +X and 180 along -X.
func ArmDirection(deg float64) r3.Vec {
	rad := deg * math.Pi / 180
	return r3.Vec{X: math.Cos(rad), Y: math.Sin(rad), Z: 0}
}
