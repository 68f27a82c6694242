package deform

import (
	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// Apply moves every node of base by its displacement times scale. With no
// displacements or a zero scale base itself is returned. Nodes without an
// entry keep their base position.
func Apply(base geometry.NodeSet, disp analysis.Displacements, scale float64) geometry.NodeSet {
	if disp == nil || scale == 0 {
		return base
	}
	out := make(geometry.NodeSet, len(base))
	for name, p := range base {
		d, ok := disp[name]
		if !ok {
			out[name] = p
			continue
		}
		offset := r3.Scale(scale, r3.Vec{X: d.DX, Y: d.DY, Z: d.DZ})
		out[name] = geometry.FromVec(r3.Add(p.Vec(), offset))
	}
	return out
}

// Offsets returns deformed minus base for every node of base.
func Offsets(base, deformed geometry.NodeSet) map[string]r3.Vec {
	out := make(map[string]r3.Vec, len(base))
	for name, p := range base {
		q, ok := deformed[name]
		if !ok {
			continue
		}
		out[name] = r3.Sub(q.Vec(), p.Vec())
	}
	return out
}
