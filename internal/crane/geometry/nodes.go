package geometry

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	FL       = "FL"
	FR       = "FR"
	RR       = "RR"
	RL       = "RL"
	Fmid     = "Fmid"
	Rmid     = "Rmid"
	Lmid     = "Lmid"
	RmidX0   = "RmidX0"
	MBrace   = "M_brace"
	MAttach  = "M_attach"
	MTop     = "M_top"
	ATip     = "A_tip"
	ABrace   = "A_brace"
	numNodes = 13
)

// nodeNames lists the joints in build order.
var nodeNames = [numNodes]string{FL, FR, RR, RL, Fmid, Rmid, Lmid, RmidX0, MBrace, MAttach, MTop, ATip, ABrace}

func NodeNames() []string {
	out := make([]string, len(nodeNames))
	copy(out, nodeNames[:])
	return out
}

// Point marshals as [x, y, z], the layout the viewer and solver exchange.
type Point [3]float64

func FromVec(v r3.Vec) Point { return Point{v.X, v.Y, v.Z} }

func (p Point) Vec() r3.Vec { return r3.Vec{X: p[0], Y: p[1], Z: p[2]} }

// Slice copies the coordinates into a slice, usable on map values.
func (p Point) Slice() []float64 { return p[:] }

// NodeSet maps joint names to coordinates.
type NodeSet map[string]Point

// Names returns the node names sorted, for stable output.
func (n NodeSet) Names() []string {
	names := make([]string, 0, len(n))
	for k := range n {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (n NodeSet) Clone() NodeSet {
	out := make(NodeSet, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}
