package render

import (
	"fmt"
	"math"

	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/deform"
	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/stress"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

type Mode string

const (
	ModeGeometry Mode = "geometry"
	ModeStress   Mode = "stress"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGeometry, ModeStress:
		return Mode(s), nil
	case "":
		return ModeStress, nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// WorldRotation turns the Z-up crane frame into the host's Y-up world.
var WorldRotation = fromQuat(quat.Number(r3.NewRotation(-math.Pi/2, r3.Vec{X: 1})))

type Input struct {
	Params geometry.ParameterSet
	Result *analysis.Result
	Scale  float64
	Mode   Mode
}

type Summary struct {
	TipDZ           float64  `json:"tip_dz"`
	MaxStress       float64  `json:"max_stress"`
	ReferenceStress float64  `json:"reference_stress"`
	SolverYield     float64  `json:"solver_yield"`
	Utilization     float64  `json:"utilization"`
	SolverFailures  []string `json:"solver_failures"`
	Exceeding       []string `json:"exceeding"`
	OK              bool     `json:"ok"`
	MastTopDX       float64  `json:"mast_top_dx"`
	MastTopDZ       float64  `json:"mast_top_dz"`
	TotalReaction   float64  `json:"total_reaction"`
}

type Scene struct {
	Mode          Mode                  `json:"view_mode"`
	Scale         float64               `json:"scale"`
	Params        geometry.ParameterSet `json:"params"`
	Nodes         geometry.NodeSet      `json:"nodes"`
	Members       []geometry.Member     `json:"members"`
	Primitives    []Primitive           `json:"primitives"`
	WorldRotation Quaternion            `json:"world_rotation"`
	Summary       *Summary              `json:"summary,omitempty"`
}

// Compose runs the full pipeline: geometry, deformation, coloring, cylinders.
func Compose(in Input) Scene {
	base := geometry.Build(in.Params)
	nodes := deform.Apply(base, in.Result.Displacements(), in.Scale)
	mapper := stress.ForYield(Reference(in.Params, in.Result))
	mode := in.Mode
	if mode == "" {
		mode = ModeStress
	}

	members := geometry.Members()
	scene := Scene{
		Mode:          mode,
		Scale:         in.Scale,
		Nodes:         nodes,
		Primitives:    make([]Primitive, 0, len(members)),
		WorldRotation: WorldRotation,
		Members:       members,
		Params:        in.Params,
	}

	for _, m := range members {
		p1, p2, ok := m.Endpoints(nodes)
		if !ok {
			continue
		}
		color := stress.Neutral
		var sigma *float64
		if res, found := in.Result.Member(m.ID); found {
			s := res.MaxStress
			sigma = &s
			if mode == ModeStress {
				color = mapper.Color(s)
			}
		}
		prim, ok := Segment(p1, p2, in.Params.PipeOD, color)
		if !ok {
			continue
		}
		prim.MemberID = m.ID
		prim.Stress = sigma
		scene.Primitives = append(scene.Primitives, prim)
	}

	if in.Result != nil {
		scene.Summary = summarize(in.Result, mapper)
	}
	return scene
}

// Reference is the stress at the red end of the ramp: the selected
// material's yield stress, else the solver's, else 235 N/mm².
func Reference(p geometry.ParameterSet, r *analysis.Result) float64 {
	if p.YieldStress > 0 {
		return p.YieldStress
	}
	if r != nil && r.YieldStress > 0 {
		return r.YieldStress
	}
	return stress.ReferenceStress
}

func summarize(r *analysis.Result, m stress.Mapper) *Summary {
	exceeding := r.Exceeding(m.Reference)
	s := &Summary{
		TipDZ:           r.TipDisplacement.DZ,
		MaxStress:       r.MaxStress,
		ReferenceStress: m.Reference,
		SolverYield:     r.YieldStress,
		Utilization:     m.Ratio(r.MaxStress),
		SolverFailures:  append([]string(nil), r.Failures...),
		Exceeding:       exceeding,
		OK:              len(exceeding) == 0,
		TotalReaction:   r.TotalReaction(),
	}
	if d, ok := r.NodeDisplacements[geometry.MTop]; ok {
		s.MastTopDX = d.DX
		s.MastTopDZ = d.DZ
	}
	return s
}
