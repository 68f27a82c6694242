package analysis

import "sort"

type Displacement struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	DZ float64 `json:"dz"`
}

// Displacements holds solver offsets per node name. Nodes absent from the map
// are undisplaced.
type Displacements map[string]Displacement

type MemberResult struct {
	MaxMoment float64 `json:"max_moment"`
	MaxStress float64 `json:"max_stress"`
}

type TipDisplacement struct {
	DZ float64 `json:"dz"`
}

// Result is the solver response. It is replaced as a whole, never patched.
type Result struct {
	TipDisplacement   TipDisplacement         `json:"tip_displacement"`
	NodeDisplacements Displacements           `json:"node_displacements"`
	MemberResults     map[string]MemberResult `json:"member_results"`
	MaxStress         float64                 `json:"max_stress"`
	YieldStress       float64                 `json:"yield_stress"`
	Failures          []string                `json:"failures"`
	Reactions         map[string]float64      `json:"reactions"`
}

// Displacements returns the node offsets, nil when r is nil.
func (r *Result) Displacements() Displacements {
	if r == nil {
		return nil
	}
	return r.NodeDisplacements
}

// Member returns the stress entry of a member, if the solver reported one.
func (r *Result) Member(id string) (MemberResult, bool) {
	if r == nil || r.MemberResults == nil {
		return MemberResult{}, false
	}
	m, ok := r.MemberResults[id]
	return m, ok
}

// Exceeding lists the members whose stress is above limit, sorted by id.
func (r *Result) Exceeding(limit float64) []string {
	if r == nil {
		return nil
	}
	var out []string
	for id, m := range r.MemberResults {
		if m.MaxStress > limit {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// TotalReaction sums the vertical support reactions in N.
func (r *Result) TotalReaction() float64 {
	if r == nil {
		return 0
	}
	sum := 0.0
	for _, v := range r.Reactions {
		sum += v
	}
	return sum
}
