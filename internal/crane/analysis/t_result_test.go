package analysis

import (
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const sample = `{
	"tip_displacement": {"dz": -4.25},
	"node_displacements": {"A_tip": {"dx": 0.5, "dy": 0, "dz": -4.25}, "M_top": {"dx": 0.1, "dy": 0.0, "dz": -0.02}},
	"member_results": {"M_arm": {"max_moment": 490500, "max_stress": 201.3}, "M_mast_3": {"max_moment": 600000, "max_stress": 246.2}},
	"max_stress": 246.2,
	"yield_stress": 235.0,
	"failures": ["M_mast_3"],
	"reactions": {"FL": 250.1, "FR": 0, "RR": 0, "RL": 240.4}
}`

func Test_result01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("result01. decode solver response")

	var r Result
	if err := json.Unmarshal([]byte(sample), &r); err != nil {
		tst.Fatalf("decode failed: %v", err)
	}
	chk.Float64(tst, "tip dz", 1e-15, r.TipDisplacement.DZ, -4.25)
	chk.Float64(tst, "A_tip dx", 1e-15, r.NodeDisplacements["A_tip"].DX, 0.5)
	chk.Float64(tst, "yield", 1e-15, r.YieldStress, 235)
	chk.Strings(tst, "failures", r.Failures, []string{"M_mast_3"})

	m, ok := r.Member("M_arm")
	if !ok {
		tst.Fatalf("M_arm missing")
	}
	chk.Float64(tst, "M_arm stress", 1e-15, m.MaxStress, 201.3)
	if _, ok := r.Member("M_brace"); ok {
		tst.Errorf("M_brace should be absent")
	}

	chk.Strings(tst, "exceeding 200", r.Exceeding(200), []string{"M_arm", "M_mast_3"})
	chk.Strings(tst, "exceeding 355", r.Exceeding(355), nil)
	chk.Float64(tst, "reaction", 1e-12, r.TotalReaction(), 490.5)
}

func Test_result02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("result02. nil result")

	var r *Result
	if r.Displacements() != nil {
		tst.Errorf("nil result must have no displacements")
	}
	if _, ok := r.Member("M_arm"); ok {
		tst.Errorf("nil result must have no members")
	}
	if len(r.Exceeding(0)) != 0 || r.TotalReaction() != 0 {
		tst.Errorf("nil result must be empty")
	}
}
