package scad

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/render"

	"github.com/cpmech/gosl/chk"
)

func Test_scad01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("scad01. one pipe per member")

	p := geometry.Defaults()
	var buf bytes.Buffer
	if err := Write(&buf, geometry.Build(p), geometry.Members(), p.PipeOD); err != nil {
		tst.Fatalf("%v", err)
	}
	out := buf.String()
	chk.Int(tst, "calls", strings.Count(out, "    pipe_segment("), len(geometry.Members()))
	if !strings.Contains(out, "pipe_od = 48.6;") {
		tst.Errorf("missing pipe_od")
	}
	if !strings.Contains(out, "$fn = 32;") {
		tst.Errorf("missing $fn")
	}
	// front base edge FL -> FR at z0 = 24.3
	if !strings.Contains(out, "pipe_segment([-450, -300, 24.3], [450, -300, 24.3]);") {
		tst.Errorf("base edge not found:\n%s", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		tst.Errorf("union not closed")
	}
}

func Test_scad02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("scad02. missing nodes are skipped")

	nodes := geometry.NodeSet{"A": {0, 0, 0}, "B": {0, 0, 10}}
	members := []geometry.Member{{ID: "ok", N1: "A", N2: "B"}, {ID: "dangling", N1: "A", N2: "C"}}
	var buf bytes.Buffer
	Write(&buf, nodes, members, 10)
	chk.Int(tst, "calls", strings.Count(buf.String(), "    pipe_segment("), 1)

	h := &Handler{Scene: func() render.Scene {
		return render.Compose(render.Input{Params: geometry.Defaults(), Scale: 1})
	}}
	rec := httptest.NewRecorder()
	h.Model(rec, httptest.NewRequest(http.MethodGet, "/api/session/model.scad", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "union()") {
		tst.Errorf("handler status %d", rec.Code)
	}
}
