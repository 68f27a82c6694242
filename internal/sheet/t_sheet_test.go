package sheet

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/render"
	"CraneView/internal/session"

	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

func workbook(tst *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		f.SetSheetName("Sheet1", sheet)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			tst.Fatalf("%v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		tst.Fatalf("%v", err)
	}
	return &buf
}

func Test_sheet01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("sheet01. export workbook")

	res := &analysis.Result{
		NodeDisplacements: analysis.Displacements{geometry.ATip: {DZ: -10}},
		MemberResults:     map[string]analysis.MemberResult{"M_arm": {MaxMoment: 5e5, MaxStress: 180}},
	}
	scene := render.Compose(render.Input{Params: geometry.Defaults(), Result: res, Scale: 1})

	var buf bytes.Buffer
	if err := Export(&buf, scene, res); err != nil {
		tst.Fatalf("export: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		tst.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	chk.Strings(tst, "sheets", f.GetSheetList(), []string{ParametersSheet, NodesSheet, MembersSheet})

	rows, _ := f.GetRows(ParametersSheet)
	chk.Int(tst, "parameter rows", len(rows), 12)
	chk.String(tst, rows[1][0], "pipe_od")
	chk.String(tst, rows[1][1], "48.6")

	rows, _ = f.GetRows(NodesSheet)
	chk.Int(tst, "node rows", len(rows), 14)
	chk.Strings(tst, "node header", rows[0], []string{"node", "x", "y", "z", "dx", "dy", "dz"})
	for _, row := range rows[1:] {
		if row[0] == geometry.ATip {
			chk.String(tst, row[6], "-10")
		}
	}

	rows, _ = f.GetRows(MembersSheet)
	chk.Int(tst, "member rows", len(rows), 14)
	chk.Strings(tst, "member header", rows[0], []string{"member", "n1", "n2", "max_moment", "max_stress"})
	for _, row := range rows[1:] {
		switch row[0] {
		case "M_arm":
			chk.String(tst, row[4], "180")
		case "M_brace":
			chk.Int(tst, "no result columns", len(row), 3)
		}
	}
}

func Test_sheet02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("sheet02. import parameters")

	buf := workbook(tst, ParametersSheet, [][]interface{}{
		{"name", "value"},
		{"arm_len", 1500},
		{"arm_angle", "90"},
		{"colour", 3},
		{"mass_tip", "heavy"},
		{"pipe_od"},
	})
	p, err := Import(buf, geometry.Defaults())
	if err != nil {
		tst.Fatalf("import: %v", err)
	}
	chk.Float64(tst, "arm_len", 1e-15, p.ArmLen, 1500)
	chk.Float64(tst, "arm_angle", 1e-15, p.ArmAngle, 90)
	chk.Float64(tst, "mass_tip kept", 1e-15, p.MassTip, 50)
	chk.Float64(tst, "pipe_od kept", 1e-15, p.PipeOD, 48.6)

	// the first sheet is used when there is no Parameters sheet
	buf = workbook(tst, "Sheet1", [][]interface{}{{"base_len", 1200}})
	p, err = Import(buf, geometry.Defaults())
	if err != nil {
		tst.Fatalf("import: %v", err)
	}
	chk.Float64(tst, "base_len", 1e-15, p.BaseLen, 1200)

	buf = workbook(tst, ParametersSheet, [][]interface{}{{"name", "value"}, {"nothing", 1}})
	if _, err = Import(buf, geometry.Defaults()); !errors.Is(err, ErrNoParameters) {
		tst.Errorf("expected ErrNoParameters, got %v", err)
	}
	if _, err = Import(bytes.NewBufferString("not a zip"), geometry.Defaults()); err == nil {
		tst.Errorf("garbage accepted")
	}
}

type memStore struct {
	params geometry.ParameterSet
	set    int
}

func (m *memStore) Snapshot() session.Snapshot {
	return session.Snapshot{Scene: render.Compose(render.Input{Params: m.params, Scale: 1})}
}
func (m *memStore) Params() geometry.ParameterSet     { return m.params }
func (m *memStore) SetParams(p geometry.ParameterSet) { m.params = p; m.set++ }

func Test_handler01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("handler01. upload and download")

	store := &memStore{params: geometry.Defaults()}
	h := &Handler{Store: store}

	xlsx := workbook(tst, ParametersSheet, [][]interface{}{{"arm_angle", 45}})
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "params.xlsx")
	part.Write(xlsx.Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/session/import.xlsx", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Import(rec, req)
	if rec.Code != http.StatusAccepted {
		tst.Fatalf("import status %d", rec.Code)
	}
	chk.Int(tst, "SetParams calls", store.set, 1)
	chk.Float64(tst, "arm_angle", 1e-15, store.params.ArmAngle, 45)

	rec = httptest.NewRecorder()
	h.Import(rec, httptest.NewRequest(http.MethodPost, "/api/session/import.xlsx", nil))
	if rec.Code != http.StatusBadRequest {
		tst.Errorf("missing file: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/api/session/export.xlsx", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		tst.Errorf("export status %d", rec.Code)
	}
}
