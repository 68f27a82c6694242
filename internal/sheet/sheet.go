package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/render"

	"github.com/xuri/excelize/v2"
)

const (
	ParametersSheet = "Parameters"
	NodesSheet      = "Nodes"
	MembersSheet    = "Members"
)

var ErrNoParameters = errors.New("no parameter rows found")

// Export writes a workbook with the parameters, node coordinates of the shown
// (possibly deformed) geometry, and per-member results.
func Export(w io.Writer, scene render.Scene, res *analysis.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ParametersSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ParametersSheet, "A1", &[]interface{}{"name", "value"}); err != nil {
		return err
	}
	for i, fld := range scene.Params.Fields() {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ParametersSheet, cell, &[]interface{}{fld.Name, fld.Value}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(NodesSheet); err != nil {
		return fmt.Errorf("add nodes sheet: %w", err)
	}
	if err := f.SetSheetRow(NodesSheet, "A1", &[]interface{}{"node", "x", "y", "z", "dx", "dy", "dz"}); err != nil {
		return fmt.Errorf("%s header: %w", NodesSheet, err)
	}
	disp := res.Displacements()
	for i, name := range geometry.NodeNames() {
		pt, ok := scene.Nodes[name]
		if !ok {
			continue
		}
		d := disp[name]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(NodesSheet, cell, &[]interface{}{name, pt[0], pt[1], pt[2], d.DX, d.DY, d.DZ}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(MembersSheet); err != nil {
		return fmt.Errorf("add members sheet: %w", err)
	}
	if err := f.SetSheetRow(MembersSheet, "A1", &[]interface{}{"member", "n1", "n2", "max_moment", "max_stress"}); err != nil {
		return fmt.Errorf("%s header: %w", MembersSheet, err)
	}
	for i, m := range scene.Members {
		row := []interface{}{m.ID, m.N1, m.N2}
		if mr, ok := res.Member(m.ID); ok {
			row = append(row, mr.MaxMoment, mr.MaxStress)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(MembersSheet, cell, &row); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Import reads name/value rows from the Parameters sheet (or the first sheet)
// over base. Unknown names and unparsable values are skipped.
func Import(r io.Reader, base geometry.ParameterSet) (geometry.ParameterSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return base, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	for _, name := range f.GetSheetList() {
		if name == ParametersSheet {
			sheet = name
			break
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return base, fmt.Errorf("read %s: %w", sheet, err)
	}

	p := base
	applied := 0
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		v, err := toFloat(row[1])
		if err != nil {
			continue
		}
		if p.Set(strings.TrimSpace(row[0]), v) {
			applied++
		}
	}
	if applied == 0 {
		return base, ErrNoParameters
	}
	return p, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &v)
	return v, err
}
