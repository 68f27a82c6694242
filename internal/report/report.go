package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/render"

	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Title    string
	Material string
	Scene    render.Scene
	Result   *analysis.Result
	Date     time.Time
}

var labels = map[string]string{
	"pipe_od":              "Pipe OD [mm]",
	"t_wall":               "Wall thickness [mm]",
	"base_len":             "Base length X [mm]",
	"base_wid":             "Base width Y [mm]",
	"arm_pivot_height":     "Arm pivot height [mm]",
	"tripod_attach_height": "Tripod attach height [mm]",
	"brace_mast_height":    "Brace mast height [mm]",
	"arm_len":              "Arm length [mm]",
	"arm_angle":            "Arm angle [deg]",
	"mass_tip":             "Tip mass [kg]",
	"yield_stress":         "Yield stress [N/mm2]",
}

// Write renders an A4 calculation sheet for the scene and its analysis.
func Write(w io.Writer, in Input) error {
	if in.Title == "" {
		in.Title = "Crane Structural Report"
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(in.Date)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, in.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", in.Date.Format("2006-01-02")))
	pdf.Ln(6)
	if in.Material != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Material: %s", in.Material))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, "Parameters")
	for _, f := range in.Scene.Params.Fields() {
		row(pdf, []float64{90, 40}, labels[f.Name], fmt.Sprintf("%g", f.Value))
	}
	pdf.Ln(6)

	section(pdf, "Summary")
	if in.Result == nil {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 6, "No analysis result available.")
		pdf.Ln(8)
	} else {
		s := in.Scene.Summary
		if s == nil {
			s = &render.Summary{}
		}
		row(pdf, []float64{90, 40}, "Tip deflection dz [mm]", fmt.Sprintf("%.3f", in.Result.TipDisplacement.DZ))
		row(pdf, []float64{90, 40}, "Max stress [N/mm2]", fmt.Sprintf("%.1f", in.Result.MaxStress))
		row(pdf, []float64{90, 40}, "Reference stress [N/mm2]", fmt.Sprintf("%.1f", s.ReferenceStress))
		row(pdf, []float64{90, 40}, "Utilization", fmt.Sprintf("%.2f", s.Utilization))
		row(pdf, []float64{90, 40}, "Total reaction [N]", fmt.Sprintf("%.1f", in.Result.TotalReaction()))
		verdict := "OK"
		if !s.OK {
			verdict = "NG"
		}
		row(pdf, []float64{90, 40}, "Verdict", verdict)
		pdf.Ln(6)

		section(pdf, "Members")
		header(pdf, []float64{60, 40, 40, 20}, "Member", "Moment [N.mm]", "Stress [N/mm2]", "")
		for _, m := range geometry.Members() {
			mr, ok := in.Result.Member(m.ID)
			if !ok {
				row(pdf, []float64{60, 40, 40, 20}, m.ID, "-", "-", "")
				continue
			}
			mark := ""
			if mr.MaxStress > s.ReferenceStress {
				mark = "NG"
			}
			row(pdf, []float64{60, 40, 40, 20}, m.ID,
				fmt.Sprintf("%.0f", mr.MaxMoment), fmt.Sprintf("%.1f", mr.MaxStress), mark)
		}
		if len(in.Result.Failures) > 0 {
			pdf.Ln(4)
			failures := append([]string(nil), in.Result.Failures...)
			sort.Strings(failures)
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, "Solver failures: "+strings.Join(failures, ", "), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func header(pdf *gofpdf.Fpdf, widths []float64, cols ...string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, c := range cols {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func row(pdf *gofpdf.Fpdf, widths []float64, cols ...string) {
	pdf.SetFont("Helvetica", "", 10)
	for i, c := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
