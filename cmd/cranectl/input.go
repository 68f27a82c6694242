package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/material"
	"CraneView/internal/crane/render"
	"CraneView/internal/solver"

	"github.com/spf13/cobra"
)

// shared flags of the model commands
var (
	paramsFile   string
	materialName string
	resultFile   string
	solve        bool
	solverURL    string
	scale        float64
	viewMode     string
	outFile      string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&paramsFile, "params", "p", "", "Parameter JSON file (defaults for missing fields)")
	pf.StringVarP(&materialName, "material", "m", "", "Pipe preset: STK400, STK500, SuperLight700")
	pf.StringVarP(&resultFile, "result", "r", "", "Solver result JSON file")
	pf.BoolVar(&solve, "solve", false, "Ask the FEM service for a result")
	pf.StringVar(&solverURL, "solver", envOr("SOLVER_URL", "http://localhost:8000"), "FEM service base URL")
	pf.Float64VarP(&scale, "scale", "s", 1, "Deformation scale factor")
	pf.StringVar(&viewMode, "mode", "stress", "View mode: geometry or stress")
	pf.StringVarP(&outFile, "out", "o", "", "Output file (stdout when empty)")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadParams() (geometry.ParameterSet, error) {
	p := geometry.Defaults()
	if paramsFile != "" {
		data, err := os.ReadFile(paramsFile)
		if err != nil {
			return p, err
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("%s: %w", paramsFile, err)
		}
	}
	if materialName != "" {
		preset, err := material.Lookup(materialName)
		if err != nil {
			return p, err
		}
		p = preset.Apply(p)
	}
	return p, nil
}

func loadResult(ctx context.Context, p geometry.ParameterSet) (*analysis.Result, error) {
	switch {
	case resultFile != "":
		data, err := os.ReadFile(resultFile)
		if err != nil {
			return nil, err
		}
		var res analysis.Result
		if err := json.Unmarshal(data, &res); err != nil {
			return nil, fmt.Errorf("%s: %w", resultFile, err)
		}
		return &res, nil
	case solve:
		return solver.NewClient(solverURL, 30*time.Second, 0).Calculate(ctx, p)
	}
	return nil, nil
}

// buildScene runs the whole pipeline from the command line flags.
func buildScene(cmd *cobra.Command) (render.Scene, *analysis.Result, error) {
	p, err := loadParams()
	if err != nil {
		return render.Scene{}, nil, err
	}
	res, err := loadResult(cmd.Context(), p)
	if err != nil {
		return render.Scene{}, nil, err
	}
	mode, err := render.ParseMode(viewMode)
	if err != nil {
		return render.Scene{}, nil, err
	}
	return render.Compose(render.Input{Params: p, Result: res, Scale: scale, Mode: mode}), res, nil
}

// writeOut runs fn on --out, or on stdout when --out is empty. The file is
// closed on every path; a close error is reported when fn succeeded.
func writeOut(cmd *cobra.Command, fn func(w io.Writer) error) (err error) {
	if outFile == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
