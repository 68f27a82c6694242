package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func run(tst *testing.T, args ...string) string {
	paramsFile, materialName, resultFile, outFile = "", "", "", ""
	solve, scale, viewMode = false, 1, "stress"
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		tst.Fatalf("cranectl %v: %v", args, err)
	}
	return buf.String()
}

func Test_cranectl01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("cranectl01. geometry table and scene json")

	dir := tst.TempDir()
	params := filepath.Join(dir, "crane.json")
	os.WriteFile(params, []byte(`{"arm_len": 1200}`), 0o600)
	result := filepath.Join(dir, "result.json")
	os.WriteFile(result, []byte(`{"node_displacements":{"A_tip":{"dx":0,"dy":0,"dz":-2}},"member_results":{"M_arm":{"max_moment":1,"max_stress":500}},"max_stress":500}`), 0o600)

	out := run(tst, "geometry", "--params", params)
	chk.Int(tst, "lines", strings.Count(out, "\n"), 14)
	if !strings.Contains(out, "A_tip") {
		tst.Errorf("A_tip missing:\n%s", out)
	}

	out = run(tst, "scene", "--params", params, "--result", result, "--scale", "10")
	var scene struct {
		Nodes      map[string][3]float64 `json:"nodes"`
		Primitives []struct {
			MemberID string `json:"member_id"`
			Hex      string `json:"hex"`
		} `json:"primitives"`
	}
	if err := json.Unmarshal([]byte(out), &scene); err != nil {
		tst.Fatalf("%v", err)
	}
	chk.Float64(tst, "tip z", 1e-9, scene.Nodes["A_tip"][2], 24.3+1800-20)
	for _, p := range scene.Primitives {
		if p.MemberID == "M_arm" && p.Hex != "#ff00ff" {
			tst.Errorf("overstressed arm drawn %s", p.Hex)
		}
	}

	scadFile := filepath.Join(dir, "crane.scad")
	run(tst, "scad", "--material", "SuperLight700", "--out", scadFile)
	data, err := os.ReadFile(scadFile)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	chk.Int(tst, "pipes", strings.Count(string(data), "    pipe_segment("), 13)
}

func Test_cranectl02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("cranectl02. output file is closed when writing fails")

	outFile = filepath.Join(tst.TempDir(), "half.webp")
	defer func() { outFile = "" }()

	var file *os.File
	failure := errors.New("encoder gave up")
	err := writeOut(rootCmd, func(w io.Writer) error {
		file = w.(*os.File)
		w.Write([]byte("RIFF"))
		return failure
	})
	if !errors.Is(err, failure) {
		tst.Errorf("write error lost: %v", err)
	}
	if _, err := file.Write([]byte("x")); !errors.Is(err, os.ErrClosed) {
		tst.Errorf("file left open: %v", err)
	}

	err = writeOut(rootCmd, func(w io.Writer) error {
		_, err := w.Write([]byte("ok"))
		return err
	})
	if err != nil {
		tst.Fatalf("%v", err)
	}
	data, _ := os.ReadFile(outFile)
	chk.String(tst, string(data), "ok")

	outFile = filepath.Join(tst.TempDir(), "missing", "dir", "x.scad")
	if err := writeOut(rootCmd, func(w io.Writer) error { return nil }); err == nil {
		tst.Errorf("unwritable path accepted")
	}
}
