package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"
)

func Test_config01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("config01. defaults")

	tst.Setenv("TOKEN_KEY", "secret")
	c, err := Load(filepath.Join(tst.TempDir(), "missing.env"))
	if err != nil {
		tst.Fatalf("%v", err)
	}
	chk.String(tst, c.Addr, ":3000")
	chk.String(tst, c.SolverURL, "http://localhost:8000")
	chk.Float64(tst, "rps", 1e-15, c.SolverRPS, 4)
	if c.SolverTimeout != 15*time.Second || c.Debounce != 500*time.Millisecond {
		tst.Errorf("durations: %v %v", c.SolverTimeout, c.Debounce)
	}
	if c.AuthDisabled {
		tst.Errorf("auth must default to enabled")
	}
}

func Test_config02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("config02. env file and validation")

	dir := tst.TempDir()
	file := filepath.Join(dir, "test.env")
	os.WriteFile(file, []byte("DEBOUNCE_MS=250\nAUTH_DISABLED=true\nSOLVER_URL=http://solver:9000\n"), 0o600)
	for _, k := range []string{"DEBOUNCE_MS", "AUTH_DISABLED", "SOLVER_URL", "TOKEN_KEY"} {
		tst.Setenv(k, "")
		os.Unsetenv(k)
	}

	c, err := Load(file)
	if err != nil {
		tst.Fatalf("%v", err)
	}
	chk.String(tst, c.SolverURL, "http://solver:9000")
	if c.Debounce != 250*time.Millisecond || !c.AuthDisabled {
		tst.Errorf("env file not applied: %+v", c)
	}

	tst.Setenv("AUTH_DISABLED", "false")
	if _, err = Load(file); err == nil {
		tst.Errorf("missing TOKEN_KEY accepted")
	}

	tst.Setenv("AUTH_DISABLED", "true")
	tst.Setenv("SOLVER_TIMEOUT_MS", "soon")
	if _, err = Load(file); err == nil {
		tst.Errorf("bad timeout accepted")
	}
}
