package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"CraneView/internal/crane/geometry"

	"github.com/cpmech/gosl/chk"
)

func Test_client01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("client01. request body and decoding")

	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calculate" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if u, p, ok := r.BasicAuth(); !ok || u != "admin" || p != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var body map[string]float64
		json.NewDecoder(r.Body).Decode(&body)
		for k := range body {
			keys = append(keys, k)
		}
		w.Write([]byte(`{"tip_displacement":{"dz":-3.5},"node_displacements":{"A_tip":{"dx":0,"dy":0,"dz":-3.5}},
			"member_results":{"M_arm":{"max_moment":1,"max_stress":120}},"max_stress":120,"yield_stress":235,
			"failures":[],"reactions":{"FL":245.25}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, 0)
	c.User, c.Password = "admin", "secret"
	res, err := c.Calculate(context.Background(), geometry.Defaults())
	if err != nil {
		tst.Fatalf("%v", err)
	}
	sort.Strings(keys)
	chk.Strings(tst, "request keys", keys, []string{
		"arm_angle", "arm_len", "arm_pivot_height", "base_len", "base_wid", "brace_mast_height",
		"mass_tip", "pipe_od", "t_wall", "tripod_attach_height", "yield_stress",
	})
	chk.Float64(tst, "tip dz", 1e-15, res.TipDisplacement.DZ, -3.5)
	chk.Float64(tst, "M_arm", 1e-15, res.MemberResults["M_arm"].MaxStress, 120)
}

func Test_client02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("client02. failures")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 0)
	_, err := c.Calculate(context.Background(), geometry.Defaults())
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError || se.Body != "boom" {
		tst.Errorf("expected StatusError 500, got %v", err)
	}

	errSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"singular stiffness matrix"}`))
	}))
	defer errSrv.Close()
	c = NewClient(errSrv.URL, time.Second, 0)
	if _, err := c.Calculate(context.Background(), geometry.Defaults()); err == nil {
		tst.Errorf("error body must fail")
	}

	c = NewClient("http://127.0.0.1:1", 200*time.Millisecond, 0)
	if _, err := c.Calculate(context.Background(), geometry.Defaults()); err == nil {
		tst.Errorf("unreachable solver must fail")
	}
}

func Test_client03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("client03. limiter honours the context")

	c := NewClient("http://127.0.0.1:1", time.Second, 0.001)
	c.Limiter.Allow()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Calculate(ctx, geometry.Defaults()); err == nil {
		tst.Errorf("limited call must fail once the context expires")
	}
}
