package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/material"
	"CraneView/internal/crane/render"

	"github.com/bep/debounce"
)

// ErrStale is returned by Solve when a newer request was issued while this
// one was in flight; its result has been discarded.
var ErrStale = errors.New("stale solver response discarded")

type Solver interface {
	Calculate(ctx context.Context, p geometry.ParameterSet) (*analysis.Result, error)
}

type Status struct {
	Params    geometry.ParameterSet `json:"params"`
	Material  string                `json:"material"`
	Scale     float64               `json:"scale"`
	ViewMode  render.Mode           `json:"view_mode"`
	Version   uint64                `json:"version"`
	Sequence  uint64                `json:"sequence"`
	Pending   int                   `json:"pending"`
	HasResult bool                  `json:"has_result"`
	LastError string                `json:"last_error,omitempty"`
}

// Session is the single viewer state. Every change recomputes the scene
// explicitly; parameter changes also schedule a debounced solver call.
type Session struct {
	solver   Solver
	debounce func(func())
	gate     Gate

	ctx    context.Context
	cancel context.CancelFunc

	// OnChange, when set, is called after each recompute with the new version.
	// It runs with the session lock held and must not call back into Session.
	OnChange func(version uint64)

	mu       sync.Mutex
	params   geometry.ParameterSet
	material string
	result   *analysis.Result
	scale    float64
	mode     render.Mode
	scene    render.Scene
	version  uint64
	pending  int
	lastErr  error
}

func New(solver Solver, wait time.Duration) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		solver:   solver,
		debounce: debounce.New(wait),
		ctx:      ctx,
		cancel:   cancel,
		params:   geometry.Defaults(),
		material: material.Default,
		scale:    1,
		mode:     render.ModeStress,
	}
	s.recompute()
	return s
}

// Close cancels in-flight solver calls.
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) Params() geometry.ParameterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *Session) Result() *analysis.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

func (s *Session) Scene() render.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// Snapshot is a scene together with the result it was composed from.
type Snapshot struct {
	Scene    render.Scene
	Result   *analysis.Result
	Material string
}

// Snapshot reads scene, result and material under one lock, so exports never
// mix a scene with a newer result.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Scene: s.scene, Result: s.result, Material: s.material}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Params:    s.params,
		Material:  s.material,
		Scale:     s.scale,
		ViewMode:  s.mode,
		Version:   s.version,
		Sequence:  s.gate.Latest(),
		Pending:   s.pending,
		HasResult: s.result != nil,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// SetParams replaces the parameter set, redraws the base geometry and
// schedules a solver call once the input has been quiet for the debounce
// period.
func (s *Session) SetParams(p geometry.ParameterSet) {
	s.mu.Lock()
	s.params = p
	s.recompute()
	s.mu.Unlock()

	s.debounce(func() {
		if s.ctx.Err() != nil {
			return
		}
		if err := s.Solve(s.ctx); err != nil && !errors.Is(err, ErrStale) {
			log.Printf("debounced solve: %v", err)
		}
	})
}

// SetMaterial applies a pipe preset to the current parameters.
func (s *Session) SetMaterial(name string) error {
	preset, err := material.Lookup(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.material = preset.Name
	p := preset.Apply(s.params)
	s.mu.Unlock()

	s.SetParams(p)
	return nil
}

// SetView changes the deformation scale and/or view mode; nil or empty
// arguments keep the current value.
func (s *Session) SetView(scale *float64, mode string) error {
	var m render.Mode
	if mode != "" {
		var err error
		if m, err = render.ParseMode(mode); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if scale != nil {
		s.scale = *scale
	}
	if m != "" {
		s.mode = m
	}
	s.recompute()
	return nil
}

// Solve calls the solver with the current parameters right away. The answer
// is shown only if no newer request was issued meanwhile. On failure the
// previous result stays on screen.
func (s *Session) Solve(ctx context.Context) error {
	s.mu.Lock()
	p := s.params
	seq := s.gate.Issue()
	s.pending++
	s.mu.Unlock()

	res, err := s.solver.Calculate(ctx, p)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if !s.gate.Accept(seq) {
		log.Printf("solver response #%d discarded, latest is #%d", seq, s.gate.Latest())
		return ErrStale
	}
	if err != nil {
		s.lastErr = err
		log.Printf("solver request #%d failed, keeping previous result: %v", seq, err)
		return err
	}
	s.lastErr = nil
	s.result = res
	s.recompute()
	return nil
}

// recompute must be called with s.mu held.
func (s *Session) recompute() {
	s.scene = render.Compose(render.Input{
		Params: s.params,
		Result: s.result,
		Scale:  s.scale,
		Mode:   s.mode,
	})
	s.version++
	if s.OnChange != nil {
		s.OnChange(s.version)
	}
}
