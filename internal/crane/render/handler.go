package render

import (
	"encoding/json"
	"net/http"

	"CraneView/internal/crane/analysis"
	"CraneView/internal/crane/geometry"
	"CraneView/internal/crane/material"
)

type Handler struct{}

type Request struct {
	Params   *geometry.ParameterSet `json:"params"`
	Material string                 `json:"material"`
	Result   *analysis.Result       `json:"result"`
	Scale    *float64               `json:"scale"`
	ViewMode string                 `json:"view_mode"`
}

// Calc composes a scene from everything in the request; nothing is kept
// between calls. Parameters missing from the payload keep their defaults.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	params := geometry.Defaults()
	req := Request{Params: &params}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	in, err := req.Input()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Compose(in))
}

// Input fills in defaults: default parameters, scale 1 and stress mode.
func (req Request) Input() (Input, error) {
	params := geometry.Defaults()
	if req.Params != nil {
		params = *req.Params
	}
	if req.Material != "" {
		preset, err := material.Lookup(req.Material)
		if err != nil {
			return Input{}, err
		}
		params = preset.Apply(params)
	}
	mode, err := ParseMode(req.ViewMode)
	if err != nil {
		return Input{}, err
	}
	scale := 1.0
	if req.Scale != nil {
		scale = *req.Scale
	}
	return Input{Params: params, Result: req.Result, Scale: scale, Mode: mode}, nil
}
