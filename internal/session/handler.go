package session

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler struct {
	Session *Session
}

type viewRequest struct {
	Scale    *float64 `json:"scale"`
	ViewMode string   `json:"view_mode"`
}

type materialRequest struct {
	Material string `json:"material"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) GetParams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Params())
}

// PutParams merges the payload into the current parameters, so a slider can
// send just the field it changed.
func (h *Handler) PutParams(w http.ResponseWriter, r *http.Request) {
	p := h.Session.Params()
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	h.Session.SetParams(p)
	writeJSON(w, http.StatusAccepted, h.Session.Status())
}

func (h *Handler) PutView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.Session.SetView(req.Scale, req.ViewMode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.Session.Status())
}

func (h *Handler) PutMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.Session.SetMaterial(req.Material); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusAccepted, h.Session.Status())
}

// Solve runs the analysis immediately.
func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	err := h.Session.Solve(r.Context())
	switch {
	case errors.Is(err, ErrStale):
		writeJSON(w, http.StatusConflict, h.Session.Status())
	case err != nil:
		http.Error(w, "Calculation error", http.StatusBadGateway)
	default:
		writeJSON(w, http.StatusOK, h.Session.Result())
	}
}

func (h *Handler) GetScene(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Scene())
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	res := h.Session.Result()
	if res == nil {
		http.Error(w, "No result yet", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Status())
}
