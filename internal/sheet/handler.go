package sheet

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"CraneView/internal/crane/geometry"
	"CraneView/internal/session"
)

// Store is the state a workbook is exported from and imported into.
type Store interface {
	Snapshot() session.Snapshot
	Params() geometry.ParameterSet
	SetParams(p geometry.ParameterSet)
}

type Handler struct {
	Store Store
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	snap := h.Store.Snapshot()
	if err := Export(&buf, snap.Scene, snap.Result); err != nil {
		log.Printf("export: %v", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"crane.xlsx\"")
	w.Write(buf.Bytes())
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	p, err := Import(file, h.Store.Params())
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	h.Store.SetParams(p)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(p)
}
