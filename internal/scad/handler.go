package scad

import (
	"bytes"
	"net/http"

	"CraneView/internal/crane/render"
)

type Handler struct {
	Scene func() render.Scene
}

// Model serves the shown geometry, deformation included.
func (h *Handler) Model(w http.ResponseWriter, r *http.Request) {
	scene := h.Scene()
	var buf bytes.Buffer
	if err := Write(&buf, scene.Nodes, scene.Members, scene.Params.PipeOD); err != nil {
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-openscad")
	w.Header().Set("Content-Disposition", "attachment; filename=\"crane_model.scad\"")
	w.Write(buf.Bytes())
}
