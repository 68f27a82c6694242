package preview

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"CraneView/internal/crane/render"
)

type Handler struct {
	Scene func() render.Scene
}

// Image serves the shown scene as WebP. Query w, h, az and el override the
// default camera and size.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	opt := DefaultOptions()
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("w")); err == nil && v > 0 && v <= 4096 {
		opt.Width = v
	}
	if v, err := strconv.Atoi(q.Get("h")); err == nil && v > 0 && v <= 4096 {
		opt.Height = v
	}
	if v, err := strconv.ParseFloat(q.Get("az"), 64); err == nil {
		opt.Azimuth = v
	}
	if v, err := strconv.ParseFloat(q.Get("el"), 64); err == nil {
		opt.Elevation = v
	}

	var buf bytes.Buffer
	if err := Encode(&buf, h.Scene().Primitives, opt); err != nil {
		log.Printf("preview: %v", err)
		http.Error(w, "Preview error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/webp")
	w.Write(buf.Bytes())
}
