package report

import (
	"bytes"
	"log"
	"net/http"

	"CraneView/internal/session"
)

// Source is the state a report is drawn from.
type Source interface {
	Snapshot() session.Snapshot
}

type Handler struct {
	Source Source
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	snap := h.Source.Snapshot()
	in := Input{
		Title:    r.URL.Query().Get("title"),
		Material: snap.Material,
		Scene:    snap.Scene,
		Result:   snap.Result,
	}

	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		log.Printf("report: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"crane-report.pdf\"")
	w.Write(buf.Bytes())
}
