package geometry

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

type Response struct {
	Nodes   NodeSet  `json:"nodes"`
	Members []Member `json:"members"`
}

// Calc builds the undeformed geometry. Fields missing from the payload keep
// their default values.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input := Defaults()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Nodes: Build(input), Members: Members()})
}

func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Members())
}
