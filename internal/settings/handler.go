package settings

import (
	"encoding/json"
	"net/http"

	"mechapres/internal/calc/economics"
)

type Handler struct {
	Store *Store
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.Investment())
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var inv economics.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := h.Store.SetInvestment(inv); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.Investment())
}
