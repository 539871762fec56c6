package assessment

import (
	"encoding/json"
	"net/http"

	"mechapres/internal/settings"
)

type Handler struct {
	Defaults *settings.Store
}

// Run serves the full pipeline. Assessments that do not carry their own
// investment figures get the admin-maintained rate card.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if in.Investment == nil && h.Defaults != nil {
		inv := h.Defaults.Investment()
		in.Investment = &inv
	}
	res, err := Run(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
