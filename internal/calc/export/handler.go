package export

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mechapres/internal/calc/assessment"
	"mechapres/internal/settings"
)

type Handler struct {
	Defaults *settings.Store
}

// CashFlow runs the assessment and serves the workbook.
func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	var in assessment.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if in.Investment == nil && h.Defaults != nil {
		inv := h.Defaults.Investment()
		in.Investment = &inv
	}
	res, err := assessment.Run(in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f, err := Workbook(res)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("Mechapres_Cash_Flow_%s.xlsx", res.GeneratedAt.Format("20060102_1504"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		http.Error(w, "Export generation error", http.StatusInternalServerError)
		return
	}
}
