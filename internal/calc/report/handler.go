package report

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mechapres/internal/calc/assessment"
	"mechapres/internal/settings"
)

// Mailer delivers a report to a recipient. Satisfied by mail.Client; nil
// means email delivery is not configured.
type Mailer interface {
	Send(to, subject, body string, attachment []byte, filename string) error
}

type Request struct {
	assessment.Input
	Contact Contact `json:"contact"`
}

type Handler struct {
	Defaults *settings.Store
	Mail     Mailer
}

func (h *Handler) run(in assessment.Input) (assessment.Result, error) {
	if in.Investment == nil && h.Defaults != nil {
		inv := h.Defaults.Investment()
		in.Investment = &inv
	}
	return assessment.Run(in)
}

// Quick serves the estimate PDF with no contact details required.
func (h *Handler) Quick(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.run(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pdf, err := QuickEstimate(req.Input, res)
	if err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	servePDF(w, fmt.Sprintf("Mechapres_Quick_Estimate_%s.pdf", res.GeneratedAt.Format("20060102_1504")), pdf)
}

// Detailed serves the full report PDF. Name and email are required.
func (h *Handler) Detailed(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Contact.Name == "" || req.Contact.Email == "" {
		http.Error(w, "Please provide your name and email", http.StatusBadRequest)
		return
	}
	res, err := h.run(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pdf, err := Detailed(req.Input, req.Contact, res)
	if err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	servePDF(w, fmt.Sprintf("Mechapres_Report_%s.pdf", res.GeneratedAt.Format("20060102_1504")), pdf)
}

// Email generates the detailed report and sends it to the contact address.
// Consent is required before anything leaves the service.
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Contact.Name == "" || req.Contact.Email == "" {
		http.Error(w, "Please provide your name and email", http.StatusBadRequest)
		return
	}
	if !req.Contact.Consent {
		http.Error(w, "Please provide consent to email the report", http.StatusBadRequest)
		return
	}
	if h.Mail == nil {
		http.Error(w, "Email delivery is not configured", http.StatusServiceUnavailable)
		return
	}
	res, err := h.run(req.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pdf, err := Detailed(req.Input, req.Contact, res)
	if err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("Mechapres_Report_%s.pdf", res.GeneratedAt.Format("20060102_1504"))
	body := fmt.Sprintf("Hi %s,\n\nAttached is your Mechapres industrial heat pump estimate.\n\nBest regards,\nMechapres", req.Contact.Name)
	if err := h.Mail.Send(req.Contact.Email, "Your Mechapres Heat Pump Estimate", body, pdf, filename); err != nil {
		http.Error(w, "Email delivery failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "sent",
		"to":        req.Contact.Email,
		"reference": res.Reference,
	})
}

func servePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(pdf)
}
