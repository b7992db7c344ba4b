package handlers

import (
	"net/http"
	"strings"

	"sellerdesk/internal/models"
)

type CompanyHandler struct {
	*Base
}

func (h *CompanyHandler) CompanyForm(w http.ResponseWriter, r *http.Request) {
	profile, err := h.apiFor(r).GetCompany(r.Context())
	if err != nil {
		h.flashError(w, r, err, "Could not load company profile.", "/")
		return
	}
	h.render(w, r, "company.html", map[string]interface{}{
		"Company": profile,
	})
}

func (h *CompanyHandler) SaveCompany(w http.ResponseWriter, r *http.Request) {
	profile := models.CompanyProfile{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		UPIId:       strings.TrimSpace(r.FormValue("upi_id")),
		Website:     strings.TrimSpace(r.FormValue("website")),
		Instagram:   strings.TrimSpace(r.FormValue("instagram")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if profile.Name == "" {
		h.flashError(w, r, nil, "Business name is required.", "/company")
		return
	}

	if err := h.apiFor(r).SaveCompany(r.Context(), profile); err != nil {
		RecordWrite("company_save", false)
		h.flashError(w, r, err, "Error saving company profile.", "/company")
		return
	}
	RecordWrite("company_save", true)
	h.flashSuccess(w, r, "Company profile saved.", "/company")
}
