package handlers

import (
	"net/http"

	"advertBack/internal/models"
)

type CategoryHandler struct {
	Service CategoryService
}

func (h *CategoryHandler) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListWithAdCounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}
	details, err := h.Service.Details(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	details.Advertisements = models.PublicAdvertisements(details.Advertisements)
	writeJSON(w, http.StatusOK, details)
}
