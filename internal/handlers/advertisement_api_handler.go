package handlers

import (
	"net/http"
	"strconv"

	"advertBack/internal/models"
)

// AdvertisementAPIHandler serves the JSON CRUD under /api/Advertisements.
type AdvertisementAPIHandler struct {
	Ads         AdvertisementService
	CategorySvc CategoryService
	Users       UserService
}

func (h *AdvertisementAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	list, err := h.Ads.APIList(r.Context(), pageParam(r, "page"), pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdvertisementAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	ad, err := h.Ads.APIGet(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

func (h *AdvertisementAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.APIAdvertisementWrite
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.Ads.APICreate(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/Advertisements/"+strconv.Itoa(created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *AdvertisementAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	var req models.APIAdvertisementWrite
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Ads.APIUpdate(r.Context(), actor, id, req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdvertisementAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	if err := h.Ads.APIDelete(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdvertisementAPIHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategorySvc.APIList(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// FirstUser returns ids usable as defaults when creating test advertisements.
func (h *AdvertisementAPIHandler) FirstUser(w http.ResponseWriter, r *http.Request) {
	first, err := h.Users.FirstUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, first)
}
