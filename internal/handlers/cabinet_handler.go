package handlers

import (
	"net/http"
)

type CabinetHandler struct {
	Ads         AdvertisementService
	FavoriteSvc FavoriteService
}

// Index lists the caller's own advertisements, newest first.
func (h *CabinetHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	ads, err := h.Ads.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

// DeleteMyAd is silent about advertisements the caller does not own.
func (h *CabinetHandler) DeleteMyAd(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	deleted, err := h.Ads.DeleteOwned(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *CabinetHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	adID, ok := intParam(r, "adId")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	res, err := h.FavoriteSvc.Toggle(r.Context(), userID, adID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *CabinetHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	ads, err := h.FavoriteSvc.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ads)
}
