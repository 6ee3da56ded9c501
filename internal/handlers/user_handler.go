package handlers

import (
	"net/http"

	"advertBack/internal/models"
)

type UserHandler struct {
	Service UserService
}

func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	public := make([]models.User, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	writeJSON(w, http.StatusOK, public)
}

func (h *UserHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	details, err := h.Service.Details(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	details.User = details.User.Public()
	details.Advertisements = models.PublicAdvertisements(details.Advertisements)
	writeJSON(w, http.StatusOK, details)
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	user, err := h.Service.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	tokens, err := h.Service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}
