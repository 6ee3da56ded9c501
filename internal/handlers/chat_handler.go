package handlers

import (
	"net/http"
	"strings"

	"advertBack/internal/models"
)

type ChatHandler struct {
	Service ChatService
}

func (h *ChatHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	chats, err := h.Service.Conversations(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	otherID, ok := intParam(r, "userId")
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	view, err := h.Service.Conversation(r.Context(), userID, otherID, optionalInt(r, "adId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type sendMessageRequest struct {
	ToUserID    int    `json:"toUserId"`
	MessageText string `json:"messageText"`
	AdID        *int   `json:"adId"`
}

// SendMessage accepts JSON or form fields toUserId, messageText and adId.
// Blank text stores nothing and answers 204.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req sendMessageRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	} else {
		req.ToUserID, _ = intParam(r, "toUserId")
		req.MessageText = getParam(r, "messageText")
		req.AdID = optionalInt(r, "adId")
	}
	if req.ToUserID <= 0 {
		http.Error(w, "Invalid recipient", http.StatusBadRequest)
		return
	}

	msg, err := h.Service.Send(r.Context(), userID, req.ToUserID, req.MessageText, req.AdID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if msg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) RegisterDeviceToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req models.DeviceToken
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.RegisterDeviceToken(r.Context(), userID, req.Token); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
