package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/askarbek-a/linkup/internal/services"
	"github.com/askarbek-a/linkup/pkg/logger"
	"github.com/askarbek-a/linkup/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler manages HTTP endpoints for direct messaging.
type MessageHandler struct {
	Service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{Service: service}
}

// SendMessageHandler sends a direct message to a connected user.
func (h *MessageHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		ReceiverID string `json:"receiver_id"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	receiverID, err := primitive.ObjectIDFromHex(body.ReceiverID)
	if err != nil {
		http.Error(w, "Invalid receiver ID", http.StatusBadRequest)
		return
	}

	senderID, _ := primitive.ObjectIDFromHex(claims.UserID)

	msg, err := h.Service.SendMessage(r.Context(), senderID, receiverID, body.Content)
	if err != nil {
		logger.Log.Warnf("Failed to send message from %s to %s: %v", claims.UserID, body.ReceiverID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// GetConversationHandler returns the caller's thread with another user.
func (h *MessageHandler) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	otherID, err := primitive.ObjectIDFromHex(vars["userId"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	messages, err := h.Service.GetConversation(r.Context(), userID, otherID)
	if err != nil {
		logger.Log.Errorf("Failed to get conversation: %v", err)
		http.Error(w, "Failed to get conversation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// MarkAsReadHandler marks a received message as read. Idempotent.
func (h *MessageHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	messageID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.MarkAsRead(r.Context(), actorID, messageID); err != nil {
		logger.Log.Warnf("Failed to mark message %s as read: %v", vars["id"], err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Message marked as read"})
}

// UnreadCountHandler returns the caller's unread message count.
func (h *MessageHandler) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	count, err := h.Service.UnreadCount(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to count unread messages: %v", err)
		http.Error(w, "Failed to count unread messages", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"unread": count})
}
