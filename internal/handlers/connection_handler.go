package handlers

import (
	"net/http"

	"github.com/askarbek-a/linkup/internal/services"
	"github.com/askarbek-a/linkup/pkg/logger"
	"github.com/askarbek-a/linkup/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionHandler manages HTTP endpoints for connection requests.
type ConnectionHandler struct {
	Service *services.ConnectionService
}

// NewConnectionHandler initializes a new ConnectionHandler.
func NewConnectionHandler(service *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{Service: service}
}

// SendRequestHandler sends a connection request to the user in the path.
func (h *ConnectionHandler) SendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to send connection request")
		return
	}

	vars := mux.Vars(r)
	receiverID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		logger.Log.Warnf("Invalid receiver ID: %v", err)
		return
	}

	requesterID, _ := primitive.ObjectIDFromHex(claims.UserID)

	request, err := h.Service.SendRequest(r.Context(), requesterID, receiverID)
	if err != nil {
		logger.Log.Warnf("Failed to send connection request: %v", err)
		writeError(w, err)
		return
	}

	logger.Log.Infof("User %s sent a connection request to %s", claims.UserID, vars["id"])
	writeJSON(w, http.StatusCreated, request)
}

// GetPendingRequestsHandler shows all incoming connection requests.
func (h *ConnectionHandler) GetPendingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	requests, err := h.Service.GetPendingRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to get pending requests: %v", err)
		http.Error(w, "Failed to get requests", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// AcceptRequestHandler accepts a pending request. Receiver only.
func (h *ConnectionHandler) AcceptRequestHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, true)
}

// RejectRequestHandler rejects a pending request, deleting it. Receiver only.
func (h *ConnectionHandler) RejectRequestHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, false)
}

func (h *ConnectionHandler) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	requestID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if accept {
		err = h.Service.AcceptRequest(r.Context(), actorID, requestID)
	} else {
		err = h.Service.RejectRequest(r.Context(), actorID, requestID)
	}
	if err != nil {
		logger.Log.Warnf("Failed to respond to connection request %s: %v", vars["id"], err)
		writeError(w, err)
		return
	}

	logger.Log.Infof("User %s responded to connection request %s (accepted: %v)", claims.UserID, vars["id"], accept)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Connection request response recorded",
	})
}

// GetConnectionsHandler returns the caller's connected users.
func (h *ConnectionHandler) GetConnectionsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	connections, err := h.Service.GetConnectedUsers(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch connections for user %s: %v", claims.UserID, err)
		http.Error(w, "Failed to get connections", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, connections)
}

// DisconnectHandler severs an accepted connection with the user in the path.
func (h *ConnectionHandler) DisconnectHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	otherID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Disconnect(r.Context(), userID, otherID); err != nil {
		logger.Log.Warnf("Failed to disconnect users %s and %s: %v", claims.UserID, vars["id"], err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Disconnected"})
}
