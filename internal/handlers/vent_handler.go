package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/askarbek-a/linkup/internal/services"
	"github.com/askarbek-a/linkup/pkg/logger"
	"github.com/askarbek-a/linkup/pkg/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VentHandler manages HTTP endpoints for the private journal.
type VentHandler struct {
	Service   *services.VentService
	UploadDir string
}

func NewVentHandler(service *services.VentService, uploadDir string) *VentHandler {
	return &VentHandler{Service: service, UploadDir: uploadDir}
}

// CreateVentHandler creates a journal entry for the caller.
func (h *VentHandler) CreateVentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Content   string `json:"content"`
		IsPrivate bool   `json:"is_private"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ownerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	vent, err := h.Service.CreateVent(r.Context(), ownerID, body.Content, body.IsPrivate)
	if err != nil {
		logger.Log.Warnf("Failed to create vent: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, vent)
}

// ListVentsHandler returns the caller's own journal entries.
func (h *VentHandler) ListVentsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ownerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	vents, err := h.Service.ListVents(r.Context(), ownerID)
	if err != nil {
		logger.Log.Errorf("Failed to list vents: %v", err)
		http.Error(w, "Failed to list vents", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, vents)
}

// UpdateVentHandler edits an owned journal entry.
func (h *VentHandler) UpdateVentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	ventID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid vent ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Content   string `json:"content"`
		IsPrivate bool   `json:"is_private"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ownerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.UpdateVent(r.Context(), ownerID, ventID, body.Content, body.IsPrivate); err != nil {
		logger.Log.Warnf("Failed to update vent %s: %v", vars["id"], err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Vent updated"})
}

// DeleteVentHandler removes an owned journal entry.
func (h *VentHandler) DeleteVentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	ventID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid vent ID", http.StatusBadRequest)
		return
	}

	ownerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.DeleteVent(r.Context(), ownerID, ventID); err != nil {
		logger.Log.Warnf("Failed to delete vent %s: %v", vars["id"], err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UploadVoiceHandler stores an uploaded voice note and links it to the vent.
func (h *VentHandler) UploadVoiceHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	ventID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid vent ID", http.StatusBadRequest)
		return
	}

	r.ParseMultipartForm(10 << 20) // max ~10MB
	file, header, err := r.FormFile("voice")
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	duration, _ := strconv.Atoi(r.FormValue("duration_secs"))

	fileName := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(header.Filename))
	filePath := filepath.Join(h.UploadDir, fileName)

	out, err := h.createFile(filePath)
	if err != nil {
		logger.Log.Errorf("Failed to create upload file: %v", err)
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	voiceURL := "/uploads/" + fileName
	ownerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.AttachVoice(r.Context(), ownerID, ventID, voiceURL, duration); err != nil {
		logger.Log.Warnf("Failed to attach voice note to vent %s: %v", vars["id"], err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":           voiceURL,
		"duration_secs": duration,
	})
}

func (h *VentHandler) createFile(path string) (*os.File, error) {
	if _, err := os.Stat(h.UploadDir); os.IsNotExist(err) {
		os.MkdirAll(h.UploadDir, os.ModePerm)
	}
	return os.Create(path)
}
