package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/askarbek-a/linkup/internal/config"
	"github.com/askarbek-a/linkup/internal/services"
	jwtutil "github.com/askarbek-a/linkup/pkg/jwt"
	"github.com/askarbek-a/linkup/pkg/logger"
)

// OAuthHandler exposes the Google login flow.
type OAuthHandler struct {
	Service *services.OAuthService
	Config  *config.Config
}

func NewOAuthHandler(service *services.OAuthService, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{Service: service, Config: cfg}
}

// GoogleURLHandler returns the consent URL the frontend should open.
func (h *OAuthHandler) GoogleURLHandler(w http.ResponseWriter, r *http.Request) {
	authURL, state := h.Service.AuthURL()
	writeJSON(w, http.StatusOK, map[string]string{
		"url":   authURL,
		"state": state,
	})
}

// GoogleCallbackHandler exchanges the authorization code and logs the user in.
func (h *OAuthHandler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Code == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.HandleCallback(r.Context(), body.Code)
	if err != nil {
		logger.Log.Warnf("Google OAuth callback failed: %v", err)
		http.Error(w, "Google sign-in failed", http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		logger.Log.Errorf("Failed to generate JWT token: %v", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	logger.Log.Infof("User %s logged in via Google", user.ID.Hex())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
		"token":   token,
	})
}
