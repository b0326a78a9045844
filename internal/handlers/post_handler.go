package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/internal/services"
	"github.com/askarbek-a/linkup/pkg/logger"
	"github.com/askarbek-a/linkup/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler manages HTTP endpoints for the feed.
type PostHandler struct {
	Service *services.PostService
}

func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{Service: service}
}

// GetFeedHandler lists posts, newest first.
func (h *PostHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	posts, err := h.Service.GetFeed(r.Context(), limit)
	if err != nil {
		logger.Log.Errorf("Failed to fetch feed: %v", err)
		http.Error(w, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// CreatePostHandler creates a post authored by the caller.
func (h *PostHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Content     string `json:"content"`
		MediaType   string `json:"media_type"`
		MediaURL    string `json:"media_url"`
		IsAnonymous bool   `json:"is_anonymous"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	authorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	post := &models.Post{
		AuthorID:    authorID,
		Content:     body.Content,
		MediaType:   body.MediaType,
		MediaURL:    body.MediaURL,
		IsAnonymous: body.IsAnonymous,
	}

	created, err := h.Service.CreatePost(r.Context(), post)
	if err != nil {
		logger.Log.Warnf("Failed to create post: %v", err)
		writeError(w, err)
		return
	}

	logger.Log.Infof("User %s created post %s", claims.UserID, created.ID.Hex())
	writeJSON(w, http.StatusCreated, created)
}

// DeletePostHandler removes a post. Author only, enforced server-side.
func (h *PostHandler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	postID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.DeletePost(r.Context(), actorID, postID); err != nil {
		logger.Log.Warnf("Failed to delete post %s: %v", vars["id"], err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// LikePostHandler records a like. One like per user per post.
func (h *PostHandler) LikePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	postID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.LikePost(r.Context(), actorID, postID); err != nil {
		logger.Log.Warnf("Failed to like post %s: %v", vars["id"], err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post liked"})
}
