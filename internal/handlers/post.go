package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sbelkacem/gosocial/internal/metrics"
	"github.com/sbelkacem/gosocial/internal/middleware"
	"github.com/sbelkacem/gosocial/internal/repo"
)

// ==========================
// Post Handler
// ==========================
// All routes run behind the strict auth middleware, so an identity is always
// present in the context.
type PostHandler struct {
	Store repo.PostStore
}

type postInput struct {
	Text string `json:"text" validate:"required"`
}

// ==========================
// Create Post
// ==========================
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input postInput
	// A non-string text value fails the decode, an absent or empty one fails
	// validation; both are 400.
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// ===== Validate input =====
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", map[string]string{"text": "required"}, http.StatusBadRequest)
		return
	}

	post, err := h.Store.Create(r.Context(), id.UserID, input.Text)
	if err != nil {
		slog.Error("create post failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordPostCreated()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "post created successfully",
		"post":    post,
	})
}

// ==========================
// Update Post
// ==========================
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", map[string]string{"text": "required"}, http.StatusBadRequest)
		return
	}

	post, err := h.Store.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "post not found", http.StatusNotFound)
			return
		}
		slog.Error("get post failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	// Only the owner may update, same contract as delete.
	if post.UserID != id.UserID {
		JSONError(w, "forbidden", http.StatusForbidden)
		return
	}

	updated, err := h.Store.UpdateText(r.Context(), postID, input.Text)
	if err != nil {
		slog.Error("update post failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "post updated successfully",
		"updatedPost": updated,
	})
}

// ==========================
// Delete Post
// ==========================
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	// Lookup is scoped to id AND owner; somebody else's post looks absent.
	deleted, err := h.Store.DeleteByIDAndOwner(r.Context(), postID, id.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "post not found", http.StatusNotFound)
			return
		}
		slog.Error("delete post failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "post deleted successfully",
		"deletedPost": deleted,
	})
}

// ==========================
// List Posts
// ==========================
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	posts, err := h.Store.ListByOwner(r.Context(), id.UserID)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	total, err := h.Store.CountByOwner(r.Context(), id.UserID)
	if err != nil {
		slog.Error("count posts failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items": posts,
		"total": total,
	})
}
