// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tmarkell/consensio/middleware"
	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

type UserHandler struct {
	store store.Store
}

func NewUserHandler(st store.Store) *UserHandler {
	return &UserHandler{store: st}
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Topics:    []string{},
		CreatedAt: time.Now(),
	}

	err := h.store.CreateUser(user)
	if errors.Is(err, store.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "User with this email already exists")
		return
	}
	if err != nil {
		storeError(w, "failed to create user", err)
		return
	}

	slog.Info("user created", "user_id", user.ID, "email", user.Email)

	middleware.JSONResponse(w, http.StatusCreated, user)
}

// List handles GET /api/users with an optional ?email= filter
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		user, err := h.store.GetUserByEmail(email)
		if errors.Is(err, store.ErrNotFound) {
			middleware.JSONResponse(w, http.StatusOK, []models.User{})
			return
		}
		if err != nil {
			storeError(w, "failed to query user by email", err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, []models.User{user})
		return
	}

	users, err := h.store.ListUsers()
	if err != nil {
		storeError(w, "failed to list users", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query user", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// Update handles PATCH /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.store.GetUser(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query user", err)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	err = h.store.UpdateUser(user)
	if errors.Is(err, store.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Another user with this email already exists")
		return
	}
	if err != nil {
		storeError(w, "failed to update user", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteUser(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		storeError(w, "failed to delete user", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "User deleted successfully"})
}

// Topics handles GET /api/users/{id}/topics
func (h *UserHandler) Topics(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query user", err)
		return
	}

	topics := []models.Topic{}
	for _, topicID := range user.Topics {
		topic, err := h.store.GetTopic(topicID)
		if errors.Is(err, store.ErrNotFound) {
			// Stale reference to a deleted topic.
			continue
		}
		if err != nil {
			storeError(w, "failed to query topic", err)
			return
		}
		topics = append(topics, topic)
	}

	middleware.JSONResponse(w, http.StatusOK, topics)
}
