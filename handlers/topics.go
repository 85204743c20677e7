// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tmarkell/consensio/engine"
	"github.com/tmarkell/consensio/middleware"
	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

type TopicHandler struct {
	store store.Store
}

func NewTopicHandler(st store.Store) *TopicHandler {
	return &TopicHandler{store: st}
}

// List handles GET /api/topics
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.store.ListTopics()
	if err != nil {
		storeError(w, "failed to list topics", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, topics)
}

// Get handles GET /api/topics/{id}
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	topic, err := h.store.GetTopic(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query topic", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, topic)
}

// Create handles POST /api/topics. The creating user becomes the first
// participant and the topic is added to their topic list.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTopicRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name and userId are required")
		return
	}

	user, err := h.store.GetUser(req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query user", err)
		return
	}

	topic := models.Topic{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		CurrentPhase: models.PhaseDefinition,
		Participants: []string{user.ID},
		CreatedAt:    time.Now(),
	}

	if err := h.store.CreateTopic(topic); err != nil {
		storeError(w, "failed to create topic", err)
		return
	}

	user.Topics = append(user.Topics, topic.ID)
	if err := h.store.UpdateUser(user); err != nil {
		storeError(w, "failed to update user", err)
		return
	}

	slog.Info("topic created", "topic_id", topic.ID, "creator", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, topic)
}

// Update handles PATCH /api/topics/{id}. Name and description only; the
// phase moves exclusively through the phase endpoint.
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTopicRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	topic, err := h.store.GetTopic(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query topic", err)
		return
	}

	if req.Name != "" {
		topic.Name = req.Name
	}
	if req.Description != "" {
		topic.Description = req.Description
	}

	if err := h.store.UpdateTopic(topic); err != nil {
		storeError(w, "failed to update topic", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, topic)
}

// AddParticipant handles POST /api/topics/{id}/participants
func (h *TopicHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req models.AddParticipantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "UserId is required")
		return
	}

	user, err := h.store.GetUser(req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query user", err)
		return
	}

	topic, err := h.store.GetTopic(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query topic", err)
		return
	}

	if topic.IsParticipant(user.ID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "User is already a participant")
		return
	}

	topic.Participants = append(topic.Participants, user.ID)
	if err := h.store.UpdateTopic(topic); err != nil {
		storeError(w, "failed to update topic", err)
		return
	}

	user.Topics = append(user.Topics, topic.ID)
	if err := h.store.UpdateUser(user); err != nil {
		storeError(w, "failed to update user", err)
		return
	}

	slog.Info("participant added", "topic_id", topic.ID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, topic)
}

// Delete handles DELETE /api/topics/{id}. The store cascades removal of the
// topic from every participant's topic list.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteTopic(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to delete topic", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Topic deleted successfully"})
}

// UpdatePhase handles PATCH /api/topics/{id}/phase. The target phase must
// be in [1,3]; phase-completion prerequisites are advisory-only (see the
// summary endpoint) and are deliberately not enforced here.
func (h *TopicHandler) UpdatePhase(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePhaseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !engine.ValidPhase(req.Phase) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Valid phase (1-3) is required")
		return
	}

	topic, err := h.store.GetTopic(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query topic", err)
		return
	}

	topic.CurrentPhase = req.Phase
	if err := h.store.UpdateTopic(topic); err != nil {
		storeError(w, "failed to update topic", err)
		return
	}

	slog.Info("topic phase updated", "topic_id", topic.ID, "phase", req.Phase)

	middleware.JSONResponse(w, http.StatusOK, topic)
}
