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

type CandidateHandler struct {
	store store.Store
}

func NewCandidateHandler(st store.Store) *CandidateHandler {
	return &CandidateHandler{store: st}
}

// ByTopic handles GET /api/candidates/topic/{topicId}
func (h *CandidateHandler) ByTopic(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.store.CandidatesByTopic(r.PathValue("topicId"))
	if err != nil {
		storeError(w, "failed to list candidates", err)
		return
	}

	if candidates == nil {
		candidates = []models.Candidate{}
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Get handles GET /api/candidates/{id}
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.store.GetCandidate(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query candidate", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// Create handles POST /api/candidates. Candidates exist from the Collection
// phase on.
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.TopicID == "" || req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name, topicId, and userId are required")
		return
	}

	topic, err := h.store.GetTopic(req.TopicID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query topic", err)
		return
	}

	if err := engine.CanCreateCandidate(topic); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.store.GetUser(req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		storeError(w, "failed to query user", err)
		return
	}

	if !topic.IsParticipant(req.UserID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "User is not a participant in this topic")
		return
	}

	candidate := models.Candidate{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		TopicID:     req.TopicID,
		CreatedBy:   req.UserID,
		CreatedAt:   time.Now(),
	}

	if err := h.store.CreateCandidate(candidate); err != nil {
		storeError(w, "failed to create candidate", err)
		return
	}

	slog.Info("candidate created", "candidate_id", candidate.ID, "topic_id", candidate.TopicID)

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// Update handles PATCH /api/candidates/{id}
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, err := h.store.GetCandidate(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query candidate", err)
		return
	}

	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Description != nil {
		candidate.Description = *req.Description
	}

	if err := h.store.UpdateCandidate(candidate); err != nil {
		storeError(w, "failed to update candidate", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// Delete handles DELETE /api/candidates/{id}. Candidates are frozen once
// the topic leaves the Collection phase.
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.store.GetCandidate(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query candidate", err)
		return
	}

	topic, err := h.store.GetTopic(candidate.TopicID)
	if err == nil {
		if gateErr := engine.CanDeleteCandidate(topic); gateErr != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, gateErr.Error())
			return
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		storeError(w, "failed to query topic", err)
		return
	}

	if err := h.store.DeleteCandidate(candidate.ID); err != nil {
		storeError(w, "failed to delete candidate", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Candidate deleted successfully"})
}
