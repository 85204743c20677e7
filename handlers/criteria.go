// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tmarkell/consensio/middleware"
	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

type CriterionHandler struct {
	store store.Store
}

func NewCriterionHandler(st store.Store) *CriterionHandler {
	return &CriterionHandler{store: st}
}

// ByTopic handles GET /api/criteria/topic/{topicId}
func (h *CriterionHandler) ByTopic(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.store.CriteriaByTopic(r.PathValue("topicId"))
	if err != nil {
		storeError(w, "failed to list criteria", err)
		return
	}

	if criteria == nil {
		criteria = []models.Criterion{}
	}
	sortByRankDesc(criteria)
	middleware.JSONResponse(w, http.StatusOK, criteria)
}

// ByUserTopic handles GET /api/criteria/user/{userId}/topic/{topicId}
func (h *CriterionHandler) ByUserTopic(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.store.CriteriaByUserTopic(r.PathValue("userId"), r.PathValue("topicId"))
	if err != nil {
		storeError(w, "failed to list criteria", err)
		return
	}

	if criteria == nil {
		criteria = []models.Criterion{}
	}
	sortByRankDesc(criteria)
	middleware.JSONResponse(w, http.StatusOK, criteria)
}

// SharedByTopic handles GET /api/criteria/shared/topic/{topicId}
func (h *CriterionHandler) SharedByTopic(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.store.SharedCriteriaByTopic(r.PathValue("topicId"))
	if err != nil {
		storeError(w, "failed to list shared criteria", err)
		return
	}

	if criteria == nil {
		criteria = []models.Criterion{}
	}
	middleware.JSONResponse(w, http.StatusOK, criteria)
}

// Create handles POST /api/criteria. The new criterion lands at the bottom
// of the author's list: rank = count of their criteria in the topic + 1.
func (h *CriterionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCriterionRequest
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

	existing, err := h.store.CriteriaByUserTopic(req.UserID, req.TopicID)
	if err != nil {
		storeError(w, "failed to list criteria", err)
		return
	}

	criterion := models.Criterion{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		TopicID:     req.TopicID,
		UserID:      req.UserID,
		Rank:        len(existing) + 1,
		IsShared:    req.IsShared,
		CreatedAt:   time.Now(),
	}

	if err := h.store.CreateCriterion(criterion); err != nil {
		storeError(w, "failed to create criterion", err)
		return
	}

	slog.Info("criterion created", "criterion_id", criterion.ID, "topic_id", criterion.TopicID, "shared", criterion.IsShared)

	middleware.JSONResponse(w, http.StatusCreated, criterion)
}

// Update handles PATCH /api/criteria/{id}
func (h *CriterionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCriterionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	criterion, err := h.store.GetCriterion(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Criterion not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query criterion", err)
		return
	}

	if req.Name != nil {
		criterion.Name = *req.Name
	}
	if req.Description != nil {
		criterion.Description = *req.Description
	}
	if req.Rank != nil {
		criterion.Rank = *req.Rank
	}
	if req.IsShared != nil {
		criterion.IsShared = *req.IsShared
	}

	if err := h.store.UpdateCriterion(criterion); err != nil {
		storeError(w, "failed to update criterion", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, criterion)
}

// Delete handles DELETE /api/criteria/{id}. The store compacts the ranks of
// the author's remaining criteria in the topic to a contiguous 1..N
// sequence.
func (h *CriterionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteCriterion(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Criterion not found")
		return
	}
	if err != nil {
		storeError(w, "failed to delete criterion", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Criterion deleted successfully"})
}

// BulkRank handles POST /api/criteria/rank, updating the ranks of multiple
// criteria at once. Items referencing missing criteria are skipped.
func (h *CriterionHandler) BulkRank(w http.ResponseWriter, r *http.Request) {
	var req models.RankCriteriaRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Rankings == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Rankings array is required")
		return
	}

	for _, item := range req.Rankings {
		if item.CriterionID == "" || item.Rank == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Each ranking must include criterionId and rank")
			return
		}
	}

	for _, item := range req.Rankings {
		criterion, err := h.store.GetCriterion(item.CriterionID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			storeError(w, "failed to query criterion", err)
			return
		}

		criterion.Rank = *item.Rank
		if err := h.store.UpdateCriterion(criterion); err != nil {
			storeError(w, "failed to update criterion", err)
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Rankings updated successfully"})
}

func sortByRankDesc(criteria []models.Criterion) {
	sort.SliceStable(criteria, func(i, j int) bool {
		return criteria[i].Rank > criteria[j].Rank
	})
}
