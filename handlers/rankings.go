// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tmarkell/consensio/engine"
	"github.com/tmarkell/consensio/middleware"
	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

type RankingHandler struct {
	store store.Store
}

func NewRankingHandler(st store.Store) *RankingHandler {
	return &RankingHandler{store: st}
}

// Upsert handles POST /api/evaluations/rankings. A user holds at most one
// ranking per topic; a resubmission replaces the entry list wholesale.
func (h *RankingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertRankingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" || req.TopicID == "" || req.Rankings == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "UserId, topicId, and rankings array are required")
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

	topic, err := h.store.GetTopic(req.TopicID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query topic", err)
		return
	}

	if err := engine.CanRankCandidates(topic, req.UserID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entries := make([]models.RankEntry, 0, len(req.Rankings))
	for _, item := range req.Rankings {
		if item.CandidateID == "" || item.Rank == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Each ranking must include candidateId and rank")
			return
		}

		candidate, err := h.store.GetCandidate(item.CandidateID)
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid candidate ID: %s", item.CandidateID))
			return
		}
		if err != nil {
			storeError(w, "failed to query candidate", err)
			return
		}
		if candidate.TopicID != req.TopicID {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid candidate ID: %s", item.CandidateID))
			return
		}

		entries = append(entries, models.RankEntry{CandidateID: item.CandidateID, Rank: *item.Rank})
	}

	now := time.Now()
	ranking := models.CandidateRanking{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		TopicID:   req.TopicID,
		Rankings:  entries,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := h.store.UpsertRanking(ranking)
	if err != nil {
		storeError(w, "failed to upsert ranking", err)
		return
	}

	slog.Info("ranking saved", "ranking_id", saved.ID, "topic_id", saved.TopicID, "user_id", saved.UserID)

	middleware.JSONResponse(w, http.StatusCreated, saved)
}

// ByUserTopic handles GET /api/evaluations/rankings/user/{userId}/topic/{topicId}
func (h *RankingHandler) ByUserTopic(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.store.RankingByUserTopic(r.PathValue("userId"), r.PathValue("topicId"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No rankings found for this user and topic")
		return
	}
	if err != nil {
		storeError(w, "failed to query ranking", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ranking)
}

// ByTopic handles GET /api/evaluations/rankings/topic/{topicId}
func (h *RankingHandler) ByTopic(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.store.RankingsByTopic(r.PathValue("topicId"))
	if err != nil {
		storeError(w, "failed to list rankings", err)
		return
	}

	if rankings == nil {
		rankings = []models.CandidateRanking{}
	}
	middleware.JSONResponse(w, http.StatusOK, rankings)
}

// Normalized handles GET /api/evaluations/rankings/normalized/user/{userId}/topic/{topicId},
// returning the user's saved ranking reconciled against the topic's
// current candidate set. Nothing is persisted; a user with no saved
// ranking gets the candidates in creation order.
func (h *RankingHandler) Normalized(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	topicID := r.PathValue("topicId")

	if _, err := h.store.GetTopic(topicID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
			return
		}
		storeError(w, "failed to query topic", err)
		return
	}

	candidates, err := h.store.CandidatesByTopic(topicID)
	if err != nil {
		storeError(w, "failed to list candidates", err)
		return
	}

	var saved []models.RankEntry
	ranking, err := h.store.RankingByUserTopic(userID, topicID)
	if err == nil {
		saved = ranking.Rankings
	} else if !errors.Is(err, store.ErrNotFound) {
		storeError(w, "failed to query ranking", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, engine.NormalizeRanking(saved, candidates))
}
