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

type EvaluationHandler struct {
	store store.Store
}

func NewEvaluationHandler(st store.Store) *EvaluationHandler {
	return &EvaluationHandler{store: st}
}

// ByUserTopic handles GET /api/evaluations/user/{userId}/topic/{topicId},
// returning the user's evaluations on their own criteria for the topic's
// candidates.
func (h *EvaluationHandler) ByUserTopic(w http.ResponseWriter, r *http.Request) {
	evaluations, err := h.store.EvaluationsByUserTopic(r.PathValue("userId"), r.PathValue("topicId"))
	if err != nil {
		storeError(w, "failed to list evaluations", err)
		return
	}

	if evaluations == nil {
		evaluations = []models.Evaluation{}
	}
	middleware.JSONResponse(w, http.StatusOK, evaluations)
}

// ByPair handles GET /api/evaluations/candidate/{candidateId}/criterion/{criterionId}
func (h *EvaluationHandler) ByPair(w http.ResponseWriter, r *http.Request) {
	evaluations, err := h.store.EvaluationsByPair(r.PathValue("candidateId"), r.PathValue("criterionId"))
	if err != nil {
		storeError(w, "failed to list evaluations", err)
		return
	}

	if evaluations == nil {
		evaluations = []models.Evaluation{}
	}
	middleware.JSONResponse(w, http.StatusOK, evaluations)
}

// Upsert handles POST /api/evaluations. A submission for an existing
// (user, candidate, criterion) triple overwrites the score, and the notes
// only when the field is present; the evaluation count for a triple never
// exceeds one.
func (h *EvaluationHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertEvaluationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" || req.CandidateID == "" || req.CriterionID == "" || req.Score == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "UserId, candidateId, criterionId, and score are required")
		return
	}

	score := *req.Score
	if score < models.MinScore || score > models.MaxScore {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Score must be between 1 and 10")
		return
	}

	candidate, err := h.store.GetCandidate(req.CandidateID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query candidate", err)
		return
	}

	if _, err := h.store.GetCriterion(req.CriterionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Criterion not found")
			return
		}
		storeError(w, "failed to query criterion", err)
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

	topic, err := h.store.GetTopic(candidate.TopicID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query topic", err)
		return
	}

	if err := engine.CanEvaluate(topic, req.UserID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluation := models.Evaluation{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		CandidateID: req.CandidateID,
		CriterionID: req.CriterionID,
		Score:       score,
		CreatedAt:   time.Now(),
	}

	// A resubmission that omits notes keeps whatever notes were stored.
	saved, err := h.store.UpsertEvaluation(evaluation, req.Notes)
	if err != nil {
		storeError(w, "failed to upsert evaluation", err)
		return
	}

	slog.Info("evaluation saved", "evaluation_id", saved.ID, "candidate_id", saved.CandidateID, "score", saved.Score)

	middleware.JSONResponse(w, http.StatusCreated, saved)
}

// Delete handles DELETE /api/evaluations/{id}
func (h *EvaluationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteEvaluation(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Evaluation not found")
		return
	}
	if err != nil {
		storeError(w, "failed to delete evaluation", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Evaluation deleted successfully"})
}

// Aggregated handles GET /api/evaluations/aggregated/topic/{topicId},
// returning per-candidate score aggregates over the topic's shared
// criteria.
func (h *EvaluationHandler) Aggregated(w http.ResponseWriter, r *http.Request) {
	results, err := engine.AggregateScores(h.store, r.PathValue("topicId"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to aggregate scores", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// Discrepancies handles GET /api/evaluations/discrepancies/topic/{topicId},
// returning the users whose rankings contradict the evaluation-derived
// scores.
func (h *EvaluationHandler) Discrepancies(w http.ResponseWriter, r *http.Request) {
	discrepancies, err := engine.DetectDiscrepancies(h.store, r.PathValue("topicId"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to detect discrepancies", err)
		return
	}

	if discrepancies == nil {
		discrepancies = []models.UserDiscrepancies{}
	}
	middleware.JSONResponse(w, http.StatusOK, discrepancies)
}
