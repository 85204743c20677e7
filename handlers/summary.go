// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/tmarkell/consensio/middleware"
	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

// Summary handles GET /api/topics/{id}/summary. PhaseComplete is a readiness
// hint for the current phase, not a gate: Definition is complete once every
// participant has at least one criterion and at least one criterion is
// shared; Collection once a candidate exists; Decision never reports
// complete.
func (h *TopicHandler) Summary(w http.ResponseWriter, r *http.Request) {
	topic, err := h.store.GetTopic(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Topic not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query topic", err)
		return
	}

	criteria, err := h.store.CriteriaByTopic(topic.ID)
	if err != nil {
		storeError(w, "failed to list criteria", err)
		return
	}

	candidates, err := h.store.CandidatesByTopic(topic.ID)
	if err != nil {
		storeError(w, "failed to list candidates", err)
		return
	}

	sharedCount := 0
	byUser := make(map[string]int)
	for _, c := range criteria {
		byUser[c.UserID]++
		if c.IsShared {
			sharedCount++
		}
	}

	phaseComplete := false
	switch topic.CurrentPhase {
	case models.PhaseDefinition:
		phaseComplete = sharedCount > 0
		for _, p := range topic.Participants {
			if byUser[p] == 0 {
				phaseComplete = false
				break
			}
		}
	case models.PhaseCollection:
		phaseComplete = len(candidates) > 0
	}

	middleware.JSONResponse(w, http.StatusOK, models.TopicSummary{
		Topic:               topic,
		ParticipantCount:    len(topic.Participants),
		CriteriaCount:       len(criteria),
		SharedCriteriaCount: sharedCount,
		CandidateCount:      len(candidates),
		PhaseComplete:       phaseComplete,
	})
}

// Dashboard handles GET /api/users/{id}/dashboard, returning the user's
// topics with their per-topic progress. EvaluationsComplete means the user
// has scored every (candidate, own criterion) pair.
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		storeError(w, "failed to query user", err)
		return
	}

	topics := []models.DashboardTopic{}
	for _, topicID := range user.Topics {
		topic, err := h.store.GetTopic(topicID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			storeError(w, "failed to query topic", err)
			return
		}

		criteria, err := h.store.CriteriaByUserTopic(user.ID, topic.ID)
		if err != nil {
			storeError(w, "failed to list criteria", err)
			return
		}

		candidates, err := h.store.CandidatesByTopic(topic.ID)
		if err != nil {
			storeError(w, "failed to list candidates", err)
			return
		}

		evaluations, err := h.store.EvaluationsByUserTopic(user.ID, topic.ID)
		if err != nil {
			storeError(w, "failed to list evaluations", err)
			return
		}

		complete := len(criteria) > 0 && len(candidates) > 0 &&
			len(evaluations) >= len(criteria)*len(candidates)

		topics = append(topics, models.DashboardTopic{
			Topic:               topic,
			CriteriaCount:       len(criteria),
			CandidatesCount:     len(candidates),
			EvaluationsComplete: complete,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserDashboard{User: user, Topics: topics})
}
