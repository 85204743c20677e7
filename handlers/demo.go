// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/tmarkell/consensio/middleware"
	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

// DemoHandler seeds a worked example: a hiring topic in the Decision phase
// with three users, shared and personal criteria, three candidates, a full
// evaluation grid, and one deliberately contrarian ranking so the
// discrepancy endpoint has something to report.
type DemoHandler struct {
	store store.Store
}

func NewDemoHandler(st store.Store) *DemoHandler {
	return &DemoHandler{store: st}
}

type demoSeedResponse struct {
	Message     string       `json:"message"`
	Topic       models.Topic `json:"topic"`
	Users       []string     `json:"users"`
	Evaluations string       `json:"evaluations"`
}

// Seed handles POST /demo/seed. Seeding is additive; repeated calls create
// fresh demo data each time because user emails are suffixed with a UUID.
func (h *DemoHandler) Seed(w http.ResponseWriter, r *http.Request) {
	suffix := uuid.NewString()[:8]
	now := time.Now()

	names := []string{"Ada", "Grace", "Edsger"}
	users := make([]models.User, 0, len(names))
	for _, name := range names {
		u := models.User{
			ID:        uuid.NewString(),
			Name:      name + " (demo)",
			Email:     fmt.Sprintf("%s.%s@demo.invalid", name, suffix),
			Topics:    []string{},
			CreatedAt: now,
		}
		if err := h.store.CreateUser(u); err != nil {
			storeError(w, "failed to seed user", err)
			return
		}
		users = append(users, u)
	}

	topic := models.Topic{
		ID:           uuid.NewString(),
		Name:         "Demo: engineering hire " + suffix,
		Description:  "Seeded decision topic",
		CurrentPhase: models.PhaseDecision,
		Participants: []string{users[0].ID, users[1].ID, users[2].ID},
		CreatedAt:    now,
	}
	if err := h.store.CreateTopic(topic); err != nil {
		storeError(w, "failed to seed topic", err)
		return
	}
	for i := range users {
		users[i].Topics = append(users[i].Topics, topic.ID)
		if err := h.store.UpdateUser(users[i]); err != nil {
			storeError(w, "failed to seed user", err)
			return
		}
	}

	sharedNames := []string{"Technical depth", "Communication"}
	criteria := make([]models.Criterion, 0, len(users)*len(sharedNames))
	for _, u := range users {
		for rank, name := range sharedNames {
			c := models.Criterion{
				ID:        uuid.NewString(),
				Name:      name,
				TopicID:   topic.ID,
				UserID:    u.ID,
				Rank:      rank + 1,
				IsShared:  true,
				CreatedAt: now,
			}
			if err := h.store.CreateCriterion(c); err != nil {
				storeError(w, "failed to seed criterion", err)
				return
			}
			criteria = append(criteria, c)
		}
	}

	candidateNames := []string{"Candidate North", "Candidate East", "Candidate South"}
	candidates := make([]models.Candidate, 0, len(candidateNames))
	for _, name := range candidateNames {
		c := models.Candidate{
			ID:        uuid.NewString(),
			Name:      name,
			TopicID:   topic.ID,
			CreatedBy: users[0].ID,
			CreatedAt: now,
		}
		if err := h.store.CreateCandidate(c); err != nil {
			storeError(w, "failed to seed candidate", err)
			return
		}
		candidates = append(candidates, c)
	}

	// Scores descend from North to South so the consensus order is clear.
	base := []int{9, 6, 3}
	evalCount := 0
	for _, c := range criteria {
		for i, cand := range candidates {
			score := base[i] + evalCount%2
			if score > models.MaxScore {
				score = models.MaxScore
			}
			e := models.Evaluation{
				ID:          uuid.NewString(),
				UserID:      c.UserID,
				CandidateID: cand.ID,
				CriterionID: c.ID,
				Score:       score,
				CreatedAt:   now,
			}
			if _, err := h.store.UpsertEvaluation(e, nil); err != nil {
				storeError(w, "failed to seed evaluation", err)
				return
			}
			evalCount++
		}
	}

	// Two users rank with the scores, one against them.
	for i, u := range users {
		entries := []models.RankEntry{
			{CandidateID: candidates[0].ID, Rank: 1},
			{CandidateID: candidates[1].ID, Rank: 2},
			{CandidateID: candidates[2].ID, Rank: 3},
		}
		if i == len(users)-1 {
			entries[0].Rank = 3
			entries[2].Rank = 1
		}
		rk := models.CandidateRanking{
			ID:        uuid.NewString(),
			UserID:    u.ID,
			TopicID:   topic.ID,
			Rankings:  entries,
			CreatedAt: now,
		}
		if _, err := h.store.UpsertRanking(rk); err != nil {
			storeError(w, "failed to seed ranking", err)
			return
		}
	}

	slog.Info("demo data seeded", "topic_id", topic.ID, "evaluations", evalCount)

	emails := make([]string, len(users))
	for i, u := range users {
		emails[i] = u.Email
	}
	middleware.JSONResponse(w, http.StatusCreated, demoSeedResponse{
		Message:     "Demo data seeded successfully",
		Topic:       topic,
		Users:       emails,
		Evaluations: humanize.Comma(int64(evalCount)) + " evaluations created",
	})
}
