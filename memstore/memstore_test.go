// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"errors"
	"testing"
	"time"

	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

func newUser(id, email string) models.User {
	return models.User{ID: id, Name: id, Email: email, Topics: []string{}, CreatedAt: time.Now()}
}

func newCriterion(id, userID, topicID string, rank int) models.Criterion {
	return models.Criterion{ID: id, Name: id, UserID: userID, TopicID: topicID, Rank: rank, CreatedAt: time.Now()}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	st := New()

	if err := st.CreateUser(newUser("u1", "a@example.com")); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	err := st.CreateUser(newUser("u2", "a@example.com"))
	if !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	st := New()
	st.CreateUser(newUser("u1", "a@example.com"))
	st.CreateUser(newUser("u2", "b@example.com"))

	u2 := newUser("u2", "a@example.com")
	if err := st.UpdateUser(u2); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}

	// Keeping one's own email is fine.
	u1 := newUser("u1", "a@example.com")
	if err := st.UpdateUser(u1); err != nil {
		t.Errorf("Expected self-update to succeed, got %v", err)
	}
}

func TestDeleteTopic_ScrubsUserLists(t *testing.T) {
	st := New()
	u := newUser("u1", "a@example.com")
	u.Topics = []string{"t1", "t2"}
	st.CreateUser(u)
	st.CreateTopic(models.Topic{ID: "t1", Participants: []string{"u1"}})
	st.CreateTopic(models.Topic{ID: "t2", Participants: []string{"u1"}})

	if err := st.DeleteTopic("t1"); err != nil {
		t.Fatalf("Failed to delete topic: %v", err)
	}

	loaded, err := st.GetUser("u1")
	if err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	if len(loaded.Topics) != 1 || loaded.Topics[0] != "t2" {
		t.Errorf("Expected topic list [t2], got %v", loaded.Topics)
	}
}

func TestDeleteCriterion_CompactsByPriorOrder(t *testing.T) {
	st := New()
	st.CreateCriterion(newCriterion("c1", "u1", "t1", 1))
	st.CreateCriterion(newCriterion("c2", "u1", "t1", 2))
	st.CreateCriterion(newCriterion("c3", "u1", "t1", 3))
	// Another user's criteria are untouched.
	st.CreateCriterion(newCriterion("other", "u2", "t1", 1))

	if err := st.DeleteCriterion("c1"); err != nil {
		t.Fatalf("Failed to delete criterion: %v", err)
	}

	c2, _ := st.GetCriterion("c2")
	c3, _ := st.GetCriterion("c3")
	if c2.Rank != 1 || c3.Rank != 2 {
		t.Errorf("Expected compacted ranks 1,2, got %d,%d", c2.Rank, c3.Rank)
	}

	other, _ := st.GetCriterion("other")
	if other.Rank != 1 {
		t.Errorf("Expected other user's rank untouched, got %d", other.Rank)
	}
}

func TestUpsertEvaluation_KeepsOneRecordPerTriple(t *testing.T) {
	st := New()

	first, err := st.UpsertEvaluation(models.Evaluation{ID: "e1", UserID: "u1", CandidateID: "ca1", CriterionID: "cr1", Score: 3}, nil)
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	notes := "revised"
	second, err := st.UpsertEvaluation(models.Evaluation{ID: "e2", UserID: "u1", CandidateID: "ca1", CriterionID: "cr1", Score: 8}, &notes)
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("Expected original ID kept, got %s", second.ID)
	}
	if second.Score != 8 || second.Notes != "revised" {
		t.Errorf("Expected overwritten fields, got %+v", second)
	}

	evals, _ := st.EvaluationsByPair("ca1", "cr1")
	if len(evals) != 1 {
		t.Errorf("Expected 1 evaluation, got %d", len(evals))
	}
}

func TestUpsertEvaluation_NotesFollowPresence(t *testing.T) {
	st := New()

	notes := "tastes great"
	if _, err := st.UpsertEvaluation(models.Evaluation{ID: "e1", UserID: "u1", CandidateID: "ca1", CriterionID: "cr1", Score: 7}, &notes); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	kept, err := st.UpsertEvaluation(models.Evaluation{ID: "e2", UserID: "u1", CandidateID: "ca1", CriterionID: "cr1", Score: 4}, nil)
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	if kept.Notes != "tastes great" {
		t.Errorf("Expected notes kept on nil, got %q", kept.Notes)
	}

	empty := ""
	cleared, err := st.UpsertEvaluation(models.Evaluation{ID: "e3", UserID: "u1", CandidateID: "ca1", CriterionID: "cr1", Score: 4}, &empty)
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	if cleared.Notes != "" {
		t.Errorf("Expected notes cleared by empty string, got %q", cleared.Notes)
	}
}

func TestUpsertRanking_ReplacesEntries(t *testing.T) {
	st := New()

	st.UpsertRanking(models.CandidateRanking{
		ID: "r1", UserID: "u1", TopicID: "t1",
		Rankings: []models.RankEntry{{CandidateID: "a", Rank: 1}, {CandidateID: "b", Rank: 2}},
	})
	saved, err := st.UpsertRanking(models.CandidateRanking{
		ID: "r2", UserID: "u1", TopicID: "t1",
		Rankings: []models.RankEntry{{CandidateID: "b", Rank: 1}},
	})
	if err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	if saved.ID != "r1" {
		t.Errorf("Expected original ranking ID kept, got %s", saved.ID)
	}
	if len(saved.Rankings) != 1 || saved.Rankings[0].CandidateID != "b" {
		t.Errorf("Expected wholesale replacement, got %v", saved.Rankings)
	}
}

func TestCandidatesByTopic_CreationOrder(t *testing.T) {
	st := New()
	st.CreateCandidate(models.Candidate{ID: "a", TopicID: "t1"})
	st.CreateCandidate(models.Candidate{ID: "b", TopicID: "t1"})
	st.CreateCandidate(models.Candidate{ID: "x", TopicID: "other"})
	st.CreateCandidate(models.Candidate{ID: "c", TopicID: "t1"})

	candidates, err := st.CandidatesByTopic("t1")
	if err != nil {
		t.Fatalf("Failed to list candidates: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(candidates) != len(want) {
		t.Fatalf("Expected %d candidates, got %d", len(want), len(candidates))
	}
	for i, id := range want {
		if candidates[i].ID != id {
			t.Errorf("Expected %s at position %d, got %s", id, i, candidates[i].ID)
		}
	}
}

func TestClonesAreIsolated(t *testing.T) {
	st := New()
	st.CreateTopic(models.Topic{ID: "t1", Participants: []string{"u1"}})

	loaded, _ := st.GetTopic("t1")
	loaded.Participants[0] = "mutated"

	again, _ := st.GetTopic("t1")
	if again.Participants[0] != "u1" {
		t.Error("Expected stored topic unaffected by caller mutation")
	}
}

func TestGetMissingEntities(t *testing.T) {
	st := New()

	if _, err := st.GetTopic("x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for topic, got %v", err)
	}
	if _, err := st.GetUser("x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for user, got %v", err)
	}
	if _, err := st.GetCriterion("x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for criterion, got %v", err)
	}
	if _, err := st.GetCandidate("x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for candidate, got %v", err)
	}
	if _, err := st.GetEvaluation("x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for evaluation, got %v", err)
	}
	if _, err := st.RankingByUserTopic("u", "t"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for ranking, got %v", err)
	}
}
