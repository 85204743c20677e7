// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tmarkell/consensio/memstore"
	"github.com/tmarkell/consensio/models"
)

// NewStore returns a fresh in-memory store for a test.
func NewStore(t *testing.T) *memstore.Store {
	t.Helper()
	return memstore.New()
}

// CreateTestUser creates a user and returns it.
func CreateTestUser(t *testing.T, st *memstore.Store, name, email string) models.User {
	t.Helper()

	u := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Topics:    []string{},
		CreatedAt: time.Now(),
	}
	if err := st.CreateUser(u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
}

// CreateTestTopic creates a topic in the given phase with the given
// participants, and adds the topic to each participant's topic list.
func CreateTestTopic(t *testing.T, st *memstore.Store, phase int, participants ...models.User) models.Topic {
	t.Helper()

	topic := models.Topic{
		ID:           uuid.NewString(),
		Name:         "Test Topic",
		Description:  "A test topic",
		CurrentPhase: phase,
		Participants: []string{},
		CreatedAt:    time.Now(),
	}
	for _, u := range participants {
		topic.Participants = append(topic.Participants, u.ID)
	}
	if err := st.CreateTopic(topic); err != nil {
		t.Fatalf("Failed to create test topic: %v", err)
	}

	for _, u := range participants {
		user, err := st.GetUser(u.ID)
		if err != nil {
			t.Fatalf("Failed to load test user: %v", err)
		}
		user.Topics = append(user.Topics, topic.ID)
		if err := st.UpdateUser(user); err != nil {
			t.Fatalf("Failed to update test user: %v", err)
		}
	}

	return topic
}

// CreateTestCriterion creates a criterion with the next rank for the
// (user, topic) pair.
func CreateTestCriterion(t *testing.T, st *memstore.Store, topicID, userID, name string, shared bool) models.Criterion {
	t.Helper()

	existing, err := st.CriteriaByUserTopic(userID, topicID)
	if err != nil {
		t.Fatalf("Failed to list criteria: %v", err)
	}

	c := models.Criterion{
		ID:        uuid.NewString(),
		Name:      name,
		TopicID:   topicID,
		UserID:    userID,
		Rank:      len(existing) + 1,
		IsShared:  shared,
		CreatedAt: time.Now(),
	}
	if err := st.CreateCriterion(c); err != nil {
		t.Fatalf("Failed to create test criterion: %v", err)
	}
	return c
}

// CreateTestCandidate creates a candidate in the topic.
func CreateTestCandidate(t *testing.T, st *memstore.Store, topicID, userID, name string) models.Candidate {
	t.Helper()

	c := models.Candidate{
		ID:        uuid.NewString(),
		Name:      name,
		TopicID:   topicID,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	if err := st.CreateCandidate(c); err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	return c
}

// CreateTestEvaluation upserts an evaluation for the triple.
func CreateTestEvaluation(t *testing.T, st *memstore.Store, userID, candidateID, criterionID string, score int) models.Evaluation {
	t.Helper()

	e, err := st.UpsertEvaluation(models.Evaluation{
		ID:          uuid.NewString(),
		UserID:      userID,
		CandidateID: candidateID,
		CriterionID: criterionID,
		Score:       score,
		CreatedAt:   time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create test evaluation: %v", err)
	}
	return e
}

// CreateTestRanking upserts a candidate ranking for the (user, topic) pair.
func CreateTestRanking(t *testing.T, st *memstore.Store, userID, topicID string, entries []models.RankEntry) models.CandidateRanking {
	t.Helper()

	now := time.Now()
	rk, err := st.UpsertRanking(models.CandidateRanking{
		ID:        uuid.NewString(),
		UserID:    userID,
		TopicID:   topicID,
		Rankings:  entries,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Failed to create test ranking: %v", err)
	}
	return rk
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
