// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/testutil"
)

func TestCreateCandidate_PhaseGate(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewCandidateHandler(st)
	member := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	outsider := testutil.CreateTestUser(t, st, "Eve", "eve@example.com")
	definition := testutil.CreateTestTopic(t, st, models.PhaseDefinition, member)
	collection := testutil.CreateTestTopic(t, st, models.PhaseCollection, member)
	decision := testutil.CreateTestTopic(t, st, models.PhaseDecision, member)

	tests := []struct {
		name           string
		topicID        string
		userID         string
		expectedStatus int
	}{
		{"rejected in definition phase", definition.ID, member.ID, http.StatusBadRequest},
		{"allowed in collection phase", collection.ID, member.ID, http.StatusCreated},
		{"allowed in decision phase", decision.ID, member.ID, http.StatusCreated},
		{"non-participant rejected", collection.ID, outsider.ID, http.StatusBadRequest},
		{"unknown topic", "missing", member.ID, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/candidates", models.CreateCandidateRequest{
				Name: "Option A", TopicID: tt.topicID, UserID: tt.userID,
			})
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestDeleteCandidate_PhaseGate(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewCandidateHandler(st)
	user := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")

	del := func(candidateID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/api/candidates/"+candidateID, nil)
		req.SetPathValue("id", candidateID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		return w
	}

	t.Run("allowed in collection phase", func(t *testing.T) {
		topic := testutil.CreateTestTopic(t, st, models.PhaseCollection, user)
		candidate := testutil.CreateTestCandidate(t, st, topic.ID, user.ID, "Option A")

		testutil.AssertStatus(t, del(candidate.ID), http.StatusOK)
	})

	t.Run("rejected in decision phase", func(t *testing.T) {
		topic := testutil.CreateTestTopic(t, st, models.PhaseDecision, user)
		candidate := testutil.CreateTestCandidate(t, st, topic.ID, user.ID, "Option B")

		testutil.AssertStatus(t, del(candidate.ID), http.StatusBadRequest)

		if _, err := st.GetCandidate(candidate.ID); err != nil {
			t.Error("Expected candidate to survive rejected delete")
		}
	})

	t.Run("unknown candidate", func(t *testing.T) {
		testutil.AssertStatus(t, del("missing"), http.StatusNotFound)
	})
}

func TestUpdateCandidate(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewCandidateHandler(st)
	user := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	topic := testutil.CreateTestTopic(t, st, models.PhaseCollection, user)
	candidate := testutil.CreateTestCandidate(t, st, topic.ID, user.ID, "Option A")

	name := "Option A+"
	req := testutil.MakeRequest("PATCH", "/api/candidates/"+candidate.ID, models.UpdateCandidateRequest{Name: &name})
	req.SetPathValue("id", candidate.ID)
	w := httptest.NewRecorder()

	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var updated models.Candidate
	testutil.AssertJSON(t, w, &updated)
	if updated.Name != name {
		t.Errorf("Expected renamed candidate, got %q", updated.Name)
	}
	if updated.Description != candidate.Description {
		t.Errorf("Expected description untouched, got %q", updated.Description)
	}
}

func TestCandidatesByTopic_EmptyList(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewCandidateHandler(st)
	user := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	topic := testutil.CreateTestTopic(t, st, models.PhaseCollection, user)

	req := testutil.MakeRequest("GET", "/api/candidates/topic/"+topic.ID, nil)
	req.SetPathValue("topicId", topic.ID)
	w := httptest.NewRecorder()

	handler.ByTopic(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() == "null\n" {
		t.Error("Expected empty JSON array, got null")
	}
}
