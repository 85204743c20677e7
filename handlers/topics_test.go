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

func TestCreateTopic(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewTopicHandler(st)
	user := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid topic creation",
			requestBody:    models.CreateTopicRequest{Name: "Team offsite", UserID: user.ID},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			requestBody:    models.CreateTopicRequest{UserID: user.ID},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing user",
			requestBody:    models.CreateTopicRequest{Name: "No owner"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown user",
			requestBody:    models.CreateTopicRequest{Name: "Ghost", UserID: "missing"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/topics", tt.requestBody)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var topic models.Topic
				testutil.AssertJSON(t, w, &topic)
				if topic.CurrentPhase != models.PhaseDefinition {
					t.Errorf("Expected new topic in phase 1, got %d", topic.CurrentPhase)
				}
				if len(topic.Participants) != 1 || topic.Participants[0] != user.ID {
					t.Errorf("Expected creator as sole participant, got %v", topic.Participants)
				}

				creator, err := st.GetUser(user.ID)
				if err != nil {
					t.Fatalf("Failed to load creator: %v", err)
				}
				found := false
				for _, id := range creator.Topics {
					if id == topic.ID {
						found = true
					}
				}
				if !found {
					t.Error("Expected topic in creator's topic list")
				}
			}
		})
	}
}

func TestUpdateTopic_CannotChangePhase(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewTopicHandler(st)
	user := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	topic := testutil.CreateTestTopic(t, st, models.PhaseDefinition, user)

	req := testutil.MakeRequest("PATCH", "/api/topics/"+topic.ID, map[string]interface{}{
		"name":         "Renamed",
		"currentPhase": 3,
	})
	req.SetPathValue("id", topic.ID)
	w := httptest.NewRecorder()

	handler.Update(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var updated models.Topic
	testutil.AssertJSON(t, w, &updated)
	if updated.Name != "Renamed" {
		t.Errorf("Expected renamed topic, got %q", updated.Name)
	}
	if updated.CurrentPhase != models.PhaseDefinition {
		t.Errorf("Expected phase untouched by generic update, got %d", updated.CurrentPhase)
	}
}

func TestAddParticipant(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewTopicHandler(st)
	owner := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	joiner := testutil.CreateTestUser(t, st, "Bob", "bob@example.com")
	topic := testutil.CreateTestTopic(t, st, models.PhaseDefinition, owner)

	post := func(userID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/api/topics/"+topic.ID+"/participants", models.AddParticipantRequest{UserID: userID})
		req.SetPathValue("id", topic.ID)
		w := httptest.NewRecorder()
		handler.AddParticipant(w, req)
		return w
	}

	w := post(joiner.ID)
	testutil.AssertStatus(t, w, http.StatusOK)
	var updated models.Topic
	testutil.AssertJSON(t, w, &updated)
	if len(updated.Participants) != 2 {
		t.Errorf("Expected 2 participants, got %v", updated.Participants)
	}

	loaded, err := st.GetUser(joiner.ID)
	if err != nil {
		t.Fatalf("Failed to load joiner: %v", err)
	}
	if len(loaded.Topics) != 1 || loaded.Topics[0] != topic.ID {
		t.Errorf("Expected topic in joiner's list, got %v", loaded.Topics)
	}

	// Joining twice is rejected.
	testutil.AssertStatus(t, post(joiner.ID), http.StatusBadRequest)

	// Unknown users are rejected before the topic lookup.
	testutil.AssertStatus(t, post("missing"), http.StatusNotFound)
}

func TestUpdatePhase(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewTopicHandler(st)
	user := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	topic := testutil.CreateTestTopic(t, st, models.PhaseDefinition, user)

	tests := []struct {
		name           string
		phase          int
		expectedStatus int
	}{
		{"advance to collection", 2, http.StatusOK},
		{"jump to decision", 3, http.StatusOK},
		{"move back to definition", 1, http.StatusOK},
		{"phase zero rejected", 0, http.StatusBadRequest},
		{"phase four rejected", 4, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PATCH", "/api/topics/"+topic.ID+"/phase", models.UpdatePhaseRequest{Phase: tt.phase})
			req.SetPathValue("id", topic.ID)
			w := httptest.NewRecorder()

			handler.UpdatePhase(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var updated models.Topic
				testutil.AssertJSON(t, w, &updated)
				if updated.CurrentPhase != tt.phase {
					t.Errorf("Expected phase %d, got %d", tt.phase, updated.CurrentPhase)
				}
			}
		})
	}
}

func TestDeleteTopic_RemovedFromUserLists(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewTopicHandler(st)
	user := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	topic := testutil.CreateTestTopic(t, st, models.PhaseDefinition, user)

	req := testutil.MakeRequest("DELETE", "/api/topics/"+topic.ID, nil)
	req.SetPathValue("id", topic.ID)
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	loaded, err := st.GetUser(user.ID)
	if err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	for _, id := range loaded.Topics {
		if id == topic.ID {
			t.Error("Expected topic scrubbed from user's topic list")
		}
	}
}

func TestTopicSummary(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewTopicHandler(st)
	alice := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	bob := testutil.CreateTestUser(t, st, "Bob", "bob@example.com")
	topic := testutil.CreateTestTopic(t, st, models.PhaseDefinition, alice, bob)

	get := func() models.TopicSummary {
		req := testutil.MakeRequest("GET", "/api/topics/"+topic.ID+"/summary", nil)
		req.SetPathValue("id", topic.ID)
		w := httptest.NewRecorder()
		handler.Summary(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var summary models.TopicSummary
		testutil.AssertJSON(t, w, &summary)
		return summary
	}

	summary := get()
	if summary.ParticipantCount != 2 {
		t.Errorf("Expected 2 participants, got %d", summary.ParticipantCount)
	}
	if summary.PhaseComplete {
		t.Error("Expected definition incomplete with no criteria")
	}

	// One participant with criteria is not enough.
	testutil.CreateTestCriterion(t, st, topic.ID, alice.ID, "Cost", true)
	if get().PhaseComplete {
		t.Error("Expected definition incomplete while a participant has no criteria")
	}

	// Every participant covered and a shared criterion exists.
	testutil.CreateTestCriterion(t, st, topic.ID, bob.ID, "Quality", false)
	summary = get()
	if !summary.PhaseComplete {
		t.Error("Expected definition complete")
	}
	if summary.CriteriaCount != 2 || summary.SharedCriteriaCount != 1 {
		t.Errorf("Expected counts 2/1, got %d/%d", summary.CriteriaCount, summary.SharedCriteriaCount)
	}
}

func TestTopicSummary_CollectionPhase(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewTopicHandler(st)
	user := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	topic := testutil.CreateTestTopic(t, st, models.PhaseCollection, user)

	get := func() models.TopicSummary {
		req := testutil.MakeRequest("GET", "/api/topics/"+topic.ID+"/summary", nil)
		req.SetPathValue("id", topic.ID)
		w := httptest.NewRecorder()
		handler.Summary(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var summary models.TopicSummary
		testutil.AssertJSON(t, w, &summary)
		return summary
	}

	if get().PhaseComplete {
		t.Error("Expected collection incomplete with no candidates")
	}

	testutil.CreateTestCandidate(t, st, topic.ID, user.ID, "Option A")
	if !get().PhaseComplete {
		t.Error("Expected collection complete with a candidate")
	}
}
