// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tmarkell/consensio/engine"
	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/testutil"
)

func TestDemoSeed(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewDemoHandler(st)

	req := testutil.MakeRequest("POST", "/demo/seed", nil)
	w := httptest.NewRecorder()

	handler.Seed(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp struct {
		Topic models.Topic `json:"topic"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.Topic.CurrentPhase != models.PhaseDecision {
		t.Errorf("Expected seeded topic in decision phase, got %d", resp.Topic.CurrentPhase)
	}
	if len(resp.Topic.Participants) != 3 {
		t.Errorf("Expected 3 participants, got %d", len(resp.Topic.Participants))
	}

	results, err := engine.AggregateScores(st, resp.Topic.ID)
	if err != nil {
		t.Fatalf("Failed to aggregate seeded topic: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(results))
	}
	if results[0].AverageScore <= results[2].AverageScore {
		t.Error("Expected seeded scores to descend across candidates")
	}

	flagged, err := engine.DetectDiscrepancies(st, resp.Topic.ID)
	if err != nil {
		t.Fatalf("Failed to detect discrepancies: %v", err)
	}
	if len(flagged) == 0 {
		t.Error("Expected the contrarian ranking to be flagged")
	}
}

func TestDemoSeed_Repeatable(t *testing.T) {
	st := testutil.NewStore(t)
	handler := NewDemoHandler(st)

	for i := 0; i < 2; i++ {
		req := testutil.MakeRequest("POST", "/demo/seed", nil)
		w := httptest.NewRecorder()

		handler.Seed(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	topics, err := st.ListTopics()
	if err != nil {
		t.Fatalf("Failed to list topics: %v", err)
	}
	if len(topics) != 2 {
		t.Errorf("Expected 2 independent seeded topics, got %d", len(topics))
	}
}
