// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"testing"

	"github.com/tmarkell/consensio/memstore"
	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
	"github.com/tmarkell/consensio/testutil"
)

// scoredTopic builds a phase-3 topic with one shared criterion and one
// candidate per entry in scores, each evaluated once by the first user so
// that its aggregate score equals the given value. Candidates are returned
// in creation order.
func scoredTopic(t *testing.T, st *memstore.Store, scores []int, users ...models.User) (models.Topic, []models.Candidate) {
	t.Helper()

	topic := testutil.CreateTestTopic(t, st, 3, users...)
	crit := testutil.CreateTestCriterion(t, st, topic.ID, users[0].ID, "Overall fit", true)

	candidates := make([]models.Candidate, 0, len(scores))
	for i, score := range scores {
		cand := testutil.CreateTestCandidate(t, st, topic.ID, users[0].ID, "Option "+string(rune('A'+i)))
		testutil.CreateTestEvaluation(t, st, users[0].ID, cand.ID, crit.ID, score)
		candidates = append(candidates, cand)
	}
	return topic, candidates
}

func TestDetectDiscrepancies_AdjacentInversionFlagged(t *testing.T) {
	st := testutil.NewStore(t)
	alice := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")

	// A scores 5, B scores 8; Alice ranks A above B.
	topic, cands := scoredTopic(t, st, []int{5, 8}, alice)
	testutil.CreateTestRanking(t, st, alice.ID, topic.ID, []models.RankEntry{
		{CandidateID: cands[0].ID, Rank: 1},
		{CandidateID: cands[1].ID, Rank: 2},
	})

	out, err := DetectDiscrepancies(st, topic.ID)
	if err != nil {
		t.Fatalf("DetectDiscrepancies failed: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("Expected 1 user with discrepancies, got %d", len(out))
	}
	if out[0].User.ID != alice.ID {
		t.Errorf("Expected user %s, got %s", alice.ID, out[0].User.ID)
	}
	if len(out[0].Discrepancies) != 1 {
		t.Fatalf("Expected 1 discrepancy, got %d", len(out[0].Discrepancies))
	}

	d := out[0].Discrepancies[0]
	if d.HigherRankedCandidate != cands[0].ID || d.LowerRankedCandidate != cands[1].ID {
		t.Errorf("Unexpected discrepancy pair: %+v", d)
	}
	if !almostEqual(d.ScoreDifference, 3.0) {
		t.Errorf("Expected score difference 3, got %v", d.ScoreDifference)
	}
}

func TestDetectDiscrepancies_ThresholdIsStrict(t *testing.T) {
	st := testutil.NewStore(t)
	alice := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")

	// Difference of exactly 2 must not be flagged.
	topic, cands := scoredTopic(t, st, []int{5, 7}, alice)
	testutil.CreateTestRanking(t, st, alice.ID, topic.ID, []models.RankEntry{
		{CandidateID: cands[0].ID, Rank: 1},
		{CandidateID: cands[1].ID, Rank: 2},
	})

	out, err := DetectDiscrepancies(st, topic.ID)
	if err != nil {
		t.Fatalf("DetectDiscrepancies failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expected no discrepancies at the threshold, got %+v", out)
	}
}

func TestDetectDiscrepancies_AdjacentPairsOnly(t *testing.T) {
	st := testutil.NewStore(t)
	alice := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")

	// Scores 3, 5, 7 ranked worst-first: the buried 3-vs-7 inversion spans
	// two positions and no adjacent pair exceeds the threshold.
	topic, cands := scoredTopic(t, st, []int{3, 5, 7}, alice)
	testutil.CreateTestRanking(t, st, alice.ID, topic.ID, []models.RankEntry{
		{CandidateID: cands[0].ID, Rank: 1},
		{CandidateID: cands[1].ID, Rank: 2},
		{CandidateID: cands[2].ID, Rank: 3},
	})

	out, err := DetectDiscrepancies(st, topic.ID)
	if err != nil {
		t.Fatalf("DetectDiscrepancies failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expected no adjacent-pair discrepancies, got %+v", out)
	}
}

func TestDetectDiscrepancies_RankOrderNotSubmissionOrder(t *testing.T) {
	st := testutil.NewStore(t)
	alice := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")

	// Entries submitted out of order; the walk must follow ranks.
	topic, cands := scoredTopic(t, st, []int{4, 9}, alice)
	testutil.CreateTestRanking(t, st, alice.ID, topic.ID, []models.RankEntry{
		{CandidateID: cands[1].ID, Rank: 2},
		{CandidateID: cands[0].ID, Rank: 1},
	})

	out, err := DetectDiscrepancies(st, topic.ID)
	if err != nil {
		t.Fatalf("DetectDiscrepancies failed: %v", err)
	}
	if len(out) != 1 || len(out[0].Discrepancies) != 1 {
		t.Fatalf("Expected exactly one discrepancy, got %+v", out)
	}
	d := out[0].Discrepancies[0]
	if d.HigherRankedCandidate != cands[0].ID {
		t.Errorf("Expected rank-1 candidate as higher, got %s", d.HigherRankedCandidate)
	}
}

func TestDetectDiscrepancies_CleanUsersOmitted(t *testing.T) {
	st := testutil.NewStore(t)
	alice := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")
	bob := testutil.CreateTestUser(t, st, "Bob", "bob@example.com")

	topic, cands := scoredTopic(t, st, []int{4, 9}, alice, bob)

	// Alice ranks against the scores; Bob agrees with them.
	testutil.CreateTestRanking(t, st, alice.ID, topic.ID, []models.RankEntry{
		{CandidateID: cands[0].ID, Rank: 1},
		{CandidateID: cands[1].ID, Rank: 2},
	})
	testutil.CreateTestRanking(t, st, bob.ID, topic.ID, []models.RankEntry{
		{CandidateID: cands[1].ID, Rank: 1},
		{CandidateID: cands[0].ID, Rank: 2},
	})

	out, err := DetectDiscrepancies(st, topic.ID)
	if err != nil {
		t.Fatalf("DetectDiscrepancies failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Expected only the conflicted user, got %d entries", len(out))
	}
	if out[0].User.ID != alice.ID {
		t.Errorf("Expected Alice flagged, got %s", out[0].User.Name)
	}
}

func TestDetectDiscrepancies_StaleCandidateIgnored(t *testing.T) {
	st := testutil.NewStore(t)
	alice := testutil.CreateTestUser(t, st, "Alice", "alice@example.com")

	topic, cands := scoredTopic(t, st, []int{5, 8}, alice)
	testutil.CreateTestRanking(t, st, alice.ID, topic.ID, []models.RankEntry{
		{CandidateID: "deleted-candidate", Rank: 1},
		{CandidateID: cands[1].ID, Rank: 2},
		{CandidateID: cands[0].ID, Rank: 3},
	})

	out, err := DetectDiscrepancies(st, topic.ID)
	if err != nil {
		t.Fatalf("DetectDiscrepancies failed: %v", err)
	}
	// The (deleted, B) pair has no score for the deleted candidate and must
	// not be flagged; (B, A) is not an inversion.
	if len(out) != 0 {
		t.Errorf("Expected no discrepancies, got %+v", out)
	}
}

func TestDetectDiscrepancies_TopicNotFound(t *testing.T) {
	st := testutil.NewStore(t)

	_, err := DetectDiscrepancies(st, "missing-topic")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected store.ErrNotFound, got %v", err)
	}
}
