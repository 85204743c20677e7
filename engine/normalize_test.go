// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"testing"

	"github.com/tmarkell/consensio/models"
)

func candidateSet(ids ...string) []models.Candidate {
	out := make([]models.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Candidate{ID: id})
	}
	return out
}

func TestNormalizeRanking_EmptySaved(t *testing.T) {
	got := NormalizeRanking(nil, candidateSet("a", "b", "c"))

	want := []models.RankEntry{
		{CandidateID: "a", Rank: 1},
		{CandidateID: "b", Rank: 2},
		{CandidateID: "c", Rank: 3},
	}
	assertEntries(t, got, want)
}

func TestNormalizeRanking_StaleReferenceDropped(t *testing.T) {
	saved := []models.RankEntry{
		{CandidateID: "deleted", Rank: 1},
		{CandidateID: "b", Rank: 2},
	}
	got := NormalizeRanking(saved, candidateSet("a", "b"))

	// The stale entry disappears; the unranked live candidate is appended
	// after the max saved rank.
	want := []models.RankEntry{
		{CandidateID: "b", Rank: 2},
		{CandidateID: "a", Rank: 3},
	}
	assertEntries(t, got, want)

	for _, e := range got {
		if e.CandidateID == "deleted" {
			t.Error("Stale candidate survived normalization")
		}
	}
}

func TestNormalizeRanking_PartialSaved(t *testing.T) {
	saved := []models.RankEntry{
		{CandidateID: "c", Rank: 1},
	}
	got := NormalizeRanking(saved, candidateSet("a", "b", "c"))

	want := []models.RankEntry{
		{CandidateID: "c", Rank: 1},
		{CandidateID: "a", Rank: 2},
		{CandidateID: "b", Rank: 3},
	}
	assertEntries(t, got, want)
}

func TestNormalizeRanking_SortsByRank(t *testing.T) {
	saved := []models.RankEntry{
		{CandidateID: "b", Rank: 2},
		{CandidateID: "a", Rank: 1},
	}
	got := NormalizeRanking(saved, candidateSet("a", "b"))

	want := []models.RankEntry{
		{CandidateID: "a", Rank: 1},
		{CandidateID: "b", Rank: 2},
	}
	assertEntries(t, got, want)
}

func TestNormalizeRanking_EachCandidateExactlyOnce(t *testing.T) {
	saved := []models.RankEntry{
		{CandidateID: "a", Rank: 1},
		{CandidateID: "a", Rank: 2},
		{CandidateID: "gone", Rank: 3},
	}
	got := NormalizeRanking(saved, candidateSet("a", "b", "c"))

	if len(got) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(got))
	}
	seen := make(map[string]int)
	for _, e := range got {
		seen[e.CandidateID]++
	}
	for _, id := range []string{"a", "b", "c"} {
		if seen[id] != 1 {
			t.Errorf("Expected candidate %s exactly once, got %d", id, seen[id])
		}
	}
}

func assertEntries(t *testing.T, got, want []models.RankEntry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
