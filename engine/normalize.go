// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"sort"

	"github.com/tmarkell/consensio/models"
)

// NormalizeRanking reconciles a possibly-partial saved ranking with the
// topic's current candidate set and returns a total order:
//
//  1. saved entries whose candidate no longer exists are silently dropped;
//  2. candidates missing from the saved ranking are appended after the
//     current maximum rank, in candidate creation order;
//  3. the result is sorted ascending by rank.
//
// Nothing is persisted; the caller saves a new ranking only through an
// explicit submission.
func NormalizeRanking(saved []models.RankEntry, candidates []models.Candidate) []models.RankEntry {
	live := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		live[c.ID] = true
	}

	out := make([]models.RankEntry, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	maxRank := 0

	for _, e := range saved {
		if !live[e.CandidateID] || seen[e.CandidateID] {
			continue
		}
		out = append(out, e)
		seen[e.CandidateID] = true
		if e.Rank > maxRank {
			maxRank = e.Rank
		}
	}

	for _, c := range candidates {
		if seen[c.ID] {
			continue
		}
		maxRank++
		out = append(out, models.RankEntry{CandidateID: c.ID, Rank: maxRank})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank < out[j].Rank
	})

	return out
}
