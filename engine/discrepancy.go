// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

// DiscrepancyThreshold is the materiality threshold on the 1-10 scale: an
// adjacent-pair inversion is flagged only when the lower-ranked candidate's
// score exceeds the higher-ranked one's by strictly more than this.
const DiscrepancyThreshold = 2.0

// DetectDiscrepancies compares each user's explicit candidate ranking
// against the evaluation-derived scores and flags adjacent-pair rank
// inversions beyond DiscrepancyThreshold.
//
// Only adjacent pairs in a user's rank order are compared; this is a
// deliberate simplification, not a full inversion count. Users with no
// discrepancies are omitted from the result entirely. A missing topic
// yields store.ErrNotFound.
func DetectDiscrepancies(st store.Store, topicID string) ([]models.UserDiscrepancies, error) {
	results, err := AggregateScores(st, topicID)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(results))
	for _, r := range results {
		scores[r.Candidate.ID] = r.AverageScore
	}

	rankings, err := st.RankingsByTopic(topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}

	var out []models.UserDiscrepancies
	for _, rk := range rankings {
		user, err := st.GetUser(rk.UserID)
		if errors.Is(err, store.ErrNotFound) {
			// Ranking left behind by a deleted user.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}

		entries := append([]models.RankEntry(nil), rk.Rankings...)
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Rank < entries[j].Rank
		})

		var found []models.Discrepancy
		for i := 0; i+1 < len(entries); i++ {
			higher := entries[i].CandidateID
			lower := entries[i+1].CandidateID

			higherScore, ok := scores[higher]
			if !ok {
				continue
			}
			lowerScore, ok := scores[lower]
			if !ok {
				continue
			}

			if lowerScore > higherScore+DiscrepancyThreshold {
				found = append(found, models.Discrepancy{
					HigherRankedCandidate: higher,
					LowerRankedCandidate:  lower,
					ScoreDifference:       lowerScore - higherScore,
				})
			}
		}

		if len(found) > 0 {
			out = append(out, models.UserDiscrepancies{
				User:          user,
				Discrepancies: found,
			})
		}
	}

	return out, nil
}
