// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"

	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

// AggregateScores computes, for every candidate of the topic, the average
// and population variance of evaluation scores restricted to the topic's
// shared criteria, plus a per-criterion breakdown.
//
// Per candidate:
//   - each shared criterion gets the mean and population variance of its
//     scores, zero when it has no evaluations yet;
//   - the overall average is the mean of the per-criterion averages taken
//     only over criteria with at least one evaluation, so unevaluated
//     criteria do not pull it toward zero;
//   - the overall variance is the population variance of the pooled raw
//     score list across all shared criteria, not a variance of averages.
//
// Results are in candidate creation order. A missing topic yields
// store.ErrNotFound; empty inputs degrade to zeros, not errors.
func AggregateScores(st store.Store, topicID string) ([]models.CandidateResult, error) {
	if _, err := st.GetTopic(topicID); err != nil {
		return nil, err
	}

	candidates, err := st.CandidatesByTopic(topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	shared, err := st.SharedCriteriaByTopic(topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared criteria: %w", err)
	}

	results := make([]models.CandidateResult, 0, len(candidates))
	for _, cand := range candidates {
		result := models.CandidateResult{
			Candidate:      cand,
			CriteriaScores: []models.CriterionScore{},
		}

		var totalScore float64
		var evaluatedCriteria int
		var pooled []float64

		for _, crit := range shared {
			evals, err := st.EvaluationsByPair(cand.ID, crit.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list evaluations: %w", err)
			}

			scores := make([]float64, len(evals))
			for i, e := range evals {
				scores[i] = float64(e.Score)
			}

			avg := mean(scores)
			result.CriteriaScores = append(result.CriteriaScores, models.CriterionScore{
				Criterion:       crit,
				AverageScore:    avg,
				Variance:        variance(scores, avg),
				EvaluationCount: len(scores),
			})

			if len(scores) > 0 {
				totalScore += avg
				evaluatedCriteria++
			}
			pooled = append(pooled, scores...)
		}

		if evaluatedCriteria > 0 {
			result.AverageScore = totalScore / float64(evaluatedCriteria)
		}
		result.ScoreVariance = variance(pooled, mean(pooled))

		results = append(results, result)
	}

	return results, nil
}

// mean calculates the arithmetic mean, zero for an empty list.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance calculates the population variance around avg, zero for an
// empty list.
func variance(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return sum / float64(len(values))
}
