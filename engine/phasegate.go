// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "github.com/tmarkell/consensio/models"

// PhaseError reports a mutation attempted outside its legal phase window,
// or by a user who is not a topic participant. It maps to a 400 response.
type PhaseError struct {
	Reason string
}

func (e *PhaseError) Error() string {
	return e.Reason
}

// ValidPhase reports whether p is a legal topic phase. Phase transitions
// have no further legality constraints; prerequisite checks (for example
// "every participant has a criterion") are advisory-only and live in the
// topic summary, never at the mutation boundary.
func ValidPhase(p int) bool {
	return p >= models.PhaseDefinition && p <= models.PhaseDecision
}

// CanCreateCandidate allows candidate creation from the Collection phase on.
func CanCreateCandidate(t models.Topic) error {
	if t.CurrentPhase < models.PhaseCollection {
		return &PhaseError{Reason: "Topic must be in phase 2 (Collection) or higher to add candidates"}
	}
	return nil
}

// CanDeleteCandidate allows candidate deletion until the Collection phase
// ends; candidates are frozen once the topic reaches Decision.
func CanDeleteCandidate(t models.Topic) error {
	if t.CurrentPhase > models.PhaseCollection {
		return &PhaseError{Reason: "Cannot delete candidates after phase 2 (Collection)"}
	}
	return nil
}

// CanEvaluate allows evaluation upserts from the Collection phase on, by
// topic participants only.
func CanEvaluate(t models.Topic, userID string) error {
	if !t.IsParticipant(userID) {
		return &PhaseError{Reason: "User is not a participant in this topic"}
	}
	if t.CurrentPhase < models.PhaseCollection {
		return &PhaseError{Reason: "Topic must be in phase 2 (Collection) or higher to add evaluations"}
	}
	return nil
}

// CanRankCandidates allows ranking upserts in the Decision phase only, by
// topic participants only.
func CanRankCandidates(t models.Topic, userID string) error {
	if !t.IsParticipant(userID) {
		return &PhaseError{Reason: "User is not a participant in this topic"}
	}
	if t.CurrentPhase < models.PhaseDecision {
		return &PhaseError{Reason: "Topic must be in phase 3 (Decision) to rank candidates"}
	}
	return nil
}
