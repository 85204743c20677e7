// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Topic phase constants
const (
	PhaseDefinition = 1
	PhaseCollection = 2
	PhaseDecision   = 3
)

// Score bounds for evaluations
const (
	MinScore = 1
	MaxScore = 10
)

// Domain types

type Topic struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CurrentPhase int       `json:"currentPhase"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsParticipant reports whether the user belongs to the topic.
func (t Topic) IsParticipant(userID string) bool {
	for _, p := range t.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Topics    []string  `json:"topics"`
	CreatedAt time.Time `json:"createdAt"`
}

type Criterion struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TopicID     string    `json:"topic"`
	UserID      string    `json:"user"`
	Rank        int       `json:"rank"`
	IsShared    bool      `json:"isShared"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Candidate struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TopicID     string    `json:"topic"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Evaluation struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	CandidateID string    `json:"candidate"`
	CriterionID string    `json:"criterion"`
	Score       int       `json:"score"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RankEntry is one (candidate, rank) pair in a user's candidate ranking.
// Rank 1 is the most preferred.
type RankEntry struct {
	CandidateID string `json:"candidate"`
	Rank        int    `json:"rank"`
}

// CandidateRanking holds one user's preference order over the candidates of
// a topic. Unique per (user, topic); submissions replace the list wholesale.
type CandidateRanking struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user"`
	TopicID   string      `json:"topic"`
	Rankings  []RankEntry `json:"rankings"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Aggregation result types

type CriterionScore struct {
	Criterion       Criterion `json:"criterion"`
	AverageScore    float64   `json:"averageScore"`
	Variance        float64   `json:"variance"`
	EvaluationCount int       `json:"evaluationCount"`
}

type CandidateResult struct {
	Candidate      Candidate        `json:"candidate"`
	CriteriaScores []CriterionScore `json:"criteriaScores"`
	AverageScore   float64          `json:"averageScore"`
	ScoreVariance  float64          `json:"scoreVariance"`
}

type Discrepancy struct {
	HigherRankedCandidate string  `json:"higherRankedCandidate"`
	LowerRankedCandidate  string  `json:"lowerRankedCandidate"`
	ScoreDifference       float64 `json:"scoreDifference"`
}

type UserDiscrepancies struct {
	User          User          `json:"user"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// Request types

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateTopicRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

type UpdateTopicRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddParticipantRequest struct {
	UserID string `json:"userId"`
}

type UpdatePhaseRequest struct {
	Phase int `json:"phase"`
}

type CreateCriterionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TopicID     string `json:"topicId"`
	UserID      string `json:"userId"`
	IsShared    bool   `json:"isShared"`
}

type UpdateCriterionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Rank        *int    `json:"rank"`
	IsShared    *bool   `json:"isShared"`
}

type CriterionRankItem struct {
	CriterionID string `json:"criterionId"`
	Rank        *int   `json:"rank"`
}

type RankCriteriaRequest struct {
	Rankings []CriterionRankItem `json:"rankings"`
}

type CreateCandidateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TopicID     string `json:"topicId"`
	UserID      string `json:"userId"`
}

type UpdateCandidateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type UpsertEvaluationRequest struct {
	UserID      string  `json:"userId"`
	CandidateID string  `json:"candidateId"`
	CriterionID string  `json:"criterionId"`
	Score       *int    `json:"score"`
	Notes       *string `json:"notes"`
}

type RankingItem struct {
	CandidateID string `json:"candidateId"`
	Rank        *int   `json:"rank"`
}

type UpsertRankingRequest struct {
	UserID   string        `json:"userId"`
	TopicID  string        `json:"topicId"`
	Rankings []RankingItem `json:"rankings"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type TopicSummary struct {
	Topic               Topic `json:"topic"`
	ParticipantCount    int   `json:"participantCount"`
	CriteriaCount       int   `json:"criteriaCount"`
	SharedCriteriaCount int   `json:"sharedCriteriaCount"`
	CandidateCount      int   `json:"candidateCount"`
	PhaseComplete       bool  `json:"phaseComplete"`
}

type DashboardTopic struct {
	Topic               Topic `json:"topic"`
	CriteriaCount       int   `json:"criteriaCount"`
	CandidatesCount     int   `json:"candidatesCount"`
	EvaluationsComplete bool  `json:"evaluationsComplete"`
}

type UserDashboard struct {
	User   User             `json:"user"`
	Topics []DashboardTopic `json:"topics"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
