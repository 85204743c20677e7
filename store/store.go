// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"

	"github.com/tmarkell/consensio/models"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a uniqueness constraint would be
	// violated (user email, topic participant).
	ErrDuplicate = errors.New("duplicate")
)

// Store is the entity store behind every handler and engine operation. It is
// always passed in explicitly so the engines can run against an in-memory
// implementation in tests.
//
// List methods return entities in creation order; the aggregation engine
// relies on that for its output ordering.
type Store interface {
	CreateTopic(t models.Topic) error
	GetTopic(id string) (models.Topic, error)
	ListTopics() ([]models.Topic, error)
	UpdateTopic(t models.Topic) error
	DeleteTopic(id string) error

	CreateUser(u models.User) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUser(u models.User) error
	DeleteUser(id string) error

	CreateCriterion(c models.Criterion) error
	GetCriterion(id string) (models.Criterion, error)
	UpdateCriterion(c models.Criterion) error
	// DeleteCriterion removes the criterion and compacts the ranks of the
	// author's remaining criteria in the same topic to a contiguous 1..N
	// sequence preserving their prior relative order.
	DeleteCriterion(id string) error
	CriteriaByTopic(topicID string) ([]models.Criterion, error)
	CriteriaByUserTopic(userID, topicID string) ([]models.Criterion, error)
	SharedCriteriaByTopic(topicID string) ([]models.Criterion, error)

	CreateCandidate(c models.Candidate) error
	GetCandidate(id string) (models.Candidate, error)
	UpdateCandidate(c models.Candidate) error
	DeleteCandidate(id string) error
	CandidatesByTopic(topicID string) ([]models.Candidate, error)

	// UpsertEvaluation creates the evaluation, or overwrites the score when
	// one already exists for the (user, candidate, criterion) triple. A
	// non-nil notes sets the notes (an empty string clears them); nil leaves
	// any existing notes untouched. The stored record is returned; on update
	// it keeps its original ID.
	UpsertEvaluation(e models.Evaluation, notes *string) (models.Evaluation, error)
	GetEvaluation(id string) (models.Evaluation, error)
	DeleteEvaluation(id string) error
	EvaluationsByPair(candidateID, criterionID string) ([]models.Evaluation, error)
	EvaluationsByUserTopic(userID, topicID string) ([]models.Evaluation, error)

	// UpsertRanking creates the ranking, or replaces the entry list
	// wholesale when one already exists for the (user, topic) pair.
	UpsertRanking(rk models.CandidateRanking) (models.CandidateRanking, error)
	RankingByUserTopic(userID, topicID string) (models.CandidateRanking, error)
	RankingsByTopic(topicID string) ([]models.CandidateRanking, error)
}
