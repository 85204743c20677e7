// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"sort"
	"sync"

	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

// Store is an in-memory store.Store. Entities are kept in creation order,
// which the aggregation engine depends on. All methods are safe for
// concurrent use; the criteria re-rank compaction holds the lock for the
// whole read-modify-write sequence.
type Store struct {
	mu sync.RWMutex

	topics     map[string]models.Topic
	topicOrder []string

	users     map[string]models.User
	userOrder []string

	criteria       map[string]models.Criterion
	criterionOrder []string

	candidates     map[string]models.Candidate
	candidateOrder []string

	evaluations     map[string]models.Evaluation
	evaluationOrder []string

	rankings     map[string]models.CandidateRanking
	rankingOrder []string
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		topics:      make(map[string]models.Topic),
		users:       make(map[string]models.User),
		criteria:    make(map[string]models.Criterion),
		candidates:  make(map[string]models.Candidate),
		evaluations: make(map[string]models.Evaluation),
		rankings:    make(map[string]models.CandidateRanking),
	}
}

var _ store.Store = (*Store)(nil)

// Topics

func (s *Store) CreateTopic(t models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[t.ID] = cloneTopic(t)
	s.topicOrder = append(s.topicOrder, t.ID)
	return nil
}

func (s *Store) GetTopic(id string) (models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.topics[id]
	if !ok {
		return models.Topic{}, store.ErrNotFound
	}
	return cloneTopic(t), nil
}

func (s *Store) ListTopics() ([]models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Topic, 0, len(s.topicOrder))
	for _, id := range s.topicOrder {
		out = append(out, cloneTopic(s.topics[id]))
	}
	return out, nil
}

func (s *Store) UpdateTopic(t models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[t.ID]; !ok {
		return store.ErrNotFound
	}
	s.topics[t.ID] = cloneTopic(t)
	return nil
}

func (s *Store) DeleteTopic(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.topics, id)
	s.topicOrder = removeID(s.topicOrder, id)

	// Cascade: drop the topic from every user's topic list.
	for uid, u := range s.users {
		u.Topics = removeID(u.Topics, id)
		s.users[uid] = u
	}
	return nil
}

// Users

func (s *Store) CreateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	s.users[u.ID] = cloneUser(u)
	s.userOrder = append(s.userOrder, u.ID)
	return nil
}

func (s *Store) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if s.users[id].Email == email {
			return cloneUser(s.users[id]), nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, cloneUser(s.users[id]))
	}
	return out, nil
}

func (s *Store) UpdateUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	for _, existing := range s.users {
		if existing.Email == u.Email && existing.ID != u.ID {
			return store.ErrDuplicate
		}
	}
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	s.userOrder = removeID(s.userOrder, id)
	return nil
}

// Criteria

func (s *Store) CreateCriterion(c models.Criterion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria[c.ID] = c
	s.criterionOrder = append(s.criterionOrder, c.ID)
	return nil
}

func (s *Store) GetCriterion(id string) (models.Criterion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.criteria[id]
	if !ok {
		return models.Criterion{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Store) UpdateCriterion(c models.Criterion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.criteria[c.ID]; !ok {
		return store.ErrNotFound
	}
	s.criteria[c.ID] = c
	return nil
}

func (s *Store) DeleteCriterion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted, ok := s.criteria[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.criteria, id)
	s.criterionOrder = removeID(s.criterionOrder, id)

	// Compact the author's remaining criteria in the topic to 1..N,
	// preserving their prior rank order.
	var remaining []models.Criterion
	for _, cid := range s.criterionOrder {
		c := s.criteria[cid]
		if c.UserID == deleted.UserID && c.TopicID == deleted.TopicID {
			remaining = append(remaining, c)
		}
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Rank < remaining[j].Rank
	})
	for i, c := range remaining {
		c.Rank = i + 1
		s.criteria[c.ID] = c
	}
	return nil
}

func (s *Store) CriteriaByTopic(topicID string) ([]models.Criterion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Criterion
	for _, id := range s.criterionOrder {
		if s.criteria[id].TopicID == topicID {
			out = append(out, s.criteria[id])
		}
	}
	return out, nil
}

func (s *Store) CriteriaByUserTopic(userID, topicID string) ([]models.Criterion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Criterion
	for _, id := range s.criterionOrder {
		c := s.criteria[id]
		if c.UserID == userID && c.TopicID == topicID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) SharedCriteriaByTopic(topicID string) ([]models.Criterion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Criterion
	for _, id := range s.criterionOrder {
		c := s.criteria[id]
		if c.TopicID == topicID && c.IsShared {
			out = append(out, c)
		}
	}
	return out, nil
}

// Candidates

func (s *Store) CreateCandidate(c models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[c.ID] = c
	s.candidateOrder = append(s.candidateOrder, c.ID)
	return nil
}

func (s *Store) GetCandidate(id string) (models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[id]
	if !ok {
		return models.Candidate{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Store) UpdateCandidate(c models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[c.ID]; !ok {
		return store.ErrNotFound
	}
	s.candidates[c.ID] = c
	return nil
}

func (s *Store) DeleteCandidate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.candidates, id)
	s.candidateOrder = removeID(s.candidateOrder, id)
	return nil
}

func (s *Store) CandidatesByTopic(topicID string) ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Candidate
	for _, id := range s.candidateOrder {
		if s.candidates[id].TopicID == topicID {
			out = append(out, s.candidates[id])
		}
	}
	return out, nil
}

// Evaluations

func (s *Store) UpsertEvaluation(e models.Evaluation, notes *string) (models.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.evaluationOrder {
		existing := s.evaluations[id]
		if existing.UserID == e.UserID &&
			existing.CandidateID == e.CandidateID &&
			existing.CriterionID == e.CriterionID {
			existing.Score = e.Score
			if notes != nil {
				existing.Notes = *notes
			}
			s.evaluations[id] = existing
			return existing, nil
		}
	}
	if notes != nil {
		e.Notes = *notes
	}
	s.evaluations[e.ID] = e
	s.evaluationOrder = append(s.evaluationOrder, e.ID)
	return e, nil
}

func (s *Store) GetEvaluation(id string) (models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.evaluations[id]
	if !ok {
		return models.Evaluation{}, store.ErrNotFound
	}
	return e, nil
}

func (s *Store) DeleteEvaluation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.evaluations[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.evaluations, id)
	s.evaluationOrder = removeID(s.evaluationOrder, id)
	return nil
}

func (s *Store) EvaluationsByPair(candidateID, criterionID string) ([]models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Evaluation
	for _, id := range s.evaluationOrder {
		e := s.evaluations[id]
		if e.CandidateID == candidateID && e.CriterionID == criterionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) EvaluationsByUserTopic(userID, topicID string) ([]models.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Evaluation
	for _, id := range s.evaluationOrder {
		e := s.evaluations[id]
		if e.UserID != userID {
			continue
		}
		cand, ok := s.candidates[e.CandidateID]
		if !ok || cand.TopicID != topicID {
			continue
		}
		crit, ok := s.criteria[e.CriterionID]
		if !ok || crit.TopicID != topicID || crit.UserID != userID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Rankings

func (s *Store) UpsertRanking(rk models.CandidateRanking) (models.CandidateRanking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.rankingOrder {
		existing := s.rankings[id]
		if existing.UserID == rk.UserID && existing.TopicID == rk.TopicID {
			existing.Rankings = cloneEntries(rk.Rankings)
			existing.UpdatedAt = rk.UpdatedAt
			s.rankings[id] = existing
			return cloneRanking(existing), nil
		}
	}
	s.rankings[rk.ID] = cloneRanking(rk)
	s.rankingOrder = append(s.rankingOrder, rk.ID)
	return cloneRanking(rk), nil
}

func (s *Store) RankingByUserTopic(userID, topicID string) (models.CandidateRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.rankingOrder {
		rk := s.rankings[id]
		if rk.UserID == userID && rk.TopicID == topicID {
			return cloneRanking(rk), nil
		}
	}
	return models.CandidateRanking{}, store.ErrNotFound
}

func (s *Store) RankingsByTopic(topicID string) ([]models.CandidateRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.CandidateRanking
	for _, id := range s.rankingOrder {
		rk := s.rankings[id]
		if rk.TopicID == topicID {
			out = append(out, cloneRanking(rk))
		}
	}
	return out, nil
}

// Helpers

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func cloneTopic(t models.Topic) models.Topic {
	t.Participants = append([]string(nil), t.Participants...)
	return t
}

func cloneUser(u models.User) models.User {
	u.Topics = append([]string(nil), u.Topics...)
	return u
}

func cloneEntries(entries []models.RankEntry) []models.RankEntry {
	return append([]models.RankEntry(nil), entries...)
}

func cloneRanking(rk models.CandidateRanking) models.CandidateRanking {
	rk.Rankings = cloneEntries(rk.Rankings)
	return rk
}
