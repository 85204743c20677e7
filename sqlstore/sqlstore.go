// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tmarkell/consensio/models"
	"github.com/tmarkell/consensio/store"
)

// Store implements store.Store over a SQL database. Placeholders use the $n
// syntax, which both lib/pq and modernc.org/sqlite accept, so the same
// queries run on either backend.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Topics

func (s *Store) CreateTopic(t models.Topic) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO topic (id, name, description, current_phase, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.Description, t.CurrentPhase, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert topic: %w", err)
	}

	if err := insertParticipants(tx, t.ID, t.Participants); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetTopic(id string) (models.Topic, error) {
	var t models.Topic
	err := s.db.QueryRow(
		`SELECT id, name, description, current_phase, created_at FROM topic WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.CurrentPhase, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Topic{}, store.ErrNotFound
	}
	if err != nil {
		return models.Topic{}, fmt.Errorf("failed to query topic: %w", err)
	}

	t.Participants, err = s.participants(t.ID)
	if err != nil {
		return models.Topic{}, err
	}
	return t, nil
}

func (s *Store) ListTopics() ([]models.Topic, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, current_phase, created_at FROM topic ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CurrentPhase, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}

	for i := range topics {
		topics[i].Participants, err = s.participants(topics[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return topics, nil
}

func (s *Store) UpdateTopic(t models.Topic) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE topic SET name = $1, description = $2, current_phase = $3 WHERE id = $4`,
		t.Name, t.Description, t.CurrentPhase, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM topic_participant WHERE topic_id = $1`, t.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertParticipants(tx, t.ID, t.Participants); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteTopic removes the topic and scrubs it from every user's topic list.
// Criteria, candidates, evaluations, and rankings go with it via the schema
// cascades.
func (s *Store) DeleteTopic(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM topic WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM user_topic WHERE topic_id = $1`, id); err != nil {
		return fmt.Errorf("failed to scrub topic from user lists: %w", err)
	}

	return tx.Commit()
}

func (s *Store) participants(topicID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT user_id FROM topic_participant WHERE topic_id = $1 ORDER BY position`, topicID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertParticipants(tx *sql.Tx, topicID string, userIDs []string) error {
	for i, userID := range userIDs {
		_, err := tx.Exec(
			`INSERT INTO topic_participant (topic_id, user_id, position) VALUES ($1, $2, $3)`,
			topicID, userID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// Users

func (s *Store) CreateUser(u models.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	taken, err := emailTaken(tx, u.Email, "")
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicate
	}

	_, err = tx.Exec(
		`INSERT INTO users (id, name, email, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Name, u.Email, u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if err := insertUserTopics(tx, u.ID, u.Topics); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetUser(id string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		`SELECT id, name, email, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	u.Topics, err = s.userTopics(u.ID)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(email string) (models.User, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user by email: %w", err)
	}
	return s.GetUser(id)
}

func (s *Store) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT id, name, email, created_at FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	for i := range users {
		users[i].Topics, err = s.userTopics(users[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *Store) UpdateUser(u models.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	taken, err := emailTaken(tx, u.Email, u.ID)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDuplicate
	}

	res, err := tx.Exec(
		`UPDATE users SET name = $1, email = $2 WHERE id = $3`,
		u.Name, u.Email, u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM user_topic WHERE user_id = $1`, u.ID); err != nil {
		return fmt.Errorf("failed to clear user topics: %w", err)
	}
	if err := insertUserTopics(tx, u.ID, u.Topics); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) DeleteUser(id string) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) userTopics(userID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT topic_id FROM user_topic WHERE user_id = $1 ORDER BY position`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query user topics: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user topic: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertUserTopics(tx *sql.Tx, userID string, topicIDs []string) error {
	for i, topicID := range topicIDs {
		_, err := tx.Exec(
			`INSERT INTO user_topic (user_id, topic_id, position) VALUES ($1, $2, $3)`,
			userID, topicID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user topic: %w", err)
		}
	}
	return nil
}

func emailTaken(tx *sql.Tx, email, excludeID string) (bool, error) {
	var id string
	err := tx.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return id != excludeID, nil
}

// Criteria

const criterionCols = `id, name, description, topic_id, user_id, rank, is_shared, created_at`

func (s *Store) CreateCriterion(c models.Criterion) error {
	_, err := s.db.Exec(
		`INSERT INTO criterion (`+criterionCols+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Description, c.TopicID, c.UserID, c.Rank, c.IsShared, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert criterion: %w", err)
	}
	return nil
}

func (s *Store) GetCriterion(id string) (models.Criterion, error) {
	var c models.Criterion
	err := s.db.QueryRow(
		`SELECT `+criterionCols+` FROM criterion WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.TopicID, &c.UserID, &c.Rank, &c.IsShared, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Criterion{}, store.ErrNotFound
	}
	if err != nil {
		return models.Criterion{}, fmt.Errorf("failed to query criterion: %w", err)
	}
	return c, nil
}

func (s *Store) UpdateCriterion(c models.Criterion) error {
	res, err := s.db.Exec(
		`UPDATE criterion SET name = $1, description = $2, rank = $3, is_shared = $4 WHERE id = $5`,
		c.Name, c.Description, c.Rank, c.IsShared, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update criterion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteCriterion removes the criterion and renumbers the author's remaining
// criteria in the topic to 1..N, preserving their relative order. The whole
// operation runs in one transaction so a concurrent reader never sees a gap.
func (s *Store) DeleteCriterion(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID, topicID string
	err = tx.QueryRow(`SELECT user_id, topic_id FROM criterion WHERE id = $1`, id).Scan(&userID, &topicID)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query criterion: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM criterion WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete criterion: %w", err)
	}

	rows, err := tx.Query(
		`SELECT id FROM criterion WHERE user_id = $1 AND topic_id = $2 ORDER BY rank, created_at, id`,
		userID, topicID,
	)
	if err != nil {
		return fmt.Errorf("failed to query remaining criteria: %w", err)
	}
	remaining := []string{}
	for rows.Next() {
		var cid string
		if err := rows.Scan(&cid); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan criterion: %w", err)
		}
		remaining = append(remaining, cid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate criteria: %w", err)
	}

	for i, cid := range remaining {
		if _, err := tx.Exec(`UPDATE criterion SET rank = $1 WHERE id = $2`, i+1, cid); err != nil {
			return fmt.Errorf("failed to renumber criterion: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) CriteriaByTopic(topicID string) ([]models.Criterion, error) {
	return s.queryCriteria(`SELECT `+criterionCols+` FROM criterion WHERE topic_id = $1 ORDER BY created_at, id`, topicID)
}

func (s *Store) CriteriaByUserTopic(userID, topicID string) ([]models.Criterion, error) {
	return s.queryCriteria(
		`SELECT `+criterionCols+` FROM criterion WHERE user_id = $1 AND topic_id = $2 ORDER BY created_at, id`,
		userID, topicID,
	)
}

func (s *Store) SharedCriteriaByTopic(topicID string) ([]models.Criterion, error) {
	return s.queryCriteria(
		`SELECT `+criterionCols+` FROM criterion WHERE topic_id = $1 AND is_shared ORDER BY created_at, id`,
		topicID,
	)
}

func (s *Store) queryCriteria(query string, args ...any) ([]models.Criterion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query criteria: %w", err)
	}
	defer rows.Close()

	criteria := []models.Criterion{}
	for rows.Next() {
		var c models.Criterion
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.TopicID, &c.UserID, &c.Rank, &c.IsShared, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan criterion: %w", err)
		}
		criteria = append(criteria, c)
	}
	return criteria, rows.Err()
}

// Candidates

func (s *Store) CreateCandidate(c models.Candidate) error {
	_, err := s.db.Exec(
		`INSERT INTO candidate (id, name, description, topic_id, created_by, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Description, c.TopicID, c.CreatedBy, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (s *Store) GetCandidate(id string) (models.Candidate, error) {
	var c models.Candidate
	err := s.db.QueryRow(
		`SELECT id, name, description, topic_id, created_by, created_at FROM candidate WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.TopicID, &c.CreatedBy, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, store.ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	return c, nil
}

func (s *Store) UpdateCandidate(c models.Candidate) error {
	res, err := s.db.Exec(
		`UPDATE candidate SET name = $1, description = $2 WHERE id = $3`,
		c.Name, c.Description, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCandidate(id string) error {
	res, err := s.db.Exec(`DELETE FROM candidate WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CandidatesByTopic(topicID string) ([]models.Candidate, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, topic_id, created_by, created_at FROM candidate WHERE topic_id = $1 ORDER BY created_at, id`,
		topicID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.TopicID, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Evaluations

const evaluationCols = `id, user_id, candidate_id, criterion_id, score, notes, created_at`

func (s *Store) UpsertEvaluation(e models.Evaluation, notes *string) (models.Evaluation, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Evaluation{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID, existingNotes string
	var createdAt time.Time
	err = tx.QueryRow(
		`SELECT id, notes, created_at FROM evaluation WHERE user_id = $1 AND candidate_id = $2 AND criterion_id = $3`,
		e.UserID, e.CandidateID, e.CriterionID,
	).Scan(&existingID, &existingNotes, &createdAt)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if notes != nil {
			e.Notes = *notes
		}
		_, err = tx.Exec(
			`INSERT INTO evaluation (`+evaluationCols+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, e.UserID, e.CandidateID, e.CriterionID, e.Score, e.Notes, e.CreatedAt,
		)
		if err != nil {
			return models.Evaluation{}, fmt.Errorf("failed to insert evaluation: %w", err)
		}
	case err != nil:
		return models.Evaluation{}, fmt.Errorf("failed to query evaluation: %w", err)
	default:
		e.Notes = existingNotes
		if notes != nil {
			e.Notes = *notes
		}
		_, err = tx.Exec(
			`UPDATE evaluation SET score = $1, notes = $2 WHERE id = $3`,
			e.Score, e.Notes, existingID,
		)
		if err != nil {
			return models.Evaluation{}, fmt.Errorf("failed to update evaluation: %w", err)
		}
		e.ID = existingID
		e.CreatedAt = createdAt
	}

	if err := tx.Commit(); err != nil {
		return models.Evaluation{}, fmt.Errorf("failed to commit evaluation: %w", err)
	}
	return e, nil
}

func (s *Store) GetEvaluation(id string) (models.Evaluation, error) {
	var e models.Evaluation
	err := s.db.QueryRow(
		`SELECT `+evaluationCols+` FROM evaluation WHERE id = $1`, id,
	).Scan(&e.ID, &e.UserID, &e.CandidateID, &e.CriterionID, &e.Score, &e.Notes, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Evaluation{}, store.ErrNotFound
	}
	if err != nil {
		return models.Evaluation{}, fmt.Errorf("failed to query evaluation: %w", err)
	}
	return e, nil
}

func (s *Store) DeleteEvaluation(id string) error {
	res, err := s.db.Exec(`DELETE FROM evaluation WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) EvaluationsByPair(candidateID, criterionID string) ([]models.Evaluation, error) {
	return s.queryEvaluations(
		`SELECT `+evaluationCols+` FROM evaluation WHERE candidate_id = $1 AND criterion_id = $2 ORDER BY created_at, id`,
		candidateID, criterionID,
	)
}

// EvaluationsByUserTopic returns the user's evaluations scoped to the topic:
// the candidate must belong to the topic and the criterion must be the
// user's own criterion in that topic.
func (s *Store) EvaluationsByUserTopic(userID, topicID string) ([]models.Evaluation, error) {
	return s.queryEvaluations(
		`SELECT e.id, e.user_id, e.candidate_id, e.criterion_id, e.score, e.notes, e.created_at
		 FROM evaluation e
		 JOIN candidate ca ON ca.id = e.candidate_id
		 JOIN criterion cr ON cr.id = e.criterion_id
		 WHERE e.user_id = $1 AND ca.topic_id = $2 AND cr.user_id = $1 AND cr.topic_id = $2
		 ORDER BY e.created_at, e.id`,
		userID, topicID,
	)
}

func (s *Store) queryEvaluations(query string, args ...any) ([]models.Evaluation, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := []models.Evaluation{}
	for rows.Next() {
		var e models.Evaluation
		if err := rows.Scan(&e.ID, &e.UserID, &e.CandidateID, &e.CriterionID, &e.Score, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

// Rankings

func (s *Store) UpsertRanking(rk models.CandidateRanking) (models.CandidateRanking, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.CandidateRanking{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var existingID string
	var createdAt time.Time
	err = tx.QueryRow(
		`SELECT id, created_at FROM candidate_ranking WHERE user_id = $1 AND topic_id = $2`,
		rk.UserID, rk.TopicID,
	).Scan(&existingID, &createdAt)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		rk.UpdatedAt = now
		_, err = tx.Exec(
			`INSERT INTO candidate_ranking (id, user_id, topic_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
			rk.ID, rk.UserID, rk.TopicID, rk.CreatedAt, rk.UpdatedAt,
		)
		if err != nil {
			return models.CandidateRanking{}, fmt.Errorf("failed to insert ranking: %w", err)
		}
	case err != nil:
		return models.CandidateRanking{}, fmt.Errorf("failed to query ranking: %w", err)
	default:
		rk.ID = existingID
		rk.CreatedAt = createdAt
		rk.UpdatedAt = now
		_, err = tx.Exec(`UPDATE candidate_ranking SET updated_at = $1 WHERE id = $2`, rk.UpdatedAt, rk.ID)
		if err != nil {
			return models.CandidateRanking{}, fmt.Errorf("failed to update ranking: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM ranking_entry WHERE ranking_id = $1`, rk.ID); err != nil {
			return models.CandidateRanking{}, fmt.Errorf("failed to clear ranking entries: %w", err)
		}
	}

	for _, entry := range rk.Rankings {
		_, err := tx.Exec(
			`INSERT INTO ranking_entry (ranking_id, candidate_id, rank) VALUES ($1, $2, $3)`,
			rk.ID, entry.CandidateID, entry.Rank,
		)
		if err != nil {
			return models.CandidateRanking{}, fmt.Errorf("failed to insert ranking entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.CandidateRanking{}, fmt.Errorf("failed to commit ranking: %w", err)
	}
	return rk, nil
}

func (s *Store) RankingByUserTopic(userID, topicID string) (models.CandidateRanking, error) {
	var rk models.CandidateRanking
	err := s.db.QueryRow(
		`SELECT id, user_id, topic_id, created_at, updated_at FROM candidate_ranking WHERE user_id = $1 AND topic_id = $2`,
		userID, topicID,
	).Scan(&rk.ID, &rk.UserID, &rk.TopicID, &rk.CreatedAt, &rk.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CandidateRanking{}, store.ErrNotFound
	}
	if err != nil {
		return models.CandidateRanking{}, fmt.Errorf("failed to query ranking: %w", err)
	}

	rk.Rankings, err = s.rankingEntries(rk.ID)
	if err != nil {
		return models.CandidateRanking{}, err
	}
	return rk, nil
}

func (s *Store) RankingsByTopic(topicID string) ([]models.CandidateRanking, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, topic_id, created_at, updated_at FROM candidate_ranking WHERE topic_id = $1 ORDER BY created_at, id`,
		topicID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer rows.Close()

	rankings := []models.CandidateRanking{}
	for rows.Next() {
		var rk models.CandidateRanking
		if err := rows.Scan(&rk.ID, &rk.UserID, &rk.TopicID, &rk.CreatedAt, &rk.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		rankings = append(rankings, rk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rankings: %w", err)
	}

	for i := range rankings {
		rankings[i].Rankings, err = s.rankingEntries(rankings[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return rankings, nil
}

func (s *Store) rankingEntries(rankingID string) ([]models.RankEntry, error) {
	rows, err := s.db.Query(
		`SELECT candidate_id, rank FROM ranking_entry WHERE ranking_id = $1 ORDER BY rank`, rankingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking entries: %w", err)
	}
	defer rows.Close()

	entries := []models.RankEntry{}
	for rows.Next() {
		var entry models.RankEntry
		if err := rows.Scan(&entry.CandidateID, &entry.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
