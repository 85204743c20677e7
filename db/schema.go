// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. Timestamps are set by
// the application so the DDL stays portable between sqlite and postgres.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

-- Topics
CREATE TABLE IF NOT EXISTS topic (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    current_phase INTEGER NOT NULL DEFAULT 1 CHECK (current_phase IN (1, 2, 3)),
    created_at TIMESTAMP NOT NULL
);

-- Topic membership, ordered by join time
CREATE TABLE IF NOT EXISTS topic_participant (
    topic_id TEXT NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    PRIMARY KEY (topic_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_topic_participant_user_id ON topic_participant(user_id);

-- A user's topic list; kept separately from membership because it can hold
-- stale references until the user record is rewritten
CREATE TABLE IF NOT EXISTS user_topic (
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    topic_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (user_id, topic_id)
);

-- Criteria
CREATE TABLE IF NOT EXISTS criterion (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    topic_id TEXT NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    rank INTEGER NOT NULL,
    is_shared BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_criterion_topic_id ON criterion(topic_id);
CREATE INDEX IF NOT EXISTS idx_criterion_user_topic ON criterion(user_id, topic_id);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    topic_id TEXT NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
    created_by TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_topic_id ON candidate(topic_id);

-- Evaluations, one per (user, candidate, criterion)
CREATE TABLE IF NOT EXISTS evaluation (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    criterion_id TEXT NOT NULL REFERENCES criterion(id) ON DELETE CASCADE,
    score INTEGER NOT NULL CHECK (score >= 1 AND score <= 10),
    notes TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, candidate_id, criterion_id)
);

CREATE INDEX IF NOT EXISTS idx_evaluation_pair ON evaluation(candidate_id, criterion_id);
CREATE INDEX IF NOT EXISTS idx_evaluation_user_id ON evaluation(user_id);

-- Candidate rankings, one per (user, topic)
CREATE TABLE IF NOT EXISTS candidate_ranking (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    topic_id TEXT NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, topic_id)
);

CREATE INDEX IF NOT EXISTS idx_candidate_ranking_topic_id ON candidate_ranking(topic_id);

-- Rank entries belonging to a ranking
CREATE TABLE IF NOT EXISTS ranking_entry (
    ranking_id TEXT NOT NULL REFERENCES candidate_ranking(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL,
    rank INTEGER NOT NULL,
    PRIMARY KEY (ranking_id, candidate_id)
);
`
