// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation for the SQL
store backends.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg)

"sqlite" uses the pure-Go modernc.org/sqlite driver, "postgres" uses lib/pq.
Both accept the same placeholder syntax ($1, $2, ...), so the sqlstore
package runs unchanged on either.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - users: Registered users
  - topic: Decision topics with their phase
  - topic_participant: Topic membership
  - user_topic: Each user's topic list
  - criterion: Per-user evaluation criteria
  - candidate: Options under evaluation
  - evaluation: One score per (user, candidate, criterion)
  - candidate_ranking: One preference order per (user, topic)
  - ranking_entry: The (candidate, rank) pairs of a ranking

# Relationships

	topic 1──* topic_participant
	topic 1──* criterion
	topic 1──* candidate
	candidate 1──* evaluation
	criterion 1──* evaluation
	topic 1──* candidate_ranking
	candidate_ranking 1──* ranking_entry

Foreign keys use ON DELETE CASCADE except user_topic.topic_id and
ranking_entry.candidate_id, which may point at deleted rows until rewritten.
*/
package db
