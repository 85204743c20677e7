// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sqlstore implements the entity store over a SQL database opened by
// the db package. It runs unchanged on sqlite and postgres. Multi-step
// writes (criterion rank compaction, evaluation and ranking upserts) run in
// transactions.
package sqlstore
