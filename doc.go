// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Consensio API server.

Consensio is a group decision-support service: a group defines evaluation
criteria for a topic, collects candidate options, scores them on a 1-10
scale, and ranks them. The server aggregates scores per candidate and
reports where a user's ranking contradicts their own scores.

Topics move through three phases:

 1. Definition: participants define criteria
 2. Collection: candidates are gathered and evaluated
 3. Decision: participants rank candidates

# Starting the Server

With no configuration the server runs on port 3000 with an in-memory store:

	go run .

With a SQL backend:

	go run . -t sqlite -d "file:consensio.db"
	go run . -t postgres -d "postgres://..."

A .env file in the working directory is loaded before flag parsing.

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): memory, sqlite, or postgres (default: memory)
  - DATABASE_URL (-d): Connection string, required for the SQL backends

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, topics, criteria, candidates, evaluations, rankings)
  - engine: Score aggregation, discrepancy detection, ranking normalization, phase gates
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain, request, and response types
  - store: The entity store interface
  - memstore, sqlstore: Store implementations
  - events: Websocket notification hub
  - db: Connection handling and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
