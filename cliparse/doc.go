// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: Connection string for the sqlite or postgres backend
  - DatabaseType: Store backend, one of memory, sqlite, postgres (default: memory)

# CLI Flags

	-p  Server port
	-d  Database URL
	-t  Database type

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL is missing while the database
type is sqlite or postgres. The memory backend needs no URL.
*/
package cliparse
