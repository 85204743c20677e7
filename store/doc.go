// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the entity store interface and its sentinel errors.

Two implementations exist: memstore (in-memory, used by tests and the
"memory" database type) and sqlstore (database/sql, postgres or sqlite).
Handlers and engines depend only on this interface.
*/
package store
