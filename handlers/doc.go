// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the JSON API. Each entity
// gets a handler struct constructed over a store.Store; routing is wired in
// the router package. Handlers validate input, apply the phase gates from
// the engine package, and translate store sentinel errors into status codes.
package handlers
