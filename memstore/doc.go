// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package memstore provides an in-memory store.Store. It backs the "memory"
// database type and every handler/engine test.
package memstore
