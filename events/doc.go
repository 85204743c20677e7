// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package events implements the realtime notification hub. Clients connect
// over a websocket, join the room for the topic they are viewing, and
// receive criterionAdded, candidateAdded, and evaluationAdded events when
// other viewers announce changes.
package events
