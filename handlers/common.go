// Copyright (c) 2025 Tess Markell.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/tmarkell/consensio/middleware"
)

// storeError logs a persistence failure and surfaces it as a 500 with the
// store's message passed through.
func storeError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
}
