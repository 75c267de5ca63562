// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/poly-millionaire/middleware"
	"github.com/danielhkuo/poly-millionaire/store"
)

// storeError writes the HTTP response for a failed store call. notFound
// is the message used for store.ErrNotFound; action names the operation
// in the log line for unexpected failures.
func storeError(w http.ResponseWriter, err error, notFound, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Already exists")
	case errors.Is(err, store.ErrInUse):
		middleware.ErrorResponse(w, http.StatusConflict, "Used by recorded games")
	case errors.Is(err, store.ErrInvalidReference):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid reference")
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// pathID parses an integer path parameter. On failure it writes a 400
// and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}
