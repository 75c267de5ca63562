// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/poly-millionaire/middleware"
	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
)

type LeaderboardHandler struct {
	store *store.Store
}

func NewLeaderboardHandler(s *store.Store) *LeaderboardHandler {
	return &LeaderboardHandler{store: s}
}

// GetLeaderboard handles GET /api/leaderboard
// Totals are summed across every game a user played, highest first.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request, user models.User) {
	board, err := h.store.GlobalLeaderboard(r.Context())
	if err != nil {
		storeError(w, err, "", "query leaderboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, board)
}

// GetHistory handles GET /api/history
// Lists the caller's own games, newest first.
func (h *LeaderboardHandler) GetHistory(w http.ResponseWriter, r *http.Request, user models.User) {
	games, err := h.store.UserGames(r.Context(), user.ID)
	if err != nil {
		storeError(w, err, "", "query history")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, games)
}

// GetGameDetails handles GET /api/history/{gameId}
// Any authenticated user may read any game.
func (h *LeaderboardHandler) GetGameDetails(w http.ResponseWriter, r *http.Request, user models.User) {
	id, ok := pathID(w, r, "gameId")
	if !ok {
		return
	}

	details, err := h.store.GameDetails(r.Context(), id)
	if err != nil {
		storeError(w, err, "Game not found", "query game details")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, details)
}
