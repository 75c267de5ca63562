// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/poly-millionaire/auth"
	"github.com/danielhkuo/poly-millionaire/cliparse"
	"github.com/danielhkuo/poly-millionaire/handlers"
	"github.com/danielhkuo/poly-millionaire/middleware"
	"github.com/danielhkuo/poly-millionaire/store"
)

func NewRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()
	s := store.New(db)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(s)
	subjectHandler := handlers.NewSubjectHandler(s)
	questionHandler := handlers.NewQuestionHandler(s)
	gameHandler := handlers.NewGameHandler(s)
	leaderboardHandler := handlers.NewLeaderboardHandler(s)

	user := func(h auth.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(auth.RequireUser(s, h))
	}
	admin := func(h auth.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(auth.RequireAdmin(s, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Identity and user management
	mux.HandleFunc("GET /api/me", user(userHandler.GetMe))
	mux.HandleFunc("GET /api/users", admin(userHandler.ListUsers))
	mux.HandleFunc("POST /api/users", admin(userHandler.CreateUser))

	// Subjects (listing is public)
	mux.HandleFunc("GET /api/subjects", middleware.WithLogging(subjectHandler.ListSubjects))
	mux.HandleFunc("POST /api/subjects", admin(subjectHandler.CreateSubject))
	mux.HandleFunc("DELETE /api/subjects/{id}", admin(subjectHandler.DeleteSubject))

	// Question bank (admin)
	mux.HandleFunc("GET /api/subjects/{slug}/questions", admin(questionHandler.ListQuestions))
	mux.HandleFunc("POST /api/subjects/{slug}/questions", admin(questionHandler.CreateQuestion))
	mux.HandleFunc("POST /api/subjects/{slug}/questions/import", admin(questionHandler.ImportQuestions))
	mux.HandleFunc("PUT /api/questions/{id}", admin(questionHandler.UpdateQuestion))
	mux.HandleFunc("DELETE /api/questions/{id}", admin(questionHandler.DeleteQuestion))

	// Playing
	mux.HandleFunc("GET /api/subjects/{slug}/questions/game", user(gameHandler.GetGame))
	mux.HandleFunc("POST /api/game/submit", user(gameHandler.SubmitGame))

	// Scores
	mux.HandleFunc("GET /api/leaderboard", user(leaderboardHandler.GetLeaderboard))
	mux.HandleFunc("GET /api/history", user(leaderboardHandler.GetHistory))
	mux.HandleFunc("GET /api/history/{gameId}", user(leaderboardHandler.GetGameDetails))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("poly-millionaire API v1"))
	})

	return mux
}

// NewHandler wraps the router with CORS for the configured origin.
func NewHandler(db *sql.DB, cfg cliparse.Config) http.Handler {
	return middleware.CORS(cfg.CORSOrigin, NewRouter(db))
}
