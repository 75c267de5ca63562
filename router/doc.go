// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Poly-Millionaire API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db)

NewHandler additionally wraps it in CORS for the configured origin.

# Endpoints

Public:

	GET /health
	GET /api/subjects

Any known user (User cookie):

	GET  /api/me
	GET  /api/subjects/{slug}/questions/game - 12 questions for a new game
	POST /api/game/submit                    - record a finished game
	GET  /api/leaderboard
	GET  /api/history
	GET  /api/history/{gameId}

Admins only:

	GET    /api/users
	POST   /api/users
	POST   /api/subjects
	DELETE /api/subjects/{id}
	GET    /api/subjects/{slug}/questions
	POST   /api/subjects/{slug}/questions
	POST   /api/subjects/{slug}/questions/import
	PUT    /api/questions/{id}
	DELETE /api/questions/{id}

A missing or unknown cookie is 401; a student on an admin route is 403.
Every API route is wrapped in middleware.WithLogging.
*/
package router
