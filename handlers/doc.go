// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Poly-Millionaire API.

# Handler Types

Each handler is a struct over the persistence adapter:

  - UserHandler: the current user, user listing and creation
  - SubjectHandler: subject listing, creation and deletion
  - QuestionHandler: question CRUD and bulk import
  - GameHandler: game assembly and submission
  - LeaderboardHandler: global leaderboard and per-user history

Handlers are created via constructor functions that accept a *store.Store:

	gameHandler := handlers.NewGameHandler(s)

Authenticated handlers take the resolved user as an explicit argument
(see auth.HandlerFunc) instead of reading it from the request.

# Games

GetGame draws three random questions from each difficulty tier and
returns them ordered easiest first. A tier with fewer than three
questions fails the request with 400.

SubmitGame writes the leaderboard entry and all answer rows in one
transaction. Scores must be 0 or an amount on the money ladder.

# Import

ImportQuestions validates every record before writing any of them; a
single bad record rejects the whole batch.

# Errors

Store errors map to status codes in one place (storeError):
not found is 404, a unique violation 409, a dangling reference 400, and
anything else 500 with the cause logged.
*/
package handlers
