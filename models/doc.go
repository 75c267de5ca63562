// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateUserRequest: id, name, role
  - CreateSubjectRequest: name, slug (optional, derived from name)
  - QuestionRequest: content, answers {A,B,C,D}, correct_answer, difficulty
  - ImportQuestion: content, answers, correct, difficulty
  - SubmitGameRequest: subject_slug, score, answers

# Response Types

  - SuccessResponse: success
  - ImportResponse: success, count
  - UpdateQuestionResponse: success, question
  - SubmitGameResponse: success, game_id
  - ErrorResponse: error

# Domain Types

Persisted entities:

  - User: opaque external id, display name, role (student or admin)
  - Subject: id, name, unique slug
  - Question: four answers A-D, the correct letter, difficulty 1-4
  - LeaderboardEntry: one recorded playthrough and its score
  - GameAnswer: one answered question within a playthrough

Query results:

  - LeaderboardRow: summed score per user
  - GameSummary: one row of a user's history
  - GameAnswerDetail: an answer joined with its question

# Constants

Roles:

	RoleStudent = "student"
	RoleAdmin   = "admin"

Choices are the letters A through D. Difficulty tiers run from
MinDifficulty (1) to MaxDifficulty (4).
*/
package models
