// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/poly-millionaire/game"
	"github.com/danielhkuo/poly-millionaire/middleware"
	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
)

type GameHandler struct {
	store *store.Store
	// shuffle orders each tier before selection; nil uses math/rand/v2.
	shuffle game.Shuffler
}

func NewGameHandler(s *store.Store) *GameHandler {
	return &GameHandler{store: s}
}

// GetGame handles GET /api/subjects/{slug}/questions/game
// Returns 12 questions, three per difficulty tier in ascending order.
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request, user models.User) {
	sub, ok := subjectBySlug(w, r, h.store)
	if !ok {
		return
	}

	questions, err := game.Assemble(func(tier int) ([]models.Question, error) {
		return h.store.QuestionsByDifficulty(r.Context(), sub.ID, tier)
	}, h.shuffle)

	var shortfall *game.ShortfallError
	if errors.As(err, &shortfall) {
		middleware.ErrorResponse(w, http.StatusBadRequest, shortfall.Error())
		return
	}
	if err != nil {
		storeError(w, err, "", "assemble game")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// validateSubmission checks a submitted game before anything is written.
func validateSubmission(req models.SubmitGameRequest) error {
	if req.SubjectSlug == "" {
		return errors.New("subject_slug is required")
	}
	if !game.ValidPayout(req.Score) {
		return fmt.Errorf("score %d is not a possible payout", req.Score)
	}
	if len(req.Answers) > game.QuestionCount {
		return fmt.Errorf("at most %d answers per game", game.QuestionCount)
	}
	for i, a := range req.Answers {
		if a.QuestionID <= 0 {
			return fmt.Errorf("answer %d: question_id is required", i)
		}
		if a.SelectedAnswer != "" && !models.ValidChoice(a.SelectedAnswer) {
			return fmt.Errorf("answer %d: selected_answer must be one of A, B, C, D", i)
		}
		if a.SelectedAnswer == "" && a.IsCorrect {
			return fmt.Errorf("answer %d: a timed-out answer cannot be correct", i)
		}
	}
	return nil
}

// checkHistory grades the answers against the subject's questions,
// ignoring the client's is_correct, and requires the score to be what
// that history pays.
func checkHistory(req models.SubmitGameRequest, questions []models.Question) ([]models.AnswerRecord, error) {
	byID := make(map[int64]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answers := make([]models.AnswerRecord, len(req.Answers))
	seen := make(map[int64]bool, len(req.Answers))
	for i, a := range req.Answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("answer %d: question %d is not in subject %s", i, a.QuestionID, req.SubjectSlug)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("answer %d: question %d answered twice", i, q.ID)
		}
		seen[q.ID] = true
		a.IsCorrect = a.SelectedAnswer != "" && a.SelectedAnswer == q.CorrectAnswer
		answers[i] = a
	}

	want, err := game.HistoryPayout(answers)
	if err != nil {
		return nil, err
	}
	if req.Score != want {
		return nil, fmt.Errorf("score %d does not match the answers (expected %d)", req.Score, want)
	}
	return answers, nil
}

// SubmitGame handles POST /api/game/submit
// The leaderboard entry and its answers are written in one transaction.
func (h *GameHandler) SubmitGame(w http.ResponseWriter, r *http.Request, user models.User) {
	var req models.SubmitGameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validateSubmission(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.store.GetSubjectBySlug(r.Context(), req.SubjectSlug)
	if err != nil {
		storeError(w, err, "Subject not found", "query subject")
		return
	}

	questions, err := h.store.ListQuestions(r.Context(), sub.ID)
	if err != nil {
		storeError(w, err, "", "query questions")
		return
	}
	answers, err := checkHistory(req, questions)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.store.RecordGame(r.Context(), models.LeaderboardEntry{
		UserID:    user.ID,
		SubjectID: sub.ID,
		Score:     req.Score,
	}, answers)
	if err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown question in answers")
			return
		}
		storeError(w, err, "", "record game")
		return
	}

	slog.Info("game recorded", "game_id", entry.ID, "user_id", user.ID, "subject", sub.Slug, "score", entry.Score)
	middleware.JSONResponse(w, http.StatusCreated, models.SubmitGameResponse{Success: true, GameID: entry.ID})
}
