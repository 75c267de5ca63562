// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/poly-millionaire/middleware"
	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
)

type QuestionHandler struct {
	store *store.Store
}

func NewQuestionHandler(s *store.Store) *QuestionHandler {
	return &QuestionHandler{store: s}
}

// subjectBySlug resolves the {slug} path parameter. On failure it writes
// the response and returns false.
func subjectBySlug(w http.ResponseWriter, r *http.Request, s *store.Store) (models.Subject, bool) {
	slug := r.PathValue("slug")
	sub, err := s.GetSubjectBySlug(r.Context(), slug)
	if err != nil {
		storeError(w, err, "Subject not found: "+slug, "query subject")
		return models.Subject{}, false
	}
	return sub, true
}

// ListQuestions handles GET /api/subjects/{slug}/questions (admin)
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request, admin models.User) {
	sub, ok := subjectBySlug(w, r, h.store)
	if !ok {
		return
	}

	questions, err := h.store.ListQuestions(r.Context(), sub.ID)
	if err != nil {
		storeError(w, err, "", "list questions")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, questions)
}

// CreateQuestion handles POST /api/subjects/{slug}/questions (admin)
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request, admin models.User) {
	sub, ok := subjectBySlug(w, r, h.store)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	q, err := models.NewQuestion(req.Content, req.Answers, req.CorrectAnswer, req.Difficulty)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	q.SubjectID = sub.ID

	created, err := h.store.CreateQuestion(r.Context(), q)
	if err != nil {
		storeError(w, err, "", "create question")
		return
	}

	slog.Info("question created", "question_id", created.ID, "subject", sub.Slug, "by", admin.ID)
	middleware.JSONResponse(w, http.StatusCreated, created)
}

// ImportQuestions handles POST /api/subjects/{slug}/questions/import (admin)
// Every record is validated before anything is written; the write is a
// single transaction.
func (h *QuestionHandler) ImportQuestions(w http.ResponseWriter, r *http.Request, admin models.User) {
	sub, ok := subjectBySlug(w, r, h.store)
	if !ok {
		return
	}

	var records []models.ImportQuestion
	if err := middleware.ParseJSONBody(r, &records); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON: expected an array of questions")
		return
	}

	questions := make([]models.Question, 0, len(records))
	for i, rec := range records {
		correct := rec.Correct
		if correct == "" {
			correct = rec.CorrectAnswer
		}
		q, err := models.NewQuestion(rec.Content, rec.Answers, correct, rec.Difficulty)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("question %d: %v", i, err))
			return
		}
		questions = append(questions, q)
	}

	count, err := h.store.ImportQuestions(r.Context(), sub.ID, questions)
	if err != nil {
		storeError(w, err, "", "import questions")
		return
	}

	slog.Info("questions imported", "subject", sub.Slug, "count", count, "by", admin.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.ImportResponse{Success: true, Count: count})
}

// UpdateQuestion handles PUT /api/questions/{id} (admin)
// Every field is required; there is no partial update.
func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request, admin models.User) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.QuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	q, err := models.NewQuestion(req.Content, req.Answers, req.CorrectAnswer, req.Difficulty)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.UpdateQuestion(r.Context(), id, q)
	if err != nil {
		storeError(w, err, "Question not found", "update question")
		return
	}

	slog.Info("question updated", "question_id", id, "by", admin.ID)
	middleware.JSONResponse(w, http.StatusOK, models.UpdateQuestionResponse{Success: true, Question: updated})
}

// DeleteQuestion handles DELETE /api/questions/{id} (admin)
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request, admin models.User) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteQuestion(r.Context(), id); err != nil {
		storeError(w, err, "Question not found", "delete question")
		return
	}

	slog.Info("question deleted", "question_id", id, "by", admin.ID)
	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
