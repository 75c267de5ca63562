// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/poly-millionaire/auth"
	"github.com/danielhkuo/poly-millionaire/middleware"
	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
)

type SubjectHandler struct {
	store *store.Store
}

func NewSubjectHandler(s *store.Store) *SubjectHandler {
	return &SubjectHandler{store: s}
}

// ListSubjects handles GET /api/subjects
func (h *SubjectHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.store.ListSubjects(r.Context())
	if err != nil {
		storeError(w, err, "", "list subjects")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, subjects)
}

// CreateSubject handles POST /api/subjects (admin)
// The slug is derived from the name when omitted.
func (h *SubjectHandler) CreateSubject(w http.ResponseWriter, r *http.Request, admin models.User) {
	var req models.CreateSubjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = auth.Slugify(req.Name)
	}
	if !auth.ValidSlug(req.Slug) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug may only contain a-z, 0-9, '-' and '_'")
		return
	}

	sub, err := h.store.CreateSubject(r.Context(), req.Name, req.Slug)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			middleware.ErrorResponse(w, http.StatusConflict, "Subject slug already exists")
			return
		}
		storeError(w, err, "", "create subject")
		return
	}

	slog.Info("subject created", "subject_id", sub.ID, "slug", sub.Slug, "by", admin.ID)
	middleware.JSONResponse(w, http.StatusCreated, sub)
}

// DeleteSubject handles DELETE /api/subjects/{id} (admin)
// Questions and recorded games of the subject go with it.
func (h *SubjectHandler) DeleteSubject(w http.ResponseWriter, r *http.Request, admin models.User) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteSubject(r.Context(), id); err != nil {
		storeError(w, err, "Subject not found", "delete subject")
		return
	}

	slog.Info("subject deleted", "subject_id", id, "by", admin.ID)
	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
