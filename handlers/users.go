// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/poly-millionaire/middleware"
	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
)

type UserHandler struct {
	store *store.Store
}

func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// GetMe handles GET /api/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request, user models.User) {
	middleware.JSONResponse(w, http.StatusOK, user)
}

// ListUsers handles GET /api/users (admin)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request, user models.User) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		storeError(w, err, "", "list users")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, users)
}

// CreateUser handles POST /api/users (admin)
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request, admin models.User) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	if req.Role == "" {
		req.Role = models.RoleStudent
	}

	if req.ID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if !models.ValidRole(req.Role) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be student or admin")
		return
	}

	u := models.User{ID: req.ID, Name: req.Name, Role: req.Role}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			middleware.ErrorResponse(w, http.StatusConflict, "User already exists")
			return
		}
		storeError(w, err, "", "create user")
		return
	}

	slog.Info("user created", "user_id", u.ID, "role", u.Role, "by", admin.ID)
	middleware.JSONResponse(w, http.StatusCreated, u)
}
