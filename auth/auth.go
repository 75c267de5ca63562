// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/danielhkuo/poly-millionaire/middleware"
	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
)

// CookieName carries the caller's user id. The value is neither signed
// nor expired server-side.
const CookieName = "User"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	errNoCookie    = fmt.Errorf("%w: no %s cookie", ErrUnauthenticated, CookieName)
	errUnknownUser = fmt.Errorf("%w: unknown user", ErrUnauthenticated)
)

// UserLookup resolves a user id to a user row.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (models.User, error)
}

// HandlerFunc is a handler that receives the resolved caller explicitly.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, user models.User)

// Resolve reads the identity cookie and looks the user up.
func Resolve(ctx context.Context, users UserLookup, r *http.Request) (models.User, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return models.User{}, errNoCookie
	}

	user, err := users.GetUser(ctx, cookie.Value)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, errUnknownUser
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// RequireUser rejects requests without a known user and passes the
// resolved user to next.
func RequireUser(users UserLookup, next HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := Resolve(r.Context(), users, r)
		if err != nil {
			writeAuthError(w, r, err)
			return
		}
		next(w, r, user)
	}
}

// RequireAdmin is RequireUser plus a role check.
func RequireAdmin(users UserLookup, next HandlerFunc) http.HandlerFunc {
	return RequireUser(users, func(w http.ResponseWriter, r *http.Request, user models.User) {
		if !user.IsAdmin() {
			writeAuthError(w, r, ErrForbidden)
			return
		}
		next(w, r, user)
	})
}

func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errNoCookie):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized: No User cookie found")
	case errors.Is(err, ErrUnauthenticated):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized: Invalid User")
	case errors.Is(err, ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Forbidden: Admins only")
	default:
		slog.Error("failed to resolve user", "error", err, "path", r.URL.Path)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9_-]`)
	slugValid   = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Slugify derives a URL-safe slug from a subject name: lowercase,
// spaces become hyphens, everything else outside [a-z0-9_-] is dropped.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	return slugInvalid.ReplaceAllString(s, "")
}

// ValidSlug reports whether slug is non-empty and URL-safe.
func ValidSlug(slug string) bool {
	return slugValid.MatchString(slug)
}
