// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
	"github.com/danielhkuo/poly-millionaire/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "poly-millionaire API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nowhere", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

// TestAccessControl checks every protected route for 401 without a
// cookie, and admin routes for 403 with a student cookie.
func TestAccessControl(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	testutil.CreateTestUser(t, s, "alice", models.RoleStudent)
	testutil.CreateTestUser(t, s, "prof", models.RoleAdmin)
	mux := NewRouter(db)

	testCases := []struct {
		method    string
		path      string
		adminOnly bool
	}{
		{"GET", "/api/me", false},
		{"GET", "/api/users", true},
		{"POST", "/api/users", true},
		{"POST", "/api/subjects", true},
		{"DELETE", "/api/subjects/1", true},
		{"GET", "/api/subjects/math/questions", true},
		{"POST", "/api/subjects/math/questions", true},
		{"POST", "/api/subjects/math/questions/import", true},
		{"PUT", "/api/questions/1", true},
		{"DELETE", "/api/questions/1", true},
		{"GET", "/api/subjects/math/questions/game", false},
		{"POST", "/api/game/submit", false},
		{"GET", "/api/leaderboard", false},
		{"GET", "/api/history", false},
		{"GET", "/api/history/1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(tc.method, tc.path, nil, ""))
			testutil.AssertError(t, w, http.StatusUnauthorized)

			w = httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(tc.method, tc.path, nil, "ghost"))
			testutil.AssertError(t, w, http.StatusUnauthorized)

			w = httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(tc.method, tc.path, nil, "alice"))
			if tc.adminOnly {
				testutil.AssertError(t, w, http.StatusForbidden)
			} else if w.Code == http.StatusUnauthorized || w.Code == http.StatusForbidden {
				t.Errorf("Student should pass auth on %s %s, got %d", tc.method, tc.path, w.Code)
			}

			w = httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.MakeRequest(tc.method, tc.path, nil, "prof"))
			if w.Code == http.StatusUnauthorized || w.Code == http.StatusForbidden {
				t.Errorf("Admin should pass auth on %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/api/leaderboard"},
		{"PATCH", "/api/questions/1"},
		{"GET", "/api/game/submit"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)
	testutil.CreateTestUser(t, s, "prof", models.RoleAdmin)
	sub := testutil.CreateTestSubject(t, s, "math")
	questions := testutil.AddTestQuestions(t, s, sub.ID, 3)
	mux := NewRouter(db)

	t.Run("slug", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/subjects/math/questions/game", nil, "prof"))
		testutil.AssertStatus(t, w, http.StatusOK)
		var got []models.Question
		testutil.AssertJSON(t, w, &got)
		if len(got) != 12 {
			t.Errorf("Expected 12 questions, got %d", len(got))
		}
	})

	t.Run("question id", func(t *testing.T) {
		id := strconv.FormatInt(questions[0].ID, 10)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/api/questions/"+id, nil, "prof"))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("subject id", func(t *testing.T) {
		id := strconv.FormatInt(sub.ID, 10)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/api/subjects/"+id, nil, "prof"))
		testutil.AssertStatus(t, w, http.StatusOK)
	})
}

func TestRequestIDAndCORS(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.CORSOrigin = "http://localhost:5173"
	h := NewHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/api/subjects", nil, "")
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != cfg.CORSOrigin {
		t.Errorf("Expected allowed origin %s, got %q", cfg.CORSOrigin, got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Expected credentials allowed")
	}

	pre := httptest.NewRequest("OPTIONS", "/api/game/submit", nil)
	pre.Header.Set("Origin", cfg.CORSOrigin)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, pre)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
}
