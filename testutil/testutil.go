// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/poly-millionaire/auth"
	"github.com/danielhkuo/poly-millionaire/cliparse"
	"github.com/danielhkuo/poly-millionaire/db"
	"github.com/danielhkuo/poly-millionaire/models"
	"github.com/danielhkuo/poly-millionaire/store"
)

// SetupTestDB creates a fresh file-backed SQLite database with the full
// schema. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps SetupTestDB in a Store.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.TypeSQLite,
	}
}

// CreateTestUser inserts a user with the given role and returns it.
func CreateTestUser(t *testing.T, s *store.Store, id, role string) models.User {
	t.Helper()

	u := models.User{ID: id, Name: "Test " + id, Role: role}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
}

// CreateTestSubject inserts a subject named after slug.
func CreateTestSubject(t *testing.T, s *store.Store, slug string) models.Subject {
	t.Helper()

	sub, err := s.CreateSubject(context.Background(), "Subject "+slug, slug)
	if err != nil {
		t.Fatalf("Failed to create test subject: %v", err)
	}
	return sub
}

// AddTestQuestions adds perTier questions to every difficulty tier of
// the subject. The correct answer is always A. Questions come back in
// tier order.
func AddTestQuestions(t *testing.T, s *store.Store, subjectID int64, perTier int) []models.Question {
	t.Helper()

	var out []models.Question
	for tier := models.MinDifficulty; tier <= models.MaxDifficulty; tier++ {
		for i := 0; i < perTier; i++ {
			q, err := s.CreateQuestion(context.Background(), models.Question{
				SubjectID:     subjectID,
				Content:       fmt.Sprintf("Tier %d question %d", tier, i+1),
				AnswerA:       "Correct",
				AnswerB:       "Wrong 1",
				AnswerC:       "Wrong 2",
				AnswerD:       "Wrong 3",
				CorrectAnswer: models.ChoiceA,
				Difficulty:    tier,
			})
			if err != nil {
				t.Fatalf("Failed to create test question: %v", err)
			}
			out = append(out, q)
		}
	}
	return out
}

// MakeRequest creates an HTTP test request. A non-empty userID is sent
// as the identity cookie.
func MakeRequest(method, path string, body interface{}, userID string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if userID != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: userID})
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status and that the body carries an error message.
func AssertError(t *testing.T, w *httptest.ResponseRecorder, expected int) string {
	t.Helper()
	AssertStatus(t, w, expected)
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error == "" {
		t.Error("Expected non-empty error message")
	}
	return resp.Error
}
