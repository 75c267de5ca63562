// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/poly-millionaire/auth"
	"github.com/danielhkuo/poly-millionaire/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the Poly-Millionaire API as one user. The identity
// travels in a cookie jar.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New returns a client for the server at baseURL acting as userID.
func New(baseURL, userID string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if userID != "" {
		jar.SetCookies(u, []*http.Cookie{{Name: auth.CookieName, Value: userID, Path: "/"}})
	}

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout, Jar: jar},
	}, nil
}

// do sends body as JSON and decodes a successful response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e models.ErrorResponse
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func (c *Client) Me(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &u)
	return u, err
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &users)
	return users, err
}

func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/api/users", req, &u)
	return u, err
}

func (c *Client) Subjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	err := c.do(ctx, http.MethodGet, "/api/subjects", nil, &subjects)
	return subjects, err
}

func (c *Client) CreateSubject(ctx context.Context, name, slug string) (models.Subject, error) {
	var sub models.Subject
	err := c.do(ctx, http.MethodPost, "/api/subjects", models.CreateSubjectRequest{Name: name, Slug: slug}, &sub)
	return sub, err
}

func (c *Client) DeleteSubject(ctx context.Context, subjectID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/subjects/"+id(subjectID), nil, nil)
}

func (c *Client) Questions(ctx context.Context, slug string) ([]models.Question, error) {
	var questions []models.Question
	err := c.do(ctx, http.MethodGet, "/api/subjects/"+url.PathEscape(slug)+"/questions", nil, &questions)
	return questions, err
}

func (c *Client) CreateQuestion(ctx context.Context, slug string, req models.QuestionRequest) (models.Question, error) {
	var q models.Question
	err := c.do(ctx, http.MethodPost, "/api/subjects/"+url.PathEscape(slug)+"/questions", req, &q)
	return q, err
}

// ImportQuestions uploads records in bulk and returns how many were written.
func (c *Client) ImportQuestions(ctx context.Context, slug string, records []models.ImportQuestion) (int, error) {
	var resp models.ImportResponse
	err := c.do(ctx, http.MethodPost, "/api/subjects/"+url.PathEscape(slug)+"/questions/import", records, &resp)
	return resp.Count, err
}

func (c *Client) UpdateQuestion(ctx context.Context, questionID int64, req models.QuestionRequest) (models.Question, error) {
	var resp models.UpdateQuestionResponse
	err := c.do(ctx, http.MethodPut, "/api/questions/"+id(questionID), req, &resp)
	return resp.Question, err
}

func (c *Client) DeleteQuestion(ctx context.Context, questionID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/questions/"+id(questionID), nil, nil)
}

// Game fetches a freshly assembled set of 12 questions.
func (c *Client) Game(ctx context.Context, slug string) ([]models.Question, error) {
	var questions []models.Question
	err := c.do(ctx, http.MethodGet, "/api/subjects/"+url.PathEscape(slug)+"/questions/game", nil, &questions)
	return questions, err
}

// Submit records a finished game and returns its id.
func (c *Client) Submit(ctx context.Context, req models.SubmitGameRequest) (int64, error) {
	var resp models.SubmitGameResponse
	err := c.do(ctx, http.MethodPost, "/api/game/submit", req, &resp)
	return resp.GameID, err
}

func (c *Client) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	var rows []models.LeaderboardRow
	err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &rows)
	return rows, err
}

func (c *Client) History(ctx context.Context) ([]models.GameSummary, error) {
	var games []models.GameSummary
	err := c.do(ctx, http.MethodGet, "/api/history", nil, &games)
	return games, err
}

func (c *Client) GameDetails(ctx context.Context, gameID int64) ([]models.GameAnswerDetail, error) {
	var details []models.GameAnswerDetail
	err := c.do(ctx, http.MethodGet, "/api/history/"+id(gameID), nil, &details)
	return details, err
}
