package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// User roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Answer choices
const (
	ChoiceA = "A"
	ChoiceB = "B"
	ChoiceC = "C"
	ChoiceD = "D"
)

// Choices lists the valid answer letters in display order.
var Choices = []string{ChoiceA, ChoiceB, ChoiceC, ChoiceD}

// Difficulty tiers
const (
	MinDifficulty = 1
	MaxDifficulty = 4
)

// ValidChoice reports whether c is one of A..D.
func ValidChoice(c string) bool {
	for _, v := range Choices {
		if c == v {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is student or admin.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleAdmin
}

// Request types

type CreateUserRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type CreateSubjectRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Answers maps a choice letter to its text.
type Answers struct {
	A string `json:"A" yaml:"A"`
	B string `json:"B" yaml:"B"`
	C string `json:"C" yaml:"C"`
	D string `json:"D" yaml:"D"`
}

// QuestionRequest is the body of create and update question calls.
// Update requires every field; there is no partial patch.
type QuestionRequest struct {
	Content       string  `json:"content"`
	Answers       Answers `json:"answers"`
	CorrectAnswer string  `json:"correct_answer"`
	Difficulty    int     `json:"difficulty"`
}

// ImportQuestion is one record of a bulk import. The correct letter is
// read from "correct", falling back to "correct_answer".
type ImportQuestion struct {
	Content       string  `json:"content"`
	Answers       Answers `json:"answers"`
	Correct       string  `json:"correct"`
	CorrectAnswer string  `json:"correct_answer,omitempty"`
	Difficulty    int     `json:"difficulty"`
}

// AnswerRecord is one entry of a playthrough's answer history.
// SelectedAnswer is empty when the question timed out.
type AnswerRecord struct {
	QuestionID     int64  `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

type SubmitGameRequest struct {
	SubjectSlug string         `json:"subject_slug"`
	Score       int64          `json:"score"`
	Answers     []AnswerRecord `json:"answers"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ImportResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type UpdateQuestionResponse struct {
	Success  bool     `json:"success"`
	Question Question `json:"question"`
}

type SubmitGameResponse struct {
	Success bool  `json:"success"`
	GameID  int64 `json:"game_id"`
}

// Domain types

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Question struct {
	ID            int64  `json:"id"`
	SubjectID     int64  `json:"subject_id"`
	Content       string `json:"content"`
	AnswerA       string `json:"answer_a"`
	AnswerB       string `json:"answer_b"`
	AnswerC       string `json:"answer_c"`
	AnswerD       string `json:"answer_d"`
	CorrectAnswer string `json:"correct_answer"`
	Difficulty    int    `json:"difficulty"`
}

// Answer returns the text for choice, or "" for an unknown letter.
func (q Question) Answer(choice string) string {
	switch choice {
	case ChoiceA:
		return q.AnswerA
	case ChoiceB:
		return q.AnswerB
	case ChoiceC:
		return q.AnswerC
	case ChoiceD:
		return q.AnswerD
	}
	return ""
}

// NewQuestion trims and validates the editable fields of a question.
// Content and all four answers must be non-empty.
func NewQuestion(content string, answers Answers, correct string, difficulty int) (Question, error) {
	q := Question{
		Content:       strings.TrimSpace(content),
		AnswerA:       strings.TrimSpace(answers.A),
		AnswerB:       strings.TrimSpace(answers.B),
		AnswerC:       strings.TrimSpace(answers.C),
		AnswerD:       strings.TrimSpace(answers.D),
		CorrectAnswer: strings.ToUpper(strings.TrimSpace(correct)),
		Difficulty:    difficulty,
	}

	if q.Content == "" {
		return q, errors.New("content is required")
	}
	for _, c := range Choices {
		if q.Answer(c) == "" {
			return q, fmt.Errorf("answer %s is required", c)
		}
	}
	if !ValidChoice(q.CorrectAnswer) {
		return q, errors.New("correct answer must be one of A, B, C, D")
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return q, fmt.Errorf("difficulty must be between %d and %d", MinDifficulty, MaxDifficulty)
	}
	return q, nil
}

// LeaderboardEntry is one recorded playthrough.
type LeaderboardEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	SubjectID int64     `json:"subject_id"`
	Score     int64     `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

type GameAnswer struct {
	ID             int64  `json:"id"`
	LeaderboardID  int64  `json:"leaderboard_id"`
	QuestionID     int64  `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// Query result types

type LeaderboardRow struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	TotalScore int64  `json:"total_score"`
	Games      int    `json:"games"`
}

type GameSummary struct {
	ID          int64     `json:"id"`
	SubjectName string    `json:"subject_name"`
	Score       int64     `json:"score"`
	Timestamp   time.Time `json:"timestamp"`
}

// GameAnswerDetail joins an answer to the question it was given for.
type GameAnswerDetail struct {
	GameAnswer
	Content       string `json:"content"`
	CorrectAnswer string `json:"correct_answer"`
	AnswerA       string `json:"answer_a"`
	AnswerB       string `json:"answer_b"`
	AnswerC       string `json:"answer_c"`
	AnswerD       string `json:"answer_d"`
	Difficulty    int    `json:"difficulty"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
