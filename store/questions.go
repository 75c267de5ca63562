// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/poly-millionaire/models"
)

const questionColumns = `id, subject_id, content, answer_a, answer_b, answer_c, answer_d, correct_answer, difficulty`

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (models.Question, error) {
	var q models.Question
	err := row.Scan(&q.ID, &q.SubjectID, &q.Content,
		&q.AnswerA, &q.AnswerB, &q.AnswerC, &q.AnswerD,
		&q.CorrectAnswer, &q.Difficulty)
	return q, err
}

func queryQuestions(ctx context.Context, q querier, query string, args ...any) ([]models.Question, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

// ListQuestions returns a subject's questions ordered by difficulty, then id.
func (s *Store) ListQuestions(ctx context.Context, subjectID int64) ([]models.Question, error) {
	return queryQuestions(ctx, s.db, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE subject_id = $1
		ORDER BY difficulty ASC, id ASC
	`, subjectID)
}

// QuestionsByDifficulty returns every question of one tier for a subject.
func (s *Store) QuestionsByDifficulty(ctx context.Context, subjectID int64, difficulty int) ([]models.Question, error) {
	return queryQuestions(ctx, s.db, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE subject_id = $1 AND difficulty = $2
		ORDER BY id ASC
	`, subjectID, difficulty)
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, `
		SELECT `+questionColumns+` FROM questions WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question: %w", err)
	}
	return q, nil
}

// CreateQuestion inserts q and returns it with its assigned id.
func (s *Store) CreateQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	return createQuestion(ctx, s.db, q)
}

func createQuestion(ctx context.Context, db querier, q models.Question) (models.Question, error) {
	err := db.QueryRowContext(ctx, `
		INSERT INTO questions (subject_id, content, answer_a, answer_b, answer_c, answer_d, correct_answer, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, q.SubjectID, q.Content, q.AnswerA, q.AnswerB, q.AnswerC, q.AnswerD, q.CorrectAnswer, q.Difficulty).Scan(&q.ID)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", classify(err))
	}
	return q, nil
}

// UpdateQuestion overwrites every editable field of question id. The
// subject is not editable. Returns the stored row after the update.
func (s *Store) UpdateQuestion(ctx context.Context, id int64, q models.Question) (models.Question, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE questions SET
			content = $1,
			answer_a = $2,
			answer_b = $3,
			answer_c = $4,
			answer_d = $5,
			correct_answer = $6,
			difficulty = $7
		WHERE id = $8
	`, q.Content, q.AnswerA, q.AnswerB, q.AnswerC, q.AnswerD, q.CorrectAnswer, q.Difficulty, id)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to update question: %w", err)
	}
	if err := affected(res); err != nil {
		return models.Question{}, err
	}
	return s.GetQuestion(ctx, id)
}

// DeleteQuestion returns ErrInUse while a recorded game answered the question.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", inUse(err))
	}
	return affected(res)
}

// ImportQuestions inserts all questions for subjectID in one
// transaction. Either every row is written or none is.
func (s *Store) ImportQuestions(ctx context.Context, subjectID int64, questions []models.Question) (int, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i, q := range questions {
			q.SubjectID = subjectID
			if _, err := createQuestion(ctx, tx, q); err != nil {
				return fmt.Errorf("question %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(questions), nil
}
