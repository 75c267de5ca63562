// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/poly-millionaire/models"
)

// RecordGame writes one leaderboard entry and its answers in a single
// transaction. entry.ID and entry.Timestamp are filled in on success.
func (s *Store) RecordGame(ctx context.Context, entry models.LeaderboardEntry, answers []models.AnswerRecord) (models.LeaderboardEntry, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO leaderboard (user_id, subject_id, score, timestamp)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, entry.UserID, entry.SubjectID, entry.Score, entry.Timestamp).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("failed to insert leaderboard entry: %w", classify(err))
		}

		for i, a := range answers {
			var selected sql.NullString
			if a.SelectedAnswer != "" {
				selected = sql.NullString{String: a.SelectedAnswer, Valid: true}
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO game_answers (leaderboard_id, question_id, selected_answer, is_correct)
				VALUES ($1, $2, $3, $4)
			`, entry.ID, a.QuestionID, selected, a.IsCorrect)
			if err != nil {
				return fmt.Errorf("failed to insert answer %d: %w", i, classify(err))
			}
		}
		return nil
	})
	if err != nil {
		return models.LeaderboardEntry{}, err
	}
	return entry, nil
}

// GlobalLeaderboard sums every user's scores across all games, highest first.
func (s *Store) GlobalLeaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, SUM(l.score) AS total_score, COUNT(l.id) AS games
		FROM leaderboard l
		JOIN users u ON l.user_id = u.id
		GROUP BY u.id, u.name
		ORDER BY total_score DESC, u.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	board := []models.LeaderboardRow{}
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.TotalScore, &row.Games); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		board = append(board, row)
	}
	return board, rows.Err()
}

// UserGames lists a user's recorded games, newest first.
func (s *Store) UserGames(ctx context.Context, userID string) ([]models.GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, s.name, l.score, l.timestamp
		FROM leaderboard l
		JOIN subjects s ON l.subject_id = s.id
		WHERE l.user_id = $1
		ORDER BY l.timestamp DESC, l.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []models.GameSummary{}
	for rows.Next() {
		var g models.GameSummary
		if err := rows.Scan(&g.ID, &g.SubjectName, &g.Score, &g.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// GameDetails returns the answers of one game joined to their questions.
// Returns ErrNotFound if the game does not exist.
func (s *Store) GameDetails(ctx context.Context, gameID int64) ([]models.GameAnswerDetail, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM leaderboard WHERE id = $1`, gameID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query game: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ga.id, ga.leaderboard_id, ga.question_id, ga.selected_answer, ga.is_correct,
		       q.content, q.correct_answer, q.answer_a, q.answer_b, q.answer_c, q.answer_d, q.difficulty
		FROM game_answers ga
		JOIN questions q ON ga.question_id = q.id
		WHERE ga.leaderboard_id = $1
		ORDER BY ga.id ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game answers: %w", err)
	}
	defer rows.Close()

	details := []models.GameAnswerDetail{}
	for rows.Next() {
		var d models.GameAnswerDetail
		var selected sql.NullString
		if err := rows.Scan(&d.ID, &d.LeaderboardID, &d.QuestionID, &selected, &d.IsCorrect,
			&d.Content, &d.CorrectAnswer, &d.AnswerA, &d.AnswerB, &d.AnswerC, &d.AnswerD, &d.Difficulty); err != nil {
			return nil, fmt.Errorf("failed to scan game answer: %w", err)
		}
		d.SelectedAnswer = selected.String
		details = append(details, d)
	}
	return details, rows.Err()
}
