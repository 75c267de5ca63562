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

func (s *Store) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug FROM subjects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		var sub models.Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}

// CreateSubject inserts a subject. Returns ErrConflict on a duplicate slug.
func (s *Store) CreateSubject(ctx context.Context, name, slug string) (models.Subject, error) {
	return createSubject(ctx, s.db, name, slug)
}

func createSubject(ctx context.Context, q querier, name, slug string) (models.Subject, error) {
	sub := models.Subject{Name: name, Slug: slug}
	err := q.QueryRowContext(ctx, `
		INSERT INTO subjects (name, slug) VALUES ($1, $2) RETURNING id
	`, name, slug).Scan(&sub.ID)
	if err != nil {
		return models.Subject{}, fmt.Errorf("failed to insert subject: %w", classify(err))
	}
	return sub, nil
}

func (s *Store) GetSubjectBySlug(ctx context.Context, slug string) (models.Subject, error) {
	return getSubjectBySlug(ctx, s.db, slug)
}

func getSubjectBySlug(ctx context.Context, q querier, slug string) (models.Subject, error) {
	var sub models.Subject
	err := q.QueryRowContext(ctx, `
		SELECT id, name, slug FROM subjects WHERE slug = $1
	`, slug).Scan(&sub.ID, &sub.Name, &sub.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Subject{}, ErrNotFound
	}
	if err != nil {
		return models.Subject{}, fmt.Errorf("failed to query subject: %w", err)
	}
	return sub, nil
}

// DeleteSubject removes a subject together with its questions and games.
// Returns ErrNotFound if no subject has the id, and ErrInUse if a game
// of another subject recorded one of its questions.
func (s *Store) DeleteSubject(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return deleteSubject(ctx, tx, id)
	})
}

// deleteSubject must run inside a transaction. Games go first so their
// answers no longer hold the subject's questions.
func deleteSubject(ctx context.Context, q querier, id int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM leaderboard WHERE subject_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete subject games: %w", err)
	}
	res, err := q.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", inUse(err))
	}
	return affected(res)
}
