// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danielhkuo/poly-millionaire/models"
)

// Tx groups several store writes into one all-or-nothing unit.
type Tx struct {
	tx *sql.Tx
}

// InTx runs fn inside a transaction. Nothing fn wrote survives if it
// returns an error.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return fn(&Tx{tx: tx})
	})
}

// EnsureUser inserts u unless a user with the same id exists. Reports
// whether a row was created.
func (t *Tx) EnsureUser(ctx context.Context, u models.User) (bool, error) {
	var exists int
	err := t.tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, u.ID).Scan(&exists)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	if err := createUser(ctx, t.tx, u); err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceSubject drops any subject with the same slug (cascading to its
// questions and games) and recreates it with the given questions.
func (t *Tx) ReplaceSubject(ctx context.Context, name, slug string, questions []models.Question) (models.Subject, error) {
	existing, err := getSubjectBySlug(ctx, t.tx, slug)
	switch {
	case err == nil:
		if err := deleteSubject(ctx, t.tx, existing.ID); err != nil {
			return models.Subject{}, err
		}
	case !errors.Is(err, ErrNotFound):
		return models.Subject{}, err
	}

	sub, err := createSubject(ctx, t.tx, name, slug)
	if err != nil {
		return models.Subject{}, err
	}
	for _, q := range questions {
		q.SubjectID = sub.ID
		if _, err := createQuestion(ctx, t.tx, q); err != nil {
			return models.Subject{}, err
		}
	}
	return sub, nil
}
