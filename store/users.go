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

// GetUser looks up a user by its opaque id.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, role FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, role FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUser inserts a user. Returns ErrConflict if the id is taken.
func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	return createUser(ctx, s.db, u)
}

func createUser(ctx context.Context, q querier, u models.User) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO users (id, name, role) VALUES ($1, $2, $3)
	`, u.ID, u.Name, u.Role)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", classify(err))
	}
	return nil
}
