// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence adapter for users, subjects, questions,
leaderboard entries, and per-game answer history.

# Usage

	s := store.New(conn)
	sub, err := s.GetSubjectBySlug(ctx, "math")

Every method takes a context and uses positional $N placeholders, which
both SQLite and PostgreSQL accept. Inserts read their ids back with
RETURNING.

# Errors

	store.ErrNotFound         - no row matched (also for deletes of absent ids)
	store.ErrConflict         - unique constraint, e.g. a duplicate slug
	store.ErrInvalidReference - foreign key, e.g. an unknown question id

Driver errors from lib/pq and modernc.org/sqlite are classified into
these sentinels; check with errors.Is.

# Transactions

ImportQuestions and RecordGame each run in one transaction. A failure on
any row rolls back the whole import or the whole game. InTx exposes the
same guarantee to callers that batch their own writes, such as seeding.
*/
package store
