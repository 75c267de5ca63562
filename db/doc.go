// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the schema.

# Connections

Open picks the driver by database type:

	conn, err := db.Open(db.TypeSQLite, "file:data/polymillionaire.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite (modernc.org/sqlite, pure Go) is the default. Its DSN gets
foreign_keys(1) and busy_timeout(5000) pragmas appended so cascades are
enforced on every pooled connection.

# Schema Creation

CreateSchema initializes all required tables for the chosen dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: opaque external id, name, role
  - subjects: name and unique slug
  - questions: four answers, correct letter, difficulty 1-4
  - leaderboard: one row per finished game
  - game_answers: one row per answered question in a game

# Relationships

	subjects 1──* questions
	subjects 1──* leaderboard
	users    1──* leaderboard
	leaderboard 1──* game_answers
	questions   1──* game_answers

Deleting a subject cascades to its questions and games, and from there
to their answers.
*/
package db
