// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Poly-Millionaire API server.

Poly-Millionaire is a classroom quiz game modelled on "Who Wants to Be a
Millionaire". Lecturers maintain subjects and question banks; students
play twelve-question games for a money ladder and compete on a shared
leaderboard.

# Starting the Server

With no configuration the server uses a SQLite file under data/:

	go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..." -seed demo

# Configuration

Settings come from flags, then environment variables (a .env file is
loaded first when present), then defaults:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): DSN (default: file:data/polymillionaire.db)
  - CORS_ORIGIN (-origin): Allowed browser origin (default: echo)
  - SEED (-seed): "demo" or a YAML fixture file applied at startup

# Architecture

  - handlers: HTTP request handlers (users, subjects, questions, games, leaderboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - auth: Cookie identity and role checks
  - store: Persistence adapter over database/sql
  - game: Game assembly, money ladder, session state machine, lifelines
  - seed: YAML fixtures and the embedded demo data
  - client: Go API client with retrying, outbox-backed submission
  - cmd/millionaire: Terminal client for playing and administration
  - models: Request/response and domain types
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
