// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: SQLite DSN or PostgreSQL URL (default: file:data/polymillionaire.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - CORSOrigin: Allowed browser origin (default: echo request origin)
  - Seed: "demo", a YAML fixture path, or empty

# CLI Flags

	-env     Env file loaded first (default: .env, ignored if missing)
	-p       Server port
	-d       Database URL
	-t       Database type
	-origin  Allowed CORS origin
	-seed    Fixtures to load on startup

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CORS_ORIGIN   → -origin
	SEED          → -seed

CLI flags take precedence over environment variables, and variables
already set in the environment take precedence over the env file.

# Validation

ParseFlags returns an error if:

  - PORT is not a number or is out of range
  - DATABASE_TYPE is neither sqlite nor postgres
  - postgres is chosen without a DATABASE_URL
*/
package cliparse
