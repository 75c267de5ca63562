// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command millionaire is the terminal client for Poly-Millionaire.

	millionaire -user 265123 play test
	millionaire -user "Lecturer 1" admin import test questions.json

The server and identity come from -url and -user, or MILLIONAIRE_URL and
MILLIONAIRE_USER. Games that could not be saved are kept in the outbox
file (-outbox, MILLIONAIRE_OUTBOX) and sent again on the next run.

During play, type a letter to answer, 50, aud or phone for a lifeline,
and walk to leave with the current winnings. Each question has a
countdown (-time on play, default 10m); running out loses the game.
*/
package main
