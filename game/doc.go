// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package game holds the rules of a Poly-Millionaire playthrough.

# Assembly

A game is twelve questions, three from each difficulty tier in
ascending order. Each tier's pool is shuffled and the first three kept:

	questions, err := game.Assemble(source, nil)

A tier with fewer than three questions yields a *ShortfallError and no
questions at all.

# Money Ladder

	index:  0    1     2     3     4      5      6      7      8       9       10      11
	value:  500  1000  2000  5000  10000  20000  40000  75000  125000  250000  500000  1000000

Indexes 1 and 6 are checkpoints. A wrong answer or a timeout on
index > 6 keeps 40,000; on index > 1 keeps 1,000; otherwise 0. Walking
away on index k keeps Ladder[k-1].

# Session

Session is the client-side state machine:

	loading -> playing -> won | lost | walkaway
	loading -> error

Each question has its own countdown. Lifelines (fifty-fifty, ask the
audience, phone a friend) are each usable once per playthrough. A
finished session hands its answer history to Submission for persistence.
*/
package game
