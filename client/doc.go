// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is the Go client for the Poly-Millionaire API.

A Client acts as one user: the identity is held in a cookie jar and sent
as the User cookie on every request. Error responses surface as
*APIError carrying the HTTP status and the server's message.

	c, err := client.New("http://localhost:5000", "265123")
	questions, err := c.Game(ctx, "test")

# Submitting games

Finished games go through a Submitter. A send that fails for a transient
reason (network errors, 5xx, 408, 429) is retried with linear backoff.
When the attempts run out the submission is appended to an Outbox, a
JSON-lines file replayed by FlushOutbox on the next start. A 4xx
rejection is neither retried nor queued.
*/
package client
