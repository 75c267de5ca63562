// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/poly-millionaire/models"
)

// Delivery is what happened to a submission.
type Delivery int

const (
	Delivered Delivery = iota
	Queued
	Rejected
)

func (d Delivery) String() string {
	switch d {
	case Delivered:
		return "delivered"
	case Queued:
		return "queued"
	default:
		return "rejected"
	}
}

// Submitter delivers finished games. Failed sends are retried with
// linear backoff; once the attempts run out the game goes to the outbox.
type Submitter struct {
	Send     func(context.Context, models.SubmitGameRequest) (int64, error)
	Outbox   *Outbox
	Attempts int
	Backoff  time.Duration
}

// NewSubmitter submits through c with 3 attempts, 500ms apart at first.
func NewSubmitter(c *Client, outbox *Outbox) *Submitter {
	return &Submitter{
		Send:     c.Submit,
		Outbox:   outbox,
		Attempts: 3,
		Backoff:  500 * time.Millisecond,
	}
}

// Submit returns the game id when delivered. A submission the server
// rejects is not retried or queued. A queued submission comes back with
// the last send error.
func (s *Submitter) Submit(ctx context.Context, req models.SubmitGameRequest) (int64, Delivery, error) {
	attempts := max(s.Attempts, 1)

	var lastErr error
retry:
	for i := 1; i <= attempts; i++ {
		gameID, err := s.Send(ctx, req)
		if err == nil {
			return gameID, Delivered, nil
		}
		if permanent(err) {
			return 0, Rejected, err
		}
		lastErr = err
		slog.Warn("submission failed", "attempt", i, "of", attempts, "error", err)

		if i < attempts {
			select {
			case <-ctx.Done():
				break retry
			case <-time.After(time.Duration(i) * s.Backoff):
			}
		}
	}

	if s.Outbox == nil {
		return 0, Rejected, lastErr
	}
	if err := s.Outbox.Enqueue(req); err != nil {
		return 0, Rejected, err
	}
	slog.Info("submission queued", "outbox", s.Outbox.Path(), "subject", req.SubjectSlug)
	return 0, Queued, lastErr
}

// FlushOutbox resends queued submissions. It is a no-op without an outbox.
func (s *Submitter) FlushOutbox(ctx context.Context) (int, error) {
	if s.Outbox == nil {
		return 0, nil
	}
	return s.Outbox.Flush(ctx, func(ctx context.Context, req models.SubmitGameRequest) error {
		_, err := s.Send(ctx, req)
		return err
	})
}
