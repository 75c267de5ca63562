// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/danielhkuo/poly-millionaire/models"
)

// Outbox holds game submissions that could not be delivered, one JSON
// document per line.
type Outbox struct {
	path string
	mu   sync.Mutex
}

func NewOutbox(path string) *Outbox {
	return &Outbox{path: path}
}

func (o *Outbox) Path() string {
	return o.path
}

// Enqueue appends a submission.
func (o *Outbox) Enqueue(req models.SubmitGameRequest) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	line, err := json.Marshal(req)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(o.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open outbox: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("failed to write outbox: %w", err)
	}
	return f.Close()
}

// Pending returns the queued submissions in order. A missing file is an
// empty outbox.
func (o *Outbox) Pending() ([]models.SubmitGameRequest, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.read()
}

func (o *Outbox) read() ([]models.SubmitGameRequest, error) {
	data, err := os.ReadFile(o.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read outbox: %w", err)
	}

	var pending []models.SubmitGameRequest
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var req models.SubmitGameRequest
		if err := json.Unmarshal(line, &req); err != nil {
			slog.Warn("skipping corrupt outbox line", "path", o.path, "line", n, "error", err)
			continue
		}
		pending = append(pending, req)
	}
	return pending, scanner.Err()
}

func (o *Outbox) write(pending []models.SubmitGameRequest) error {
	if len(pending) == 0 {
		if err := os.Remove(o.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, req := range pending {
		if err := enc.Encode(req); err != nil {
			return err
		}
	}
	tmp := o.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, o.path)
}

// Flush delivers every queued submission with send. Delivered entries
// and entries the server rejected outright are removed; the rest stay
// queued. Returns how many were delivered.
func (o *Outbox) Flush(ctx context.Context, send func(context.Context, models.SubmitGameRequest) error) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	pending, err := o.read()
	if err != nil || len(pending) == 0 {
		return 0, err
	}

	var (
		keep      []models.SubmitGameRequest
		delivered int
	)
	for i, req := range pending {
		if ctx.Err() != nil {
			keep = append(keep, pending[i:]...)
			break
		}
		err := send(ctx, req)
		switch {
		case err == nil:
			delivered++
		case permanent(err):
			slog.Warn("dropping rejected submission", "subject", req.SubjectSlug, "score", req.Score, "error", err)
		default:
			keep = append(keep, req)
		}
	}

	if err := o.write(keep); err != nil {
		return delivered, fmt.Errorf("failed to rewrite outbox: %w", err)
	}
	return delivered, nil
}

// permanent reports whether resending can never succeed.
func permanent(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Status != 408 && apiErr.Status != 429
}
