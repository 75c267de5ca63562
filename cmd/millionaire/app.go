// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/poly-millionaire/client"
)

type app struct {
	api       *client.Client
	submitter *client.Submitter
	lines     <-chan string
	out       io.Writer
	tick      time.Duration
}

// readLines feeds input lines to a channel that closes at EOF.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// flushOutbox resends games queued by earlier runs. Failures are logged
// and the games stay queued.
func (a *app) flushOutbox(ctx context.Context) {
	n, err := a.submitter.FlushOutbox(ctx)
	if err != nil {
		slog.Warn("failed to flush outbox", "error", err)
	}
	if n > 0 {
		fmt.Fprintf(a.out, "Delivered %d queued game(s).\n", n)
	}
}

func money(v int64) string {
	return "$" + humanize.Comma(v)
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func (a *app) me(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s), role %s\n", u.Name, u.ID, u.Role)
	return nil
}

func (a *app) listSubjects(ctx context.Context) error {
	subjects, err := a.api.Subjects(ctx)
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		fmt.Fprintln(a.out, "No subjects yet.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tSLUG\tNAME")
	for _, s := range subjects {
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.Slug, s.Name)
	}
	return w.Flush()
}

func (a *app) leaderboard(ctx context.Context) error {
	rows, err := a.api.Leaderboard(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No games played yet.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "#\tNAME\tTOTAL\tGAMES")
	for i, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, r.Name, money(r.TotalScore), r.Games)
	}
	return w.Flush()
}

func (a *app) history(ctx context.Context, args []string) error {
	if len(args) > 0 {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return a.gameDetails(ctx, id)
	}

	games, err := a.api.History(ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(a.out, "You have not played any games yet.")
		return nil
	}
	w := a.table()
	fmt.Fprintln(w, "GAME\tSUBJECT\tSCORE\tPLAYED")
	for _, g := range games {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", g.ID, g.SubjectName, money(g.Score), g.Timestamp.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func (a *app) gameDetails(ctx context.Context, id int64) error {
	details, err := a.api.GameDetails(ctx, id)
	if err != nil {
		return err
	}
	w := a.table()
	fmt.Fprintln(w, "#\tQUESTION\tYOURS\tCORRECT\t")
	for i, d := range details {
		selected, mark := d.SelectedAnswer, "wrong"
		if selected == "" {
			selected = "-"
			mark = "timed out"
		} else if d.IsCorrect {
			mark = "ok"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, d.Content, selected, d.CorrectAnswer, mark)
	}
	return w.Flush()
}
